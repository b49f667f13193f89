package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bilemo/api/config"
)

// ErrInvalidToken wraps every parse or validation failure.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed token payload. ClientID and ClientName serialise as
// null for users that are not bound to a client.
type Claims struct {
	Username       string   `json:"username"`
	UserIdentifier string   `json:"userIdentifier"`
	Roles          []string `json:"roles"`
	ClientID       *uint    `json:"clientId"`
	ClientName     *string  `json:"clientName"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken signs an HS256 token for p that expires after JWT_TTL.
func GenerateToken(p Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:       p.Email,
		UserIdentifier: p.Email,
		Roles:          Normalize(p.Roles),
		ClientID:       p.ClientID,
		ClientName:     p.ClientName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(p.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.JWTTTL())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(*jwt.Token) (any, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Principal rebuilds the caller identity carried by the claims.
func (c *Claims) Principal() (*Principal, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}
	return &Principal{
		UserID:     uint(id),
		Email:      c.UserIdentifier,
		Roles:      Normalize(c.Roles),
		ClientID:   c.ClientID,
		ClientName: c.ClientName,
	}, nil
}
