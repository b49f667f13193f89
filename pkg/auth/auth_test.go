package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilemo/api/config"
)

func uintPtr(v uint) *uint { return &v }
func strPtr(s string) *string { return &s }

func payload(t *testing.T, token string) map[string]any {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestTokenCarriesTenantClaims(t *testing.T) {
	token, err := GenerateToken(Principal{
		UserID:     5,
		Email:      "admin@acme.test",
		Roles:      []string{RoleAdmin},
		ClientID:   uintPtr(1),
		ClientName: strPtr("Acme"),
	})
	require.NoError(t, err)

	claims := payload(t, token)
	assert.Equal(t, "admin@acme.test", claims["userIdentifier"])
	assert.Equal(t, "admin@acme.test", claims["username"])
	assert.EqualValues(t, 1, claims["clientId"])
	assert.Equal(t, "Acme", claims["clientName"])
	assert.Equal(t, "5", claims["sub"])
	assert.ElementsMatch(t, []any{RoleAdmin, RoleUser}, claims["roles"])
}

func TestTokenWithoutClientHasNullClaims(t *testing.T) {
	token, err := GenerateToken(Principal{UserID: 1, Email: "root@bilemo.test", Roles: []string{RoleSuperAdmin}})
	require.NoError(t, err)

	claims := payload(t, token)
	v, ok := claims["clientId"]
	assert.True(t, ok)
	assert.Nil(t, v)
	v, ok = claims["clientName"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestValidateTokenRoundTripsPrincipal(t *testing.T) {
	token, err := GenerateToken(Principal{UserID: 9, Email: "u@acme.test", ClientID: uintPtr(3), ClientName: strPtr("Acme")})
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)

	p, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, uint(9), p.UserID)
	assert.Equal(t, "u@acme.test", p.Email)
	assert.Equal(t, []string{RoleUser}, p.Roles)
	id, ok := p.LinkedClient()
	assert.True(t, ok)
	assert.Equal(t, uint(3), id)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(Principal{UserID: 1, Email: "u@x.test"})
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	config.Set("JWT_SECRET", "another-secret")
	t.Cleanup(func() { config.Set("JWT_SECRET", "change-me-in-production") })
	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRoleHierarchy(t *testing.T) {
	assert.True(t, Granted([]string{RoleSuperAdmin}, RoleAdmin))
	assert.True(t, Granted([]string{RoleSuperAdmin}, RoleUser))
	assert.True(t, Granted([]string{RoleAdmin}, RoleUser))
	assert.False(t, Granted([]string{RoleAdmin}, RoleSuperAdmin))
	assert.False(t, Granted([]string{RoleUser}, RoleAdmin))
}

func TestNormalizeAddsBaseRole(t *testing.T) {
	assert.Equal(t, []string{RoleUser}, Normalize(nil))
	assert.Equal(t, []string{RoleAdmin, RoleUser}, Normalize([]string{RoleAdmin, RoleAdmin}))
	assert.Equal(t, []string{RoleUser, RoleAdmin}, Normalize([]string{RoleUser, RoleAdmin}))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	p := &Principal{UserID: 2}
	got, ok := FromContext(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Same(t, p, got)

	var nilP *Principal
	assert.False(t, nilP.HasRole(RoleUser))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("apassword")
	require.NoError(t, err)
	assert.NotEqual(t, "apassword", hash)
	assert.True(t, CheckPassword(hash, "apassword"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
