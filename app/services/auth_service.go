package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/bilemo/api/app/repositories"
	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/logger"
	"github.com/bilemo/api/pkg/metrics"
)

var loginAttempts = metrics.NewCounter("login_attempts_total", "Login attempts by outcome.", "result")

var (
	dummyOnce sync.Once
	dummyHash string
)

// burnPassword spends one bcrypt comparison so unknown emails take as long
// as wrong passwords.
func burnPassword(plain string) {
	dummyOnce.Do(func() { dummyHash, _ = auth.HashPassword("not-a-real-password") })
	auth.CheckPassword(dummyHash, plain)
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login checks the credentials and issues a token whose claims carry the
// user's roles and linked client.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.WithCtx(ctx)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			burnPassword(password)
			loginAttempts.WithLabelValues("unknown_user").Inc()
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		loginAttempts.WithLabelValues("bad_password").Inc()
		log.Info("login rejected", zap.Uint("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Principal())
	if err != nil {
		return "", err
	}
	loginAttempts.WithLabelValues("success").Inc()
	log.Info("login", zap.Uint("user_id", user.ID))
	return token, nil
}
