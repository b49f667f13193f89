package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/bilemo/api/app/events"
	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/app/repositories"
	"github.com/bilemo/api/app/requests"
	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/event"
	"github.com/bilemo/api/pkg/logger"
	"github.com/bilemo/api/pkg/orm"
)

var userEmailColumns = [][2]string{{"email", "email"}}

type UserService struct {
	users   *repositories.UserRepository
	clients *repositories.ClientRepository
}

func NewUserService(users *repositories.UserRepository, clients *repositories.ClientRepository) *UserService {
	return &UserService{users: users, clients: clients}
}

func (s *UserService) List(ctx context.Context, p *auth.Principal, page, perPage int) ([]models.User, orm.Pagination, error) {
	return s.users.List(ctx, p, page, perPage)
}

func (s *UserService) Find(ctx context.Context, p *auth.Principal, id uint) (*models.User, error) {
	u, err := s.users.Find(ctx, p, id)
	return u, notFound(err)
}

func (s *UserService) Create(ctx context.Context, caller *auth.Principal, in requests.CreateUser) (*models.User, error) {
	u := &models.User{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Roles:       models.Roles{},
	}
	if err := s.checkEmail(ctx, u.Email, 0); err != nil {
		return nil, err
	}
	err := s.applyPayload(ctx, caller, u, userPayload{
		Password: &in.Password,
		Roles:    in.Roles,
		ClientID: in.ClientID,
	}, true)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, uniqueViolation(err, userEmailColumns)
	}
	event.FireAsync(ctx, events.UserCreated, u.ID)
	logger.WithCtx(ctx).Info("user created", zap.Uint("user_id", u.ID))

	return s.Find(ctx, nil, u.ID)
}

// Update patches a user visible to caller.
func (s *UserService) Update(ctx context.Context, caller *auth.Principal, id uint, in requests.UpdateUser) (*models.User, error) {
	u, err := s.Find(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	setIf(&u.Email, in.Email)
	setIf(&u.FirstName, in.FirstName)
	setIf(&u.LastName, in.LastName)
	setOptional(&u.PhoneNumber, in.PhoneNumber)

	if in.Email != nil {
		if err := s.checkEmail(ctx, u.Email, u.ID); err != nil {
			return nil, err
		}
	}
	err = s.applyPayload(ctx, caller, u, userPayload{
		Password: in.Password,
		Roles:    in.Roles,
		ClientID: in.ClientID,
	}, false)
	if err != nil {
		return nil, err
	}

	u.Client = nil
	if err := s.users.Update(ctx, u); err != nil {
		return nil, uniqueViolation(err, userEmailColumns)
	}
	return s.Find(ctx, nil, u.ID)
}

// Delete removes a user visible to caller.
func (s *UserService) Delete(ctx context.Context, caller *auth.Principal, id uint) error {
	if _, err := s.Find(ctx, caller, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	event.FireAsync(ctx, events.UserDeleted, id)
	return nil
}

func (s *UserService) checkEmail(ctx context.Context, email string, exceptID uint) error {
	taken, err := s.users.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return alreadyUsed("email")
	}
	return nil
}
