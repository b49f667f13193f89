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

var clientIdentityColumns = [][2]string{{"company_name", "companyName"}, {"address", "companyName"}}

type ClientService struct {
	clients *repositories.ClientRepository
}

func NewClientService(clients *repositories.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) List(ctx context.Context, p *auth.Principal, page, perPage int) ([]models.Client, orm.Pagination, error) {
	return s.clients.List(ctx, p, page, perPage)
}

// Find returns a client visible to p, with its users.
func (s *ClientService) Find(ctx context.Context, p *auth.Principal, id uint) (*models.Client, error) {
	c, err := s.clients.Find(ctx, p, id)
	return c, notFound(err)
}

func (s *ClientService) Create(ctx context.Context, in requests.CreateClient) (*models.Client, error) {
	c := &models.Client{
		CompanyName: in.CompanyName,
		Address:     in.Address,
		SiretNumber: in.SiretNumber,
		PhoneNumber: in.PhoneNumber,
	}
	if err := s.checkIdentity(ctx, c); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, uniqueViolation(err, clientIdentityColumns)
	}
	logger.WithCtx(ctx).Info("client created", zap.Uint("client_id", c.ID))
	return c, nil
}

// Update patches a client visible to p.
func (s *ClientService) Update(ctx context.Context, p *auth.Principal, id uint, in requests.UpdateClient) (*models.Client, error) {
	c, err := s.Find(ctx, p, id)
	if err != nil {
		return nil, err
	}

	setIf(&c.CompanyName, in.CompanyName)
	setIf(&c.Address, in.Address)
	setIf(&c.SiretNumber, in.SiretNumber)
	setOptional(&c.PhoneNumber, in.PhoneNumber)

	if in.CompanyName != nil || in.Address != nil {
		if err := s.checkIdentity(ctx, c); err != nil {
			return nil, err
		}
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, uniqueViolation(err, clientIdentityColumns)
	}
	return c, nil
}

// Delete removes a client visible to p; its users stay, unlinked.
func (s *ClientService) Delete(ctx context.Context, p *auth.Principal, id uint) error {
	if _, err := s.Find(ctx, p, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	event.FireAsync(ctx, events.ClientDeleted, id)
	return nil
}

func (s *ClientService) checkIdentity(ctx context.Context, c *models.Client) error {
	taken, err := s.clients.IdentityTaken(ctx, c.CompanyName, c.Address, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return fieldError("companyName", "A client with this company name already exists at this address.")
	}
	return nil
}
