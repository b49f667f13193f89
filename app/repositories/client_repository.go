package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/orm"
)

// ClientRepository handles database operations for Client.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) scoped(ctx context.Context, p *auth.Principal) *orm.Query {
	return orm.Use(r.db).WithContext(ctx).Model(&models.Client{}).Scopes(LinkedClient(p, ResourceClient))
}

// List returns one page of the clients visible to p.
func (r *ClientRepository) List(ctx context.Context, p *auth.Principal, page, perPage int) ([]models.Client, orm.Pagination, error) {
	var clients []models.Client
	pagination, err := r.scoped(ctx, p).Order("id").GetWithPagination(&clients, page, perPage)
	return clients, pagination, err
}

// Find loads a client visible to p together with its users.
// Returns gorm.ErrRecordNotFound when it does not exist or is filtered out.
func (r *ClientRepository) Find(ctx context.Context, p *auth.Principal, id uint) (*models.Client, error) {
	var client models.Client
	err := r.scoped(ctx, p).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).
		Preload("Users").
		First(&client)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Exists reports whether a client with id exists, ignoring tenancy.
func (r *ClientRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return taken(ctx, r.db, &models.Client{}, "id", id, 0)
}

// IdentityTaken reports whether another client already uses the
// (companyName, address) pair.
func (r *ClientRepository) IdentityTaken(ctx context.Context, companyName, address string, exceptID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Client{}).
		Where(&models.Client{CompanyName: companyName, Address: address})
	if exceptID != 0 {
		q = q.Where(clause.Neq{Column: clause.PrimaryColumn, Value: exceptID})
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

// Delete detaches the client's users, then removes the client, in one
// transaction.
func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where(clause.Eq{Column: clause.Column{Name: "client_id"}, Value: id}).
			Update("client_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Client{}, id).Error
	})
}
