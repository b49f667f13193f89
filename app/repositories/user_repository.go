package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) scoped(ctx context.Context, p *auth.Principal) *orm.Query {
	return orm.Use(r.db).WithContext(ctx).Model(&models.User{}).
		Scopes(LinkedClient(p, ResourceUser)).
		Preload("Client")
}

// List returns one page of the users visible to p.
func (r *UserRepository) List(ctx context.Context, p *auth.Principal, page, perPage int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := r.scoped(ctx, p).Order("id").GetWithPagination(&users, page, perPage)
	return users, pagination, err
}

// Find looks up a user visible to p by primary key.
func (r *UserRepository) Find(ctx context.Context, p *auth.Principal, id uint) (*models.User, error) {
	var user models.User
	err := r.scoped(ctx, p).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).
		First(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail looks up a user by their email address, ignoring tenancy.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := orm.Use(r.db).WithContext(ctx).Model(&models.User{}).
		Where(&models.User{Email: email}).
		Preload("Client").
		First(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether a user other than exceptID uses email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return taken(ctx, r.db, &models.User{}, "email", email, exceptID)
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}
