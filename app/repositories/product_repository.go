package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/orm"
)

// ProductRepository handles database operations for Product. Products are
// shared by every client and carry no tenant filter.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, page, perPage int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	pagination, err := orm.Use(r.db).WithContext(ctx).Model(&models.Product{}).
		Order("id").
		GetWithPagination(&products, page, perPage)
	return products, pagination, err
}

func (r *ProductRepository) Find(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := orm.Use(r.db).WithContext(ctx).Model(&models.Product{}).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		First(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SlugTaken reports whether a product other than exceptID uses slug.
func (r *ProductRepository) SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error) {
	return taken(ctx, r.db, &models.Product{}, "slug", slug, exceptID)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}
