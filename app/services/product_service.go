package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bilemo/api/app/events"
	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/app/repositories"
	"github.com/bilemo/api/app/requests"
	"github.com/bilemo/api/config"
	"github.com/bilemo/api/pkg/cache"
	"github.com/bilemo/api/pkg/event"
	"github.com/bilemo/api/pkg/logger"
	"github.com/bilemo/api/pkg/orm"
	"github.com/bilemo/api/pkg/slug"
	"github.com/bilemo/api/pkg/storage"
)

var productSlugColumns = [][2]string{{"slug", "slug"}}

// ProductPage is one cached page of the catalogue.
type ProductPage struct {
	Items      []models.Product `json:"items"`
	Pagination orm.Pagination   `json:"pagination"`
}

type ProductService struct {
	products *repositories.ProductRepository
	disk     storage.Disk
}

// NewProductService builds the service; disk receives uploaded images and
// may be nil when uploads are not offered.
func NewProductService(products *repositories.ProductRepository, disk storage.Disk) *ProductService {
	return &ProductService{products: products, disk: disk}
}

// List returns a page of products, served from cache when Redis is enabled.
func (s *ProductService) List(ctx context.Context, page, perPage int) (ProductPage, error) {
	key := fmt.Sprintf("products:v%d:page:%d:%d", cache.Version(ctx, events.ProductsVersionKey), page, perPage)
	return orm.Remember(ctx, key, config.ProductCacheTTL(), func() (ProductPage, error) {
		items, pagination, err := s.products.List(ctx, page, perPage)
		return ProductPage{Items: items, Pagination: pagination}, err
	})
}

func (s *ProductService) Find(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.products.Find(ctx, id)
	return p, notFound(err)
}

func (s *ProductService) Create(ctx context.Context, in requests.CreateProduct) (*models.Product, error) {
	p := &models.Product{
		Name:            in.Name,
		Brand:           in.Brand,
		Price:           in.Price,
		Stock:           in.Stock,
		Description:     in.Description,
		ImageURL:        in.ImageURL,
		OperatingSystem: in.OperatingSystem,
		StorageCapacity: in.StorageCapacity,
		ScreenSize:      in.ScreenSize,
		PhotoResolution: in.PhotoResolution,
		Weight:          in.Weight,
	}
	if err := s.checkSlug(ctx, p.Name, 0); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, uniqueViolation(err, productSlugColumns)
	}

	event.Fire(ctx, events.ProductSaved, p.ID)
	logger.WithCtx(ctx).Info("product created", zap.Uint("product_id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, in requests.UpdateProduct) (*models.Product, error) {
	p, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	setIf(&p.Name, in.Name)
	setIf(&p.Brand, in.Brand)
	setIf(&p.Price, in.Price)
	setIf(&p.Stock, in.Stock)
	setIf(&p.Description, in.Description)
	setIf(&p.ImageURL, in.ImageURL)
	setIf(&p.OperatingSystem, in.OperatingSystem)
	setOptional(&p.StorageCapacity, in.StorageCapacity)
	setOptional(&p.ScreenSize, in.ScreenSize)
	setOptional(&p.PhotoResolution, in.PhotoResolution)
	setOptional(&p.Weight, in.Weight)

	if in.Name != nil {
		if err := s.checkSlug(ctx, p.Name, p.ID); err != nil {
			return nil, err
		}
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, uniqueViolation(err, productSlugColumns)
	}

	event.Fire(ctx, events.ProductSaved, p.ID)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Find(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	event.Fire(ctx, events.ProductDeleted, id)
	return nil
}

// imageExtensions lists the accepted upload types.
var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// UploadImage stores an image on the configured disk and points the
// product's imageUrl at it.
func (s *ProductService) UploadImage(ctx context.Context, id uint, filename string, r io.Reader) (*models.Product, error) {
	if s.disk == nil {
		return nil, fieldError("image", "Image uploads are not configured.")
	}
	ext := strings.ToLower(path.Ext(filename))
	if !imageExtensions[ext] {
		return nil, fieldError("image", "The image must be a jpg, png or webp file.")
	}

	p, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("products", fmt.Sprintf("%s-%s%s", p.Slug, uuid.NewString(), ext))
	if err := s.disk.Put(ctx, key, r); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	p.ImageURL = s.disk.URL(key)

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	event.Fire(ctx, events.ProductSaved, p.ID)
	logger.WithCtx(ctx).Info("product image stored", zap.Uint("product_id", p.ID), zap.String("key", key))
	return p, nil
}

func (s *ProductService) checkSlug(ctx context.Context, name string, exceptID uint) error {
	sl := slug.Make(name)
	if sl == "" {
		return fieldError("name", "The name field must contain at least one letter or digit.")
	}
	taken, err := s.products.SlugTaken(ctx, sl, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return alreadyUsed("slug")
	}
	return nil
}

// setIf copies *src into dst when the field was supplied.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setOptional replaces a nullable column when the field was supplied.
func setOptional[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
