package mysql

import (
	"context"
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})

	if f.Category != "" && f.Category != "all" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("product list count error: %v", err)
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	var out []domain.Product
	if err := q.Order("id").Limit(limit).Offset((page - 1) * limit).Find(&out).Error; err != nil {
		log.Printf("product list error: %v", err)
		return nil, 0, err
	}
	return out, total, nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		log.Printf("product categories error: %v", err)
		return nil, err
	}
	return categories, nil
}
