package mysql

import (
	"context"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type onDemandRepo struct {
	db *gorm.DB
}

func NewOnDemandRepository(db *gorm.DB) repository.OnDemandRepository {
	return &onDemandRepo{db: db}
}

func (r *onDemandRepo) Create(ctx context.Context, req *domain.OnDemandRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		log.Printf("on-demand insert error: %v", err)
		return err
	}
	return nil
}

func (r *onDemandRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.OnDemandRequest, error) {
	var out []domain.OnDemandRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("on-demand FindByUser error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *onDemandRepo) FindAll(ctx context.Context) ([]domain.OnDemandRequest, error) {
	var out []domain.OnDemandRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	if err != nil {
		log.Printf("on-demand FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *onDemandRepo) UpdateStatus(ctx context.Context, id uint64, status domain.RequestStatus, adminNotes string) (*domain.OnDemandRequest, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.OnDemandRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "admin_notes": adminNotes})
	if res.Error != nil {
		log.Printf("on-demand UpdateStatus error: %v", res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var req domain.OnDemandRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}
