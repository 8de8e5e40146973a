package mysql

import (
	"context"
	"errors"
	"log"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type addressRepo struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepo{db: db}
}

func (r *addressRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.Address, error) {
	var out []domain.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("address FindByUser error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *addressRepo) Create(ctx context.Context, addr *domain.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Address{}).Where("user_id = ?", addr.UserID).Count(&count).Error; err != nil {
			return err
		}
		// First address is always the default, whatever the caller sent.
		if count == 0 {
			addr.IsDefault = true
		}
		if addr.IsDefault {
			if err := clearDefault(tx, addr.UserID, 0); err != nil {
				return err
			}
		}
		if err := tx.Create(addr).Error; err != nil {
			log.Printf("address insert error: %v", err)
			return err
		}
		return nil
	})
}

func (r *addressRepo) Update(ctx context.Context, addr *domain.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedAddress(tx, addr.UserID, addr.ID, nil); err != nil {
			return err
		}
		if addr.IsDefault {
			if err := clearDefault(tx, addr.UserID, addr.ID); err != nil {
				return err
			}
		}
		err := tx.Model(&domain.Address{}).
			Where("id = ? AND user_id = ?", addr.ID, addr.UserID).
			Updates(map[string]any{
				"label":      addr.Label,
				"name":       addr.Name,
				"phone":      addr.Phone,
				"address":    addr.AddressLine,
				"city":       addr.City,
				"pincode":    addr.Pincode,
				"is_default": addr.IsDefault,
			}).Error
		if err != nil {
			log.Printf("address update error: %v", err)
		}
		return err
	})
}

// SetDefault clears every other default for the user and sets the target, as
// one transaction: readers never observe two defaults or zero defaults.
func (r *addressRepo) SetDefault(ctx context.Context, userID, addressID uint64) (*domain.Address, error) {
	var out domain.Address
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedAddress(tx, userID, addressID, nil); err != nil {
			return err
		}
		if err := clearDefault(tx, userID, addressID); err != nil {
			return err
		}
		if err := tx.Model(&domain.Address{}).Where("id = ?", addressID).Update("is_default", true).Error; err != nil {
			return err
		}
		return tx.First(&out, addressID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *addressRepo) Delete(ctx context.Context, userID, addressID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var victim domain.Address
		if err := ownedAddress(tx, userID, addressID, &victim); err != nil {
			return err
		}
		if err := tx.Delete(&domain.Address{}, addressID).Error; err != nil {
			log.Printf("address delete error: %v", err)
			return err
		}
		if !victim.IsDefault {
			return nil
		}
		// Deleting the default promotes the newest remaining address so a
		// user with addresses is never left without a default.
		var next domain.Address
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Order("created_at DESC, id DESC").
			First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&domain.Address{}).Where("id = ?", next.ID).Update("is_default", true).Error
	})
}

// ownedAddress verifies the address exists and belongs to userID, locking the
// row for the rest of the transaction. A foreign address reports NotFound, not
// Forbidden, so existence is not leaked.
func ownedAddress(tx *gorm.DB, userID, addressID uint64, dst *domain.Address) error {
	if dst == nil {
		dst = &domain.Address{}
	}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "address not found")
	}
	return err
}

func clearDefault(tx *gorm.DB, userID, keepID uint64) error {
	q := tx.Model(&domain.Address{}).Where("user_id = ? AND is_default = ?", userID, true)
	if keepID != 0 {
		q = q.Where("id <> ?", keepID)
	}
	return q.Update("is_default", false).Error
}
