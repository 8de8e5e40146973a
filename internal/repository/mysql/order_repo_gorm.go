package mysql

import (
	"context"
	"errors"
	"log"
	"sort"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// reservation is the per-product quantity a placement must secure. Duplicate
// cart lines for the same product collapse into one reservation so the check
// and the decrement both see the combined quantity.
type reservation struct {
	productID uint64
	name      string
	quantity  int64
}

// aggregateReservations merges cart lines by product id and returns the
// result in ascending id order, which is also the lock order.
func aggregateReservations(items []domain.OrderItem) []reservation {
	index := make(map[uint64]int, len(items))
	out := make([]reservation, 0, len(items))
	for _, it := range items {
		if i, ok := index[it.ProductID]; ok {
			out[i].quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, reservation{
			productID: it.ProductID,
			name:      it.ProductName,
			quantity:  it.Quantity,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].productID < out[j].productID })
	return out
}

// PlaceOrder is the one transaction boundary for placement: the stock
// preflight, the decrements and the order/item inserts either all commit or
// all roll back. Product rows are locked FOR UPDATE so two concurrent
// placements against the same product serialize and stock can never go
// negative.
func (r *orderRepo) PlaceOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locking in ascending product id keeps concurrent placements with
		// overlapping carts from deadlocking each other.
		reservations := aggregateReservations(items)

		var issues []apperr.StockIssue
		for _, rv := range reservations {
			var p domain.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, rv.productID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				issues = append(issues, apperr.StockIssue{
					ProductID:   rv.productID,
					ProductName: rv.name,
					Requested:   rv.quantity,
					Missing:     true,
				})
				continue
			}
			if err != nil {
				return err
			}
			if p.Stock < rv.quantity {
				issues = append(issues, apperr.StockIssue{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   rv.quantity,
				})
			}
		}
		// All-or-nothing: any failed line aborts before the first mutation.
		if len(issues) > 0 {
			return apperr.Stock(issues)
		}

		for _, rv := range reservations {
			// in_stock is assigned before stock: MySQL evaluates SET
			// left-to-right, so both expressions read the pre-decrement value.
			// The stock >= ? guard means a miss can only roll back, never
			// commit a negative stock.
			res := tx.Exec(
				"UPDATE products SET in_stock = (stock - ?) > 0, stock = stock - ? WHERE id = ? AND stock >= ?",
				rv.quantity, rv.quantity, rv.productID, rv.quantity,
			)
			if res.Error != nil {
				log.Printf("stock decrement error for product %d: %v", rv.productID, res.Error)
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.Stock([]apperr.StockIssue{
					{ProductID: rv.productID, ProductName: rv.name, Requested: rv.quantity},
				})
			}
		}

		if err := tx.Create(order).Error; err != nil {
			log.Printf("order insert error: %v", err)
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			log.Printf("order items insert error: %v", err)
			return err
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("order FindByUser error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindByRef(ctx context.Context, orderRef string, userID uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_ref = ? AND user_id = ?", orderRef, userID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByRef error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("order FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus, adminNotes string) (*domain.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "admin_notes": adminNotes})
	if res.Error != nil {
		log.Printf("order UpdateStatus error: %v", res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
