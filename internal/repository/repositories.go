package repository

import (
	"context"

	"storefront-service/internal/domain"
)

// ProductFilter narrows catalog listings. Page is 1-based.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]domain.Product, int64, error)
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type OrderRepository interface {
	// PlaceOrder runs the whole placement transaction: lock and preflight
	// every referenced product, decrement stock, insert the order header and
	// its items, commit. On a stock failure it returns an
	// *apperr.Error with kind StockUnavailable and nothing is written.
	PlaceOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error)
	FindByRef(ctx context.Context, orderRef string, userID uint64) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus, adminNotes string) (*domain.Order, error)
}

type AddressRepository interface {
	FindByUser(ctx context.Context, userID uint64) ([]domain.Address, error)
	// Create inserts the address. When the user has no addresses yet, or when
	// addr.IsDefault is set, it clears any other default in the same
	// transaction so the single-default invariant holds on every path.
	Create(ctx context.Context, addr *domain.Address) error
	Update(ctx context.Context, addr *domain.Address) error
	SetDefault(ctx context.Context, userID, addressID uint64) (*domain.Address, error)
	// Delete removes the address and, when it was the default, promotes the
	// most recently created remaining address in the same transaction.
	Delete(ctx context.Context, userID, addressID uint64) error
}

type OnDemandRepository interface {
	Create(ctx context.Context, req *domain.OnDemandRequest) error
	FindByUser(ctx context.Context, userID uint64) ([]domain.OnDemandRequest, error)
	FindAll(ctx context.Context) ([]domain.OnDemandRequest, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.RequestStatus, adminNotes string) (*domain.OnDemandRequest, error)
}
