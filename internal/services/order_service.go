package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/go-redis/redis/v8"
)

// moneyEpsilon absorbs float rounding when checking the caller's totals.
const moneyEpsilon = 0.005

// PlaceOrderInput is the full cart handed over at checkout. The server trusts
// nothing outside this payload; totals are verified against the lines before
// any storage access.
type PlaceOrderInput struct {
	UserID        uint64
	Items         []domain.OrderItem
	Customer      domain.CustomerInfo
	PaymentMethod string
	Subtotal      float64
	DeliveryFee   float64
	TotalAmount   float64
}

type OrderService struct {
	repo        repository.OrderRepository
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
	}
}

func (u *OrderService) SetRedisClient(client *redis.Client) {
	u.redisClient = client
}

// PlaceOrder converts a validated cart into a durable order plus stock
// decrements. Validation failures never touch storage; the reservation and
// the ledger writes share one transaction in the repository, so a failure at
// any point leaves stock and order tables untouched.
func (u *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if err := validatePlacement(in); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(in.Items))
	for i, it := range in.Items {
		it.Total = round2(it.ProductPrice * float64(it.Quantity))
		items[i] = it
	}

	order := &domain.Order{
		OrderRef:      newOrderRef(),
		UserID:        in.UserID,
		Customer:      in.Customer,
		PaymentMethod: in.PaymentMethod,
		Subtotal:      in.Subtotal,
		DeliveryFee:   in.DeliveryFee,
		TotalAmount:   in.TotalAmount,
		Status:        domain.StatusConfirmed,
	}

	if err := u.repo.PlaceOrder(ctx, order, items); err != nil {
		return nil, asAppErr(err, "failed to place order")
	}

	// Stock changed, so cached product snapshots are stale.
	u.invalidateProducts(ctx, items)

	go u.publishOrderPlacedEvent(context.Background(), order)

	return order, nil
}

func validatePlacement(in PlaceOrderInput) error {
	if len(in.Items) == 0 {
		return apperr.New(apperr.ValidationError, "cart is empty")
	}
	var subtotal float64
	for _, it := range in.Items {
		if it.ProductID == 0 {
			return apperr.New(apperr.ValidationError, "cart item is missing a product id")
		}
		if it.Quantity <= 0 {
			return apperr.Newf(apperr.ValidationError, "invalid quantity for product %d", it.ProductID)
		}
		if it.ProductPrice < 0 {
			return apperr.Newf(apperr.ValidationError, "invalid price for product %d", it.ProductID)
		}
		subtotal += it.ProductPrice * float64(it.Quantity)
	}

	c := in.Customer
	if c.Name == "" || c.Email == "" || c.Phone == "" || c.Address == "" || c.City == "" || c.Pincode == "" {
		return apperr.New(apperr.ValidationError, "customer info is incomplete")
	}
	if !phoneRe.MatchString(c.Phone) {
		return apperr.New(apperr.ValidationError, "phone must be exactly 10 digits")
	}
	if !pincodeRe.MatchString(c.Pincode) {
		return apperr.New(apperr.ValidationError, "pincode must be exactly 6 digits")
	}
	if in.PaymentMethod == "" {
		return apperr.New(apperr.ValidationError, "payment method is required")
	}

	if math.Abs(subtotal-in.Subtotal) > moneyEpsilon {
		return apperr.New(apperr.ValidationError, "subtotal does not match cart items")
	}
	if in.DeliveryFee < 0 {
		return apperr.New(apperr.ValidationError, "delivery fee cannot be negative")
	}
	if math.Abs(in.Subtotal+in.DeliveryFee-in.TotalAmount) > moneyEpsilon {
		return apperr.New(apperr.ValidationError, "total does not match subtotal plus delivery fee")
	}
	return nil
}

func (u *OrderService) invalidateProducts(ctx context.Context, items []domain.OrderItem) {
	if u.redisClient == nil {
		return
	}
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = productCacheKey(it.ProductID)
	}
	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate product cache: %v", err)
	}
}

func (u *OrderService) publishOrderPlacedEvent(ctx context.Context, order *domain.Order) {
	evt := domain.OrderPlacedEvent{
		OrderRef:    order.OrderRef,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}

	if err := u.publisher.Publish(ctx, "order.placed", evt); err != nil {
		log.Printf("Failed to publish order.placed event: %v", err)
	}
}

func (u *OrderService) GetUserOrders(ctx context.Context, userID uint64) ([]domain.Order, error) {
	orders, err := u.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, asAppErr(err, "failed to fetch orders")
	}
	return orders, nil
}

func (u *OrderService) GetOrder(ctx context.Context, orderRef string, userID uint64) (*domain.Order, error) {
	o, err := u.repo.FindByRef(ctx, orderRef, userID)
	if err != nil {
		return nil, asAppErr(err, "failed to fetch order")
	}
	if o == nil {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	return o, nil
}

func (u *OrderService) AdminListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, asAppErr(err, "failed to fetch orders")
	}
	return orders, nil
}

func (u *OrderService) AdminUpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus, adminNotes string) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperr.Newf(apperr.ValidationError, "unknown order status %q", status)
	}
	o, err := u.repo.UpdateStatus(ctx, id, status, adminNotes)
	if err != nil {
		return nil, asAppErr(err, "failed to update order")
	}
	if o == nil {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	return o, nil
}

// newOrderRef builds the externally visible order id: time-based with a
// random suffix, unique enough for a single store.
func newOrderRef() string {
	return fmt.Sprintf("ORD%d%d", time.Now().UnixMilli(), rand.Intn(1000))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// asAppErr passes taxonomy errors through untouched and downgrades everything
// else to an opaque ServerError.
func asAppErr(err error, msg string) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		return err
	}
	return apperr.Wrap(apperr.ServerError, msg, err)
}
