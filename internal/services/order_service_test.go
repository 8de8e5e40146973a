package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderService_PlaceOrder(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*PlaceOrderInput)
		setupMocks   func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedKind apperr.Kind
		repoCalled   bool
	}{
		{
			name: "successful placement",
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*domain.Order"), mock.AnythingOfType("[]domain.OrderItem")).
					Return(nil).
					Run(func(args mock.Arguments) {
						order := args.Get(1).(*domain.Order)
						order.ID = 1
						order.Items = args.Get(2).([]domain.OrderItem)
					})
				mockPub.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil).Maybe()
			},
			repoCalled: true,
		},
		{
			name:         "empty cart",
			mutate:       func(in *PlaceOrderInput) { in.Items = nil },
			expectedKind: apperr.ValidationError,
		},
		{
			name: "zero quantity",
			mutate: func(in *PlaceOrderInput) {
				in.Items[0].Quantity = 0
			},
			expectedKind: apperr.ValidationError,
		},
		{
			name:         "missing customer phone",
			mutate:       func(in *PlaceOrderInput) { in.Customer.Phone = "" },
			expectedKind: apperr.ValidationError,
		},
		{
			name:         "malformed customer phone",
			mutate:       func(in *PlaceOrderInput) { in.Customer.Phone = "98765" },
			expectedKind: apperr.ValidationError,
		},
		{
			name:         "malformed pincode",
			mutate:       func(in *PlaceOrderInput) { in.Customer.Pincode = "80000" },
			expectedKind: apperr.ValidationError,
		},
		{
			name:         "missing payment method",
			mutate:       func(in *PlaceOrderInput) { in.PaymentMethod = "" },
			expectedKind: apperr.ValidationError,
		},
		{
			name:         "subtotal does not match items",
			mutate:       func(in *PlaceOrderInput) { in.Subtotal = 75 },
			expectedKind: apperr.ValidationError,
		},
		{
			name: "total does not match subtotal plus fee",
			mutate: func(in *PlaceOrderInput) {
				in.TotalAmount = 150
			},
			expectedKind: apperr.ValidationError,
		},
		{
			name: "stock unavailable",
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything).
					Return(apperr.Stock([]apperr.StockIssue{
						{ProductID: 7, ProductName: "Fresh Milk", Available: 1, Requested: 2},
					}))
			},
			expectedKind: apperr.StockUnavailable,
			repoCalled:   true,
		},
		{
			name: "storage failure",
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything).
					Return(errors.New("driver: bad connection"))
			},
			expectedKind: apperr.ServerError,
			repoCalled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPub := new(mocks.MockPublisher)
			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo, mockPub)
			}

			service := NewOrderService(mockRepo, mockPub)

			in := validPlacementInput(42)
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			result, err := service.PlaceOrder(context.Background(), in)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, result)
				mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.True(t, strings.HasPrefix(result.OrderRef, "ORD"))
				assert.Equal(t, uint64(42), result.UserID)
				assert.Equal(t, domain.StatusConfirmed, result.Status)
				assert.Equal(t, 100.0, result.TotalAmount)

				time.Sleep(100 * time.Millisecond)
			}

			if !tt.repoCalled {
				mockRepo.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
			}
			mockRepo.AssertExpectations(t)
			mockPub.AssertExpectations(t)
		})
	}
}

func TestOrderService_PlaceOrder_ComputesLineTotals(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	var captured []domain.OrderItem
	mockRepo.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*domain.Order)
			order.ID = 9
			captured = args.Get(2).([]domain.OrderItem)
		})
	mockPub.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil).Maybe()

	service := NewOrderService(mockRepo, mockPub)

	in := validPlacementInput(1)
	result, err := service.PlaceOrder(context.Background(), in)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Len(t, captured, 1)
	assert.Equal(t, 80.0, captured[0].Total)
	assert.Equal(t, result.Subtotal+result.DeliveryFee, result.TotalAmount)

	var sum float64
	for _, it := range captured {
		sum += it.Total
	}
	assert.Equal(t, result.Subtotal, sum)

	time.Sleep(100 * time.Millisecond)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_StockIssuesSurvive(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	mockRepo.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything).
		Return(apperr.Stock([]apperr.StockIssue{
			{ProductID: 7, ProductName: "Fresh Milk", Available: 3, Requested: 10},
			{ProductID: 12, ProductName: "Brown Bread", Requested: 1, Missing: true},
		}))

	service := NewOrderService(mockRepo, mockPub)

	in := validPlacementInput(1)
	in.Items = []domain.OrderItem{
		{ProductID: 7, ProductName: "Fresh Milk", ProductPrice: 40, Quantity: 10},
		{ProductID: 12, ProductName: "Brown Bread", ProductPrice: 30, Quantity: 1},
	}
	in.Subtotal = 430
	in.DeliveryFee = 20
	in.TotalAmount = 450

	result, err := service.PlaceOrder(context.Background(), in)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperr.StockUnavailable, apperr.KindOf(err))

	issues := apperr.IssuesOf(err)
	assert.Len(t, issues, 2)
	assert.Equal(t, int64(3), issues[0].Available)
	assert.Equal(t, int64(10), issues[0].Requested)
	assert.True(t, issues[1].Missing)

	mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_GetOrder(t *testing.T) {
	tests := []struct {
		name         string
		orderRef     string
		setupMocks   func(*mocks.MockOrderRepository)
		expectedKind apperr.Kind
	}{
		{
			name:     "successful retrieval",
			orderRef: "ORD17000000000001",
			setupMocks: func(mockRepo *mocks.MockOrderRepository) {
				mockRepo.On("FindByRef", mock.Anything, "ORD17000000000001", uint64(42)).Return(&domain.Order{
					ID:       1,
					OrderRef: "ORD17000000000001",
					UserID:   42,
					Status:   domain.StatusConfirmed,
				}, nil)
			},
		},
		{
			name:     "not found or foreign order",
			orderRef: "ORD999",
			setupMocks: func(mockRepo *mocks.MockOrderRepository) {
				mockRepo.On("FindByRef", mock.Anything, "ORD999", uint64(42)).Return(nil, nil)
			},
			expectedKind: apperr.NotFound,
		},
		{
			name:     "repository error",
			orderRef: "ORD1",
			setupMocks: func(mockRepo *mocks.MockOrderRepository) {
				mockRepo.On("FindByRef", mock.Anything, "ORD1", uint64(42)).Return(nil, errors.New("database connection error"))
			},
			expectedKind: apperr.ServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPub := new(mocks.MockPublisher)
			tt.setupMocks(mockRepo)

			service := NewOrderService(mockRepo, mockPub)
			result, err := service.GetOrder(context.Background(), tt.orderRef, 42)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, tt.orderRef, result.OrderRef)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetUserOrders(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	mockRepo.On("FindByUser", mock.Anything, uint64(42)).Return([]domain.Order{
		{ID: 2, OrderRef: "ORD2", UserID: 42},
		{ID: 1, OrderRef: "ORD1", UserID: 42},
	}, nil)

	service := NewOrderService(mockRepo, mockPub)
	orders, err := service.GetUserOrders(context.Background(), 42)

	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_AdminUpdateStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       domain.OrderStatus
		setupMocks   func(*mocks.MockOrderRepository)
		expectedKind apperr.Kind
	}{
		{
			name:   "valid transition",
			status: domain.StatusShipped,
			setupMocks: func(mockRepo *mocks.MockOrderRepository) {
				mockRepo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusShipped, "left the warehouse").
					Return(&domain.Order{ID: 1, Status: domain.StatusShipped}, nil)
			},
		},
		{
			name:         "unknown status rejected before storage",
			status:       domain.OrderStatus("teleported"),
			expectedKind: apperr.ValidationError,
		},
		{
			name:   "order not found",
			status: domain.StatusCancelled,
			setupMocks: func(mockRepo *mocks.MockOrderRepository) {
				mockRepo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusCancelled, "left the warehouse").
					Return(nil, nil)
			},
			expectedKind: apperr.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPub := new(mocks.MockPublisher)
			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			service := NewOrderService(mockRepo, mockPub)
			result, err := service.AdminUpdateStatus(context.Background(), 1, tt.status, "left the warehouse")

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.status, result.Status)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
