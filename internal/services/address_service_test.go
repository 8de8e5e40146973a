package services

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddressService_CreateAddress(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*domain.Address)
		setupMocks   func(*mocks.MockAddressRepository)
		expectedKind apperr.Kind
	}{
		{
			name: "successful create",
			setupMocks: func(mockRepo *mocks.MockAddressRepository) {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Address")).
					Return(nil).
					Run(func(args mock.Arguments) {
						addr := args.Get(1).(*domain.Address)
						addr.ID = 1
					})
			},
		},
		{
			name:         "missing name",
			mutate:       func(a *domain.Address) { a.Name = "" },
			expectedKind: apperr.ValidationError,
		},
		{
			name:         "phone too short",
			mutate:       func(a *domain.Address) { a.Phone = "987654321" },
			expectedKind: apperr.ValidationError,
		},
		{
			name:         "phone with letters",
			mutate:       func(a *domain.Address) { a.Phone = "987654321x" },
			expectedKind: apperr.ValidationError,
		},
		{
			name:         "pincode too long",
			mutate:       func(a *domain.Address) { a.Pincode = "8000011" },
			expectedKind: apperr.ValidationError,
		},
		{
			name: "storage failure",
			setupMocks: func(mockRepo *mocks.MockAddressRepository) {
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error"))
			},
			expectedKind: apperr.ServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockAddressRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			service := NewAddressService(mockRepo)

			addr := validAddress()
			if tt.mutate != nil {
				tt.mutate(&addr)
			}

			result, err := service.CreateAddress(context.Background(), 42, addr)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, result)
				if tt.setupMocks == nil {
					mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, uint64(42), result.UserID)
				assert.Equal(t, uint64(1), result.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAddressService_CreateAddress_DefaultsLabel(t *testing.T) {
	mockRepo := new(mocks.MockAddressRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewAddressService(mockRepo)

	addr := validAddress()
	addr.Label = ""

	result, err := service.CreateAddress(context.Background(), 42, addr)

	assert.NoError(t, err)
	assert.Equal(t, "Home", result.Label)
	mockRepo.AssertExpectations(t)
}

func TestAddressService_SetDefaultAddress(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockAddressRepository)
		expectedKind apperr.Kind
	}{
		{
			name: "successful swap",
			setupMocks: func(mockRepo *mocks.MockAddressRepository) {
				mockRepo.On("SetDefault", mock.Anything, uint64(42), uint64(7)).
					Return(&domain.Address{ID: 7, UserID: 42, IsDefault: true}, nil)
			},
		},
		{
			name: "foreign address reports not found",
			setupMocks: func(mockRepo *mocks.MockAddressRepository) {
				mockRepo.On("SetDefault", mock.Anything, uint64(42), uint64(7)).
					Return(nil, apperr.New(apperr.NotFound, "address not found"))
			},
			expectedKind: apperr.NotFound,
		},
		{
			name: "storage failure",
			setupMocks: func(mockRepo *mocks.MockAddressRepository) {
				mockRepo.On("SetDefault", mock.Anything, uint64(42), uint64(7)).
					Return(nil, errors.New("database error"))
			},
			expectedKind: apperr.ServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockAddressRepository)
			tt.setupMocks(mockRepo)

			service := NewAddressService(mockRepo)
			result, err := service.SetDefaultAddress(context.Background(), 42, 7)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.True(t, result.IsDefault)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAddressService_UpdateAddress(t *testing.T) {
	mockRepo := new(mocks.MockAddressRepository)

	var captured *domain.Address
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Address")).
		Return(nil).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*domain.Address)
		})

	service := NewAddressService(mockRepo)

	addr := validAddress()
	addr.IsDefault = true

	result, err := service.UpdateAddress(context.Background(), 42, 7, addr)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, uint64(7), captured.ID)
	assert.Equal(t, uint64(42), captured.UserID)
	assert.True(t, captured.IsDefault)
	mockRepo.AssertExpectations(t)
}

func TestAddressService_UpdateAddress_RejectsInvalidPhone(t *testing.T) {
	mockRepo := new(mocks.MockAddressRepository)
	service := NewAddressService(mockRepo)

	addr := validAddress()
	addr.Phone = "12345"

	result, err := service.UpdateAddress(context.Background(), 42, 7, addr)

	assert.Error(t, err)
	assert.Equal(t, apperr.ValidationError, apperr.KindOf(err))
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddressService_DeleteAddress(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockAddressRepository)
		expectedKind apperr.Kind
	}{
		{
			name: "successful delete",
			setupMocks: func(mockRepo *mocks.MockAddressRepository) {
				mockRepo.On("Delete", mock.Anything, uint64(42), uint64(7)).Return(nil)
			},
		},
		{
			name: "not owned",
			setupMocks: func(mockRepo *mocks.MockAddressRepository) {
				mockRepo.On("Delete", mock.Anything, uint64(42), uint64(7)).
					Return(apperr.New(apperr.NotFound, "address not found"))
			},
			expectedKind: apperr.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockAddressRepository)
			tt.setupMocks(mockRepo)

			service := NewAddressService(mockRepo)
			err := service.DeleteAddress(context.Background(), 42, 7)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
