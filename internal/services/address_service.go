package services

import (
	"context"
	"regexp"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
)

var (
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	pincodeRe = regexp.MustCompile(`^\d{6}$`)
)

type AddressService struct {
	repo repository.AddressRepository
}

func NewAddressService(r repository.AddressRepository) *AddressService {
	return &AddressService{repo: r}
}

func (s *AddressService) ListAddresses(ctx context.Context, userID uint64) ([]domain.Address, error) {
	addrs, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, asAppErr(err, "failed to fetch addresses")
	}
	return addrs, nil
}

func (s *AddressService) CreateAddress(ctx context.Context, userID uint64, addr domain.Address) (*domain.Address, error) {
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	addr.ID = 0
	addr.UserID = userID
	if addr.Label == "" {
		addr.Label = "Home"
	}
	if err := s.repo.Create(ctx, &addr); err != nil {
		return nil, asAppErr(err, "failed to save address")
	}
	return &addr, nil
}

func (s *AddressService) UpdateAddress(ctx context.Context, userID, addressID uint64, addr domain.Address) (*domain.Address, error) {
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	addr.ID = addressID
	addr.UserID = userID
	if addr.Label == "" {
		addr.Label = "Home"
	}
	if err := s.repo.Update(ctx, &addr); err != nil {
		return nil, asAppErr(err, "failed to update address")
	}
	return &addr, nil
}

func (s *AddressService) SetDefaultAddress(ctx context.Context, userID, addressID uint64) (*domain.Address, error) {
	addr, err := s.repo.SetDefault(ctx, userID, addressID)
	if err != nil {
		return nil, asAppErr(err, "failed to set default address")
	}
	return addr, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, userID, addressID uint64) error {
	if err := s.repo.Delete(ctx, userID, addressID); err != nil {
		return asAppErr(err, "failed to delete address")
	}
	return nil
}

func validateAddress(addr domain.Address) error {
	if addr.Name == "" || addr.Phone == "" || addr.AddressLine == "" || addr.City == "" || addr.Pincode == "" {
		return apperr.New(apperr.ValidationError, "all fields are required")
	}
	if !phoneRe.MatchString(addr.Phone) {
		return apperr.New(apperr.ValidationError, "phone must be exactly 10 digits")
	}
	if !pincodeRe.MatchString(addr.Pincode) {
		return apperr.New(apperr.ValidationError, "pincode must be exactly 6 digits")
	}
	return nil
}
