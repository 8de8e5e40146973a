package services

import (
	"context"
	"log"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"
)

type OnDemandService struct {
	repo      repository.OnDemandRepository
	publisher rabbit.PublisherInterface
}

func NewOnDemandService(r repository.OnDemandRepository, pub rabbit.PublisherInterface) *OnDemandService {
	return &OnDemandService{repo: r, publisher: pub}
}

func (s *OnDemandService) CreateRequest(ctx context.Context, userID uint64, req domain.OnDemandRequest) (*domain.OnDemandRequest, error) {
	if req.ProductName == "" || req.MobileNumber == "" || req.Address == "" || req.PaymentPreference == "" {
		return nil, apperr.New(apperr.ValidationError,
			"product name, mobile number, address, and payment preference are required")
	}

	req.ID = 0
	req.UserID = userID
	req.Status = domain.RequestPending
	if err := s.repo.Create(ctx, &req); err != nil {
		return nil, asAppErr(err, "failed to submit request")
	}

	go s.publishCreatedEvent(context.Background(), &req)

	return &req, nil
}

func (s *OnDemandService) publishCreatedEvent(ctx context.Context, req *domain.OnDemandRequest) {
	evt := domain.OnDemandCreatedEvent{
		RequestID:   req.ID,
		UserID:      req.UserID,
		ProductName: req.ProductName,
		CreatedAt:   req.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "ondemand.created", evt); err != nil {
		log.Printf("Failed to publish ondemand.created event: %v", err)
	}
}

func (s *OnDemandService) ListUserRequests(ctx context.Context, userID uint64) ([]domain.OnDemandRequest, error) {
	reqs, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, asAppErr(err, "failed to fetch requests")
	}
	return reqs, nil
}

func (s *OnDemandService) AdminListRequests(ctx context.Context) ([]domain.OnDemandRequest, error) {
	reqs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, asAppErr(err, "failed to fetch requests")
	}
	return reqs, nil
}

func (s *OnDemandService) AdminUpdateStatus(ctx context.Context, id uint64, status domain.RequestStatus, adminNotes string) (*domain.OnDemandRequest, error) {
	if !status.Valid() {
		return nil, apperr.Newf(apperr.ValidationError, "unknown request status %q", status)
	}
	req, err := s.repo.UpdateStatus(ctx, id, status, adminNotes)
	if err != nil {
		return nil, asAppErr(err, "failed to update request")
	}
	if req == nil {
		return nil, apperr.New(apperr.NotFound, "request not found")
	}
	return req, nil
}
