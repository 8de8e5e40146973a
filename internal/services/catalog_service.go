package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

const productCacheTTL = time.Minute

func productCacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

type CatalogService struct {
	repo        repository.ProductRepository
	redisClient *redis.Client
}

func NewCatalogService(r repository.ProductRepository) *CatalogService {
	return &CatalogService{repo: r}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CatalogService) ListProducts(ctx context.Context, f repository.ProductFilter) ([]domain.Product, int64, error) {
	products, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, asAppErr(err, "failed to fetch products")
	}
	return products, total, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, productCacheKey(id)).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asAppErr(err, "failed to fetch product")
	}
	if p == nil {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}

	s.cacheProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, asAppErr(err, "failed to fetch categories")
	}
	return categories, nil
}

// WarmupCache preloads the hot products concurrently. Individual misses are
// logged and skipped so one bad id does not abort the warmup.
func (s *CatalogService) WarmupCache(ctx context.Context, productIds []uint64) error {
	if s.redisClient == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range productIds {
		id := id
		g.Go(func() error {
			p, err := s.repo.FindByID(ctx, id)
			if err != nil {
				log.Printf("Failed to warm up cache for product %d: %v", id, err)
				return nil
			}
			if p != nil {
				s.cacheProduct(ctx, p)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *CatalogService) cacheProduct(ctx context.Context, p *domain.Product) {
	if s.redisClient == nil {
		return
	}
	if data, err := json.Marshal(p); err == nil {
		s.redisClient.Set(ctx, productCacheKey(p.ID), data, productCacheTTL)
	}
}
