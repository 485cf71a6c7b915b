package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// serviceListCacheKey caches the default listing (active services, every
// category), which the session screen polls constantly. Filtered listings go
// straight to Postgres.
const (
	serviceListCacheKey = "cache:catalog:services"
	serviceListCacheTTL = 60 * time.Second
)

type CatalogService interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	List(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]dto.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo       repository.CatalogRepository
	categories repository.CategoryRepository
	rdb        *redis.Client
}

func NewCatalogService(repo repository.CatalogRepository, categories repository.CategoryRepository, rdb *redis.Client) CatalogService {
	return &catalogService{repo: repo, categories: categories, rdb: rdb}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	svc := &model.CatalogService{
		Name:        req.Name,
		PricingMode: req.PricingMode,
		UnitPrice:   req.UnitPrice,
		Active:      true,
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Invalid("invalid category_id")
		}
		if _, err := s.categories.FindByID(ctx, catID); err != nil {
			return nil, apierror.NotFound("category not found")
		}
		svc.CategoryID = &catID
	}
	if req.UnitPrice.IsNegative() {
		return nil, apierror.Invalid("unit_price must not be negative")
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, apierror.Internal(err)
	}
	s.invalidateCache(ctx)
	resp := mapCatalogService(svc)
	return &resp, nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := s.findService(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapCatalogService(svc)
	return &resp, nil
}

func (s *catalogService) List(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]dto.ServiceResponse, error) {
	cacheable := categoryID == nil && !includeInactive

	if cacheable {
		if cached, err := s.rdb.Get(ctx, serviceListCacheKey).Result(); err == nil {
			var resp []dto.ServiceResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	services, err := s.repo.List(ctx, categoryID, includeInactive)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.ServiceResponse, len(services))
	for i := range services {
		resp[i] = mapCatalogService(&services[i])
	}

	if cacheable {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, serviceListCacheKey, data, serviceListCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("catalog: failed to cache service list")
			}
		}
	}
	return resp, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := s.findService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, apierror.Invalid("unit_price must not be negative")
		}
		svc.UnitPrice = *req.UnitPrice
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Invalid("invalid category_id")
		}
		if _, err := s.categories.FindByID(ctx, catID); err != nil {
			return nil, apierror.NotFound("category not found")
		}
		svc.CategoryID = &catID
		svc.Category = nil
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, apierror.Internal(err)
	}
	s.invalidateCache(ctx)
	resp := mapCatalogService(svc)
	return &resp, nil
}

// Deactivate hides the service from new attachments. Items already attached
// keep their snapshot of the name and price.
func (s *catalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findService(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *catalogService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *catalogService) invalidateCache(ctx context.Context) {
	if err := s.rdb.Del(ctx, serviceListCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("catalog: failed to invalidate service list cache")
	}
}

func (s *catalogService) findService(ctx context.Context, id uuid.UUID) (*model.CatalogService, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("service not found")
		}
		return nil, apierror.Internal(err)
	}
	return svc, nil
}

func mapCatalogService(svc *model.CatalogService) dto.ServiceResponse {
	resp := dto.ServiceResponse{
		ID:          svc.ID.String(),
		Name:        svc.Name,
		PricingMode: svc.PricingMode,
		UnitPrice:   svc.UnitPrice,
		Active:      svc.Active,
	}
	if svc.CategoryID != nil {
		id := svc.CategoryID.String()
		resp.CategoryID = &id
	}
	if svc.Category != nil {
		resp.Category = &svc.Category.Name
	}
	return resp
}
