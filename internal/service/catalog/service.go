package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	catalogRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/catalog"
	"github.com/barbearia-jao/agenda-service/internal/service/catalog/models"
	"github.com/barbearia-jao/agenda-service/pkg/cache"
)

const cacheKeyActive = "catalog:active"

// Service сервис каталога услуг. Каталог меняется редко, поэтому список
// активных услуг живет в кеше до TTL.
type Service struct {
	serviceRepo ServiceRepository
	cache       Cache
	cacheTTL    time.Duration
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, c Cache, cacheTTL time.Duration, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		cache:       c,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// ListActive получает активные услуги каталога
func (s *Service) ListActive(ctx context.Context) (*models.ServiceListResponse, error) {
	var cached models.ServiceListResponse
	if err := s.cache.Get(ctx, cacheKeyActive, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("ListActive: cache read failed: %v", err)
	}

	services, err := s.serviceRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainServiceList(services)
	if err := s.cache.Set(ctx, cacheKeyActive, resp, s.cacheTTL); err != nil {
		s.logger.Warn("ListActive: cache write failed: %v", err)
	}

	return resp, nil
}

// GetByID получает услугу по ID (без кеша, используется при создании записи)
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return svc, nil
}
