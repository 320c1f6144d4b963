package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	clientRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/client"
	"github.com/barbearia-jao/agenda-service/internal/service/clients/models"
	"github.com/barbearia-jao/agenda-service/pkg/cache"
	"github.com/barbearia-jao/agenda-service/pkg/phone"
)

const cacheKeyList = "clients:list"

// Service сервис справочника клиентов
type Service struct {
	clientRepo ClientRepository
	cache      Cache
	cacheTTL   time.Duration
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, c Cache, cacheTTL time.Duration, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		cache:      c,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// List получает всех клиентов. Список кешируется до первой мутации или TTL.
func (s *Service) List(ctx context.Context) (*models.ClientListResponse, error) {
	var cached models.ClientListResponse
	if err := s.cache.Get(ctx, cacheKeyList, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("List: cache read failed: %v", err)
	}

	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainClientList(clients)
	if err := s.cache.Set(ctx, cacheKeyList, resp, s.cacheTTL); err != nil {
		s.logger.Warn("List: cache write failed: %v", err)
	}

	return resp, nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClientResponse, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetByID: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainClient(c), nil
}

// FindOrCreate ищет клиента по каноническому номеру телефона и создает
// запись, когда её нет. Используется при создании агендамента: повторный
// клиент привязывается к своей карточке автоматически.
func (s *Service) FindOrCreate(ctx context.Context, name, rawPhone string) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if rawPhone == "" {
		c, err := s.clientRepo.Create(ctx, &domain.Client{Name: name})
		if err != nil {
			s.logger.Error("FindOrCreate: failed to create client %s: %v", name, err)
			return nil, fmt.Errorf("%w: FindOrCreate - repository error: %v", ErrInternal, err)
		}
		s.invalidate(ctx)
		return c, nil
	}

	normalized := phone.Normalize(rawPhone)

	existing, err := s.clientRepo.GetByPhone(ctx, normalized)
	if err == nil {
		s.logger.Info("FindOrCreate: matched existing client id=%d by phone", existing.ID)
		return existing, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Error("FindOrCreate: phone lookup failed: %v", err)
		return nil, fmt.Errorf("%w: FindOrCreate - repository error: %v", ErrInternal, err)
	}

	c, err := s.clientRepo.Create(ctx, &domain.Client{Name: name, Phone: normalized})
	if err != nil {
		s.logger.Error("FindOrCreate: failed to create client %s: %v", name, err)
		return nil, fmt.Errorf("%w: FindOrCreate - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	s.logger.Info("FindOrCreate: created client id=%d", c.ID)
	return c, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyList); err != nil {
		s.logger.Warn("invalidate: cache delete failed: %v", err)
	}
}
