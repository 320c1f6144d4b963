package syslogs

import (
	"context"
	"fmt"

	"github.com/barbearia-jao/agenda-service/internal/service/syslogs/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Service сервис журнала системных событий
type Service struct {
	systemLogRepo SystemLogRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(systemLogRepo SystemLogRepository, logger Logger) *Service {
	return &Service{
		systemLogRepo: systemLogRepo,
		logger:        logger,
	}
}

// List возвращает последние записи журнала, новые первыми.
// limit <= 0 заменяется значением по умолчанию, сверху ограничен maxLimit.
func (s *Service) List(ctx context.Context, limit int) (*models.SystemLogListResponse, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	logs, err := s.systemLogRepo.List(ctx, uint64(limit))
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSystemLogList(logs), nil
}
