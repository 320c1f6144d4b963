package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	userRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/user"
)

// Claims полезная нагрузка JWT токена
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// LoginResponse результат успешной аутентификации
type LoginResponse struct {
	Token       string `json:"token"`
	ExpiresAt   string `json:"expiresAt"`
	DisplayName string `json:"displayName"`
}

// Service сервис аутентификации администраторов
type Service struct {
	userRepo     UserRepository
	secret       []byte
	tokenTTL     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, secret string, tokenTTL time.Duration, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		userRepo:     userRepo,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Login проверяет email/пароль и выдает JWT токен.
// Неверный email и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.logger.Info("Login: attempt for email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login: wrong password for email=%s", email)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: success for user id=%d", user.ID)
	return &LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
		DisplayName: user.DisplayName,
	}, nil
}

// EnsureAdmin создает учетную запись администратора при первом запуске.
// Существующая запись с тем же email не трогается, пароль не перезаписывается.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, displayName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("%w: admin email and password are required", ErrInvalidInput)
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("EnsureAdmin: admin %s already exists", email)
		return nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Error("EnsureAdmin: repository error for email=%s: %v", email, err)
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	})
	if err != nil {
		s.logger.Error("EnsureAdmin: failed to create admin %s: %v", email, err)
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureAdmin: created admin user id=%d", user.ID)
	return nil
}

// VerifyToken проверяет подпись и срок действия токена
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.timeProvider.Now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
