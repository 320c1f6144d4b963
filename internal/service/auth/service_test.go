package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	userRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/user"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const secret = "test-secret"

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newService(repo *MockUserRepository, tp TimeProvider) *Service {
	return NewService(repo, secret, 12*time.Hour, tp, nopLogger{})
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "admin@barbearia.com").Return(&domain.User{
		ID:           1,
		Email:        "admin@barbearia.com",
		PasswordHash: hashOf(t, "segredo123"),
		DisplayName:  "João",
	}, nil)

	svc := newService(repo, &fixedTimeProvider{now: now})
	resp, err := svc.Login(context.Background(), "  Admin@Barbearia.com ", "segredo123")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "João", resp.DisplayName)
	assert.Equal(t, now.Add(12*time.Hour).Format(time.RFC3339), resp.ExpiresAt)

	// Выданный токен должен проходить проверку
	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin@barbearia.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "admin@barbearia.com").Return(&domain.User{
		ID:           1,
		Email:        "admin@barbearia.com",
		PasswordHash: hashOf(t, "segredo123"),
	}, nil)

	svc := newService(repo, &fixedTimeProvider{now: now})
	_, err := svc.Login(context.Background(), "admin@barbearia.com", "errado")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "ghost@barbearia.com").Return(nil, userRepo.ErrUserNotFound)

	svc := newService(repo, &fixedTimeProvider{now: now})
	_, err := svc.Login(context.Background(), "ghost@barbearia.com", "qualquer")

	// Неизвестный email неотличим от неверного пароля
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_Expired(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "admin@barbearia.com").Return(&domain.User{
		ID:           1,
		Email:        "admin@barbearia.com",
		PasswordHash: hashOf(t, "segredo123"),
	}, nil)

	tp := &fixedTimeProvider{now: now}
	svc := newService(repo, tp)
	resp, err := svc.Login(context.Background(), "admin@barbearia.com", "segredo123")
	require.NoError(t, err)

	tp.now = now.Add(13 * time.Hour)
	_, err = svc.VerifyToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "admin@barbearia.com").Return(&domain.User{
		ID:           1,
		Email:        "admin@barbearia.com",
		PasswordHash: hashOf(t, "segredo123"),
	}, nil)

	tp := &fixedTimeProvider{now: now}
	resp, err := newService(repo, tp).Login(context.Background(), "admin@barbearia.com", "segredo123")
	require.NoError(t, err)

	other := NewService(repo, "another-secret", 12*time.Hour, tp, nopLogger{})
	_, err = other.VerifyToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newService(new(MockUserRepository), &fixedTimeProvider{now: now})

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEnsureAdmin_CreatesWhenMissing(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "admin@barbearia.com").Return(nil, userRepo.ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		if u.Email != "admin@barbearia.com" || u.DisplayName != "João" {
			return false
		}
		// Пароль хранится только в виде bcrypt-хеша
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo123")) == nil
	})).Return(&domain.User{ID: 1, Email: "admin@barbearia.com"}, nil)

	svc := newService(repo, &fixedTimeProvider{now: now})
	err := svc.EnsureAdmin(context.Background(), "  Admin@Barbearia.com ", "segredo123", "João")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEnsureAdmin_ExistingUserUntouched(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "admin@barbearia.com").Return(&domain.User{
		ID:           1,
		Email:        "admin@barbearia.com",
		PasswordHash: hashOf(t, "senha-antiga"),
	}, nil)

	svc := newService(repo, &fixedTimeProvider{now: now})
	err := svc.EnsureAdmin(context.Background(), "admin@barbearia.com", "senha-nova", "João")

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnsureAdmin_MissingCredentials(t *testing.T) {
	svc := newService(new(MockUserRepository), &fixedTimeProvider{now: now})

	err := svc.EnsureAdmin(context.Background(), "admin@barbearia.com", "", "João")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.EnsureAdmin(context.Background(), "   ", "segredo123", "João")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
