package login

import (
	"context"

	"github.com/barbearia-jao/agenda-service/internal/service/auth"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
