package ports

import (
	"context"

	"github.com/inkwell/storefront/internal/core/domain"
)

// RegisterInput holds the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	VerifyEmail(ctx context.Context, token string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// SessionService issues and reads session tokens.
type SessionService interface {
	CreateSession(ctx context.Context, user *domain.User) (string, error)
	// GetSession returns nil for any missing, invalid or expired token.
	GetSession(ctx context.Context, token string) *domain.SessionPayload
	DeleteSession(ctx context.Context, userID string)
}
