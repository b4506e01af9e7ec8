package ports

import (
	"context"

	"github.com/shopstack/ecommerce-api/internal/core/domain"
)

// RegisterInput is the validated registration payload. Role is deliberately
// absent: every self-registered account is a customer.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult pairs a sanitized user with a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// CurrentUser returns the fresh user record for an authenticated id.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
