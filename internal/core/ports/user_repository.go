package ports

import (
	"context"

	"github.com/shopstack/ecommerce-api/internal/core/domain"
)

// UserRepository is the persistence boundary for user records. The store
// enforces case-insensitive email uniqueness (callers normalize to lower
// case before lookup/insert); a uniqueness violation at insert time surfaces
// as domain.ErrUserExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
