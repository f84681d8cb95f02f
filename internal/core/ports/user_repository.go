package ports

import (
	"context"

	"github.com/servilink/marketplace-api/internal/core/domain"
)

// UserUpdate carries the fields of a partial profile update. Nil pointers
// mean "leave unchanged".
type UserUpdate struct {
	Name       *string
	Phone      *string
	Email      *string
	Profession *domain.ProfessionList
}

// UserRepository defines the persistence interface for user accounts.
// Email uniqueness is enforced by the store; Create and Update return
// domain.ErrEmailTaken on a duplicate-key conflict.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	FindByRole(ctx context.Context, role, nameQuery string) ([]domain.User, error)
}
