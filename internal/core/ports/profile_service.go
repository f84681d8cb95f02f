package ports

import (
	"context"

	"github.com/servilink/marketplace-api/internal/core/domain"
)

type ProfileService interface {
	GetTechnician(ctx context.Context, id string) (*domain.User, error)
	UpdateTechnician(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
}
