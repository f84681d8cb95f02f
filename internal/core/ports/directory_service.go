package ports

import (
	"context"

	"github.com/servilink/marketplace-api/internal/core/domain"
)

// PublicProfile is the safe projection of a user exposed by the unauthenticated
// listing endpoints. It never carries credentials.
type PublicProfile struct {
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	Phone      string                `json:"phone"`
	Profession domain.ProfessionList `json:"profession"`
}

type DirectoryService interface {
	ListClients(ctx context.Context) ([]PublicProfile, error)
	ListTechnicians(ctx context.Context) ([]PublicProfile, error)
	SearchTechnicians(ctx context.Context, nameQuery string) ([]PublicProfile, error)
}
