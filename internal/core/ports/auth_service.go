package ports

import (
	"context"

	"github.com/servilink/marketplace-api/internal/core/domain"
)

// RegisterInput is the full field set accepted at registration. Profession is
// already normalized to a list by the transport layer.
type RegisterInput struct {
	Name       string
	Phone      string
	Email      string
	Password   string
	Role       string
	Profession domain.ProfessionList
}

// TokenPayload is the claim set carried by a bearer token and echoed back in
// clear on login.
type TokenPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *TokenPayload, error)
}
