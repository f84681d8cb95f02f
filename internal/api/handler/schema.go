package handler

import (
	"github.com/servilink/marketplace-api/internal/core/domain"
	"github.com/servilink/marketplace-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// registerRequest accepts profession as a string, a list, or nothing;
// ProfessionList normalizes it to a list at bind time.
type registerRequest struct {
	Name       string                `json:"name"       validate:"required"`
	Phone      string                `json:"phone"      validate:"required"`
	Email      string                `json:"email"      validate:"required,email"`
	Password   string                `json:"password"   validate:"required"`
	Role       string                `json:"role"       validate:"required"`
	Profession domain.ProfessionList `json:"profession"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateProfileRequest is a partial update: nil pointers mean the field was
// absent. A present-but-non-list profession binds to an empty list, which is
// the documented reset policy; an explicit null binds the pointer to nil and
// is treated as absent, like every other nullable field here.
type updateProfileRequest struct {
	Name       *string                `json:"name"`
	Phone      *string                `json:"phone"`
	Email      *string                `json:"email"  validate:"omitempty,email"`
	Profession *domain.ProfessionList `json:"profession"`
}

// --- Response types ---

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token string             `json:"token"`
	User  ports.TokenPayload `json:"user"`
}

type profileResponse struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Phone      string                `json:"phone"`
	Email      string                `json:"email"`
	Role       string                `json:"role"`
	Profession domain.ProfessionList `json:"profession"`
}

func toProfileResponse(u *domain.User) profileResponse {
	profession := u.Profession
	if profession == nil {
		profession = domain.ProfessionList{}
	}
	return profileResponse{
		ID:         u.ID,
		Name:       u.Name,
		Phone:      u.Phone,
		Email:      u.Email,
		Role:       u.Role,
		Profession: profession,
	}
}
