package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/servilink/marketplace-api/internal/core/domain"
	"github.com/servilink/marketplace-api/internal/core/ports"
)

// ProfileService implements the technician profile read/update operations.
type ProfileService struct {
	repo  ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewProfileService(repo ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, audit: audit, log: log}
}

// GetTechnician returns the technician identified by the authenticated id.
// Order matters: a missing account is NotFound even when the token claims a
// non-technician role.
func (s *ProfileService) GetTechnician(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleTechnician {
		return nil, domain.ErrForbidden
	}
	if user.Profession == nil {
		user.Profession = domain.ProfessionList{}
	}
	return user, nil
}

// UpdateTechnician persists the provided fields of a partial update. An email
// change is re-checked against the rest of the collection; the unique index
// remains the authority if two updates race.
func (s *ProfileService) UpdateTechnician(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleTechnician {
		return nil, domain.ErrForbidden
	}

	if update.Email != nil && *update.Email != user.Email {
		existing, err := s.repo.FindByEmail(ctx, *update.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			s.recordUpdate(user.Email, "email_taken")
			return nil, domain.ErrEmailTaken
		}
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.recordUpdate(user.Email, "email_taken")
		}
		return nil, err
	}
	if updated.Profession == nil {
		updated.Profession = domain.ProfessionList{}
	}

	s.recordUpdate(updated.Email, "ok")
	s.log.Info().Str("user_id", id).Msg("technician profile updated")
	return updated, nil
}

func (s *ProfileService) recordUpdate(email, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{Action: domain.ActionProfileUpdate, Email: email, Outcome: outcome})
}
