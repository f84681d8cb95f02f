package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/servilink/marketplace-api/internal/core/domain"
	"github.com/servilink/marketplace-api/internal/core/ports"
)

// DirectoryService serves the public, unauthenticated listings.
type DirectoryService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewDirectoryService(repo ports.UserRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, log: log}
}

func (s *DirectoryService) ListClients(ctx context.Context) ([]ports.PublicProfile, error) {
	return s.list(ctx, domain.RoleClient, "")
}

func (s *DirectoryService) ListTechnicians(ctx context.Context) ([]ports.PublicProfile, error) {
	return s.list(ctx, domain.RoleTechnician, "")
}

// SearchTechnicians filters technicians by a case-insensitive substring of
// their name. An empty query returns all technicians; a query matching
// nothing returns an empty list, not an error.
func (s *DirectoryService) SearchTechnicians(ctx context.Context, nameQuery string) ([]ports.PublicProfile, error) {
	return s.list(ctx, domain.RoleTechnician, nameQuery)
}

func (s *DirectoryService) list(ctx context.Context, role, nameQuery string) ([]ports.PublicProfile, error) {
	users, err := s.repo.FindByRole(ctx, role, nameQuery)
	if err != nil {
		s.log.Error().Err(err).Str("role", role).Msg("failed to list users")
		return nil, err
	}

	profiles := make([]ports.PublicProfile, 0, len(users))
	for _, u := range users {
		profession := u.Profession
		if profession == nil {
			profession = domain.ProfessionList{}
		}
		profiles = append(profiles, ports.PublicProfile{
			Name:       u.Name,
			Email:      u.Email,
			Phone:      u.Phone,
			Profession: profession,
		})
	}
	return profiles, nil
}
