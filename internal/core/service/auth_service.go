package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/servilink/marketplace-api/internal/api/metrics"
	"github.com/servilink/marketplace-api/internal/core/domain"
	"github.com/servilink/marketplace-api/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins per email. Implementations
// are expected to fail open: a limiter outage must not lock accounts out.
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

const minPasswordLength = 6

// AuthService implements registration, credential verification, and token
// issuance.
type AuthService struct {
	repo      ports.UserRepository
	limiter   LoginLimiter
	audit     ports.AuditSink
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	// now is swappable so tests can issue tokens in the past.
	now func() time.Time
}

func NewAuthService(repo ports.UserRepository, limiter LoginLimiter, audit ports.AuditSink, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		limiter:   limiter,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Register validates the input, hashes the password, and inserts the user.
// Email uniqueness is decided by the store's unique index, not a pre-check,
// so concurrent registrations cannot slip past each other.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !domain.ValidRole(in.Role) {
		s.record(domain.ActionRegister, in.Email, "invalid_role")
		return nil, domain.ErrInvalidRole
	}
	if len(in.Password) < minPasswordLength {
		s.record(domain.ActionRegister, in.Email, "weak_password")
		return nil, domain.ErrWeakPassword
	}

	profession := domain.ProfessionList{}
	if in.Role == domain.RoleTechnician && in.Profession != nil {
		profession = in.Profession
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Profession:   profession,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.record(domain.ActionRegister, in.Email, "email_taken")
			return nil, err
		}
		s.log.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(created.Role).Inc()
	s.record(domain.ActionRegister, created.Email, "ok")
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a signed bearer token. Unknown email,
// missing stored hash, and wrong password all surface as the same
// ErrInvalidCredentials so callers learn nothing about which case occurred.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *ports.TokenPayload, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingCredentials
	}

	if s.limiter != nil {
		throttled, err := s.limiter.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if throttled {
			metrics.LoginThrottledTotal.Inc()
			s.record(domain.ActionLogin, email, "throttled")
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, s.failLogin(ctx, email, "unknown_email")
		}
		return "", nil, err
	}

	if user.PasswordHash == "" {
		// Account exists but never got a hash; distinguishable in logs only.
		s.log.Warn().Str("user_id", user.ID).Msg("login against account with no password hash")
		return "", nil, s.failLogin(ctx, email, "no_hash")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, s.failLogin(ctx, email, "bad_password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.ActionLogin, email, "ok")
	return token, &ports.TokenPayload{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *AuthService) failLogin(ctx context.Context, email, reason string) error {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.record(domain.ActionLogin, email, reason)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) record(action domain.AuthAction, email, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{Action: action, Email: email, Outcome: outcome, At: s.now().UTC()})
}
