package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/servilink/marketplace-api/internal/core/domain"
	"github.com/servilink/marketplace-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Profession != nil {
		clone.Profession = append(domain.ProfessionList{}, u.Profession...)
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *update.Email {
				return nil, domain.ErrEmailTaken
			}
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Profession != nil {
		u.Profession = append(domain.ProfessionList{}, *update.Profession...)
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByRole(_ context.Context, role, nameQuery string) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, u := range r.users {
		if u.Role != role {
			continue
		}
		if nameQuery != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(nameQuery)) {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

type stubLimiter struct {
	mu        sync.Mutex
	throttled bool
	failures  map[string]int
	resets    int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int)}
}

func (l *stubLimiter) TooManyFailures(_ context.Context, email string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.throttled, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resets++
	delete(l.failures, email)
	return nil
}

func newTestAuthService(repo ports.UserRepository, limiter LoginLimiter) *AuthService {
	return NewAuthService(repo, limiter, nil, "secret", 24*time.Hour, zerolog.Nop())
}

func registerInput(role string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Alice",
		Phone:    "0601020304",
		Email:    "alice@example.com",
		Password: "s3cret!",
		Role:     role,
	}
}

func TestAuthService_Register_Technician(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	in := registerInput(domain.RoleTechnician)
	in.Profession = domain.ProfessionList{"Plumbing"}

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == in.Password {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(user.Profession) != 1 || user.Profession[0] != "Plumbing" {
		t.Fatalf("unexpected profession: %v", user.Profession)
	}
}

func TestAuthService_Register_ClientDiscardsProfession(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	in := registerInput(domain.RoleClient)
	in.Profession = domain.ProfessionList{"Plumbing"}

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(user.Profession) != 0 {
		t.Fatalf("expected empty profession for client, got %v", user.Profession)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	in := registerInput("admin")
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no record should be created")
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	in := registerInput(domain.RoleClient)
	in.Password = "abc"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no record should be created")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), registerInput(domain.RoleClient)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput(domain.RoleTechnician)); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc := newTestAuthService(repo, limiter)

	created, err := svc.Register(context.Background(), registerInput(domain.RoleTechnician))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, payload, err := svc.Login(context.Background(), "alice@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if payload.ID != created.ID || payload.Email != "alice@example.com" || payload.Role != domain.RoleTechnician {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != created.ID || claims["email"] != "alice@example.com" || claims["role"] != domain.RoleTechnician {
		t.Fatalf("unexpected claims: %v", claims)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected exp claim: %v", err)
	}
	ttl := time.Until(exp.Time)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Fatalf("expected ~1 day validity, got %v", ttl)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset on success")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc := newTestAuthService(repo, limiter)

	_, _ = svc.Register(context.Background(), registerInput(domain.RoleClient))
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures["alice@example.com"] != 1 {
		t.Fatalf("expected failure recorded")
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	// Unknown email must be indistinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_NoStoredHash(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["user_1"] = &domain.User{ID: "user_1", Email: "legacy@example.com", Role: domain.RoleClient}
	svc := newTestAuthService(repo, nil)

	if _, _, err := svc.Login(context.Background(), "legacy@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@example.com", ""); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	limiter.throttled = true
	svc := newTestAuthService(repo, limiter)

	_, _ = svc.Register(context.Background(), registerInput(domain.RoleClient))
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret!"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_TokenExpiry(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	_, _ = svc.Register(context.Background(), registerInput(domain.RoleClient))

	// Rewind the clock so the issued token is already past its 1-day window.
	svc.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }

	token, _, err := svc.Login(context.Background(), "alice@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err = jwt.ParseWithClaims(token, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
