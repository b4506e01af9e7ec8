package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/ecommerce-api/internal/auth"
	"github.com/shopstack/ecommerce-api/internal/core/domain"
	"github.com/shopstack/ecommerce-api/internal/core/ports"
)

// AuthService orchestrates registration and login: normalization, uniqueness
// check, hashing, persistence, token issuance. Audit and throttling are
// optional collaborators; a nil sink or limiter disables the feature.
type AuthService struct {
	repo    ports.UserRepository
	hasher  auth.PasswordHasher
	codec   *auth.TokenCodec
	limiter ports.LoginLimiter
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher auth.PasswordHasher, codec *auth.TokenCodec, limiter ports.LoginLimiter, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:    repo,
		hasher:  hasher,
		codec:   codec,
		limiter: limiter,
		audit:   audit,
		log:     log,
	}
}

// Register creates a customer account. The role is forced to customer no
// matter what the transport layer received. The FindByEmail pre-check is not
// atomic with the insert; the store's unique email index is the backstop and
// a duplicate-key error at insert maps to the same ErrUserExists.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         domain.RoleCustomer,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(created.ID, created.Email, created.Role)
	if err != nil {
		return nil, err
	}

	s.emit(domain.AuthEvent{Kind: domain.AuditRegistered, Email: created.Email, UserID: created.ID})

	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login authenticates by email and password. Unknown user and wrong password
// collapse into ErrInvalidCredentials; deactivated accounts get a distinct
// error so operators can tell the cases apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)

	if throttled := s.throttled(ctx, email); throttled {
		s.emit(domain.AuthEvent{Kind: domain.AuditLoginThrottled, Email: email})
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			s.emit(domain.AuthEvent{Kind: domain.AuditLoginFailed, Email: email, Reason: "unknown email"})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.emit(domain.AuthEvent{Kind: domain.AuditLoginDeactivated, Email: email, UserID: user.ID})
		return nil, domain.ErrAccountDeactivated
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		s.emit(domain.AuthEvent{Kind: domain.AuditLoginFailed, Email: email, UserID: user.ID, Reason: "wrong password"})
		return nil, domain.ErrInvalidCredentials
	}

	s.resetFailures(ctx, email)

	token, err := s.codec.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.emit(domain.AuthEvent{Kind: domain.AuditLoginSucceeded, Email: email, UserID: user.ID})

	return &ports.AuthResult{User: user, Token: token}, nil
}

// CurrentUser re-reads the user record so /api/auth/me always reflects the
// store, not the token.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// throttled asks the limiter whether this account is over the failure
// budget. Limiter errors fail open: login must not depend on the throttle
// backend being up.
func (s *AuthService) throttled(ctx context.Context, email string) bool {
	if s.limiter == nil {
		return false
	}
	tooMany, err := s.limiter.TooMany(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter unavailable, failing open")
		return false
	}
	return tooMany
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("recording login failure")
	}
}

func (s *AuthService) resetFailures(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("resetting login failures")
	}
}

func (s *AuthService) emit(event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	event.At = time.Now().UTC()
	s.audit.Enqueue(event)
}
