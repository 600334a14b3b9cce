// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/internal/platform/constants"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer signs session tokens for authenticated admins.
type TokenIssuer interface {
	Issue(email string, role sec.UserRole) (string, time.Time, error)
	TTL() time.Duration
}

// errInvalidCredentials is shared by every login failure so callers cannot
// tell an unknown email from a wrong password or a disabled account.
var errInvalidCredentials = apperr.Unauthorized("Invalid email or password")

// Service implements admin authentication use cases.
type Service struct {
	admins   AdminRepository
	attempts AttemptLimiter
	tokens   TokenIssuer
	logger   *slog.Logger
	audit    audit.Sink

	maxFailures  int
	onFailure    func()
	onLockout    func()
	hashPassword func(string) (string, error)
	clock        func() time.Time
}

// Option customises a [Service].
type Option func(*Service)

// WithFailureHooks registers callbacks for failed logins and throttled logins.
func WithFailureHooks(onFailure, onLockout func()) Option {
	return func(s *Service) {
		s.onFailure = onFailure
		s.onLockout = onLockout
	}
}

// WithMaxFailures overrides [constants.MaxFailedLogins].
func WithMaxFailures(n int) Option {
	return func(s *Service) { s.maxFailures = n }
}

// WithAuditSink records non-request mutations such as the bootstrap seed.
func WithAuditSink(sink audit.Sink) Option {
	return func(s *Service) { s.audit = sink }
}

// NewService constructs a new [Service].
func NewService(admins AdminRepository, attempts AttemptLimiter, tokens TokenIssuer, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		admins:       admins,
		attempts:     attempts,
		tokens:       tokens,
		logger:       logger,
		audit:        audit.Discard{},
		maxFailures:  constants.MaxFailedLogins,
		onFailure:    func() {},
		onLockout:    func() {},
		hashPassword: sec.HashPassword,
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Login Flow

// LoginInput holds raw credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	Admin     *Admin
	Token     string
	ExpiresAt time.Time
}

/*
Login verifies credentials and issues a session token.

Description: Enforces the failed-attempt throttle, then compares the password
with bcrypt. Unknown emails burn an equivalent bcrypt comparison so response
time does not reveal which addresses exist.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *Session: Admin, token and expiry
  - error: Unauthorized, RateLimited, or internal errors
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := NormalizeEmail(input.Email)

	// The throttle fails open: a Redis outage must not lock every admin out.
	failures, remaining, err := service.attempts.Failures(ctx, email)
	if err != nil {
		service.logger.WarnContext(ctx, "login_throttle_unavailable", slog.Any("error", err))
	} else if failures >= service.maxFailures {
		service.onLockout()
		service.logger.WarnContext(ctx, "login_throttled", slog.String("email", email))
		return nil, apperr.RateLimited(int(math.Ceil(remaining.Seconds())))
	}

	admin, err := service.admins.FindByEmail(ctx, email)
	switch {
	case apperr.HasCode(err, apperr.CodeNotFound):
		sec.BurnPasswordCheck(input.Password)
		return nil, service.rejectLogin(ctx, email)
	case err != nil:
		return nil, fmt.Errorf("auth_service_find_admin_failed: %w", err)
	}

	if !sec.CheckPasswordHash(input.Password, admin.PasswordHash) || !admin.Enabled {
		return nil, service.rejectLogin(ctx, email)
	}

	token, expiresAt, err := service.tokens.Issue(admin.Email, admin.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_token_failed: %w", err)
	}

	if err := service.attempts.Reset(ctx, email); err != nil {
		service.logger.WarnContext(ctx, "login_throttle_reset_failed", slog.Any("error", err))
	}

	return &Session{Admin: admin, Token: token, ExpiresAt: expiresAt}, nil
}

func (service *Service) rejectLogin(ctx context.Context, email string) error {
	service.onFailure()
	if err := service.attempts.RecordFailure(ctx, email); err != nil {
		service.logger.WarnContext(ctx, "login_throttle_record_failed", slog.Any("error", err))
	}
	return errInvalidCredentials
}

// TokenTTL is the lifetime of issued sessions, used for the cookie Max-Age.
func (service *Service) TokenTTL() time.Duration {
	return service.tokens.TTL()
}

// # Identity Resolution

/*
ResolvePrincipal maps a verified token subject to a live admin.

Returns (nil, nil) when the account no longer exists or is disabled; the
request then proceeds unauthenticated.
*/
func (service *Service) ResolvePrincipal(ctx context.Context, email string) (*sec.Principal, error) {
	admin, err := service.admins.FindByEmail(ctx, NormalizeEmail(email))
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !admin.Enabled {
		return nil, nil
	}
	return admin.Principal(), nil
}

// Me returns the stored profile of the authenticated admin.
func (service *Service) Me(ctx context.Context, adminID string) (*Admin, error) {
	return service.admins.FindByID(ctx, adminID)
}

// # Bootstrap

/*
Bootstrap seeds the first SUPER_ADMIN when the account table is empty.

Returns the created admin, or nil when nothing was seeded (no email configured
or accounts already exist).
*/
func (service *Service) Bootstrap(ctx context.Context, email, password string) (*Admin, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}

	count, err := service.admins.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth_service_bootstrap_count_failed: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return nil, fmt.Errorf("auth_service_bootstrap_failed: password must be %d-%d characters", MinPasswordLength, MaxPasswordLength)
	}

	hash, err := service.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	now := service.clock().UTC()
	admin := &Admin{
		ID:           uuid.New(),
		Name:         BootstrapAdminName,
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleSuperAdmin,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.admins.Create(ctx, admin); err != nil {
		// Another instance seeded concurrently.
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_bootstrap_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "bootstrap_admin_created", slog.String("admin_id", admin.ID))
	service.audit.Record(audit.System(audit.ActionCreate, audit.EntityAdmin, admin.ID, "Bootstrap super admin "+admin.Email))
	return admin, nil
}
