// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/navigant/backoffice/internal/admins/auth"
	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/platform/validate"
	"github.com/navigant/backoffice/pkg/pagination"
	"github.com/navigant/backoffice/pkg/uuid"
)

// # Service Layer

// Service orchestrates admin account management.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new [Service].
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
		now:               time.Now,
	}
}

/*
Create validates and persists a new admin.

Returns:
  - *auth.Admin: Created entity
  - error: ValidationError, Conflict (email taken) or storage errors
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*auth.Admin, error) {
	role := sec.RoleAdmin
	validator := &validate.Validator{}
	validator.Required(auth.FieldName, input.Name).
		MaxLen(auth.FieldName, input.Name, auth.MaxNameLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, strings.TrimSpace(input.Email)).
		Required(auth.FieldPassword, input.Password).
		MinLen(auth.FieldPassword, input.Password, auth.MinPasswordLength).
		MaxLen(auth.FieldPassword, input.Password, auth.MaxPasswordLength)
	if strings.TrimSpace(input.Role) != "" {
		parsed, ok := sec.ParseRole(input.Role)
		validator.Custom(auth.FieldRole, !ok, "Role must be ADMIN or SUPER_ADMIN")
		role = parsed
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	email := auth.NormalizeEmail(input.Email)
	if err := service.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	now := service.now().UTC()
	admin := &auth.Admin{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index is authoritative; a lost race still surfaces as Conflict.
	if err := service.accountRepository.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "admin_created",
		slog.String("admin_id", admin.ID),
		slog.String("role", string(admin.Role)),
	)
	return admin, nil
}

// List returns a page of admins.
func (service *Service) List(ctx context.Context, page pagination.Params) ([]*auth.Admin, int, error) {
	admins, total, err := service.accountRepository.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return admins, total, nil
}

// Get returns a single admin.
func (service *Service) Get(ctx context.Context, id string) (*auth.Admin, error) {
	admin, err := service.accountRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_failed: %w", err)
	}
	return admin, nil
}

/*
Update applies a partial set of changes.

Authorization (self or SUPER_ADMIN, privilege fields) is enforced by the
handler before this is called.

Returns:
  - *auth.Admin: Updated entity
  - error: NotFound, ValidationError, Conflict or storage errors
*/
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*auth.Admin, error) {
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(auth.FieldName, *input.Name).
			MaxLen(auth.FieldName, *input.Name, auth.MaxNameLength)
	}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, strings.TrimSpace(*input.Email))
	}
	if input.Password != nil {
		validator.MinLen(auth.FieldPassword, *input.Password, auth.MinPasswordLength).
			MaxLen(auth.FieldPassword, *input.Password, auth.MaxPasswordLength)
	}
	var role sec.UserRole
	if input.Role != nil {
		parsed, ok := sec.ParseRole(*input.Role)
		validator.Custom(auth.FieldRole, !ok, "Role must be ADMIN or SUPER_ADMIN")
		role = parsed
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.accountRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	updated := *current
	if input.Name != nil {
		updated = updated.WithName(strings.TrimSpace(*input.Name))
	}
	if input.Email != nil {
		updated = updated.WithEmail(*input.Email)
		if updated.Email != current.Email {
			if err := service.ensureEmailFree(ctx, updated.Email, id); err != nil {
				return nil, err
			}
		}
	}
	if input.Password != nil {
		hash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		updated = updated.WithPasswordHash(hash)
	}
	if input.Role != nil {
		updated = updated.WithRole(role)
	}
	if input.Enabled != nil {
		updated = updated.WithEnabled(*input.Enabled)
	}
	updated = updated.Touched(service.now().UTC())

	if err := service.accountRepository.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "admin_updated", slog.String("admin_id", id))
	return &updated, nil
}

// Delete removes an admin permanently. Self-deletion is rejected by the handler.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.accountRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}
	service.logger.InfoContext(ctx, "admin_deleted", slog.String("admin_id", id))
	return nil
}

// ensureEmailFree gives a friendly Conflict before hitting the unique index.
func (service *Service) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	existing, err := service.accountRepository.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != exceptID:
		return apperr.Conflict("Email is already registered")
	case err != nil && !apperr.HasCode(err, apperr.CodeNotFound):
		return fmt.Errorf("account_service_email_check_failed: %w", err)
	}
	return nil
}
