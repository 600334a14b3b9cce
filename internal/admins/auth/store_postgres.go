// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/navigant/backoffice/internal/platform/database/schema"
	"github.com/navigant/backoffice/internal/platform/dberr"
	"github.com/navigant/backoffice/pkg/pagination"
)

const resourceName = "Admin"

// PostgresAdminRepository implements [AdminRepository] using pgx.
type PostgresAdminRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAdminRepository creates a new PostgreSQL implementation of [AdminRepository].
func NewPostgresAdminRepository(db *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

// selectColumns is the projection every read scans with [scanAdmin].
var selectColumns = strings.Join(schema.AdminsAccount.Columns(), ", ")

func scanAdmin(row pgx.Row) (*Admin, error) {
	admin := &Admin{}
	err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.Enabled,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	return admin, err
}

/*
FindByID retrieves an admin by primary key.

Returns:
  - *Admin: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAdminRepository) FindByID(ctx context.Context, id string) (*Admin, error) {
	t := schema.AdminsAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, t.Table, t.ID)

	admin, err := scanAdmin(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_admin_by_id")
	}
	return admin, nil
}

/*
FindByEmail retrieves an admin by email, matching the lower(email) unique index.

Returns:
  - *Admin: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAdminRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	t := schema.AdminsAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`, selectColumns, t.Table, t.Email)

	admin, err := scanAdmin(repository.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_admin_by_email")
	}
	return admin, nil
}

// List implements [AdminRepository.List].
func (repository *PostgresAdminRepository) List(ctx context.Context, page pagination.Params) ([]*Admin, int, error) {
	t := schema.AdminsAccount

	total, err := repository.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2`, selectColumns, t.Table, t.CreatedAt)
	rows, err := repository.db.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "list_admins")
	}
	defer rows.Close()

	admins := make([]*Admin, 0, page.Limit)
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceName, "scan_admin")
		}
		admins = append(admins, admin)
	}

	return admins, total, dberr.Wrap(rows.Err(), resourceName, "iterate_admins")
}

// Count implements [AdminRepository.Count].
func (repository *PostgresAdminRepository) Count(ctx context.Context) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.AdminsAccount.Table)
	if err := repository.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resourceName, "count_admins")
	}
	return total, nil
}

/*
Create inserts a new admin row.

A concurrent insert with the same email loses on the uq_account_email index
and surfaces as apperr.Conflict.
*/
func (repository *PostgresAdminRepository) Create(ctx context.Context, admin *Admin) error {
	t := schema.AdminsAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.Table, t.ID, t.Name, t.Email, t.PasswordHash, t.Role, t.Enabled, t.CreatedAt, t.UpdatedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
		admin.Enabled,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	return dberr.Wrap(err, resourceName, "create_admin")
}

// Update implements [AdminRepository.Update].
func (repository *PostgresAdminRepository) Update(ctx context.Context, admin *Admin) error {
	t := schema.AdminsAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		t.Table, t.Name, t.Email, t.PasswordHash, t.Role, t.Enabled, t.UpdatedAt, t.ID,
	)

	tag, err := repository.db.Exec(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
		admin.Enabled,
		admin.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, resourceName, "update_admin")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName, "update_admin")
	}
	return nil
}

// Delete implements [AdminRepository.Delete].
func (repository *PostgresAdminRepository) Delete(ctx context.Context, id string) error {
	t := schema.AdminsAccount
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName, "delete_admin")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName, "delete_admin")
	}
	return nil
}
