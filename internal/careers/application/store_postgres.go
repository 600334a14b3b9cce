// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/navigant/backoffice/internal/platform/database/schema"
	"github.com/navigant/backoffice/internal/platform/dberr"
	"github.com/navigant/backoffice/pkg/pagination"
)

const resourceName = "Application"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = func() string {
	t := schema.CareersApplication
	return strings.Join([]string{
		t.ID, t.JobPostID, t.JobTitle, t.ApplicantName, t.ApplicantEmail, t.ApplicantPhone,
		fmt.Sprintf("COALESCE(%s, '')", t.ResumeURL),
		fmt.Sprintf("COALESCE(%s, '')", t.CoverLetter),
		t.Status,
		fmt.Sprintf("COALESCE(%s, '')", t.ReviewedBy),
		t.AppliedAt, t.UpdatedAt,
	}, ", ")
}()

func scanApplication(row pgx.Row) (*Application, error) {
	application := &Application{}
	err := row.Scan(
		&application.ID,
		&application.JobPostID,
		&application.JobTitle,
		&application.ApplicantName,
		&application.ApplicantEmail,
		&application.ApplicantPhone,
		&application.ResumeURL,
		&application.CoverLetter,
		&application.Status,
		&application.ReviewedBy,
		&application.AppliedAt,
		&application.UpdatedAt,
	)
	return application, err
}

// Create implements [Repository.Create].
func (repository *PostgresRepository) Create(ctx context.Context, application *Application) error {
	t := schema.CareersApplication
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11)`,
		t.Table, t.ID, t.JobPostID, t.JobTitle, t.ApplicantName, t.ApplicantEmail, t.ApplicantPhone,
		t.ResumeURL, t.CoverLetter, t.Status, t.AppliedAt, t.UpdatedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		application.ID,
		application.JobPostID,
		application.JobTitle,
		application.ApplicantName,
		application.ApplicantEmail,
		application.ApplicantPhone,
		application.ResumeURL,
		application.CoverLetter,
		application.Status,
		application.AppliedAt,
		application.UpdatedAt,
	)
	if dberr.IsUniqueViolation(err) {
		return ErrAlreadyApplied
	}
	return dberr.Wrap(err, resourceName, "create_application")
}

// FindByID implements [Repository.FindByID].
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Application, error) {
	t := schema.CareersApplication
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, t.Table, t.ID)

	application, err := scanApplication(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_application_by_id")
	}
	return application, nil
}

// List implements [Repository.List].
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Application, int, error) {
	t := schema.CareersApplication

	conditions := []string{"TRUE"}
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", t.Status, len(args)))
	}
	if filter.JobPostID != "" {
		args = append(args, filter.JobPostID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", t.JobPostID, len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, t.Table, where)
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "count_applications")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d`,
		selectColumns, t.Table, where, t.AppliedAt, t.ID, len(args)+1, len(args)+2)
	rows, err := repository.db.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "list_applications")
	}
	defer rows.Close()

	applications := make([]*Application, 0, page.Limit)
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceName, "scan_application")
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "iterate_applications")
	}
	return applications, total, nil
}

// SetStatus implements [Repository.SetStatus].
func (repository *PostgresRepository) SetStatus(ctx context.Context, id string, status Status, adminID string, at time.Time) (*Application, error) {
	t := schema.CareersApplication
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1 RETURNING %s`,
		t.Table, t.Status, t.ReviewedBy, t.UpdatedAt, t.ID, selectColumns)

	application, err := scanApplication(repository.db.QueryRow(ctx, query, id, status, adminID, at))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "set_application_status")
	}
	return application, nil
}

// Delete implements [Repository.Delete].
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.CareersApplication
	tag, err := repository.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID), id)
	if err != nil {
		return dberr.Wrap(err, resourceName, "delete_application")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName, "delete_application")
	}
	return nil
}
