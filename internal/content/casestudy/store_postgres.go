// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package casestudy

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

const resourceName = "Case study"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = strings.Join(schema.ContentCaseStudy.Columns(), ", ")

func scanCaseStudy(row pgx.Row) (*CaseStudy, error) {
	study := &CaseStudy{}
	err := row.Scan(
		&study.ID,
		&study.Slug,
		&study.Title,
		&study.Description,
		&study.FullContent,
		&study.Image,
		&study.Category,
		&study.Alt,
		&study.Status,
		&study.DisplayOrder,
		&study.PublishDate,
		&study.CreatedAt,
		&study.UpdatedAt,
	)
	return study, err
}

func collect(rows pgx.Rows, capacity int) ([]*CaseStudy, error) {
	defer rows.Close()

	studies := make([]*CaseStudy, 0, capacity)
	for rows.Next() {
		study, err := scanCaseStudy(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName, "scan_case_study")
		}
		studies = append(studies, study)
	}
	return studies, dberr.Wrap(rows.Err(), resourceName, "iterate_case_studies")
}

// Create implements [Repository.Create].
func (repository *PostgresRepository) Create(ctx context.Context, study *CaseStudy) error {
	t := schema.ContentCaseStudy
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.Table, selectColumns,
	)

	_, err := repository.db.Exec(ctx, query,
		study.ID,
		study.Slug,
		study.Title,
		study.Description,
		study.FullContent,
		study.Image,
		study.Category,
		study.Alt,
		study.Status,
		study.DisplayOrder,
		study.PublishDate,
		study.CreatedAt,
		study.UpdatedAt,
	)
	return dberr.Wrap(err, resourceName, "create_case_study")
}

// FindByID implements [Repository.FindByID].
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*CaseStudy, error) {
	t := schema.ContentCaseStudy
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, t.Table, t.ID)

	study, err := scanCaseStudy(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_case_study_by_id")
	}
	return study, nil
}

// FindPublishedBySlug implements [Repository.FindPublishedBySlug].
func (repository *PostgresRepository) FindPublishedBySlug(ctx context.Context, slug string) (*CaseStudy, error) {
	t := schema.ContentCaseStudy
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`, selectColumns, t.Table, t.Slug, t.Status)

	study, err := scanCaseStudy(repository.db.QueryRow(ctx, query, slug, StatusPublished))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_case_study_by_slug")
	}
	return study, nil
}

// List implements [Repository.List].
func (repository *PostgresRepository) List(ctx context.Context, page pagination.Params) ([]*CaseStudy, int, error) {
	t := schema.ContentCaseStudy

	var total int
	if err := repository.db.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, t.Table)).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "count_case_studies")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s DESC LIMIT $1 OFFSET $2`,
		selectColumns, t.Table, t.DisplayOrder, t.CreatedAt)
	rows, err := repository.db.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "list_case_studies")
	}

	studies, err := collect(rows, page.Limit)
	if err != nil {
		return nil, 0, err
	}
	return studies, total, nil
}

// ListPublished implements [Repository.ListPublished].
func (repository *PostgresRepository) ListPublished(ctx context.Context) ([]*CaseStudy, error) {
	t := schema.ContentCaseStudy
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s DESC NULLS LAST`,
		selectColumns, t.Table, t.Status, t.DisplayOrder, t.PublishDate)

	rows, err := repository.db.Query(ctx, query, StatusPublished)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_published_case_studies")
	}
	return collect(rows, 0)
}

// Update implements [Repository.Update].
func (repository *PostgresRepository) Update(ctx context.Context, study *CaseStudy) error {
	t := schema.ContentCaseStudy
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = $12
		WHERE %s = $1`,
		t.Table,
		t.Slug, t.Title, t.Description, t.FullContent, t.Image, t.Category,
		t.Alt, t.Status, t.DisplayOrder, t.PublishDate, t.UpdatedAt,
		t.ID,
	)

	tag, err := repository.db.Exec(ctx, query,
		study.ID,
		study.Slug,
		study.Title,
		study.Description,
		study.FullContent,
		study.Image,
		study.Category,
		study.Alt,
		study.Status,
		study.DisplayOrder,
		study.PublishDate,
		study.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, resourceName, "update_case_study")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName, "update_case_study")
	}
	return nil
}

// Delete implements [Repository.Delete].
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.ContentCaseStudy
	tag, err := repository.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID), id)
	if err != nil {
		return dberr.Wrap(err, resourceName, "delete_case_study")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName, "delete_case_study")
	}
	return nil
}
