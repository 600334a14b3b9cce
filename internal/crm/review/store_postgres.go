// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/navigant/backoffice/internal/platform/database/schema"
	"github.com/navigant/backoffice/internal/platform/dberr"
	"github.com/navigant/backoffice/pkg/pagination"
)

const resourceName = "Review"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectColumns coalesces the optional text columns so they scan into plain strings.
var selectColumns = func() string {
	t := schema.CRMReview
	return strings.Join([]string{
		t.ID, t.Token, t.ClientName, t.ClientEmail,
		fmt.Sprintf("COALESCE(%s, '')", t.ClientCompany),
		t.Rating, t.Title, t.Content, t.Status,
		fmt.Sprintf("COALESCE(%s, '')", t.ReviewedBy),
		fmt.Sprintf("COALESCE(%s, '')", t.AdminNotes),
		t.CreatedAt, t.SubmittedAt, t.UpdatedAt,
	}, ", ")
}()

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID,
		&review.Token,
		&review.ClientName,
		&review.ClientEmail,
		&review.ClientCompany,
		&review.Rating,
		&review.Title,
		&review.Content,
		&review.Status,
		&review.ReviewedBy,
		&review.AdminNotes,
		&review.CreatedAt,
		&review.SubmittedAt,
		&review.UpdatedAt,
	)
	return review, err
}

func collect(rows pgx.Rows, capacity int) ([]*Review, error) {
	defer rows.Close()

	reviews := make([]*Review, 0, capacity)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName, "scan_review")
		}
		reviews = append(reviews, review)
	}
	return reviews, dberr.Wrap(rows.Err(), resourceName, "iterate_reviews")
}

// Create implements [Repository.Create].
func (repository *PostgresRepository) Create(ctx context.Context, review *Review) error {
	t := schema.CRMReview
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.Table, t.ID, t.Token, t.ClientName, t.ClientEmail, t.ClientCompany, t.Status, t.CreatedAt, t.UpdatedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		review.ID,
		review.Token,
		review.ClientName,
		review.ClientEmail,
		review.ClientCompany,
		review.Status,
		review.CreatedAt,
		review.UpdatedAt,
	)
	return dberr.Wrap(err, resourceName, "create_review")
}

// FindByID implements [Repository.FindByID].
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Review, error) {
	t := schema.CRMReview
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, t.Table, t.ID)

	review, err := scanReview(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_review_by_id")
	}
	return review, nil
}

// FindByToken implements [Repository.FindByToken].
func (repository *PostgresRepository) FindByToken(ctx context.Context, token string) (*Review, error) {
	t := schema.CRMReview
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, t.Table, t.Token)

	review, err := scanReview(repository.db.QueryRow(ctx, query, token))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_review_by_token")
	}
	return review, nil
}

/*
List returns a filtered page of reviews, newest first.

Returns:
  - []*Review: Page of reviews
  - int: Total matching the filter
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Review, int, error) {
	t := schema.CRMReview

	where := "TRUE"
	args := []any{}
	if filter.Status != "" {
		where = fmt.Sprintf("%s = $1", t.Status)
		args = append(args, filter.Status)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, t.Table, where)
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "count_reviews")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d`,
		selectColumns, t.Table, where, t.CreatedAt, t.ID, len(args)+1, len(args)+2)
	rows, err := repository.db.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "list_reviews")
	}

	reviews, err := collect(rows, page.Limit)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListApproved implements [Repository.ListApproved].
func (repository *PostgresRepository) ListApproved(ctx context.Context) ([]*Review, error) {
	t := schema.CRMReview
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC NULLS LAST, %s DESC`,
		selectColumns, t.Table, t.Status, t.SubmittedAt, t.CreatedAt)

	rows, err := repository.db.Query(ctx, query, StatusApproved)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_approved_reviews")
	}
	return collect(rows, 0)
}

/*
SubmitByToken writes rating, title, content and submittedAt in one guarded
UPDATE. A miss is resolved into NotFound or Conflict with a follow-up probe.
*/
func (repository *PostgresRepository) SubmitByToken(ctx context.Context, token string, submission Submission) (*Review, error) {
	t := schema.CRMReview
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $5
		WHERE %s = $1 AND %s = $6
		RETURNING %s`,
		t.Table,
		t.Rating, t.Title, t.Content, t.SubmittedAt, t.UpdatedAt,
		t.Token, t.Status,
		selectColumns,
	)

	review, err := scanReview(repository.db.QueryRow(ctx, query,
		token,
		submission.Rating,
		submission.Title,
		submission.Content,
		submission.At,
		StatusPending,
	))
	if err == nil {
		return review, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, dberr.Wrap(err, resourceName, "submit_review")
	}

	var exists bool
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, t.Table, t.Token)
	if err := repository.db.QueryRow(ctx, existsQuery, token).Scan(&exists); err != nil {
		return nil, dberr.Wrap(err, resourceName, "submit_review")
	}
	if exists {
		return nil, ErrAlreadyModerated
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, resourceName, "submit_review")
}

// SetStatus implements [Repository.SetStatus].
func (repository *PostgresRepository) SetStatus(ctx context.Context, id string, decision Decision) (*Review, error) {
	t := schema.CRMReview
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
		RETURNING %s`,
		t.Table,
		t.Status, t.ReviewedBy, t.AdminNotes, t.UpdatedAt,
		t.ID,
		selectColumns,
	)

	review, err := scanReview(repository.db.QueryRow(ctx, query,
		id,
		decision.Status,
		decision.AdminID,
		decision.Notes,
		decision.At,
	))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "set_review_status")
	}
	return review, nil
}

// Delete implements [Repository.Delete].
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.CRMReview
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName, "delete_review")
	}
	return nil
}
