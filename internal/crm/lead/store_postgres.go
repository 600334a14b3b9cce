// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lead

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

const resourceName = "Lead"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = func() string {
	t := schema.CRMLead
	return strings.Join([]string{
		t.ID, t.FullName, t.Email, t.Phone, t.ServiceType, t.NumberOfSeats,
		fmt.Sprintf("COALESCE(%s, '')", t.Remarks),
		fmt.Sprintf("COALESCE(%s, '')", t.AdminComments),
		t.Status,
		fmt.Sprintf("COALESCE(%s, '')", t.ReviewedBy),
		t.CreatedAt, t.UpdatedAt,
	}, ", ")
}()

func scanLead(row pgx.Row) (*Lead, error) {
	lead := &Lead{}
	err := row.Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.ServiceType,
		&lead.NumberOfSeats,
		&lead.Remarks,
		&lead.AdminComments,
		&lead.Status,
		&lead.ReviewedBy,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	return lead, err
}

// Create implements [Repository.Create].
func (repository *PostgresRepository) Create(ctx context.Context, lead *Lead) error {
	t := schema.CRMLead
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.Table, t.ID, t.FullName, t.Email, t.Phone, t.ServiceType, t.NumberOfSeats,
		t.Remarks, t.Status, t.CreatedAt, t.UpdatedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		lead.ID,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.ServiceType,
		lead.NumberOfSeats,
		lead.Remarks,
		lead.Status,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	return dberr.Wrap(err, resourceName, "create_lead")
}

// FindByID implements [Repository.FindByID].
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Lead, error) {
	t := schema.CRMLead
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, t.Table, t.ID)

	lead, err := scanLead(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "find_lead_by_id")
	}
	return lead, nil
}

// List implements [Repository.List].
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Lead, int, error) {
	t := schema.CRMLead

	where := "TRUE"
	args := []any{}
	if filter.Status != "" {
		where = fmt.Sprintf("%s = $1", t.Status)
		args = append(args, filter.Status)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, t.Table, where)
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "count_leads")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d`,
		selectColumns, t.Table, where, t.CreatedAt, t.ID, len(args)+1, len(args)+2)
	rows, err := repository.db.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "list_leads")
	}
	defer rows.Close()

	leads := make([]*Lead, 0, page.Limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceName, "scan_lead")
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "iterate_leads")
	}
	return leads, total, nil
}

// Update implements [Repository.Update].
func (repository *PostgresRepository) Update(ctx context.Context, lead *Lead) error {
	t := schema.CRMLead
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		t.Table, t.Status, t.AdminComments, t.ReviewedBy, t.UpdatedAt, t.ID)

	tag, err := repository.db.Exec(ctx, query, lead.ID, lead.Status, lead.AdminComments, lead.ReviewedBy, lead.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceName, "update_lead")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName, "update_lead")
	}
	return nil
}
