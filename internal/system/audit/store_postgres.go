// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/navigant/backoffice/internal/platform/database/schema"
	"github.com/navigant/backoffice/internal/platform/dberr"
	"github.com/navigant/backoffice/pkg/pagination"
)

const resourceName = "Activity log"

// PostgresRepository implements [Repository] on system.activitylog.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL activity log repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append implements [Repository.Append].
func (repository *PostgresRepository) Append(ctx context.Context, entry *Entry) error {
	t := schema.SystemActivityLog
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.Table, t.ID, t.AdminID, t.Action, t.EntityType, t.EntityID, t.Details, t.IPAddress, t.CreatedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		entry.ID, entry.AdminID, entry.Action, entry.EntityType,
		entry.EntityID, entry.Details, entry.IPAddress, entry.CreatedAt,
	)
	return dberr.Wrap(err, resourceName, "append_activity_log")
}

// List implements [Repository.List].
func (repository *PostgresRepository) List(ctx context.Context, page pagination.Params) ([]*Entry, int, error) {
	t := schema.SystemActivityLog

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, t.Table)
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "count_activity_log")
	}

	// ULIDs sort by creation time, so the primary key doubles as the tiebreaker.
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		t.ID, t.AdminID, t.Action, t.EntityType, t.EntityID, t.Details, t.IPAddress, t.CreatedAt,
		t.Table, t.CreatedAt, t.ID,
	)

	rows, err := repository.db.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "list_activity_log")
	}
	defer rows.Close()

	entries := make([]*Entry, 0, page.Limit)
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Action, &e.EntityType, &e.EntityID, &e.Details, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName, "scan_activity_log")
		}
		entries = append(entries, e)
	}

	return entries, total, dberr.Wrap(rows.Err(), resourceName, "iterate_activity_log")
}
