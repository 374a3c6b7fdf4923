package datastore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/lib/pq"

	"github.com/datafam/palettes/internal/palette"
)

// DetailTable is the table holding colour detail rows.
const DetailTable = "colour_details"

var detailColumns = []string{
	"run_id", "submitter", "palette", "position", "hex", "rounded_hex", "colour_name", "r", "g", "b",
}

// DetailDatabase stores detail rows in Postgres.
type DetailDatabase struct {
	database *sql.DB
	runID    string
	logger   hclog.Logger
}

// NewDetailDatabase creates a DetailDatabase tagging rows with runID.
func NewDetailDatabase(db *sql.DB, runID string, logger hclog.Logger) *DetailDatabase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DetailDatabase{database: db, runID: runID, logger: logger}
}

// WriteDetails replaces the table contents with rows in one transaction.
func (d *DetailDatabase) WriteDetails(ctx context.Context, rows []palette.DetailRow) error {
	tx, err := d.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+DetailTable); err != nil {
		return fmt.Errorf("failed to clear colour details: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(DetailTable, detailColumns...))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, copyValues(d.runID, r)...); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to copy colour detail: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush colour details: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close copy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit colour details: %w", err)
	}

	d.logger.Debug("stored colour details", "rows", len(rows), "table", DetailTable)
	return nil
}

// copyValues orders a detail row to match detailColumns.
func copyValues(runID string, r palette.DetailRow) []any {
	return append([]any{runID}, r.Values()...)
}
