// Package datastore keeps a copy of the colour detail table in Postgres.
package datastore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// NewDB opens a Postgres connection and checks that it is reachable.
func NewDB(ctx context.Context, connstr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connstr)
	if err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not establish connection with database: %w", err)
	}

	return db, nil
}
