package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"city-api/internal/infra/database"

	_ "github.com/lib/pq"
)

// Open connects to postgres through lib/pq and checks the connection
func Open(ctx context.Context, config database.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", config.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}
