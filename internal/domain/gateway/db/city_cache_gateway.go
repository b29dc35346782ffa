package db

import (
	"context"
	"strings"

	"city-api/internal/domain/entity"
)

// CityCacheGateway is the local city cache, keyed by (latitude, longitude)
type CityCacheGateway interface {
	// EnsureSchema creates the cities table when missing
	EnsureSchema(ctx context.Context) error

	// FindAll returns every cached city ordered by name
	FindAll(ctx context.Context) ([]entity.City, error)

	// FindByName returns cached cities whose name contains name, ordered by name
	FindByName(ctx context.Context, name string) ([]entity.City, error)

	// Upsert inserts or replaces cities in a single transaction
	Upsert(ctx context.Context, cities []entity.City) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching name anywhere, with wildcards in name escaped
func containsPattern(name string) string {
	return "%" + likeEscaper.Replace(name) + "%"
}
