package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"city-api/internal/domain/entity"
)

// Dialect selects the SQL flavour of SQLCityCacheGateway
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// likeOperator is case-insensitive on both dialects
func (d Dialect) likeOperator() string {
	if d == DialectPostgres {
		return "ILIKE"
	}
	return "LIKE"
}

const createCitiesTable = `
	CREATE TABLE IF NOT EXISTS cities (
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		country TEXT,
		is_capital BOOLEAN,
		name TEXT,
		population INTEGER,
		PRIMARY KEY (latitude, longitude)
	)`

const selectCities = `SELECT c.country, c.is_capital, c.latitude, c.longitude, c.name, c.population FROM cities c`

type SQLCityCacheGateway struct {
	DB      *sql.DB
	Dialect Dialect
}

var _ CityCacheGateway = (*SQLCityCacheGateway)(nil)

func NewSQLCityCacheGateway(db *sql.DB, dialect Dialect) *SQLCityCacheGateway {
	return &SQLCityCacheGateway{DB: db, Dialect: dialect}
}

// EnsureSchema creates the cities table
func (gateway *SQLCityCacheGateway) EnsureSchema(ctx context.Context) error {
	if _, err := gateway.DB.ExecContext(ctx, createCitiesTable); err != nil {
		return fmt.Errorf("failed to create cities table: %w", err)
	}
	return nil
}

// FindAll retrieves all cities ordered by name
func (gateway *SQLCityCacheGateway) FindAll(ctx context.Context) ([]entity.City, error) {
	return gateway.query(ctx, selectCities+" ORDER BY c.name ASC")
}

// FindByName retrieves cities whose name contains the given text
func (gateway *SQLCityCacheGateway) FindByName(ctx context.Context, name string) ([]entity.City, error) {
	query := fmt.Sprintf(`%s WHERE c.name %s %s ESCAPE '\' ORDER BY c.name ASC`,
		selectCities, gateway.Dialect.likeOperator(), gateway.Dialect.placeholder(1))

	return gateway.query(ctx, query, containsPattern(name))
}

// Upsert replaces cities sharing a (latitude, longitude) key and inserts the rest
func (gateway *SQLCityCacheGateway) Upsert(ctx context.Context, cities []entity.City) error {
	if len(cities) == 0 {
		return nil
	}

	tx, err := gateway.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, gateway.upsertStatement())
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, city := range cities {
		_, err = stmt.ExecContext(ctx,
			city.Latitude, city.Longitude,
			nullString(city.Country), nullBool(city.IsCapital),
			nullString(city.Name), nullInt(city.Population))
		if err != nil {
			return fmt.Errorf("failed to upsert city (%v, %v): %w", city.Latitude, city.Longitude, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}
	return nil
}

func (gateway *SQLCityCacheGateway) upsertStatement() string {
	placeholders := make([]string, 6)
	for i := range placeholders {
		placeholders[i] = gateway.Dialect.placeholder(i + 1)
	}

	return `INSERT INTO cities (latitude, longitude, country, is_capital, name, population)
		VALUES (` + strings.Join(placeholders, ", ") + `)
		ON CONFLICT (latitude, longitude) DO UPDATE SET
			country = excluded.country,
			is_capital = excluded.is_capital,
			name = excluded.name,
			population = excluded.population`
}

func (gateway *SQLCityCacheGateway) query(ctx context.Context, query string, args ...any) ([]entity.City, error) {
	rows, err := gateway.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cities := make([]entity.City, 0)
	for rows.Next() {
		var (
			city       entity.City
			country    sql.NullString
			isCapital  sql.NullBool
			name       sql.NullString
			population sql.NullInt64
		)
		if err := rows.Scan(&country, &isCapital, &city.Latitude, &city.Longitude, &name, &population); err != nil {
			return nil, err
		}

		if country.Valid {
			city.Country = &country.String
		}
		if isCapital.Valid {
			city.IsCapital = &isCapital.Bool
		}
		if name.Valid {
			city.Name = &name.String
		}
		if population.Valid {
			p := int(population.Int64)
			city.Population = &p
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullBool(value *bool) sql.NullBool {
	if value == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *value, Valid: true}
}

func nullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
