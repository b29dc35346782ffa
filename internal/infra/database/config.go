package database

import (
	"fmt"

	"city-api/pkg/resource"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverGorm     = "gorm"
)

// Config holds the connection settings under app.db
type Config struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	Username   string
	Password   string
	Database   string
	Schema     string
}

func LoadConfig() Config {
	return Config{
		Driver:     resource.GetStringOrDefault("app.db.driver", DriverSQLite),
		SQLitePath: resource.GetString("app.db.sqlite-path"),
		Host:       resource.GetString("app.db.host"),
		Port:       resource.GetString("app.db.port"),
		Username:   resource.GetString("app.db.username"),
		Password:   resource.GetString("app.db.password"),
		Database:   resource.GetString("app.db.database"),
		Schema:     resource.GetString("app.db.schema"),
	}
}

// PostgresDSN builds the key/value DSN shared by lib/pq and the gorm postgres driver
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.Schema)
}
