package database

import (
	"fmt"
	"net/url"

	"backoffice/internal/config"
)

// Config holds database configuration
type Config struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	Schema         string
	MigrationsPath string
}

// NewConfig derives the database configuration from the application configuration
func NewConfig(app *config.Config) *Config {
	return &Config{
		Host:           app.DBHost,
		Port:           app.DBPort,
		User:           app.DBUser,
		Password:       app.DBPassword,
		DBName:         app.DBName,
		SSLMode:        app.DBSSLMode,
		Schema:         app.DBSchema,
		MigrationsPath: app.MigrationsPath,
	}
}

// DSN returns the PostgreSQL connection string used by GORM. The search path
// points at the application schema so table names stay unqualified.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode, c.Schema)
}

// MigrateURL returns the connection URL used by golang-migrate. The
// migrations table stays in the default schema; the migrations create the
// application schema themselves.
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
