package database

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Config holds the database connection parameters, loaded from the
// environment at startup.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxIdleMinutes int
	ConnMaxLifeMinutes int
}

// ConfigFromEnv reads connection parameters from the environment.
// DB_USER, DB_PASSWORD and DB_NAME are required; everything else has a
// sensible default. A missing required variable is a startup-time error.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Host:               getEnvOrDefault("DB_HOST", "localhost"),
		Port:               getEnvOrDefault("DB_PORT", "5432"),
		SSLMode:            getEnvOrDefault("DB_SSLMODE", "disable"),
		MaxOpenConns:       getIntEnvOrDefault("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:       getIntEnvOrDefault("DB_MAX_IDLE_CONNS", 25),
		ConnMaxIdleMinutes: getIntEnvOrDefault("DB_CONN_MAX_IDLE_MINUTES", 5),
		ConnMaxLifeMinutes: getIntEnvOrDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30),
	}

	for _, required := range []struct {
		key  string
		dest *string
	}{
		{"DB_USER", &cfg.User},
		{"DB_PASSWORD", &cfg.Password},
		{"DB_NAME", &cfg.Name},
	} {
		value := strings.TrimSpace(os.Getenv(required.key))
		if value == "" {
			return Config{}, fmt.Errorf("required environment variable %s is not set", required.key)
		}
		*required.dest = value
	}

	return cfg, nil
}

// Connect opens the connection pool described by cfg and verifies it with
// a ping. The caller owns the returned handle and is responsible for
// closing it on shutdown.
func Connect(cfg Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleMinutes) * time.Minute)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeMinutes) * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue
	}

	return value
}
