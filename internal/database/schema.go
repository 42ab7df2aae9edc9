package database

import (
	"database/sql"
	"fmt"
)

// CreateTables ensures the users table and its indexes exist.
// The UNIQUE constraint on email is defense-in-depth behind the
// application-level duplicate check.
func CreateTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		surname VARCHAR(50) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		birthdate DATE NOT NULL,
		additional_info VARCHAR(255)
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS users_birthdate_month_day_idx
		ON users (EXTRACT(MONTH FROM birthdate), EXTRACT(DAY FROM birthdate))`); err != nil {
		return fmt.Errorf("ensure users birthdate index: %w", err)
	}

	return nil
}
