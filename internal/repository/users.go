package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"userhub/internal/models"
)

// UserRepository defines the persistence operations for users.
// The concrete implementation issues all SQL; no business rules live here.
// Absence is reported as sql.ErrNoRows and driver errors pass through
// unchanged; the service layer owns translation into domain errors.
type UserRepository interface {
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, params models.UserInput) (*models.User, error)
	Update(ctx context.Context, id int64, params models.UserInput) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, params SearchParams) ([]*models.User, error)
	UpcomingBirthdays(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// SearchParams carries the optional filters for Search.
// Empty fields are not filtered on; provided fields are AND-combined.
type SearchParams struct {
	Name    string
	Surname string
	Email   string
}

// userRepo is the Postgres implementation backed by an injected *sql.DB.
type userRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepository backed by db.
func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, name, surname, email, birthdate, additional_info`

const (
	sqlGetAllUsers = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id`

	sqlGetUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	sqlGetUserByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`

	sqlCreateUser = `
		INSERT INTO users (name, surname, email, birthdate, additional_info)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	sqlUpdateUser = `
		UPDATE users
		SET name = $1, surname = $2, email = $3, birthdate = $4, additional_info = $5
		WHERE id = $6
		RETURNING ` + userColumns

	sqlDeleteUser = `
		DELETE FROM users WHERE id = $1`

	sqlCountUsers = `
		SELECT COUNT(*) FROM users`
)

// GetAll returns every user in insertion order.
func (r *userRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, sqlGetAllUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// GetByID returns the user with the given id, or sql.ErrNoRows.
func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, sqlGetUserByID, id))
}

// GetByEmail returns the user with exactly this email, or sql.ErrNoRows.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, sqlGetUserByEmail, email))
}

// Create inserts a new user and returns it with the assigned id.
func (r *userRepo) Create(ctx context.Context, params models.UserInput) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, sqlCreateUser,
		params.Name, params.Surname, params.Email, params.Birthdate, nullString(params.AdditionalInfo))
	return scanUser(row)
}

// Update overwrites all mutable fields of the user with the given id in a
// single statement and returns the updated record, or sql.ErrNoRows.
func (r *userRepo) Update(ctx context.Context, id int64, params models.UserInput) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, sqlUpdateUser,
		params.Name, params.Surname, params.Email, params.Birthdate, nullString(params.AdditionalInfo), id)
	return scanUser(row)
}

// Delete removes the user permanently. Returns sql.ErrNoRows when no row
// was deleted.
func (r *userRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, sqlDeleteUser, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Search returns users whose fields contain the provided filters,
// case-insensitively. The WHERE clause is built only from non-empty
// filters so omitted parameters do not constrain the result.
func (r *userRepo) Search(ctx context.Context, params SearchParams) ([]*models.User, error) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)
	argIdx := 1

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", column, argIdx))
		args = append(args, "%"+value+"%")
		argIdx++
	}
	addFilter("name", params.Name)
	addFilter("surname", params.Surname)
	addFilter("email", params.Email)

	query := `SELECT ` + userColumns + ` FROM users`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// UpcomingBirthdays returns users whose birthdate month/day falls within
// the next 7 days of today, inclusive. Year of birth is ignored.
func (r *userRepo) UpcomingBirthdays(ctx context.Context) ([]*models.User, error) {
	query, args := birthdayWindowQuery(time.Now())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// birthdayWindowQuery builds the query for the [today .. today+7] window.
// When the window stays inside one month a single BETWEEN suffices; when
// it crosses a month (or year) boundary the tail of the current month and
// the head of the next month are matched separately.
func birthdayWindowQuery(today time.Time) (string, []any) {
	upcoming := today.AddDate(0, 0, 7)

	base := `SELECT ` + userColumns + ` FROM users WHERE `
	if today.Month() == upcoming.Month() {
		return base + `EXTRACT(MONTH FROM birthdate) = $1
			AND EXTRACT(DAY FROM birthdate) BETWEEN $2 AND $3
			ORDER BY id`,
			[]any{int(today.Month()), today.Day(), upcoming.Day()}
	}
	return base + `(EXTRACT(MONTH FROM birthdate) = $1 AND EXTRACT(DAY FROM birthdate) >= $2)
		OR (EXTRACT(MONTH FROM birthdate) = $3 AND EXTRACT(DAY FROM birthdate) <= $4)
		ORDER BY id`,
		[]any{int(today.Month()), today.Day(), int(upcoming.Month()), upcoming.Day()}
}

// Count returns the total number of users.
func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, sqlCountUsers).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// scanUser scans a single user row. Centralising the scan means column
// changes touch exactly one place.
func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var info sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Birthdate, &info); err != nil {
		return nil, err
	}
	if info.Valid {
		u.AdditionalInfo = &info.String
	}
	return u, nil
}

func collectUsers(rows *sql.Rows) ([]*models.User, error) {
	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		var info sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Birthdate, &info); err != nil {
			return nil, fmt.Errorf("repository: scan user: %w", err)
		}
		if info.Valid {
			u.AdditionalInfo = &info.String
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var _ UserRepository = (*userRepo)(nil)
