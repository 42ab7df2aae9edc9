package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"userhub/internal/models"
	"userhub/internal/repository"
)

// UserService enforces the invariants the repository does not: email
// uniqueness and record existence. It is the sole translator from
// low-level absence/failure into the domain error taxonomy.
type UserService struct {
	repo repository.UserRepository
}

// NewUserService creates a UserService over the given repository.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetUsers returns all users in insertion order.
func (s *UserService) GetUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAll(ctx)
}

// GetUser returns the user with the given id or ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUser persists a new user. Fails with ErrDuplicateEmail when the
// email is already taken. The pre-check is check-then-act, so a lost race
// between two concurrent creates is still caught by the storage-level
// unique constraint and reported as the same domain error.
func (s *UserService) CreateUser(ctx context.Context, input models.UserInput) (*models.User, error) {
	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user, err := s.repo.Create(ctx, input)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser overwrites all mutable fields of an existing user.
// Fails with ErrUserNotFound when the id does not exist, and with
// ErrDuplicateEmail when the new email belongs to a different user.
// Keeping the user's own email is never a collision.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input models.UserInput) (*models.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != existing.Email {
		if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
			return nil, ErrDuplicateEmail
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrUserNotFound
		case isUniqueViolation(err):
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes the user permanently or fails with ErrUserNotFound.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// SearchUsers delegates to the repository; no additional rules apply.
func (s *UserService) SearchUsers(ctx context.Context, params repository.SearchParams) ([]*models.User, error) {
	return s.repo.Search(ctx, params)
}

// UpcomingBirthdays delegates to the repository.
func (s *UserService) UpcomingBirthdays(ctx context.Context) ([]*models.User, error) {
	return s.repo.UpcomingBirthdays(ctx)
}

// CountUsers reports the total number of users (used by monitoring).
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// isUniqueViolation reports whether err is a Postgres unique_violation
// (SQLSTATE 23505). The storage constraint is treated as the
// authoritative duplicate-email signal when the pre-check races.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
