package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/aprilmaraat/simple-account-api/internal/logger"
	"github.com/aprilmaraat/simple-account-api/internal/models"
)

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

func (r *UserReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// GetAll returns all users in storage order.
func (r *UserReadRepository) GetAll(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, email, first_name, last_name, password, created_at, updated_at
		FROM users
	`

	var users []models.User
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns the user with the given id, or nil when no such row
// exists. Absence is not an error.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		SELECT id, email, first_name, last_name, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", user,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail reports whether any user holds the given email.
func (r *UserReadRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`

	var exists bool
	err := sqlx.GetContext(ctx, r.executor(ctx), &exists, query, email)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// ExistsByEmailAndPassword reports whether a user matches the exact
// email+password pair.
func (r *UserReadRepository) ExistsByEmailAndPassword(ctx context.Context, email, password string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND password = $2)
	`

	var exists bool
	err := sqlx.GetContext(ctx, r.executor(ctx), &exists, query, email, password)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// ExistsByEmailExcludingID reports whether a user other than id holds the
// given email.
func (r *UserReadRepository) ExistsByEmailExcludingID(ctx context.Context, email string, id int64) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)
	`

	var exists bool
	err := sqlx.GetContext(ctx, r.executor(ctx), &exists, query, email, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email, id},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user and returns the storage-assigned id.
func (r *UserWriteRepository) Save(ctx context.Context, user models.User) (int64, error) {
	const query = `
		INSERT INTO users (email, first_name, last_name, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`
	args := []any{user.Email, user.FirstName, user.LastName, user.Password}

	var id int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &id, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.Email, user.FirstName, user.LastName},
		"result", id,
		"error", err,
	)

	return id, err
}

// Update overwrites first name, last name and password of the row with
// user.ID. The email column is left untouched.
func (r *UserWriteRepository) Update(ctx context.Context, user models.User) error {
	const query = `
		UPDATE users
		SET first_name = $1, last_name = $2, password = $3, updated_at = NOW()
		WHERE id = $4
	`
	args := []any{user.FirstName, user.LastName, user.Password, user.ID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.FirstName, user.LastName, user.ID},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Delete removes the row with the given id.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `
		DELETE FROM users WHERE id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
