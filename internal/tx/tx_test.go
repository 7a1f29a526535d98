package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newRunner(t *testing.T) (*Runner, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewRunner(sqlxDB), mock, func() { db.Close() }
}

func TestRunner_Commit(t *testing.T) {
	runner, mock, teardown := newRunner(t)
	defer teardown()

	mock.ExpectBegin()
	mock.ExpectCommit()

	fnCalled := false
	err := runner.Do(context.Background(), func(ctx context.Context) error {
		fnCalled = true
		assert.NotNil(t, FromContext(ctx), "fn should receive tx in context")
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, fnCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_RollbackOnError(t *testing.T) {
	runner, mock, teardown := newRunner(t)
	defer teardown()

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("business rule")
	err := runner.Do(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_RollbackOnPanic(t *testing.T) {
	runner, mock, teardown := newRunner(t)
	defer teardown()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = runner.Do(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_BeginError(t *testing.T) {
	runner, _, teardown := newRunner(t)

	// Close db so Begin fails
	teardown()

	err := runner.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run when Begin fails")
		return nil
	})

	assert.Error(t, err)
}

func TestRunner_CommitError(t *testing.T) {
	runner, mock, teardown := newRunner(t)
	defer teardown()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	err := runner.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromContext_Empty(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
}
