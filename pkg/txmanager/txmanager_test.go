package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_DoCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE test_drive_bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := NewTransactionManager(db)
	err = m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, IsInTransaction(ctx))
		_, execErr := GetExecutor(ctx, db).ExecContext(ctx, "UPDATE test_drive_bookings SET status = 'CANCELLED'")
		return execErr
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_DoRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	m := NewTransactionManager(db)
	err = m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_DoReusesOuterTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	m := NewTransactionManager(db)
	err = m.Do(context.Background(), func(outer context.Context) error {
		return m.Do(outer, func(inner context.Context) error {
			assert.Equal(t, GetExecutor(outer, db), GetExecutor(inner, db))
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_FallsBackWithoutTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.False(t, IsInTransaction(context.Background()))
	assert.Equal(t, DBExecutor(db), GetExecutor(context.Background(), db))
}
