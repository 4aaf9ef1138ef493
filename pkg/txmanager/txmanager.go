// Package txmanager передает транзакцию через context.Context,
// чтобы репозитории могли работать как внутри транзакции, так и без неё.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrTransaction возвращается при ошибках begin/commit
var ErrTransaction = errors.New("txmanager: transaction error")

// DBExecutor общий интерфейс *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

// GetExecutor возвращает транзакцию из контекста или fallback, если её нет
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return fallback
}

// Manager управляет транзакциями поверх *sql.DB
type Manager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// Do выполняет fn в транзакции READ COMMITTED.
// Если контекст уже содержит транзакцию, fn выполняется в ней (без вложенного BEGIN).
// Любая ошибка fn или отмена контекста приводит к ROLLBACK.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	return nil
}
