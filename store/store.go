// Package store implements persistence on bun over PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/training"
)

// Store runs queries against either the pool or an open transaction.
type Store struct {
	db bun.IDB
}

var _ training.Store = (*Store)(nil)

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// InTx runs fn inside one transaction. Nested calls reuse the open transaction.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx training.Store) error) error {
	db, ok := s.db.(*bun.DB)
	if !ok {
		return fn(ctx, s)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Persistence("begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, &Store{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.Persistence("commit transaction", err)
	}
	committed = true
	return nil
}

// SQLSTATE codes the store translates into domain kinds.
const (
	codeInvalidText = "22P02"
	codeForeignKey  = "23503"
)

// pgCode returns the SQLSTATE of a server error, or "" for anything else.
func pgCode(err error) string {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}
	return ""
}

// validID reports whether id can match a uuid primary or foreign key. Ids
// that cannot are treated as missing rows rather than sent to the server.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// lookup maps a missing row to NotFound and anything else to a PersistenceError.
func lookup(err error, resource, key string) error {
	if errors.Is(err, sql.ErrNoRows) || pgCode(err) == codeInvalidText {
		return apperr.NotFound(resource, key)
	}
	return apperr.Persistence("select "+resource, err)
}

// affected returns NotFound when an UPDATE or DELETE touched no rows.
func affected(res sql.Result, err error, op, resource, key string) error {
	if pgCode(err) == codeInvalidText {
		return apperr.NotFound(resource, key)
	}
	if err != nil {
		return apperr.Persistence(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence(op, err)
	}
	if n == 0 {
		return apperr.NotFound(resource, key)
	}
	return nil
}
