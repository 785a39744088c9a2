// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taligrayzel/BooksAPI/internal/platform/ctxkey"
	"github.com/taligrayzel/BooksAPI/internal/platform/ctxutil"
)

// DBTX is the query surface shared by [pgxpool.Pool] and [pgx.Tx].
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Conn returns the transaction bound to ctx, or the pool when none is open.
func Conn(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx, ok := ctx.Value(ctxkey.KeyTx).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// TxScope implements txscope.Scope on a pgx pool.
type TxScope struct {
	pool *pgxpool.Pool
}

// NewTxScope creates a TxScope.
func NewTxScope(pool *pgxpool.Pool) *TxScope {
	return &TxScope{pool: pool}
}

// Run executes fn inside a transaction.
//
// The transaction is committed if fn returns nil and rolled back if fn returns
// an error or panics. A Run nested inside another joins the outer transaction.
func (scope *TxScope) Run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(ctxkey.KeyTx).(pgx.Tx); ok {
		return fn(ctx)
	}

	log := ctxutil.GetLogger(ctx)

	tx, err := scope.pool.Begin(ctx)
	if err != nil {
		log.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("postgres: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			// A panic must not leave the connection checked out.
			if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.Any("error", rollbackErr), slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, ctxkey.KeyTx, tx)); err != nil {
		if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			log.Error("failed to roll back transaction",
				slog.Any("rollback_error", rollbackErr), slog.Any("original_error", err))
		} else {
			log.Debug("rolled back transaction", slog.String("error", err.Error()))
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		log.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("postgres: commit transaction: %w", err)
	}

	return nil
}
