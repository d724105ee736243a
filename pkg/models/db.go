// SPDX-License-Identifier: GPL-2.0-or-later
/*
 * Copyright (C) 2026 SCANOSS.COM
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 2 of the License, or
 * (at your option) any later version.
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package models

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a requested record is not stored.
var ErrNotFound = errors.New("record not found")

// DBWriteContext runs statements that modify the dependency graph tables on a single connection.
// Reads go through the select context of go-grpc-helper.
type DBWriteContext struct {
	s     *zap.SugaredLogger
	conn  *sqlx.Conn
	trace bool
}

// TxContext runs statements inside a transaction started by DBWriteContext.InTx.
type TxContext struct {
	w  *DBWriteContext
	tx *sqlx.Tx
}

// NewDBWriteContext creates a write context bound to the given connection.
func NewDBWriteContext(s *zap.SugaredLogger, conn *sqlx.Conn, trace bool) *DBWriteContext {
	return &DBWriteContext{s: s, conn: conn, trace: trace}
}

func (w *DBWriteContext) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	w.traceQuery(query, args)
	return w.conn.ExecContext(ctx, query, args...)
}

// InTx runs fn inside a transaction, rolling back if it returns an error.
func (w *DBWriteContext) InTx(ctx context.Context, fn func(tx *TxContext) error) error {
	tx, err := w.conn.BeginTxx(ctx, nil)
	if err != nil {
		w.s.Errorf("Failed to start a transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err = fn(&TxContext{w: w, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			w.s.Warnf("Failed to rollback transaction: %v", rbErr)
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		w.s.Errorf("Failed to commit transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *TxContext) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.w.traceQuery(query, args)
	return t.tx.ExecContext(ctx, query, args...)
}

func (w *DBWriteContext) traceQuery(query string, args []any) {
	if w.trace {
		w.s.Debugf("SQL: %v, args: %v", query, args)
	}
}

// CreateSchema creates the dependency graph tables if they do not already exist.
func CreateSchema(ctx context.Context, s *zap.SugaredLogger, conn *sqlx.Conn) error {
	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		s.Errorf("Failed to create the database schema: %v", err)
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// OpenDB connects to the given database driver/dsn.
func OpenDB(s *zap.SugaredLogger, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		s.Errorf("Failed to open %v database: %v", driver, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// CloseDB closes the specified DB and logs any errors.
func CloseDB(db *sqlx.DB) {
	if db != nil {
		if err := db.Close(); err != nil {
			zap.S().Warnf("Problem closing DB: %v", err)
		}
	}
}

func toNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
