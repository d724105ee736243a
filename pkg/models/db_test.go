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
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/scanoss/go-grpc-helper/pkg/grpc/database"
	zlog "github.com/scanoss/zap-logging-helper/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// sqliteSetup opens an in-memory SQLite database.
func sqliteSetup(t *testing.T) *sqlx.DB {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return db
}

// sqliteConn gets a connection from the pool and creates the schema on it.
func sqliteConn(t *testing.T, ctx context.Context, s *zap.SugaredLogger, db *sqlx.DB) *sqlx.Conn {
	conn, err := db.Connx(ctx)
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	if err = CreateSchema(ctx, s, conn); err != nil {
		t.Fatalf("an error '%s' was not expected when creating the schema", err)
	}
	return conn
}

func testSetup(t *testing.T) (context.Context, *zap.SugaredLogger, *database.DBQueryContext, *DBWriteContext) {
	err := zlog.NewSugaredDevLogger()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a sugared logger", err)
	}
	t.Cleanup(zlog.SyncZap)
	ctx := ctxzap.ToContext(context.Background(), zlog.L)
	s := ctxzap.Extract(ctx).Sugar()
	db := sqliteSetup(t)
	conn := sqliteConn(t, ctx, s, db)
	t.Cleanup(func() {
		database.CloseSQLConnection(conn)
		CloseDB(db)
	})
	return ctx, s, database.NewDBSelectContext(s, nil, conn, true), NewDBWriteContext(s, conn, true)
}

func TestCreateSchemaTwice(t *testing.T) {
	ctx, s, _, w := testSetup(t)
	if err := CreateSchema(ctx, s, w.conn); err != nil {
		t.Errorf("expected schema creation to be idempotent: %v", err)
	}
	if _, err := w.ExecContext(ctx, "SELECT 1 FROM no_such_table;"); err == nil {
		t.Errorf("expected an error querying a missing table")
	}
}

func TestOpenDB(t *testing.T) {
	_, s, _, _ := testSetup(t)
	db, err := OpenDB(s, "sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a database", err)
	}
	CloseDB(db)
	if _, err = OpenDB(s, "no-such-driver", ""); err == nil {
		t.Errorf("expected an error opening an unknown driver")
	}
}

func TestDBWriteContextTrace(t *testing.T) {
	ctx, _, _, w := testSetup(t)
	core, logs := observer.New(zap.DebugLevel)
	traced := NewDBWriteContext(zap.New(core).Sugar(), w.conn, true)
	err := traced.InTx(ctx, func(tx *TxContext) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM dependency_snapshots WHERE id = $1;", "42")
		return err
	})
	if err != nil {
		t.Fatalf("an error '%s' was not expected running a transaction", err)
	}
	if _, err = traced.ExecContext(ctx, "DELETE FROM sboms;"); err != nil {
		t.Fatalf("an error '%s' was not expected running a statement", err)
	}
	if logs.FilterMessageSnippet("DELETE FROM dependency_snapshots").Len() != 1 || logs.FilterMessageSnippet("DELETE FROM sboms").Len() != 1 {
		t.Errorf("expected both statements to be traced, got %v", logs.All())
	}
	quiet := NewDBWriteContext(zap.New(core).Sugar(), w.conn, false)
	if _, err = quiet.ExecContext(ctx, "DELETE FROM dependency_diffs;"); err != nil {
		t.Fatalf("an error '%s' was not expected running a statement", err)
	}
	if logs.FilterMessageSnippet("DELETE FROM dependency_diffs").Len() != 0 {
		t.Errorf("did not expect statements to be traced with tracing disabled")
	}
}
