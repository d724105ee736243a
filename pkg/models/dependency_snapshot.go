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
	"errors"
	"fmt"
	"time"

	"github.com/scanoss/go-grpc-helper/pkg/grpc/database"
	"go.uber.org/zap"
	"scanoss.com/dependency-graph/pkg/dtos"
)

type SnapshotModel struct {
	ctx context.Context
	s   *zap.SugaredLogger
	q   *database.DBQueryContext
	w   *DBWriteContext
}

type Snapshot struct {
	ID        string `db:"id"`
	CreatedAt string `db:"created_at"`
	Result    string `db:"result"`
	Message   string `db:"message"`
}

// NewSnapshotModel creates a new instance of the Dependency Snapshot Model.
func NewSnapshotModel(ctx context.Context, s *zap.SugaredLogger, q *database.DBQueryContext, w *DBWriteContext) *SnapshotModel {
	return &SnapshotModel{ctx: ctx, s: s, q: q, w: w}
}

// SaveSnapshot stores (or replaces) a snapshot submission result.
func (m *SnapshotModel) SaveSnapshot(snapshot dtos.DependenciesGraphSnapshot) error {
	if len(snapshot.ID) == 0 {
		m.s.Errorf("Please specify a valid snapshot id")
		return errors.New("please specify a valid snapshot id to save")
	}
	_, err := m.w.ExecContext(m.ctx,
		"INSERT INTO dependency_snapshots (id, created_at, result, message) VALUES ($1, $2, $3, $4) "+
			"ON CONFLICT (id) DO UPDATE SET created_at = excluded.created_at, result = excluded.result, message = excluded.message;",
		snapshot.ID, snapshot.CreatedAt.UTC().Format(time.RFC3339Nano), snapshot.Result, snapshot.Message)
	if err != nil {
		m.s.Errorf("Failed to save snapshot %v: %v", snapshot.ID, err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetSnapshotByID retrieves a stored snapshot submission result.
func (m *SnapshotModel) GetSnapshotByID(id string) (dtos.DependenciesGraphSnapshot, error) {
	if len(id) == 0 {
		m.s.Errorf("Please specify a valid snapshot id")
		return dtos.DependenciesGraphSnapshot{}, errors.New("please specify a valid snapshot id to query")
	}
	var rows []Snapshot
	err := m.q.SelectContext(m.ctx, &rows,
		"SELECT id, created_at, result, message FROM dependency_snapshots WHERE id = $1;", id)
	if err != nil {
		m.s.Errorf("Failed to query snapshot %v: %v", id, err)
		return dtos.DependenciesGraphSnapshot{}, fmt.Errorf("failed to query the dependency snapshots table: %w", err)
	}
	if len(rows) == 0 {
		return dtos.DependenciesGraphSnapshot{}, fmt.Errorf("snapshot %v: %w", id, ErrNotFound)
	}
	row := rows[0]
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		m.s.Errorf("Stored snapshot %v has an invalid creation time '%v': %v", id, row.CreatedAt, err)
		return dtos.DependenciesGraphSnapshot{}, fmt.Errorf("invalid stored creation time: %w", err)
	}
	return dtos.DependenciesGraphSnapshot{ID: row.ID, CreatedAt: createdAt.UTC(), Result: row.Result, Message: row.Message}, nil
}
