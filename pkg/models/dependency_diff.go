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
	"errors"
	"fmt"

	"github.com/scanoss/go-grpc-helper/pkg/grpc/database"
	"go.uber.org/zap"
	"scanoss.com/dependency-graph/pkg/dtos"
)

type DependencyDiffModel struct {
	ctx context.Context
	s   *zap.SugaredLogger
	q   *database.DBQueryContext
	w   *DBWriteContext
}

type DependencyComparison struct {
	BaseRef   string `db:"base_ref"`
	HeadRef   string `db:"head_ref"`
	DiffCount int    `db:"diff_count"`
}

type DependencyDiff struct {
	DiffIndex           int            `db:"diff_index"`
	ChangeType          string         `db:"change_type"`
	Manifest            string         `db:"manifest"`
	Ecosystem           string         `db:"ecosystem"`
	Name                string         `db:"name"`
	Version             string         `db:"version"`
	PackageURL          sql.NullString `db:"package_url"`
	License             sql.NullString `db:"license"`
	SourceRepositoryURL sql.NullString `db:"source_repository_url"`
	Scope               string         `db:"scope"`
}

type DiffVulnerability struct {
	DiffIndex       int    `db:"diff_index"`
	VulnIndex       int    `db:"vuln_index"`
	Severity        string `db:"severity"`
	AdvisoryGhsaID  string `db:"advisory_ghsa_id"`
	AdvisorySummary string `db:"advisory_summary"`
	AdvisoryURL     string `db:"advisory_url"`
}

// NewDependencyDiffModel creates a new instance of the Dependency Diff Model.
func NewDependencyDiffModel(ctx context.Context, s *zap.SugaredLogger, q *database.DBQueryContext, w *DBWriteContext) *DependencyDiffModel {
	return &DependencyDiffModel{ctx: ctx, s: s, q: q, w: w}
}

// SaveDiffs stores the comparison between base and head, replacing any previously stored one.
func (m *DependencyDiffModel) SaveDiffs(base, head string, diffs []dtos.DependencyGraphDiff) error {
	if len(base) == 0 || len(head) == 0 {
		m.s.Errorf("Please specify a valid base and head to save: %v...%v", base, head)
		return errors.New("please specify a valid base and head to save")
	}
	return m.w.InTx(m.ctx, func(tx *TxContext) error {
		for _, stmt := range []string{
			"DELETE FROM dependency_diff_vulnerabilities WHERE base_ref = $1 AND head_ref = $2;",
			"DELETE FROM dependency_diffs WHERE base_ref = $1 AND head_ref = $2;",
		} {
			if _, err := tx.ExecContext(m.ctx, stmt, base, head); err != nil {
				m.s.Errorf("Failed to clear comparison %v...%v: %v", base, head, err)
				return fmt.Errorf("failed to clear previous comparison: %w", err)
			}
		}
		_, err := tx.ExecContext(m.ctx,
			"INSERT INTO dependency_comparisons (base_ref, head_ref, diff_count) VALUES ($1, $2, $3) "+
				"ON CONFLICT (base_ref, head_ref) DO UPDATE SET diff_count = excluded.diff_count;",
			base, head, len(diffs))
		if err != nil {
			m.s.Errorf("Failed to save comparison %v...%v: %v", base, head, err)
			return fmt.Errorf("failed to save dependency comparison: %w", err)
		}
		for i, d := range diffs {
			_, err = tx.ExecContext(m.ctx,
				"INSERT INTO dependency_diffs (base_ref, head_ref, diff_index, change_type, manifest, ecosystem, name, version, "+
					"package_url, license, source_repository_url, scope) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);",
				base, head, i, string(d.ChangeType), d.Manifest, d.Ecosystem, d.Name, d.Version,
				toNullString(d.PackageURL), toNullString(d.License), toNullString(d.SourceRepositoryURL), string(d.Scope))
			if err != nil {
				m.s.Errorf("Failed to save diff %v (%v) for %v...%v: %v", i, d.Name, base, head, err)
				return fmt.Errorf("failed to save dependency diff: %w", err)
			}
			for j, v := range d.Vulnerabilities {
				_, err = tx.ExecContext(m.ctx,
					"INSERT INTO dependency_diff_vulnerabilities (base_ref, head_ref, diff_index, vuln_index, severity, "+
						"advisory_ghsa_id, advisory_summary, advisory_url) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);",
					base, head, i, j, v.Severity, v.AdvisoryGhsaID, v.AdvisorySummary, v.AdvisoryURL)
				if err != nil {
					m.s.Errorf("Failed to save vulnerability %v of diff %v: %v", v.AdvisoryGhsaID, d.Name, err)
					return fmt.Errorf("failed to save dependency diff vulnerability: %w", err)
				}
			}
		}
		return nil
	})
}

// GetDiffs rebuilds the stored comparison between base and head, in the order it was saved.
// Unknown comparisons return ErrNotFound; a stored comparison without changes returns an empty list.
func (m *DependencyDiffModel) GetDiffs(base, head string) ([]dtos.DependencyGraphDiff, error) {
	if len(base) == 0 || len(head) == 0 {
		m.s.Errorf("Please specify a valid base and head to query: %v...%v", base, head)
		return []dtos.DependencyGraphDiff{}, errors.New("please specify a valid base and head to query")
	}
	var comparisons []DependencyComparison
	err := m.q.SelectContext(m.ctx, &comparisons,
		"SELECT base_ref, head_ref, diff_count FROM dependency_comparisons WHERE base_ref = $1 AND head_ref = $2;", base, head)
	if err != nil {
		m.s.Errorf("Failed to query comparison %v...%v: %v", base, head, err)
		return []dtos.DependencyGraphDiff{}, fmt.Errorf("failed to query the dependency comparisons table: %w", err)
	}
	if len(comparisons) == 0 {
		return []dtos.DependencyGraphDiff{}, fmt.Errorf("comparison %v...%v: %w", base, head, ErrNotFound)
	}
	var rows []DependencyDiff
	err = m.q.SelectContext(m.ctx, &rows,
		"SELECT diff_index, change_type, manifest, ecosystem, name, version, package_url, license, source_repository_url, scope "+
			"FROM dependency_diffs WHERE base_ref = $1 AND head_ref = $2 ORDER BY diff_index;", base, head)
	if err != nil {
		m.s.Errorf("Failed to query diffs for %v...%v: %v", base, head, err)
		return []dtos.DependencyGraphDiff{}, fmt.Errorf("failed to query the dependency diffs table: %w", err)
	}
	if len(rows) != comparisons[0].DiffCount {
		m.s.Warnf("Comparison %v...%v expected %v changes but found %v", base, head, comparisons[0].DiffCount, len(rows))
	}
	var vulns []DiffVulnerability
	err = m.q.SelectContext(m.ctx, &vulns,
		"SELECT diff_index, vuln_index, severity, advisory_ghsa_id, advisory_summary, advisory_url "+
			"FROM dependency_diff_vulnerabilities WHERE base_ref = $1 AND head_ref = $2 ORDER BY diff_index, vuln_index;", base, head)
	if err != nil {
		m.s.Errorf("Failed to query diff vulnerabilities for %v...%v: %v", base, head, err)
		return []dtos.DependencyGraphDiff{}, fmt.Errorf("failed to query the dependency diff vulnerabilities table: %w", err)
	}
	vulnMap := make(map[int][]dtos.Vulnerability)
	for _, v := range vulns {
		vulnMap[v.DiffIndex] = append(vulnMap[v.DiffIndex], dtos.Vulnerability{
			Severity: v.Severity, AdvisoryGhsaID: v.AdvisoryGhsaID, AdvisorySummary: v.AdvisorySummary, AdvisoryURL: v.AdvisoryURL,
		})
	}
	diffs := make([]dtos.DependencyGraphDiff, 0, len(rows))
	for _, r := range rows {
		diff := dtos.DependencyGraphDiff{
			ChangeType:          dtos.ChangeType(r.ChangeType),
			Manifest:            r.Manifest,
			Ecosystem:           r.Ecosystem,
			Name:                r.Name,
			Version:             r.Version,
			PackageURL:          fromNullString(r.PackageURL),
			License:             fromNullString(r.License),
			SourceRepositoryURL: fromNullString(r.SourceRepositoryURL),
			Vulnerabilities:     []dtos.Vulnerability{},
			Scope:               dtos.Scope(r.Scope),
		}
		if v, ok := vulnMap[r.DiffIndex]; ok {
			diff.Vulnerabilities = v
		}
		diffs = append(diffs, diff)
	}
	return diffs, nil
}
