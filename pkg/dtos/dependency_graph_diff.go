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

package dtos

import (
	"encoding/json"

	"go.uber.org/zap"
)

// ChangeType tells whether a dependency was added or removed between two commits.
// Values the platform adds in the future are kept verbatim.
type ChangeType string

const (
	ChangeTypeAdded   ChangeType = "added"
	ChangeTypeRemoved ChangeType = "removed"
)

// IsKnown reports whether the change type is one of the documented values.
func (c ChangeType) IsKnown() bool {
	return c == ChangeTypeAdded || c == ChangeTypeRemoved
}

// Scope is the dependency scope reported by the platform.
// As with ChangeType, unknown values are kept verbatim.
type Scope string

const (
	ScopeUnknown     Scope = "unknown"
	ScopeRuntime     Scope = "runtime"
	ScopeDevelopment Scope = "development"
)

// IsKnown reports whether the scope is one of the documented values.
func (s Scope) IsKnown() bool {
	switch s {
	case ScopeUnknown, ScopeRuntime, ScopeDevelopment:
		return true
	}
	return false
}

// DependencyGraphDiff is a single dependency change in the comparison of two commits.
type DependencyGraphDiff struct {
	ChangeType          ChangeType      `json:"change_type"`
	Manifest            string          `json:"manifest"`
	Ecosystem           string          `json:"ecosystem"`
	Name                string          `json:"name"`
	Version             string          `json:"version"`
	PackageURL          *string         `json:"package_url,omitempty"`
	License             *string         `json:"license,omitempty"`
	SourceRepositoryURL *string         `json:"source_repository_url,omitempty"`
	Vulnerabilities     []Vulnerability `json:"vulnerabilities"`
	Scope               Scope           `json:"scope"`
}

// Vulnerability is an advisory affecting a dependency in a diff.
type Vulnerability struct {
	Severity        string `json:"severity"`
	AdvisoryGhsaID  string `json:"advisory_ghsa_id"`
	AdvisorySummary string `json:"advisory_summary"`
	AdvisoryURL     string `json:"advisory_url"`
}

// MarshalJSON always writes the vulnerability list, even when it was never populated.
func (d DependencyGraphDiff) MarshalJSON() ([]byte, error) {
	type diff DependencyGraphDiff
	if d.Vulnerabilities == nil {
		d.Vulnerabilities = []Vulnerability{}
	}
	return json.Marshal(diff(d))
}

// ParseDependencyGraphDiffs converts a dependency comparison (JSON array) into a list of diffs.
func ParseDependencyGraphDiffs(s *zap.SugaredLogger, input []byte) ([]DependencyGraphDiff, error) {
	return decode[[]DependencyGraphDiff](s, input, "dependency graph diff")
}

// ParseDependencyGraphDiff converts a single diff entry.
func ParseDependencyGraphDiff(s *zap.SugaredLogger, input []byte) (DependencyGraphDiff, error) {
	return decode[DependencyGraphDiff](s, input, "dependency graph diff")
}
