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

// DependencyReviewOutput is the result of reviewing the dependency changes between two commits.
type DependencyReviewOutput struct {
	Added                 []ReviewedDependency   `json:"added"`
	Removed               []ReviewedDependency   `json:"removed"`
	Upgraded              []VersionChange        `json:"upgraded"`
	Downgraded            []VersionChange        `json:"downgraded"`
	Vulnerable            []VulnerableDependency `json:"vulnerable"`
	DeniedLicenses        []ReviewedDependency   `json:"denied_licenses"`
	InvalidPurls          []ReviewedDependency   `json:"invalid_purls"`
	RequirementViolations []RequirementViolation `json:"requirement_violations"`
	Unrecognized          []ReviewedDependency   `json:"unrecognized"`
}

// ReviewedDependency is a diff entry as it appears in a review bucket.
type ReviewedDependency struct {
	Manifest   string `json:"manifest"`
	Ecosystem  string `json:"ecosystem"`
	Name       string `json:"name"`
	Version    string `json:"version"`
	Purl       string `json:"purl,omitempty"`
	License    string `json:"license,omitempty"`
	ChangeType string `json:"change_type"`
	Scope      string `json:"scope"`
}

// VersionChange pairs the removed and added versions of a dependency in the same manifest.
type VersionChange struct {
	Manifest    string `json:"manifest"`
	Ecosystem   string `json:"ecosystem"`
	Name        string `json:"name"`
	FromVersion string `json:"from_version"`
	ToVersion   string `json:"to_version"`
}

// VulnerableDependency is an added dependency with known advisories.
type VulnerableDependency struct {
	Dependency      ReviewedDependency `json:"dependency"`
	Vulnerabilities []Vulnerability    `json:"vulnerabilities"`
}

// RequirementViolation is an added dependency whose version falls outside the configured constraint.
type RequirementViolation struct {
	Dependency  ReviewedDependency `json:"dependency"`
	Requirement string             `json:"requirement"`
}
