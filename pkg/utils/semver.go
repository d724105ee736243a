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

package utils

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// IsValidRequirement validates whether a version requirement string contains valid semantic version constraints.
// It accepts comma-separated constraints with comparison operators (>, <, >=, <=, ~, ^).
// Each constraint must contain a valid semantic version after the operator.
// Returns true if all constraints are valid, false otherwise.
func IsValidRequirement(requirement string) bool {
	constraints := strings.Split(requirement, ",")

	for _, constraint := range constraints {
		constraint = strings.TrimSpace(constraint)
		if constraint == "" {
			return false
		}

		// Extract the version part by removing comparison operators
		version := constraint
		version = strings.TrimLeft(version, "><=~^")
		version = strings.TrimSpace(version)
		version = strings.TrimLeft(version, "v")

		// Validate it's a proper semver
		_, err := semver.StrictNewVersion(version)
		if err != nil {
			return false
		}
	}
	return true
}

// CompareVersions compares two dependency versions.
// Versions that are not semver compliant fall back to a plain string comparison.
// Returns -1, 0 or 1 when a is lower, equal or greater than b.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

// SatisfiesRequirement reports whether the version matches the given requirement.
// A requirement that fails IsValidRequirement or a non semver version never matches.
func SatisfiesRequirement(version, requirement string) bool {
	if !IsValidRequirement(requirement) {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(requirement)
	if err != nil {
		return false
	}
	return c.Check(v)
}
