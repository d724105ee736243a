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
	"testing"
)

func TestIsValidRequirement(t *testing.T) {
	tests := []struct {
		name        string
		requirement string
		expected    bool
	}{
		// Valid single constraints
		{
			name:        "valid version with greater than",
			requirement: ">1.0.0",
			expected:    true,
		},
		{
			name:        "valid version with less than",
			requirement: "<2.0.0",
			expected:    true,
		},
		{
			name:        "valid version with greater than or equal",
			requirement: ">=1.5.0",
			expected:    true,
		},
		{
			name:        "valid version with less than or equal",
			requirement: "<=3.0.0",
			expected:    true,
		},
		{
			name:        "valid version with tilde",
			requirement: "~1.2.3",
			expected:    true,
		},
		{
			name:        "valid version with caret",
			requirement: "^1.2.3",
			expected:    true,
		},
		{
			name:        "valid version with v prefix",
			requirement: ">v1.0.0",
			expected:    true,
		},
		{
			name:        "valid version without operator",
			requirement: "1.0.0",
			expected:    true,
		},

		// Valid multiple constraints
		{
			name:        "valid multiple constraints",
			requirement: ">=1.0.0, <2.0.0",
			expected:    true,
		},
		{
			name:        "valid multiple constraints with v prefix",
			requirement: ">=v1.0.0, <v2.0.0",
			expected:    true,
		},

		// Invalid constraints
		{
			name:        "empty string",
			requirement: "",
			expected:    false,
		},
		{
			name:        "invalid version format",
			requirement: ">invalid.version",
			expected:    false,
		},
		{
			name:        "invalid semantic version",
			requirement: ">1.0",
			expected:    false,
		},
		{
			name:        "version with invalid characters",
			requirement: ">1.0.0-alpha!",
			expected:    false,
		},
		{
			name:        "empty constraint in multiple",
			requirement: ">=1.0.0, , <2.0.0",
			expected:    false,
		},
		{
			name:        "one invalid constraint in multiple",
			requirement: ">=1.0.0, >invalid, <2.0.0",
			expected:    false,
		},
		{
			name:        "only spaces",
			requirement: "   ",
			expected:    false,
		},
		{
			name:        "only operators without version",
			requirement: ">=",
			expected:    false,
		},

		// Edge cases
		{
			name:        "version with pre-release",
			requirement: ">1.0.0-alpha",
			expected:    true,
		},
		{
			name:        "version with build metadata",
			requirement: ">1.0.0+build.1",
			expected:    true,
		},
		{
			name:        "version with both pre-release and build",
			requirement: ">1.0.0-alpha+build.1",
			expected:    true,
		},
		{
			name:        "multiple constraints with extra spaces",
			requirement: " >= 1.0.0 , < 2.0.0 ",
			expected:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRequirement(tt.requirement)
			if result != tt.expected {
				t.Errorf("IsValidRequirement(%q) = %v, expected %v", tt.requirement, result, tt.expected)
			}
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{name: "lower patch", a: "4.17.20", b: "4.17.21", expected: -1},
		{name: "higher minor numeric", a: "1.10.0", b: "1.9.0", expected: 1},
		{name: "equal with v prefix", a: "v1.2.3", b: "1.2.3", expected: 0},
		{name: "pre-release lower than release", a: "2.0.0-rc.1", b: "2.0.0", expected: -1},
		{name: "non semver falls back to strings", a: "release-b", b: "release-a", expected: 1},
		{name: "mixed falls back to strings", a: "1.0.0", b: "latest", expected: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := CompareVersions(tt.a, tt.b); result != tt.expected {
				t.Errorf("CompareVersions(%q, %q) = %v, expected %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestSatisfiesRequirement(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		requirement string
		expected    bool
	}{
		{name: "inside range", version: "1.5.0", requirement: ">=1.0.0, <2.0.0", expected: true},
		{name: "outside range", version: "2.1.0", requirement: ">=1.0.0, <2.0.0", expected: false},
		{name: "caret", version: "1.9.9", requirement: "^1.2.3", expected: true},
		{name: "exact", version: "v1.0.0", requirement: "1.0.0", expected: true},
		{name: "invalid requirement", version: "1.0.0", requirement: ">1.0", expected: false},
		{name: "invalid version", version: "latest", requirement: ">=1.0.0", expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := SatisfiesRequirement(tt.version, tt.requirement); result != tt.expected {
				t.Errorf("SatisfiesRequirement(%q, %q) = %v, expected %v", tt.version, tt.requirement, result, tt.expected)
			}
		})
	}
}
