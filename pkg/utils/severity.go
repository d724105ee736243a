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
	"fmt"
	"strings"
)

// SeverityRank ranks an advisory severity for comparison (low=1 ... critical=4).
// "medium" is accepted as an alias of "moderate". Unknown severities rank 0.
func SeverityRank(severity string) int {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "low":
		return 1
	case "moderate", "medium":
		return 2
	case "high":
		return 3
	case "critical":
		return 4
	default:
		return 0
	}
}

// ParseMinSeverity validates a minimum severity threshold and returns its rank.
func ParseMinSeverity(severity string) (int, error) {
	rank := SeverityRank(severity)
	if rank == 0 {
		return 0, fmt.Errorf("invalid severity: '%s'", severity)
	}
	return rank, nil
}
