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
	"time"

	"go.uber.org/zap"
)

// DependenciesGraphSnapshot is the platform's answer to a dependency snapshot submission.
type DependenciesGraphSnapshot struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Result    string    `json:"result"` // i.e. SUCCESS, ACCEPTED, INVALID
	Message   string    `json:"message"`
}

// MarshalJSON writes the creation time in UTC.
func (d DependenciesGraphSnapshot) MarshalJSON() ([]byte, error) {
	type snapshot DependenciesGraphSnapshot
	d.CreatedAt = d.CreatedAt.UTC()
	return json.Marshal(snapshot(d))
}

// ParseDependenciesGraphSnapshot converts the input byte array to a DependenciesGraphSnapshot structure.
// The creation time is normalised to UTC.
func ParseDependenciesGraphSnapshot(s *zap.SugaredLogger, input []byte) (DependenciesGraphSnapshot, error) {
	data, err := decode[DependenciesGraphSnapshot](s, input, "dependency snapshot")
	if err != nil {
		return DependenciesGraphSnapshot{}, err
	}
	data.CreatedAt = data.CreatedAt.UTC()
	return data, nil
}
