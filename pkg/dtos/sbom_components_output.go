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

// SbomComponent is a flattened view of an SPDX package with its package URL details.
type SbomComponent struct {
	SPDXID    string `json:"spdx_id"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	Purl      string `json:"purl,omitempty"`
	PurlName  string `json:"purl_name,omitempty"`
	Ecosystem string `json:"ecosystem,omitempty"`
	License   string `json:"license,omitempty"`
	Root      bool   `json:"root"`
}

// SbomComponentsOutput lists the components of an SBOM.
type SbomComponentsOutput struct {
	DocumentNamespace string          `json:"document_namespace"`
	Components        []SbomComponent `json:"components"`
}
