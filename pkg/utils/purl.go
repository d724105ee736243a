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

	"github.com/package-url/packageurl-go"
)

// purlEcosystems maps package URL types onto the ecosystem names used by the dependency graph.
var purlEcosystems = map[string]string{
	"cargo":    "cargo",
	"composer": "composer",
	"gem":      "rubygems",
	"github":   "actions",
	"golang":   "gomod",
	"maven":    "maven",
	"npm":      "npm",
	"nuget":    "nuget",
	"pub":      "pub",
	"pypi":     "pip",
	"swift":    "swift",
}

// PurlEcosystem returns the dependency graph ecosystem of a parsed purl, or its type if unmapped.
func PurlEcosystem(purl packageurl.PackageURL) string {
	purlType := strings.ToLower(purl.Type)
	if ecosystem, ok := purlEcosystems[purlType]; ok {
		return ecosystem
	}
	return purlType
}
