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

	"github.com/package-url/packageurl-go"
)

func TestPurlEcosystem(t *testing.T) {
	tests := map[string]string{
		"npm":    "npm",
		"pypi":   "pip",
		"golang": "gomod",
		"gem":    "rubygems",
		"github": "actions",
		"Cargo":  "cargo",
		"conan":  "conan",
	}
	for purlType, expected := range tests {
		purl := *packageurl.NewPackageURL(purlType, "", "example", "1.0.0", nil, "")
		if result := PurlEcosystem(purl); result != expected {
			t.Errorf("PurlEcosystem(%q) = %v, expected %v", purlType, result, expected)
		}
	}
}
