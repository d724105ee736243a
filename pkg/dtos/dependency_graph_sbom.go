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

// SPDX relationship types used when walking an SBOM.
const (
	RelationshipDescribes = "DESCRIBES"
	RelationshipDependsOn = "DEPENDS_ON"
)

// External reference values identifying a package URL.
const (
	ReferenceCategoryPackageManager = "PACKAGE-MANAGER"
	ReferenceTypePurl               = "purl"
)

// DependencyGraphSbom wraps the SPDX document exported by the platform.
type DependencyGraphSbom struct {
	Sbom Sbom `json:"sbom"`
}

// Sbom is an SPDX software bill of materials.
type Sbom struct {
	SPDXID            string          `json:"SPDXID"`
	SpdxVersion       string          `json:"spdxVersion"`
	Comment           *string         `json:"comment,omitempty"`
	CreationInfo      CreationInfo    `json:"creationInfo"`
	Name              string          `json:"name"`
	DataLicense       string          `json:"dataLicense"`
	DocumentNamespace string          `json:"documentNamespace"`
	Packages          []Package       `json:"packages"`
	Relationships     *[]Relationship `json:"relationships,omitempty"`
}

// Package is an SPDX package entry.
type Package struct {
	SPDXID           string         `json:"SPDXID"`
	Name             string         `json:"name"`
	VersionInfo      string         `json:"versionInfo"`
	DownloadLocation string         `json:"downloadLocation"`
	FilesAnalyzed    bool           `json:"filesAnalyzed"`
	LicenseConcluded *string        `json:"licenseConcluded,omitempty"`
	LicenseDeclared  *string        `json:"licenseDeclared,omitempty"`
	Supplier         *string        `json:"supplier,omitempty"`
	CopyrightText    *string        `json:"copyrightText,omitempty"`
	ExternalRefs     *[]ExternalRef `json:"externalRefs,omitempty"`
}

// CreationInfo holds who created the document and when.
type CreationInfo struct {
	Created  time.Time `json:"created"`
	Creators []string  `json:"creators"` // i.e. "Tool: GitHub.com-Dependency-Graph"
}

// ExternalRef points a package at an external identifier, usually a purl.
type ExternalRef struct {
	ReferenceCategory string `json:"referenceCategory"`
	ReferenceLocator  string `json:"referenceLocator"`
	ReferenceType     string `json:"referenceType"`
}

// Relationship is a directed SPDX edge between two element ids.
type Relationship struct {
	RelationshipType   string `json:"relationshipType"`
	SpdxElementID      string `json:"spdxElementId"`
	RelatedSpdxElement string `json:"relatedSpdxElement"`
}

// MarshalJSON always writes the package list, even when it was never populated.
func (s Sbom) MarshalJSON() ([]byte, error) {
	type sbom Sbom
	if s.Packages == nil {
		s.Packages = []Package{}
	}
	return json.Marshal(sbom(s))
}

// MarshalJSON always writes the creators list, even when it was never populated.
// The creation time is written in UTC.
func (c CreationInfo) MarshalJSON() ([]byte, error) {
	type creationInfo CreationInfo
	c.Created = c.Created.UTC()
	if c.Creators == nil {
		c.Creators = []string{}
	}
	return json.Marshal(creationInfo(c))
}

// PackageByID returns the package with the given SPDX id.
func (s Sbom) PackageByID(spdxID string) (Package, bool) {
	for _, p := range s.Packages {
		if p.SPDXID == spdxID {
			return p, true
		}
	}
	return Package{}, false
}

// RelationshipList returns the relationships of the document, or nil if there are none.
func (s Sbom) RelationshipList() []Relationship {
	if s.Relationships == nil {
		return nil
	}
	return *s.Relationships
}

// Purl returns the first package URL external reference of the package.
func (p Package) Purl() (string, bool) {
	if p.ExternalRefs == nil {
		return "", false
	}
	for _, ref := range *p.ExternalRefs {
		if ref.ReferenceType == ReferenceTypePurl {
			return ref.ReferenceLocator, true
		}
	}
	return "", false
}

// ParseDependencyGraphSbom converts the input byte array to a DependencyGraphSbom structure.
// The creation time is normalised to UTC.
func ParseDependencyGraphSbom(s *zap.SugaredLogger, input []byte) (DependencyGraphSbom, error) {
	data, err := decode[DependencyGraphSbom](s, input, "SBOM")
	if err != nil {
		return DependencyGraphSbom{}, err
	}
	data.Sbom.CreationInfo.Created = data.Sbom.CreationInfo.Created.UTC()
	return data, nil
}
