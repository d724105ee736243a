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

// DependencyRelationship tells whether a resolved dependency is a direct or transitive one.
type DependencyRelationship string

const (
	RelationshipDirect   DependencyRelationship = "direct"
	RelationshipIndirect DependencyRelationship = "indirect"
)

// IsKnown reports whether the relationship is one of the documented values.
func (r DependencyRelationship) IsKnown() bool {
	return r == RelationshipDirect || r == RelationshipIndirect
}

// SnapshotSubmission is the request body used to submit a dependency snapshot.
// The platform answers with a DependenciesGraphSnapshot.
type SnapshotSubmission struct {
	Version   int                 `json:"version"`
	Job       Job                 `json:"job"`
	Sha       string              `json:"sha"`
	Ref       string              `json:"ref"`
	Detector  Detector            `json:"detector"`
	Metadata  map[string]any      `json:"metadata,omitempty"` // scalar values only
	Manifests map[string]Manifest `json:"manifests,omitempty"`
	Scanned   time.Time           `json:"scanned"`
}

// Job identifies the workflow run that produced a snapshot.
type Job struct {
	Correlator string  `json:"correlator"`
	ID         string  `json:"id"`
	HTMLURL    *string `json:"html_url,omitempty"`
}

// Detector describes the tool that produced a snapshot.
type Detector struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Manifest is a collection of resolved dependencies from a single file.
type Manifest struct {
	Name     string                        `json:"name"`
	File     *ManifestFile                 `json:"file,omitempty"`
	Metadata map[string]any                `json:"metadata,omitempty"`
	Resolved map[string]ResolvedDependency `json:"resolved,omitempty"`
}

// ManifestFile is the location of a manifest inside the repository.
type ManifestFile struct {
	SourceLocation *string `json:"source_location,omitempty"`
}

// ResolvedDependency is one resolved package of a manifest.
type ResolvedDependency struct {
	PackageURL   *string                 `json:"package_url,omitempty"`
	Metadata     map[string]any          `json:"metadata,omitempty"`
	Relationship *DependencyRelationship `json:"relationship,omitempty"`
	Scope        *Scope                  `json:"scope,omitempty"`
	Dependencies *[]string               `json:"dependencies,omitempty"` // package URLs
}

// MarshalJSON writes the scan time in UTC.
func (s SnapshotSubmission) MarshalJSON() ([]byte, error) {
	type submission SnapshotSubmission
	s.Scanned = s.Scanned.UTC()
	return json.Marshal(submission(s))
}

// ParseSnapshotSubmission converts the input byte array to a SnapshotSubmission structure.
func ParseSnapshotSubmission(s *zap.SugaredLogger, input []byte) (SnapshotSubmission, error) {
	data, err := decode[SnapshotSubmission](s, input, "snapshot submission")
	if err != nil {
		return SnapshotSubmission{}, err
	}
	data.Scanned = data.Scanned.UTC()
	return data, nil
}
