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

package usecase

import (
	"errors"
	"fmt"

	purlhelper "github.com/scanoss/go-purl-helper/pkg"
	"go.uber.org/zap"
	"scanoss.com/dependency-graph/pkg/dtos"
	"scanoss.com/dependency-graph/pkg/utils"
)

type SbomUseCase struct {
	s *zap.SugaredLogger
}

// SubmissionRequest carries the details of a snapshot submission that an SBOM does not hold.
type SubmissionRequest struct {
	Sha            string
	Ref            string
	Job            dtos.Job
	Detector       dtos.Detector
	Manifest       string // defaults to the SBOM name
	SourceLocation string // optional
}

func NewSbom(s *zap.SugaredLogger) *SbomUseCase {
	return &SbomUseCase{s: s}
}

// RootPackages returns the packages the document DESCRIBES.
func (u SbomUseCase) RootPackages(sbom dtos.Sbom) []dtos.Package {
	var roots []dtos.Package
	for _, r := range sbom.RelationshipList() {
		if r.RelationshipType != dtos.RelationshipDescribes || r.SpdxElementID != sbom.SPDXID {
			continue
		}
		if p, ok := sbom.PackageByID(r.RelatedSpdxElement); ok {
			roots = append(roots, p)
		} else {
			u.s.Warnf("SBOM describes an unknown element: %v", r.RelatedSpdxElement)
		}
	}
	return roots
}

// Components flattens the SBOM packages, resolving their package URL details.
func (u SbomUseCase) Components(sbom dtos.Sbom) dtos.SbomComponentsOutput {
	roots := make(map[string]bool)
	for _, p := range u.RootPackages(sbom) {
		roots[p.SPDXID] = true
	}
	out := dtos.SbomComponentsOutput{DocumentNamespace: sbom.DocumentNamespace, Components: []dtos.SbomComponent{}}
	for _, p := range sbom.Packages {
		component := dtos.SbomComponent{SPDXID: p.SPDXID, Name: p.Name, Version: p.VersionInfo, Root: roots[p.SPDXID]}
		switch {
		case p.LicenseConcluded != nil:
			component.License = *p.LicenseConcluded
		case p.LicenseDeclared != nil:
			component.License = *p.LicenseDeclared
		}
		if locator, ok := p.Purl(); ok {
			component.Purl = locator
			if purl, err := purlhelper.PurlFromString(locator); err == nil {
				component.PurlName, _ = purlhelper.PurlNameFromString(locator)
				component.Ecosystem = utils.PurlEcosystem(purl)
			} else {
				u.s.Warnf("Package %v has an invalid purl: %v", p.SPDXID, err)
			}
		}
		out.Components = append(out.Components, component)
	}
	return out
}

// BuildSnapshotSubmission converts an SBOM into a dependency snapshot submission with a single manifest.
// Packages depended on by a root package are direct, the rest indirect. Packages without a purl are skipped.
func (u SbomUseCase) BuildSnapshotSubmission(sbom dtos.Sbom, request SubmissionRequest) (dtos.SnapshotSubmission, error) {
	if len(request.Sha) == 0 || len(request.Ref) == 0 {
		u.s.Errorf("Please specify a valid sha and ref for the submission")
		return dtos.SnapshotSubmission{}, errors.New("please specify a valid sha and ref for the snapshot submission")
	}
	if len(request.Job.Correlator) == 0 || len(request.Job.ID) == 0 {
		return dtos.SnapshotSubmission{}, errors.New("please specify a valid job correlator and id for the snapshot submission")
	}
	if len(request.Detector.Name) == 0 || len(request.Detector.Version) == 0 || len(request.Detector.URL) == 0 {
		return dtos.SnapshotSubmission{}, errors.New("please specify a valid detector for the snapshot submission")
	}
	roots := make(map[string]bool)
	for _, p := range u.RootPackages(sbom) {
		roots[p.SPDXID] = true
	}
	purls := make(map[string]string) // SPDX id -> purl
	for _, p := range sbom.Packages {
		if locator, ok := p.Purl(); ok {
			purls[p.SPDXID] = locator
		}
	}
	dependsOn := make(map[string][]string)
	direct := make(map[string]bool)
	hasEdges := false
	for _, r := range sbom.RelationshipList() {
		if r.RelationshipType != dtos.RelationshipDependsOn {
			continue
		}
		hasEdges = true
		dependsOn[r.SpdxElementID] = append(dependsOn[r.SpdxElementID], r.RelatedSpdxElement)
		if roots[r.SpdxElementID] {
			direct[r.RelatedSpdxElement] = true
		}
	}
	name := request.Manifest
	if len(name) == 0 {
		name = sbom.Name
	}
	manifest := dtos.Manifest{Name: name, Resolved: make(map[string]dtos.ResolvedDependency)}
	if len(request.SourceLocation) > 0 {
		manifest.File = &dtos.ManifestFile{SourceLocation: dtos.Ptr(request.SourceLocation)}
	}
	for _, p := range sbom.Packages {
		if roots[p.SPDXID] {
			continue
		}
		locator, ok := purls[p.SPDXID]
		if !ok {
			u.s.Debugf("Skipping package without purl: %v", p.SPDXID)
			continue
		}
		if _, err := purlhelper.PurlNameFromString(locator); err != nil {
			u.s.Warnf("Skipping package %v with an invalid purl: %v", p.SPDXID, err)
			continue
		}
		resolved := dtos.ResolvedDependency{PackageURL: dtos.Ptr(locator)}
		if hasEdges {
			relationship := dtos.RelationshipIndirect
			if direct[p.SPDXID] {
				relationship = dtos.RelationshipDirect
			}
			resolved.Relationship = &relationship
		}
		var deps []string
		for _, id := range dependsOn[p.SPDXID] {
			if dep, ok := purls[id]; ok {
				deps = append(deps, dep)
			}
		}
		if len(deps) > 0 {
			resolved.Dependencies = &deps
		}
		key := p.Name
		if _, exists := manifest.Resolved[key]; exists {
			key = fmt.Sprintf("%s@%s", p.Name, p.VersionInfo)
		}
		manifest.Resolved[key] = resolved
	}
	submission := dtos.SnapshotSubmission{
		Version:   0,
		Job:       request.Job,
		Sha:       request.Sha,
		Ref:       request.Ref,
		Detector:  request.Detector,
		Manifests: map[string]dtos.Manifest{name: manifest},
		Scanned:   sbom.CreationInfo.Created.UTC(),
	}
	u.s.Debugf("Built snapshot submission with %v resolved dependencies", len(manifest.Resolved))
	return submission, nil
}
