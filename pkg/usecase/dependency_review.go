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
	"strings"

	purlhelper "github.com/scanoss/go-purl-helper/pkg"
	"go.uber.org/zap"
	myconfig "scanoss.com/dependency-graph/pkg/config"
	"scanoss.com/dependency-graph/pkg/dtos"
	"scanoss.com/dependency-graph/pkg/utils"
)

type DependencyReviewUseCase struct {
	s      *zap.SugaredLogger
	config *myconfig.ServerConfig
}

// ReviewSummary counts the findings of a dependency review.
type ReviewSummary struct {
	TotalChanges          int
	Added                 int
	Removed               int
	Upgraded              int
	Downgraded            int
	Vulnerable            int
	DeniedLicenses        int
	InvalidPurls          int
	RequirementViolations int
	Unrecognized          int
}

func NewDependencyReview(s *zap.SugaredLogger, config *myconfig.ServerConfig) *DependencyReviewUseCase {
	return &DependencyReviewUseCase{s: s, config: config}
}

// Review takes the changes between two commits and reports version changes, vulnerabilities and policy problems.
// Removed and added entries for the same manifest, ecosystem and name are reported as upgrades or downgrades.
func (d DependencyReviewUseCase) Review(diffs []dtos.DependencyGraphDiff) (dtos.DependencyReviewOutput, ReviewSummary, error) {
	minRank, err := utils.ParseMinSeverity(d.config.Review.MinSeverity)
	if err != nil {
		d.s.Errorf("Invalid minimum severity configured: %v", err)
		return dtos.DependencyReviewOutput{}, ReviewSummary{}, err
	}
	requirements := d.loadRequirements()
	denied := make(map[string]bool)
	for _, l := range d.config.DeniedLicenseList() {
		denied[strings.ToLower(l)] = true
	}
	out := dtos.DependencyReviewOutput{
		Added:                 []dtos.ReviewedDependency{},
		Removed:               []dtos.ReviewedDependency{},
		Upgraded:              []dtos.VersionChange{},
		Downgraded:            []dtos.VersionChange{},
		Vulnerable:            []dtos.VulnerableDependency{},
		DeniedLicenses:        []dtos.ReviewedDependency{},
		InvalidPurls:          []dtos.ReviewedDependency{},
		RequirementViolations: []dtos.RequirementViolation{},
		Unrecognized:          []dtos.ReviewedDependency{},
	}
	if len(diffs) == 0 {
		d.s.Info("Empty list of dependency changes supplied")
	}
	removed := make(map[string][]dtos.DependencyGraphDiff)
	added := make(map[string][]dtos.DependencyGraphDiff)
	seen := make(map[string]bool)
	var keys []string // first-seen order
	for _, diff := range diffs {
		dep := toReviewedDependency(diff)
		if !diff.ChangeType.IsKnown() || !diff.Scope.IsKnown() {
			d.s.Warnf("Unrecognized change type or scope for %v: %v/%v", diff.Name, diff.ChangeType, diff.Scope)
			out.Unrecognized = append(out.Unrecognized, dep)
		}
		if diff.PackageURL != nil {
			if _, err := purlhelper.PurlNameFromString(*diff.PackageURL); err != nil {
				d.s.Debugf("Invalid purl for %v: %v", diff.Name, err)
				out.InvalidPurls = append(out.InvalidPurls, dep)
			}
		}
		key := diffKey(diff)
		switch diff.ChangeType {
		case dtos.ChangeTypeRemoved:
			removed[key] = append(removed[key], diff)
		case dtos.ChangeTypeAdded:
			added[key] = append(added[key], diff)
			d.reviewAddition(diff, dep, minRank, denied, requirements, &out)
		default:
			continue
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		rem, add := removed[key], added[key]
		pairs := min(len(rem), len(add))
		for p := 0; p < pairs; p++ {
			from, to := rem[p], add[p]
			change := dtos.VersionChange{Manifest: to.Manifest, Ecosystem: to.Ecosystem, Name: to.Name,
				FromVersion: from.Version, ToVersion: to.Version}
			switch cmp := utils.CompareVersions(from.Version, to.Version); {
			case cmp < 0:
				out.Upgraded = append(out.Upgraded, change)
			case cmp > 0:
				out.Downgraded = append(out.Downgraded, change)
			}
		}
		for _, r := range rem[pairs:] {
			out.Removed = append(out.Removed, toReviewedDependency(r))
		}
		for _, a := range add[pairs:] {
			out.Added = append(out.Added, toReviewedDependency(a))
		}
	}
	summary := ReviewSummary{
		TotalChanges:          len(diffs),
		Added:                 len(out.Added),
		Removed:               len(out.Removed),
		Upgraded:              len(out.Upgraded),
		Downgraded:            len(out.Downgraded),
		Vulnerable:            len(out.Vulnerable),
		DeniedLicenses:        len(out.DeniedLicenses),
		InvalidPurls:          len(out.InvalidPurls),
		RequirementViolations: len(out.RequirementViolations),
		Unrecognized:          len(out.Unrecognized),
	}
	d.s.Debugf("Review summary: %+v", summary)
	return out, summary, nil
}

// reviewAddition checks a newly added dependency against the vulnerability, license and requirement policies.
func (d DependencyReviewUseCase) reviewAddition(diff dtos.DependencyGraphDiff, dep dtos.ReviewedDependency, minRank int,
	denied map[string]bool, requirements map[string]string, out *dtos.DependencyReviewOutput) {
	var vulns []dtos.Vulnerability
	for _, v := range diff.Vulnerabilities {
		// Severities we cannot rank are always reported
		if rank := utils.SeverityRank(v.Severity); rank == 0 || rank >= minRank {
			vulns = append(vulns, v)
		}
	}
	if len(vulns) > 0 {
		out.Vulnerable = append(out.Vulnerable, dtos.VulnerableDependency{Dependency: dep, Vulnerabilities: vulns})
	}
	if diff.License != nil && len(denied) > 0 {
		for _, id := range licenseIdentifiers(*diff.License) {
			if denied[strings.ToLower(id)] {
				out.DeniedLicenses = append(out.DeniedLicenses, dep)
				break
			}
		}
	}
	if diff.PackageURL == nil || len(requirements) == 0 {
		return
	}
	purlName, err := purlhelper.PurlNameFromString(*diff.PackageURL)
	if err != nil {
		return
	}
	if req, ok := requirements[purlName]; ok && !utils.SatisfiesRequirement(diff.Version, req) {
		out.RequirementViolations = append(out.RequirementViolations, dtos.RequirementViolation{Dependency: dep, Requirement: req})
	}
}

// loadRequirements normalises the configured requirement keys to purl names, skipping invalid entries.
func (d DependencyReviewUseCase) loadRequirements() map[string]string {
	requirements := make(map[string]string)
	for purl, req := range d.config.Review.Requirements {
		purlName, err := purlhelper.PurlNameFromString(purl)
		if err != nil {
			d.s.Warnf("Ignoring requirement for invalid purl %v: %v", purl, err)
			continue
		}
		if !utils.IsValidRequirement(req) {
			d.s.Warnf("Ignoring invalid requirement '%v' for %v", req, purl)
			continue
		}
		requirements[purlName] = req
	}
	return requirements
}

// licenseIdentifiers splits an SPDX license expression into its license ids.
func licenseIdentifiers(expression string) []string {
	var ids []string
	fields := strings.FieldsFunc(expression, func(r rune) bool {
		return r == ' ' || r == '(' || r == ')'
	})
	for _, f := range fields {
		switch strings.ToUpper(f) {
		case "AND", "OR", "WITH":
			continue
		}
		ids = append(ids, f)
	}
	return ids
}

func diffKey(diff dtos.DependencyGraphDiff) string {
	return diff.Manifest + "|" + diff.Ecosystem + "|" + diff.Name
}

func toReviewedDependency(diff dtos.DependencyGraphDiff) dtos.ReviewedDependency {
	dep := dtos.ReviewedDependency{
		Manifest:   diff.Manifest,
		Ecosystem:  diff.Ecosystem,
		Name:       diff.Name,
		Version:    diff.Version,
		ChangeType: string(diff.ChangeType),
		Scope:      string(diff.Scope),
	}
	if diff.PackageURL != nil {
		dep.Purl = *diff.PackageURL
	}
	if diff.License != nil {
		dep.License = *diff.License
	}
	return dep
}
