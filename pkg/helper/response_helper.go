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

package helper

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"scanoss.com/dependency-graph/pkg/usecase"
)

// StatusCode is the overall outcome of a dependency review.
type StatusCode string

const (
	StatusCodeSuccess               StatusCode = "SUCCESS"
	StatusCodeSucceededWithWarnings StatusCode = "SUCCEEDED_WITH_WARNINGS"
	StatusCodeFailed                StatusCode = "FAILED"
)

const (
	ResponseMessageSuccess = "Success"
	ExitCodeSuccess        = 0
	ExitCodeFailed         = 1
)

// StatusResponse reports the status of a dependency review along with its findings.
type StatusResponse struct {
	Status  StatusCode `json:"status"`
	Message string     `json:"message"`
}

// buildReviewMessages creates a message for each type of review finding.
func buildReviewMessages(summary usecase.ReviewSummary) []string {
	var messages []string
	if summary.Vulnerable > 0 {
		messages = append(messages, fmt.Sprintf("Found %d vulnerable dependency(ies)", summary.Vulnerable))
	}
	if summary.DeniedLicenses > 0 {
		messages = append(messages, fmt.Sprintf("Found %d dependency(ies) with denied licenses", summary.DeniedLicenses))
	}
	if summary.RequirementViolations > 0 {
		messages = append(messages, fmt.Sprintf("Found %d dependency(ies) violating version requirements", summary.RequirementViolations))
	}
	if summary.InvalidPurls > 0 {
		messages = append(messages, fmt.Sprintf("Failed to parse %d purl(s)", summary.InvalidPurls))
	}
	if summary.Unrecognized > 0 {
		messages = append(messages, fmt.Sprintf("Can't recognise the change type or scope of %d dependency(ies)", summary.Unrecognized))
	}
	if summary.Downgraded > 0 {
		messages = append(messages, fmt.Sprintf("Downgraded %d dependency(ies)", summary.Downgraded))
	}
	return messages
}

// determineStatusAndExitCode decides the review status and process exit code.
// Policy findings fail the review; input problems and downgrades only warn.
func determineStatusAndExitCode(s *zap.SugaredLogger, summary usecase.ReviewSummary) (StatusCode, int) {
	totalFailed := summary.Vulnerable + summary.DeniedLicenses + summary.RequirementViolations
	totalWarnings := summary.InvalidPurls + summary.Unrecognized + summary.Downgraded
	s.Debugf("Review Summary - Total: %d, Added: %d, Removed: %d, Upgraded: %d, Downgraded: %d, Failed: %d, Warnings: %d",
		summary.TotalChanges, summary.Added, summary.Removed, summary.Upgraded, summary.Downgraded, totalFailed, totalWarnings)
	switch {
	case totalFailed > 0:
		return StatusCodeFailed, ExitCodeFailed
	case totalWarnings > 0:
		return StatusCodeSucceededWithWarnings, ExitCodeSuccess
	default:
		return StatusCodeSuccess, ExitCodeSuccess
	}
}

// BuildReviewStatus constructs a StatusResponse and the exit code for the given review summary.
func BuildReviewStatus(s *zap.SugaredLogger, summary usecase.ReviewSummary) (StatusResponse, int) {
	statusResp := StatusResponse{Status: StatusCodeSuccess, Message: ResponseMessageSuccess}
	if messages := buildReviewMessages(summary); len(messages) > 0 {
		statusResp.Message = strings.Join(messages, " | ")
	}
	status, exitCode := determineStatusAndExitCode(s, summary)
	statusResp.Status = status
	return statusResp, exitCode
}
