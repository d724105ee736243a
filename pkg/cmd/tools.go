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

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	gd "github.com/scanoss/go-grpc-helper/pkg/grpc/database"
	zlog "github.com/scanoss/zap-logging-helper/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	myconfig "scanoss.com/dependency-graph/pkg/config"
	"scanoss.com/dependency-graph/pkg/dtos"
	"scanoss.com/dependency-graph/pkg/helper"
	"scanoss.com/dependency-graph/pkg/models"
	"scanoss.com/dependency-graph/pkg/usecase"
)

// Version is set at build time.
var Version = "0.0.0"

const defaultDetectorURL = "https://github.com/scanoss/dependency-graph"

type toolOptions struct {
	configPath    string
	diffPath      string
	sbomPath      string
	snapshotPath  string
	submissionSha string
	submissionRef string
	jobCorrelator string
	jobID         string
	detectorURL   string
	manifest      string
	base          string
	head          string
	store         bool
	outputPath    string
	debug         bool
}

// reviewResponse is the document written after reviewing a dependency comparison.
type reviewResponse struct {
	Status helper.StatusResponse       `json:"status"`
	Review dtos.DependencyReviewOutput `json:"review"`
}

// RunTools runs the dependency graph support tools using the command line arguments.
// It returns the exit code the process should finish with.
func RunTools() (int, error) {
	return runTools(os.Args[1:], os.Stdout)
}

func parseToolOptions(args []string) (toolOptions, error) {
	var opts toolOptions
	fs := flag.NewFlagSet("dependency-graph", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Application config file (JSON or .env)")
	fs.StringVar(&opts.diffPath, "diff", "", "Dependency comparison (JSON array) to review")
	fs.StringVar(&opts.sbomPath, "sbom", "", "Dependency graph SBOM export to convert")
	fs.StringVar(&opts.snapshotPath, "snapshot", "", "Dependency snapshot submission result to validate")
	fs.StringVar(&opts.submissionSha, "submission-sha", "", "Commit sha of the snapshot submission built from -sbom")
	fs.StringVar(&opts.submissionRef, "submission-ref", "", "Git ref of the snapshot submission built from -sbom")
	fs.StringVar(&opts.jobCorrelator, "job-correlator", "dependency-graph-sbom", "Job correlator of the snapshot submission")
	fs.StringVar(&opts.jobID, "job-id", "", "Job id of the snapshot submission (defaults to the sha)")
	fs.StringVar(&opts.detectorURL, "detector-url", defaultDetectorURL, "Detector URL of the snapshot submission")
	fs.StringVar(&opts.manifest, "manifest", "", "Manifest name of the snapshot submission (defaults to the SBOM name)")
	fs.StringVar(&opts.base, "base", "", "Base ref of the comparison to store")
	fs.StringVar(&opts.head, "head", "", "Head ref of the comparison to store")
	fs.BoolVar(&opts.store, "store", false, "Store the decoded input in the configured database")
	fs.StringVar(&opts.outputPath, "output", "", "Output file (defaults to stdout)")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	inputs := 0
	for _, p := range []string{opts.diffPath, opts.sbomPath, opts.snapshotPath} {
		if len(p) > 0 {
			inputs++
		}
	}
	if inputs != 1 {
		return opts, errors.New("please specify exactly one of -diff, -sbom or -snapshot")
	}
	if opts.store && len(opts.diffPath) > 0 && (len(opts.base) == 0 || len(opts.head) == 0) {
		return opts, errors.New("please specify -base and -head to store a dependency comparison")
	}
	if len(opts.submissionSha) > 0 && len(opts.sbomPath) == 0 {
		return opts, errors.New("please specify -sbom to build a snapshot submission")
	}
	return opts, nil
}

func runTools(args []string, stdout io.Writer) (int, error) {
	opts, err := parseToolOptions(args)
	if err != nil {
		return helper.ExitCodeFailed, err
	}
	cfg, err := myconfig.NewServerConfig(myconfig.FeedersFromPath(opts.configPath))
	if err != nil {
		return helper.ExitCodeFailed, err
	}
	if err = setupLogger(cfg, opts.debug); err != nil {
		return helper.ExitCodeFailed, err
	}
	defer zlog.SyncZap()
	ctx := ctxzap.ToContext(context.Background(), zlog.L)
	s := ctxzap.Extract(ctx).Sugar()
	s.Debugf("Running %v (%v)", cfg.App.Name, strings.TrimSpace(Version))

	var storage *usecase.StorageUseCase
	if opts.store {
		db, err := models.OpenDB(s, cfg.Database.Driver, cfg.DatabaseDSN())
		if err != nil {
			return helper.ExitCodeFailed, err
		}
		defer models.CloseDB(db)
		conn, err := db.Connx(ctx)
		if err != nil {
			return helper.ExitCodeFailed, fmt.Errorf("failed to get a database connection: %w", err)
		}
		defer gd.CloseSQLConnection(conn)
		if err = models.CreateSchema(ctx, s, conn); err != nil {
			return helper.ExitCodeFailed, err
		}
		storage = usecase.NewStorage(ctx, s, conn, cfg)
	}
	var output any
	exitCode := helper.ExitCodeSuccess
	switch {
	case len(opts.diffPath) > 0:
		output, exitCode, err = reviewDiffs(s, cfg, storage, opts)
	case len(opts.sbomPath) > 0:
		output, err = convertSbom(s, cfg, storage, opts)
	default:
		output, err = validateSnapshot(s, storage, opts)
	}
	if err != nil {
		return helper.ExitCodeFailed, err
	}
	if err = writeOutput(stdout, opts.outputPath, output); err != nil {
		return helper.ExitCodeFailed, err
	}
	return exitCode, nil
}

// setupLogger loads the development logger when debugging, otherwise the production one
// raised to the configured level.
func setupLogger(cfg *myconfig.ServerConfig, debug bool) error {
	if cfg.App.Debug || debug {
		if err := zlog.NewSugaredDevLogger(); err != nil {
			return fmt.Errorf("failed to load logger: %w", err)
		}
		return nil
	}
	if err := zlog.NewSugaredProdLogger(); err != nil {
		return fmt.Errorf("failed to load logger: %w", err)
	}
	if len(cfg.Logging.DynamicLevel) == 0 {
		return nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.DynamicLevel)); err != nil {
		zlog.S.Warnf("Ignoring invalid log level '%v': %v", cfg.Logging.DynamicLevel, err)
		return nil
	}
	if level > zapcore.InfoLevel {
		zlog.L = zlog.L.WithOptions(zap.IncreaseLevel(level))
		zlog.S = zlog.L.Sugar()
	}
	return nil
}

func reviewDiffs(s *zap.SugaredLogger, cfg *myconfig.ServerConfig, storage *usecase.StorageUseCase, opts toolOptions) (any, int, error) {
	input, err := os.ReadFile(opts.diffPath)
	if err != nil {
		return nil, helper.ExitCodeFailed, fmt.Errorf("failed to read %v: %w", opts.diffPath, err)
	}
	var diffs []dtos.DependencyGraphDiff
	if storage != nil {
		diffs, err = storage.ImportDiffs(opts.base, opts.head, input)
	} else {
		diffs, err = dtos.ParseDependencyGraphDiffs(s, input)
	}
	if err != nil {
		return nil, helper.ExitCodeFailed, err
	}
	review, summary, err := usecase.NewDependencyReview(s, cfg).Review(diffs)
	if err != nil {
		return nil, helper.ExitCodeFailed, err
	}
	status, exitCode := helper.BuildReviewStatus(s, summary)
	s.Infof("Dependency review %v: %v", status.Status, status.Message)
	return reviewResponse{Status: status, Review: review}, exitCode, nil
}

func convertSbom(s *zap.SugaredLogger, cfg *myconfig.ServerConfig, storage *usecase.StorageUseCase, opts toolOptions) (any, error) {
	input, err := os.ReadFile(opts.sbomPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", opts.sbomPath, err)
	}
	var sbom dtos.Sbom
	if storage != nil {
		sbom, err = storage.ImportSbom(input)
	} else {
		var doc dtos.DependencyGraphSbom
		doc, err = dtos.ParseDependencyGraphSbom(s, input)
		sbom = doc.Sbom
	}
	if err != nil {
		return nil, err
	}
	sbomUc := usecase.NewSbom(s)
	if len(opts.submissionSha) == 0 {
		return sbomUc.Components(sbom), nil
	}
	jobID := opts.jobID
	if len(jobID) == 0 {
		jobID = opts.submissionSha
	}
	return sbomUc.BuildSnapshotSubmission(sbom, usecase.SubmissionRequest{
		Sha:      opts.submissionSha,
		Ref:      opts.submissionRef,
		Job:      dtos.Job{Correlator: opts.jobCorrelator, ID: jobID},
		Detector: dtos.Detector{Name: cfg.App.Name, Version: strings.TrimSpace(Version), URL: opts.detectorURL},
		Manifest: opts.manifest,
	})
}

func validateSnapshot(s *zap.SugaredLogger, storage *usecase.StorageUseCase, opts toolOptions) (any, error) {
	input, err := os.ReadFile(opts.snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", opts.snapshotPath, err)
	}
	if storage != nil {
		return storage.ImportSnapshot(input)
	}
	return dtos.ParseDependenciesGraphSnapshot(s, input)
}

// writeOutput encodes the result to the output file, or stdout if none was given.
func writeOutput(stdout io.Writer, path string, output any) error {
	data, err := dtos.Encode(output)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if len(path) == 0 {
		_, err = stdout.Write(data)
		return err
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %v: %w", path, err)
	}
	return nil
}
