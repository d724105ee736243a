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
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/scanoss/go-grpc-helper/pkg/grpc/database"
	"go.uber.org/zap"
	myconfig "scanoss.com/dependency-graph/pkg/config"
	"scanoss.com/dependency-graph/pkg/dtos"
	"scanoss.com/dependency-graph/pkg/models"
)

type StorageUseCase struct {
	ctx       context.Context
	s         *zap.SugaredLogger
	snapshots *models.SnapshotModel
	diffs     *models.DependencyDiffModel
	sboms     *models.SbomModel
}

func NewStorage(ctx context.Context, s *zap.SugaredLogger, conn *sqlx.Conn, config *myconfig.ServerConfig) *StorageUseCase {
	q := database.NewDBSelectContext(s, nil, conn, config.Database.Trace)
	w := models.NewDBWriteContext(s, conn, config.Database.Trace)
	return &StorageUseCase{ctx: ctx, s: s,
		snapshots: models.NewSnapshotModel(ctx, s, q, w),
		diffs:     models.NewDependencyDiffModel(ctx, s, q, w),
		sboms:     models.NewSbomModel(ctx, s, q, w),
	}
}

// ImportDiffs decodes a dependency comparison and stores it for base...head.
func (u StorageUseCase) ImportDiffs(base, head string, input []byte) ([]dtos.DependencyGraphDiff, error) {
	diffs, err := dtos.ParseDependencyGraphDiffs(u.s, input)
	if err != nil {
		return nil, err
	}
	if err = u.diffs.SaveDiffs(base, head, diffs); err != nil {
		return nil, err
	}
	u.s.Infof("Stored %v dependency changes for %v...%v", len(diffs), base, head)
	return diffs, nil
}

// ExportDiffs encodes a stored dependency comparison.
func (u StorageUseCase) ExportDiffs(base, head string) ([]byte, error) {
	diffs, err := u.diffs.GetDiffs(base, head)
	if err != nil {
		return nil, err
	}
	return dtos.Encode(diffs)
}

// ImportSnapshot decodes a snapshot submission result and stores it.
func (u StorageUseCase) ImportSnapshot(input []byte) (dtos.DependenciesGraphSnapshot, error) {
	snapshot, err := dtos.ParseDependenciesGraphSnapshot(u.s, input)
	if err != nil {
		return dtos.DependenciesGraphSnapshot{}, err
	}
	if err = u.snapshots.SaveSnapshot(snapshot); err != nil {
		return dtos.DependenciesGraphSnapshot{}, err
	}
	u.s.Infof("Stored snapshot %v (%v)", snapshot.ID, snapshot.Result)
	return snapshot, nil
}

// GetSnapshot returns a stored snapshot submission result.
func (u StorageUseCase) GetSnapshot(id string) (dtos.DependenciesGraphSnapshot, error) {
	return u.snapshots.GetSnapshotByID(id)
}

// ImportSbom decodes an SBOM export and stores it.
func (u StorageUseCase) ImportSbom(input []byte) (dtos.Sbom, error) {
	doc, err := dtos.ParseDependencyGraphSbom(u.s, input)
	if err != nil {
		return dtos.Sbom{}, err
	}
	if err = u.sboms.SaveSbom(doc.Sbom); err != nil {
		return dtos.Sbom{}, err
	}
	u.s.Infof("Stored SBOM %v with %v packages", doc.Sbom.DocumentNamespace, len(doc.Sbom.Packages))
	return doc.Sbom, nil
}

// ExportSbom encodes a stored SBOM in its export envelope.
func (u StorageUseCase) ExportSbom(namespace string) ([]byte, error) {
	sbom, err := u.sboms.GetSbomByNamespace(namespace)
	if err != nil {
		return nil, err
	}
	return dtos.Encode(dtos.DependencyGraphSbom{Sbom: sbom})
}

// FindPackages lists the stored SBOM packages matching a purl (any version).
func (u StorageUseCase) FindPackages(purl string) ([]models.SbomPackage, error) {
	return u.sboms.GetPackagesByPurlName(purl)
}
