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

package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/scanoss/go-grpc-helper/pkg/grpc/database"
	purlhelper "github.com/scanoss/go-purl-helper/pkg"
	"go.uber.org/zap"
	"scanoss.com/dependency-graph/pkg/dtos"
)

type SbomModel struct {
	ctx context.Context
	s   *zap.SugaredLogger
	q   *database.DBQueryContext
	w   *DBWriteContext
}

type SbomPackage struct {
	DocumentNamespace string         `db:"document_namespace"`
	SPDXID            string         `db:"spdx_id"`
	Name              string         `db:"name"`
	VersionInfo       string         `db:"version_info"`
	Purl              sql.NullString `db:"purl"`
	PurlName          sql.NullString `db:"purl_name"`
	LicenseConcluded  sql.NullString `db:"license_concluded"`
	LicenseDeclared   sql.NullString `db:"license_declared"`
}

// NewSbomModel creates a new instance of the SBOM Model.
func NewSbomModel(ctx context.Context, s *zap.SugaredLogger, q *database.DBQueryContext, w *DBWriteContext) *SbomModel {
	return &SbomModel{ctx: ctx, s: s, q: q, w: w}
}

// SaveSbom stores the SPDX document keyed by its namespace and indexes its packages by purl.
func (m *SbomModel) SaveSbom(sbom dtos.Sbom) error {
	if len(sbom.DocumentNamespace) == 0 {
		m.s.Errorf("Please specify an SBOM with a document namespace")
		return errors.New("please specify an SBOM with a valid document namespace to save")
	}
	document, err := dtos.Encode(dtos.DependencyGraphSbom{Sbom: sbom})
	if err != nil {
		return err
	}
	ns := sbom.DocumentNamespace
	return m.w.InTx(m.ctx, func(tx *TxContext) error {
		_, err := tx.ExecContext(m.ctx,
			"INSERT INTO sboms (document_namespace, spdx_id, name, spdx_version, created, document) VALUES ($1, $2, $3, $4, $5, $6) "+
				"ON CONFLICT (document_namespace) DO UPDATE SET spdx_id = excluded.spdx_id, name = excluded.name, "+
				"spdx_version = excluded.spdx_version, created = excluded.created, document = excluded.document;",
			ns, sbom.SPDXID, sbom.Name, sbom.SpdxVersion, sbom.CreationInfo.Created.UTC().Format(time.RFC3339Nano), string(document))
		if err != nil {
			m.s.Errorf("Failed to save SBOM %v: %v", ns, err)
			return fmt.Errorf("failed to save sbom: %w", err)
		}
		if _, err = tx.ExecContext(m.ctx, "DELETE FROM sbom_packages WHERE document_namespace = $1;", ns); err != nil {
			m.s.Errorf("Failed to clear SBOM packages for %v: %v", ns, err)
			return fmt.Errorf("failed to clear sbom packages: %w", err)
		}
		for _, p := range sbom.Packages {
			var purl, purlName *string
			if locator, ok := p.Purl(); ok {
				purl = &locator
				if name, err := purlhelper.PurlNameFromString(locator); err == nil {
					purlName = &name
				} else {
					m.s.Warnf("Package %v has an invalid purl '%v': %v", p.SPDXID, locator, err)
				}
			}
			_, err = tx.ExecContext(m.ctx,
				"INSERT INTO sbom_packages (document_namespace, spdx_id, name, version_info, purl, purl_name, license_concluded, license_declared) "+
					"VALUES ($1, $2, $3, $4, $5, $6, $7, $8);",
				ns, p.SPDXID, p.Name, p.VersionInfo, toNullString(purl), toNullString(purlName),
				toNullString(p.LicenseConcluded), toNullString(p.LicenseDeclared))
			if err != nil {
				m.s.Errorf("Failed to save SBOM package %v for %v: %v", p.SPDXID, ns, err)
				return fmt.Errorf("failed to save sbom package: %w", err)
			}
		}
		return nil
	})
}

// GetSbomByNamespace retrieves a stored SPDX document.
func (m *SbomModel) GetSbomByNamespace(namespace string) (dtos.Sbom, error) {
	if len(namespace) == 0 {
		m.s.Errorf("Please specify a valid document namespace")
		return dtos.Sbom{}, errors.New("please specify a valid document namespace to query")
	}
	var documents []string
	err := m.q.SelectContext(m.ctx, &documents, "SELECT document FROM sboms WHERE document_namespace = $1;", namespace)
	if err != nil {
		m.s.Errorf("Failed to query SBOM %v: %v", namespace, err)
		return dtos.Sbom{}, fmt.Errorf("failed to query the sboms table: %w", err)
	}
	if len(documents) == 0 {
		return dtos.Sbom{}, fmt.Errorf("sbom %v: %w", namespace, ErrNotFound)
	}
	doc, err := dtos.ParseDependencyGraphSbom(m.s, []byte(documents[0]))
	if err != nil {
		return dtos.Sbom{}, err
	}
	return doc.Sbom, nil
}

// GetPackagesByPurlName lists every stored SBOM package matching the purl (version is ignored).
func (m *SbomModel) GetPackagesByPurlName(purl string) ([]SbomPackage, error) {
	purlName, err := purlhelper.PurlNameFromString(purl)
	if err != nil {
		m.s.Errorf("Please specify a valid purl to query: %v", err)
		return []SbomPackage{}, err
	}
	var packages []SbomPackage
	err = m.q.SelectContext(m.ctx, &packages,
		"SELECT document_namespace, spdx_id, name, version_info, purl, purl_name, license_concluded, license_declared "+
			"FROM sbom_packages WHERE purl_name = $1 ORDER BY document_namespace, spdx_id;", purlName)
	if err != nil {
		m.s.Errorf("Failed to query SBOM packages for %v: %v", purlName, err)
		return []SbomPackage{}, fmt.Errorf("failed to query the sbom packages table: %w", err)
	}
	return packages, nil
}
