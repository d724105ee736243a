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
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

const githubSbom = `{
  "sbom": {
    "SPDXID": "SPDXRef-DOCUMENT",
    "spdxVersion": "SPDX-2.3",
    "creationInfo": {
      "created": "2024-05-02T10:15:30+02:00",
      "creators": ["Tool: GitHub.com-Dependency-Graph"]
    },
    "name": "com.github.scanoss/engine",
    "dataLicense": "CC0-1.0",
    "documentDescribes": ["SPDXRef-com.github.scanoss-engine"],
    "documentNamespace": "https://github.com/scanoss/engine/dependency_graph/sbom-3b12a0c6a3f1e",
    "packages": [
      {
        "SPDXID": "SPDXRef-com.github.scanoss-engine",
        "name": "com.github.scanoss/engine",
        "versionInfo": "",
        "downloadLocation": "git+https://github.com/scanoss/engine",
        "filesAnalyzed": false,
        "licenseDeclared": "GPL-2.0",
        "externalRefs": [
          {
            "referenceCategory": "PACKAGE-MANAGER",
            "referenceLocator": "pkg:github/scanoss/engine",
            "referenceType": "purl"
          }
        ]
      },
      {
        "SPDXID": "SPDXRef-npm-lodash-4.17.21",
        "name": "npm:lodash",
        "versionInfo": "4.17.21",
        "downloadLocation": "NOASSERTION",
        "filesAnalyzed": false,
        "licenseConcluded": "MIT",
        "supplier": "Organization: lodash",
        "copyrightText": "Copyright OpenJS Foundation",
        "externalRefs": []
      }
    ],
    "relationships": [
      {
        "relationshipType": "DESCRIBES",
        "spdxElementId": "SPDXRef-DOCUMENT",
        "relatedSpdxElement": "SPDXRef-com.github.scanoss-engine"
      },
      {
        "relationshipType": "DEPENDS_ON",
        "spdxElementId": "SPDXRef-com.github.scanoss-engine",
        "relatedSpdxElement": "SPDXRef-npm-lodash-4.17.21"
      }
    ]
  }
}`

func TestParseDependencyGraphSbom(t *testing.T) {
	s := testLogger(t)
	doc, err := ParseDependencyGraphSbom(s, []byte(githubSbom))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when parsing input json", err)
	}
	sbom := doc.Sbom
	if sbom.SPDXID != "SPDXRef-DOCUMENT" || sbom.SpdxVersion != "SPDX-2.3" || sbom.DataLicense != "CC0-1.0" {
		t.Errorf("corrupted unmarshalled data: %+v", sbom)
	}
	if sbom.Comment != nil {
		t.Errorf("expected comment to be absent")
	}
	expectedCreated := time.Date(2024, 5, 2, 8, 15, 30, 0, time.UTC)
	if !sbom.CreationInfo.Created.Equal(expectedCreated) || sbom.CreationInfo.Created.Location() != time.UTC {
		t.Errorf("expected creation time %v in UTC, got %v", expectedCreated, sbom.CreationInfo.Created)
	}
	if len(sbom.Packages) != 2 || len(sbom.RelationshipList()) != 2 {
		t.Fatalf("unexpected packages/relationships: %+v", sbom)
	}
	root := sbom.Packages[0]
	if root.LicenseConcluded != nil || root.LicenseDeclared == nil || *root.LicenseDeclared != "GPL-2.0" {
		t.Errorf("unexpected licenses for the root package: %+v", root)
	}
	if purl, ok := root.Purl(); !ok || purl != "pkg:github/scanoss/engine" {
		t.Errorf("expected the root purl, got '%v'", purl)
	}
	lodash, ok := sbom.PackageByID("SPDXRef-npm-lodash-4.17.21")
	if !ok {
		t.Fatalf("expected to find the lodash package")
	}
	if lodash.ExternalRefs == nil || len(*lodash.ExternalRefs) != 0 {
		t.Errorf("expected an explicitly empty external ref list")
	}
	if _, ok = lodash.Purl(); ok {
		t.Errorf("did not expect a purl for lodash")
	}
	if _, ok = sbom.PackageByID("SPDXRef-missing"); ok {
		t.Errorf("did not expect to find a missing package")
	}
}

func TestDependencyGraphSbomRoundTrip(t *testing.T) {
	s := testLogger(t)
	doc, err := ParseDependencyGraphSbom(s, []byte(githubSbom))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when parsing input json", err)
	}
	encoded, err := Encode(doc)
	if err != nil {
		t.Fatalf("an error '%s' was not expected when encoding", err)
	}
	out := string(encoded)
	if !strings.Contains(out, `"SPDXID":"SPDXRef-DOCUMENT"`) {
		t.Errorf("expected the SPDXID key to round trip: %s", out)
	}
	for _, key := range []string{`"spdxVersion"`, `"creationInfo"`, `"dataLicense"`, `"documentNamespace"`, `"versionInfo"`,
		`"downloadLocation"`, `"filesAnalyzed"`, `"licenseDeclared"`, `"copyrightText"`, `"externalRefs":[]`,
		`"referenceCategory"`, `"referenceLocator"`, `"referenceType"`, `"relationshipType"`, `"spdxElementId"`, `"relatedSpdxElement"`} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %v in encoded output", key)
		}
	}
	if strings.Contains(out, `"comment"`) || strings.Contains(out, "null") || strings.Contains(out, "documentDescribes") {
		t.Errorf("did not expect absent or unknown fields in encoded output: %s", out)
	}
	if strings.Count(out, `"licenseConcluded"`) != 1 {
		t.Errorf("expected licenseConcluded only for the package that has one: %s", out)
	}
	again, err := ParseDependencyGraphSbom(s, encoded)
	if err != nil {
		t.Fatalf("an error '%s' was not expected when parsing encoded json", err)
	}
	if !reflect.DeepEqual(doc, again) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", doc, again)
	}
}

func TestParseDependencyGraphSbomErrors(t *testing.T) {
	s := testLogger(t)
	tests := []struct {
		name  string
		input string
		path  string
	}{
		{name: "missing package id", input: strings.Replace(githubSbom, `"SPDXID": "SPDXRef-npm-lodash-4.17.21",`, "", 1), path: "sbom.packages[1].SPDXID"},
		{name: "missing files analyzed", input: strings.Replace(githubSbom, `"filesAnalyzed": false,
        "licenseDeclared"`, `"licenseDeclared"`, 1), path: "sbom.packages[0].filesAnalyzed"},
		{name: "bad timestamp", input: strings.Replace(githubSbom, "2024-05-02T10:15:30+02:00", "yesterday", 1), path: "sbom.creationInfo.created"},
		{name: "numeric timestamp", input: strings.Replace(githubSbom, `"2024-05-02T10:15:30+02:00"`, "1714637730", 1), path: "sbom.creationInfo.created"},
		{name: "missing relationship target", input: strings.Replace(githubSbom, `"relatedSpdxElement": "SPDXRef-npm-lodash-4.17.21"`, `"comment": "x"`, 1), path: "sbom.relationships[1].relatedSpdxElement"},
		{name: "missing sbom", input: `{"document": {}}`, path: "sbom"},
		{name: "null document", input: `null`, path: ""},
		{name: "null package", input: strings.Replace(githubSbom, `"packages": [`, `"packages": [null,`, 1), path: "sbom.packages[0]"},
		{name: "numeric package id", input: strings.Replace(githubSbom, `"SPDXID": "SPDXRef-npm-lodash-4.17.21"`, `"SPDXID": 42`, 1), path: "sbom.packages[1].SPDXID"},
		{name: "string files analyzed", input: strings.Replace(githubSbom, `"filesAnalyzed": false`, `"filesAnalyzed": "no"`, 1), path: "sbom.packages[0].filesAnalyzed"},
		{name: "object creators", input: strings.Replace(githubSbom, `"creators": ["Tool: GitHub.com-Dependency-Graph"]`, `"creators": {}`, 1), path: "sbom.creationInfo.creators"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDependencyGraphSbom(s, []byte(tt.input))
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected a *DecodeError, got %v", err)
			}
			if decodeErr.Path != tt.path {
				t.Errorf("expected path '%v', got '%v' (%v)", tt.path, decodeErr.Path, err)
			}
		})
	}
}

func TestEncodeSbomCreatedUTC(t *testing.T) {
	sbom := Sbom{
		SPDXID:            "SPDXRef-DOCUMENT",
		SpdxVersion:       "SPDX-2.3",
		Name:              "zoned",
		DataLicense:       "CC0-1.0",
		DocumentNamespace: "https://example.com/zoned",
		CreationInfo: CreationInfo{
			Created:  time.Date(2024, 5, 2, 10, 15, 30, 0, time.FixedZone("CEST", 2*60*60)),
			Creators: []string{"Tool: test"},
		},
	}
	encoded, err := Encode(DependencyGraphSbom{Sbom: sbom})
	if err != nil {
		t.Fatalf("an error '%s' was not expected when encoding", err)
	}
	if !strings.Contains(string(encoded), `"created":"2024-05-02T08:15:30Z"`) {
		t.Errorf("expected the creation time to be encoded in UTC: %s", encoded)
	}
}

func TestEncodeSbomDefaults(t *testing.T) {
	sbom := Sbom{
		SPDXID:            "SPDXRef-DOCUMENT",
		SpdxVersion:       "SPDX-2.3",
		Name:              "empty",
		DataLicense:       "CC0-1.0",
		DocumentNamespace: "https://example.com/empty",
		CreationInfo:      CreationInfo{Created: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	encoded, err := Encode(DependencyGraphSbom{Sbom: sbom})
	if err != nil {
		t.Fatalf("an error '%s' was not expected when encoding", err)
	}
	out := string(encoded)
	if !strings.Contains(out, `"packages":[]`) || !strings.Contains(out, `"creators":[]`) {
		t.Errorf("expected required lists to be encoded as empty arrays: %s", out)
	}
	if strings.Contains(out, "relationships") {
		t.Errorf("did not expect absent relationships in output: %s", out)
	}
	if _, err = ParseDependencyGraphSbom(testLogger(t), encoded); err != nil {
		t.Errorf("an error '%s' was not expected when parsing an encoded empty SBOM", err)
	}
}
