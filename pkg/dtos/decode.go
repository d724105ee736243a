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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrDecode matches every error returned by the Parse* functions.
var ErrDecode = errors.New("failed to decode dependency graph data")

// DecodeError reports the JSON path of a payload that does not match the schema.
type DecodeError struct {
	Path   string // i.e. "[0].ecosystem" or "sbom.packages[1].SPDXID". Empty for document level problems
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%v: %v", ErrDecode, e.Reason)
	}
	return fmt.Sprintf("%v: '%v' %v", ErrDecode, e.Path, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

var timeType = reflect.TypeOf(time.Time{})

// decode parses the input into a T. The raw document is checked against T first (required fields, nulls,
// value types and timestamps) so failures report the full path, then handed over to encoding/json.
func decode[T any](s *zap.SugaredLogger, input []byte, what string) (T, error) {
	var data T
	if len(bytes.TrimSpace(input)) == 0 {
		s.Errorf("No %v data supplied to parse", what)
		return data, &DecodeError{Reason: fmt.Sprintf("no %v data supplied to parse", what)}
	}
	raw, err := decodeRaw(input)
	if err != nil {
		s.Errorf("Parse failure: %v", err)
		return data, &DecodeError{Reason: fmt.Sprintf("invalid %v JSON: %v", what, err), Err: err}
	}
	if err = checkFields(reflect.TypeOf(data), raw, ""); err != nil {
		s.Errorf("Parse failure: %v", err)
		return data, err
	}
	// Re-encode the checked document so that keys dropped by checkFields never reach the typed value
	checked, err := json.Marshal(raw)
	if err != nil {
		s.Errorf("Parse failure: %v", err)
		return data, &DecodeError{Reason: err.Error(), Err: err}
	}
	if err = json.Unmarshal(checked, &data); err != nil {
		s.Errorf("Parse failure: %v", err)
		return data, toDecodeError(err)
	}
	s.Debugf("Parsed %v: %+v", what, data)
	return data, nil
}

// decodeRaw parses a single JSON document, keeping numbers as written.
func decodeRaw(input []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the JSON document")
	}
	return raw, nil
}

// checkFields walks the raw JSON alongside the target type.
// Non-pointer fields without omitempty/omitzero are required and must not be null.
// Only pointer (or interface) values may be null inside arrays and objects.
// Keys matching a field name only when ignoring case are dropped, as the wire names are case-sensitive.
func checkFields(t reflect.Type, raw any, path string) error {
	if raw == nil {
		if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
			return nil
		}
		if len(path) == 0 {
			return &DecodeError{Reason: "document must not be null"}
		}
		return &DecodeError{Path: path, Reason: "is required but null"}
	}
	switch t.Kind() {
	case reflect.Pointer:
		return checkFields(t.Elem(), raw, path)
	case reflect.Interface:
		return nil
	case reflect.String:
		if _, ok := raw.(string); !ok {
			return typeMismatch(path, "a string", raw)
		}
	case reflect.Bool:
		if _, ok := raw.(bool); !ok {
			return typeMismatch(path, "a boolean", raw)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := raw.(json.Number)
		if !ok {
			return typeMismatch(path, "an integer", raw)
		}
		if _, err := n.Int64(); err != nil {
			return &DecodeError{Path: path, Reason: fmt.Sprintf("expected an integer but got %v", n), Err: err}
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := raw.(json.Number); !ok {
			return typeMismatch(path, "a number", raw)
		}
	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok {
			return typeMismatch(path, "an array", raw)
		}
		for i, item := range items {
			if err := checkFields(t.Elem(), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		entries, ok := raw.(map[string]any)
		if !ok {
			return typeMismatch(path, "an object", raw)
		}
		for key, value := range entries {
			if err := checkFields(t.Elem(), value, joinPath(path, key)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		if t == timeType {
			return checkTimestamp(raw, path)
		}
		fields, ok := raw.(map[string]any)
		if !ok {
			return typeMismatch(path, "an object", raw)
		}
		names := make(map[string]bool, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, required := fieldWireName(f)
			if len(name) == 0 {
				continue
			}
			names[name] = true
			fieldPath := joinPath(path, name)
			value, present := fields[name]
			if !present || value == nil {
				if required {
					return &DecodeError{Path: fieldPath, Reason: "is a required field but is missing or null"}
				}
				continue
			}
			if err := checkFields(f.Type, value, fieldPath); err != nil {
				return err
			}
		}
		for key := range fields {
			if !names[key] && foldsToField(key, names) {
				delete(fields, key)
			}
		}
	}
	return nil
}

// foldsToField reports whether key matches one of the field names under case-folding.
func foldsToField(key string, names map[string]bool) bool {
	for name := range names {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

func typeMismatch(path, expected string, raw any) *DecodeError {
	return &DecodeError{Path: path, Reason: fmt.Sprintf("expected %v but got JSON %v", expected, jsonKind(raw))}
}

func jsonKind(raw any) string {
	switch raw.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "null"
}

func checkTimestamp(raw any, path string) error {
	str, ok := raw.(string)
	if !ok {
		return &DecodeError{Path: path, Reason: fmt.Sprintf("expected an RFC 3339 timestamp string, got JSON %v", jsonKind(raw))}
	}
	if _, err := time.Parse(time.RFC3339, str); err != nil {
		return &DecodeError{Path: path, Reason: fmt.Sprintf("is not a valid RFC 3339 timestamp: '%v'", str), Err: err}
	}
	return nil
}

// fieldWireName returns the JSON name of a struct field and whether the field is required.
func fieldWireName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if len(name) == 0 {
		name = f.Name
	}
	optional := f.Type.Kind() == reflect.Pointer
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			optional = true
		}
	}
	return name, !optional
}

func joinPath(path, name string) string {
	if len(path) == 0 {
		return name
	}
	return path + "." + name
}

func toDecodeError(err error) *DecodeError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{Path: typeErr.Field, Reason: fmt.Sprintf("expected %v but got JSON %v", typeErr.Type, typeErr.Value), Err: err}
	}
	return &DecodeError{Reason: err.Error(), Err: err}
}

// Encode serialises any of the dependency graph records into its wire format.
// Absent optional fields are omitted rather than written as null.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dependency graph data: %w", err)
	}
	return data, nil
}

// Ptr returns a pointer to a copy of v. Handy for populating optional fields.
func Ptr[T any](v T) *T {
	return &v
}
