// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads benchmark records, the profiles.toml files
// describing one source file each, and the settings shared by every
// record of an invocation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/slo-cpp/ctbench/profile"
)

// RecordFile is the name of every benchmark record file.
const RecordFile = "profiles.toml"

// A Record describes one benchmark: a source file, the profiles to
// compile it under and the queries to evaluate against each trace.
type Record struct {
	// Path is the file the record was loaded from.
	Path string `toml:"-"`

	// Source is the file to compile. After loading it is absolute.
	Source string `toml:"source"`

	Profile map[string]map[string]any `toml:"profile"`
	Query   map[string]string         `toml:"query"`

	// Unit optionally maps query names to the unit of their
	// values. Queries without an entry are in microseconds.
	Unit map[string]string `toml:"unit"`

	// Standard is the language standard, such as "c++20". Empty
	// means the default.
	Standard string `toml:"standard"`

	// Options are extra compiler arguments appended to every
	// invocation.
	Options []string `toml:"options"`

	// TrueValue and FalseValue are the define texts of boolean
	// feature values. They default to "1" and "0".
	TrueValue  any `toml:"true_value"`
	FalseValue any `toml:"false_value"`

	// order is the order profiles and features were written in.
	order profile.Order
}

// A RecordError reports a record that cannot be loaded.
type RecordError struct {
	Path string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// LoadRecord reads the record at path.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RecordError{path, err}
	}
	r, err := ParseRecord(data)
	if err != nil {
		return nil, &RecordError{path, err}
	}
	r.Path = path
	if r.Source != "" && !filepath.IsAbs(r.Source) {
		r.Source = filepath.Join(filepath.Dir(path), r.Source)
	}
	if abs, err := filepath.Abs(r.Source); err == nil {
		r.Source = abs
	}
	return r, nil
}

// ParseRecord parses and checks a record. Unknown keys are an error.
func ParseRecord(data []byte) (*Record, error) {
	var r Record
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d column %d: %v", row, col, derr)
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("unknown keys:\n%s", serr.String())
		}
		return nil, err
	}

	switch {
	case strings.TrimSpace(r.Source) == "":
		return nil, errors.New("missing source")
	case len(r.Profile) == 0:
		return nil, errors.New("no profiles")
	case len(r.Query) == 0:
		return nil, errors.New("no queries")
	}
	order, err := profileOrder(data)
	if err != nil {
		return nil, err
	}
	r.order = order

	for name := range r.Unit {
		if _, ok := r.Query[name]; !ok {
			return nil, fmt.Errorf("unit given for unknown query %q", name)
		}
	}
	return &r, nil
}

// Name returns the name of the directory holding the record. Output
// for the record is written to a directory of the same name.
func (r *Record) Name() string {
	return filepath.Base(filepath.Dir(r.Path))
}

// Profiles parses the profiles of r. Profiles and their features keep
// the order they were written in.
func (r *Record) Profiles() ([]profile.Profile, error) {
	return profile.ParseProfiles(r.Profile, r.order)
}

// Tokens returns the boolean define texts of r.
func (r *Record) Tokens() (profile.Tokens, error) {
	tokens := profile.DefaultTokens
	for _, t := range []struct {
		raw any
		dst *string
		key string
	}{
		{r.TrueValue, &tokens.True, "true_value"},
		{r.FalseValue, &tokens.False, "false_value"},
	} {
		if t.raw == nil {
			continue
		}
		v, err := profile.ParseValue(t.raw)
		if err != nil || v.Kind() == profile.Range || v.Kind() == profile.List {
			return tokens, &profile.ConfigError{Feature: t.key, Msg: fmt.Sprintf("want a string or number, got %v", t.raw)}
		}
		*t.dst = v.Text(profile.DefaultTokens)
	}
	return tokens, nil
}

// Expand parses and expands the profiles of r.
func (r *Record) Expand() ([]profile.Concrete, error) {
	profiles, err := r.Profiles()
	if err != nil {
		return nil, err
	}
	tokens, err := r.Tokens()
	if err != nil {
		return nil, err
	}
	return profile.Expand(profiles, tokens)
}
