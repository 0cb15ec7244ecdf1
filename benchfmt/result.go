// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt writes measurements in the Go benchmark format so
// they can be compared with benchstat and related tools.
//
// This implements the format documented at
// https://golang.org/design/14313-benchmark-format.
package benchfmt

import (
	"strings"
	"unicode"
)

// A Result is a single benchmark result and all of its measurements.
type Result struct {
	// Config is the set of key/value file configuration pairs in
	// effect for this result, in order.
	Config []Config

	// Name is the full name of this benchmark, without the
	// "Benchmark" prefix, including all sub-benchmark
	// configuration.
	Name string

	// Iters is the number of iterations this benchmark's results
	// were averaged over.
	Iters int

	// Values is this benchmark's measurements and their units.
	Values []Value
}

// A Config is a single key/value configuration pair.
type Config struct {
	Key   string
	Value string
}

// A Value is a single value/unit measurement from a benchmark result.
type Value struct {
	Value float64
	Unit  string
}

// SetConfig sets configuration key to value, overriding or adding the
// configuration as necessary. If value is "", SetConfig deletes key.
func (r *Result) SetConfig(key, value string) {
	pos, ok := r.ConfigIndex(key)
	switch {
	case value == "" && ok:
		r.Config = append(r.Config[:pos], r.Config[pos+1:]...)
	case value == "":
	case ok:
		r.Config[pos].Value = value
	default:
		r.Config = append(r.Config, Config{key, value})
	}
}

// ConfigIndex returns the index in r.Config of key.
func (r *Result) ConfigIndex(key string) (pos int, ok bool) {
	for i, cfg := range r.Config {
		if cfg.Key == key {
			return i, true
		}
	}
	return 0, false
}

// Name builds a benchmark name from a base name and sub-benchmark
// key=value pairs. The base name is converted to CamelCase and
// whitespace in any part is replaced with underscores, since the
// format ends a name at the first space.
func Name(base string, kvs ...string) string {
	var b strings.Builder
	upper := true
	for _, r := range base {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		b.WriteByte('/')
		b.WriteString(noSpace(kvs[i]))
		b.WriteByte('=')
		b.WriteString(noSpace(kvs[i+1]))
	}
	return b.String()
}

func noSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
}
