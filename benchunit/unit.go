// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "strings"

// Micros is the unit of every duration in a -ftime-trace document.
const Micros = "us"

var timeFactors = map[string]float64{
	"ns":  1e-9,
	"us":  1e-6,
	"µs":  1e-6,
	"ms":  1e-3,
	"s":   1,
	"sec": 1,
}

// Tidy normalizes a value in a pre-scaled time unit, such as "us" or
// "ms", to seconds. It returns the re-scaled value and "s". Values in
// any other unit are returned unchanged.
func Tidy(value float64, unit string) (float64, string) {
	if f, ok := timeFactors[strings.TrimSpace(unit)]; ok {
		return value * f, "s"
	}
	return value, unit
}

// IsTime reports whether unit is one of the time units understood by
// Tidy.
func IsTime(unit string) bool {
	_, ok := timeFactors[strings.TrimSpace(unit)]
	return ok
}

// Format tidies val, scales it and appends the unit, producing strings
// such as "1.234ms" for Format(1234, "us").
func Format(val float64, unit string) string {
	v, u := Tidy(val, unit)
	return Scale(v) + u
}

// A Formatter formats a group of values of the same unit with a common
// scale so they line up in a column.
type Formatter struct {
	in, out string
	scaler  Scaler
}

// NewFormatter returns a Formatter for vals, all given in unit.
func NewFormatter(vals []float64, unit string) Formatter {
	tidied := make([]float64, len(vals))
	out := unit
	for i, v := range vals {
		tidied[i], out = Tidy(v, unit)
	}
	return Formatter{in: unit, out: out, scaler: CommonScale(tidied)}
}

// Format formats val, given in the unit passed to NewFormatter.
func (f Formatter) Format(val float64) string {
	v, _ := Tidy(val, f.in)
	return f.scaler.Format(v) + f.out
}
