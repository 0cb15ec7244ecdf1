// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "testing"

func TestTidy(t *testing.T) {
	test := func(unit, tidied string, factor float64) {
		t.Helper()
		gotFactor, got := Tidy(1, unit)
		if got != tidied || gotFactor != factor {
			t.Errorf("for %s, want *%g %s, got *%g %s", unit, factor, tidied, gotFactor, got)
		}
	}

	test("us", "s", 1e-6)
	test("µs", "s", 1e-6)
	test("ns", "s", 1e-9)
	test("ms", "s", 1e-3)
	test("sec", "s", 1)
	test("events", "events", 1)
	test("", "", 1)
}

func TestFormat(t *testing.T) {
	test := func(val float64, unit, want string) {
		t.Helper()
		if got := Format(val, unit); got != want {
			t.Errorf("Format(%v, %q) = %s, want %s", val, unit, got, want)
		}
	}
	test(1234, "us", "1.234ms")
	test(1500000, "us", "1.500s")
	test(42, "events", "42.00events")
}

func TestFormatter(t *testing.T) {
	f := NewFormatter([]float64{1200, 35000}, "us")
	for _, tc := range []struct {
		val  float64
		want string
	}{
		{1200, "1.200ms"},
		{35000, "35.000ms"},
	} {
		if got := f.Format(tc.val); got != tc.want {
			t.Errorf("Format(%v) = %s, want %s", tc.val, got, tc.want)
		}
	}
}
