// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"math"
	"testing"
)

func TestScale(t *testing.T) {
	test := func(num float64, want, wantPred string) {
		t.Helper()

		got := Scale(num)
		if got != want {
			t.Errorf("for %v, got %s, want %s", num, got, want)
		}

		// Just below the crux between two scale factors.
		pred := math.Nextafter(num, 0)
		got = Scale(pred)
		if got != wantPred {
			t.Errorf("for %v-ε, got %s, want %s", num, got, wantPred)
		}
	}

	test(0, "0.000", "0.000")
	test(1, "1.000", "1.000")
	test(-1, "-1.000", "-1.000")

	test(999950000, "1.000G", "999.9M")
	test(99995, "100.0k", "99.99k")
	test(9999.5, "10.00k", "9.999k")
	test(999.95, "1.000k", "999.9")
	test(99.995, "100.0", "99.99")
	test(.99995, "1.000", "999.9m")
	test(.00099995, "1.000m", "999.9µ")
	test(.000099995, "100.0µ", "99.99µ")
	test(.00000099995, "1.000µ", "999.9n")
	test(.00000000099995, "1.000n", "0.9999n")

	test(-.0000000099995, "-10.00n", "-9.999n")
}

func TestCommonScaleSkipsNaN(t *testing.T) {
	s := CommonScale([]float64{math.NaN(), 0.004, 0.12})
	if got := s.Format(0.12); got != "120.000m" {
		t.Errorf("got %s, want 120.000m", got)
	}
}

func TestNoOpScaler(t *testing.T) {
	test := func(val float64, want string) {
		t.Helper()
		got := NoOpScaler.Format(val)
		if got != want {
			t.Errorf("for %v, got %s, want %s", val, got, want)
		}
	}

	test(1, "1")
	test(123456789, "123456789")
	test(123.456789, "123.456789")
}
