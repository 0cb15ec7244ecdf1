// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMin(t *testing.T) {
	s := NewSample([]float64{12, 7, 9})
	assert.Equal(t, 7.0, s.Min())
	assert.Equal(t, 1, s.Best())
	assert.Equal(t, []float64{7, 9, 12}, s.Values)
	assert.Equal(t, []float64{12, 7, 9}, s.Runs)
	assert.Empty(t, s.Warnings)
}

func TestSampleGaps(t *testing.T) {
	nan := math.NaN()
	s := NewSample([]float64{nan, 5, nan, 3})
	assert.Equal(t, 3.0, s.Min())
	assert.Equal(t, 3, s.Best())
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0].Error(), "2 of 4 runs")

	empty := NewSample([]float64{nan, nan})
	assert.False(t, empty.Defined())
	assert.True(t, math.IsNaN(empty.Min()))
	assert.Equal(t, -1, empty.Best())
	assert.ErrorIs(t, empty.Warnings[0], ErrEmpty)
}

func TestSummarize(t *testing.T) {
	sum := NewSample([]float64{4, 2, 6}).Summarize()
	assert.Equal(t, 3, sum.N)
	assert.Equal(t, 2.0, sum.Min)
	assert.Equal(t, 6.0, sum.Max)
	assert.Equal(t, 4.0, sum.Mean)
	assert.Equal(t, 4.0, sum.Median)
	assert.InDelta(t, 2.0, sum.StdDev, 1e-9)

	one := NewSample([]float64{5}).Summarize()
	assert.Equal(t, 0.0, one.StdDev)

	none := NewSample(nil).Summarize()
	assert.True(t, math.IsNaN(none.Min))
}

func TestSpreadString(t *testing.T) {
	check := func(min, max float64, want string) {
		t.Helper()
		s := Summary{N: 2, Min: min, Max: max}
		assert.Equal(t, want, s.SpreadString(), "for [%v, %v]", min, max)
	}
	inf := math.Inf(1)

	check(1, 1.5, "50%")
	check(2, 2, "0%")
	check(-2, -1, "50%")
	check(1, inf, "∞")
	check(-1, 1, "?")
	check(0, 0, "0%")

	assert.Equal(t, "?", Summary{}.SpreadString())
}
