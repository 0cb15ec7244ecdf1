// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath computes statistics over repeated compile-time
// measurements.
//
// Compile times are dominated by scheduling and thermal noise, which
// only ever adds time. The central statistic is therefore the minimum
// (the "floor"), not the mean or median.
//
// All results carry a list of warnings, captured as an []error value.
// These don't prevent analysis but should be shown to the user next to
// the numbers.
package benchmath

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
)

// A Sample is the set of repeated measurements of one query under one
// profile.
type Sample struct {
	// Runs are the measured values in run order. Missing
	// measurements are NaN.
	Runs []float64

	// Values are the present measurements, in ascending order.
	Values []float64

	// Warnings is a list of warnings about this sample that
	// should be reported to the user.
	Warnings []error
}

// ErrEmpty is reported for a sample without any present measurement.
var ErrEmpty = errors.New("no measurements")

// NewSample constructs a Sample from measurements in run order. NaN
// marks a run whose query matched nothing.
func NewSample(runs []float64) *Sample {
	s := &Sample{Runs: runs}
	for _, v := range runs {
		if !math.IsNaN(v) {
			s.Values = append(s.Values, v)
		}
	}
	sort.Float64s(s.Values)
	if gaps := len(runs) - len(s.Values); gaps > 0 && len(s.Values) > 0 {
		s.Warnings = append(s.Warnings, fmt.Errorf("%d of %d runs have no value", gaps, len(runs)))
	}
	if len(s.Values) == 0 {
		s.Warnings = append(s.Warnings, ErrEmpty)
	}
	return s
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// Defined reports whether s contains at least one measurement.
func (s *Sample) Defined() bool {
	return len(s.Values) > 0
}

// Min returns the smallest measurement, or NaN if there is none.
func (s *Sample) Min() float64 {
	if !s.Defined() {
		return math.NaN()
	}
	return s.Values[0]
}

// Best returns the index in Runs of the run that produced the minimum,
// or -1 if s is empty.
func (s *Sample) Best() int {
	if !s.Defined() {
		return -1
	}
	present := make([]float64, 0, len(s.Runs))
	index := make([]int, 0, len(s.Runs))
	for i, v := range s.Runs {
		if !math.IsNaN(v) {
			present = append(present, v)
			index = append(index, i)
		}
	}
	return index[slice.ArgMin(present)]
}

// A Summary summarizes a Sample.
type Summary struct {
	// N is the number of present measurements.
	N int

	// Min is the floor cost and the headline number.
	Min float64

	Max, Mean, Median, StdDev float64

	// Warnings is a list of warnings about this summary.
	Warnings []error
}

// Summarize computes the summary statistics of s. For an empty sample
// every statistic is NaN.
func (s *Sample) Summarize() Summary {
	if !s.Defined() {
		nan := math.NaN()
		return Summary{Min: nan, Max: nan, Mean: nan, Median: nan, StdDev: nan, Warnings: s.Warnings}
	}
	sample := s.sample()
	lo, hi := sample.Bounds()
	sum := Summary{
		N:        len(s.Values),
		Min:      lo,
		Max:      hi,
		Mean:     sample.Mean(),
		Median:   sample.Quantile(0.5),
		StdDev:   0,
		Warnings: s.Warnings,
	}
	if sum.N > 1 {
		sum.StdDev = sample.StdDev()
	}
	return sum
}

// SpreadString returns how far above the floor the slowest run was, as
// a percentage of the floor.
func (s Summary) SpreadString() string {
	if s.N == 0 || math.IsNaN(s.Min) {
		return "?"
	}
	if math.IsInf(s.Min, 0) || math.IsInf(s.Max, 0) {
		return "∞"
	}

	// A percentage is meaningless if the range crosses zero.
	if mathx.Sign(s.Min) != mathx.Sign(s.Max) {
		return "?"
	}
	if s.Min == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", 100*math.Abs(s.Max/s.Min-1))
}
