// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/slo-cpp/ctbench/analyze"
	"github.com/slo-cpp/ctbench/benchfmt"
	"github.com/slo-cpp/ctbench/benchunit"
)

// benchUnit converts v in unit to a Go benchmark format value and
// unit. Time units become "sec/op".
func benchUnit(v float64, unit string) (float64, string) {
	if benchunit.IsTime(unit) {
		v, _ = benchunit.Tidy(v, unit)
		return v, "sec/op"
	}
	unit = strings.Join(strings.Fields(unit), "-")
	if unit == "" {
		unit = "value"
	}
	if !strings.Contains(unit, "/") {
		unit += "/op"
	}
	return v, unit
}

// WriteBenchfmt writes every present measurement of res to w in the
// Go benchmark format, one line per run, named
// "Benchmark<Query>/profile=<profile>". Gaps are omitted.
func WriteBenchfmt(w io.Writer, res *analyze.Result) error {
	bw := benchfmt.NewWriter(w)
	r := &benchfmt.Result{Iters: 1}
	r.SetConfig("source", res.Source)
	r.SetConfig("repeat", strconv.Itoa(res.Repeat))
	for _, q := range res.Queries {
		for _, p := range res.Profiles {
			r.Name = benchfmt.Name(q, "profile", p)
			for _, m := range res.Series[q][p] {
				if !m.OK {
					continue
				}
				v, unit := benchUnit(m.Value, res.Units[q])
				r.Values = []benchfmt.Value{{Value: v, Unit: unit}}
				if err := bw.Write(r); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
