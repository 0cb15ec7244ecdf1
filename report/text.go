// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/slo-cpp/ctbench/analyze"
	"github.com/slo-cpp/ctbench/benchmath"
	"github.com/slo-cpp/ctbench/benchunit"
	"github.com/slo-cpp/ctbench/internal/texttab"
	"github.com/slo-cpp/ctbench/trace"
)

// A row is the formatted summary of one profile under one query.
type row struct {
	Profile, Min, Mean, Max, Spread, Runs string

	// Best is the index of the run that produced Min, matching
	// the chart labels.
	Best string
}

// A table is the formatted summary of one query.
type table struct {
	Query, Unit string
	Rows        []row
}

// tables formats the statistics of res. Values of one query share a
// common scale so they line up.
func tables(res *analyze.Result) []table {
	var out []table
	for _, q := range res.Queries {
		sums := make([]benchmath.Summary, len(res.Profiles))
		var mins []float64
		for i, p := range res.Profiles {
			sums[i] = res.Stats(q, p)
			if sums[i].N > 0 {
				mins = append(mins, sums[i].Min)
			}
		}
		f := benchunit.NewFormatter(mins, res.Units[q])
		t := table{Query: q, Unit: res.Units[q]}
		for i, p := range res.Profiles {
			s := sums[i]
			r := row{Profile: p, Min: "-", Mean: "-", Max: "-", Spread: s.SpreadString(),
				Runs: fmt.Sprintf("%d/%d", s.N, len(res.Series[q][p]))}
			r.Best = "-"
			if s.N > 0 {
				r.Min, r.Mean, r.Max = f.Format(s.Min), f.Format(s.Mean), f.Format(s.Max)
				r.Best = strconv.Itoa(res.Sample(q, p).Best())
			}
			t.Rows = append(t.Rows, r)
		}
		out = append(out, t)
	}
	return out
}

// WriteText writes a plain-text summary table of res to w, one block
// per query.
func WriteText(w io.Writer, res *analyze.Result) error {
	for i, t := range tables(res) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		var tab texttab.Table
		tab.Row().Cell(t.Query).Cell("min", texttab.Center).Cell("mean", texttab.Center).
			Cell("max", texttab.Center).Cell("±", texttab.Center).Cell("runs", texttab.Center).
			Cell("best", texttab.Center)
		for _, r := range t.Rows {
			tab.Row().Cell(r.Profile).Cell(r.Min, texttab.Right).Cell(r.Mean, texttab.Right).
				Cell(r.Max, texttab.Right).Cell(r.Spread, texttab.Right).Cell(r.Runs, texttab.Right).
				Cell(r.Best, texttab.Right)
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteOffenders writes the worst offenders of res to w as tables,
// one per profile.
func WriteOffenders(w io.Writer, res *analyze.Result) error {
	first := true
	for _, p := range res.Profiles {
		off, ok := res.Offenders[p]
		if !ok {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if _, err := fmt.Fprintf(w, "%s\n", p); err != nil {
			return err
		}
		if err := WriteEvents(w, off.Classes, off.Functions); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents writes a table of offending class parses and function
// instantiations to w.
func WriteEvents(w io.Writer, classes, functions []trace.Event) error {
	var tab texttab.Table
	tab.Row().Cell("kind").Cell("#", texttab.Right).Cell("time", texttab.Center).Cell("detail")
	add := func(kind string, evs []trace.Event) {
		durs := make([]float64, len(evs))
		for i, ev := range evs {
			durs[i] = ev.Dur
		}
		f := benchunit.NewFormatter(durs, benchunit.Micros)
		for i, ev := range evs {
			tab.Row().Cell(kind).Cell(strconv.Itoa(i+1), texttab.Right).
				Cell(f.Format(ev.Dur), texttab.Right).Cell(ev.Args.Detail)
		}
	}
	add("class", classes)
	add("function", functions)
	return tab.Format(w)
}
