// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analyze runs a source file repeatedly under every concrete
// profile and reduces the query results of each run into per-query,
// per-profile series.
//
// All compiler invocations of an Analyzer run one at a time.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/slo-cpp/ctbench/benchmath"
	"github.com/slo-cpp/ctbench/benchunit"
	"github.com/slo-cpp/ctbench/profile"
	"github.com/slo-cpp/ctbench/query"
	"github.com/slo-cpp/ctbench/trace"
)

// A Tracer compiles source into output with defines and returns the
// path of the resulting trace. *trace.Generator is a Tracer.
type Tracer interface {
	Generate(ctx context.Context, source, output string, defines []profile.Define) (string, error)
}

var _ Tracer = (*trace.Generator)(nil)

// A Measurement is the value one query extracted from one run. A run in
// which the query matched nothing has OK == false; it is a gap, not a
// zero.
type Measurement struct {
	Value float64
	OK    bool
}

// MarshalJSON encodes a gap as null.
func (m Measurement) MarshalJSON() ([]byte, error) {
	if !m.OK {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// A Series is the ordered sequence of measurements of one query under
// one profile, in run order.
type Series []Measurement

// Floats returns s with gaps as NaN.
func (s Series) Floats() []float64 {
	fs := make([]float64, len(s))
	for i, m := range s {
		if m.OK {
			fs[i] = m.Value
		} else {
			fs[i] = math.NaN()
		}
	}
	return fs
}

// An Analyzer benchmarks one source file.
type Analyzer struct {
	// Source is the file to compile.
	Source string

	// Dir receives the object and trace files, named
	// "{profile}.{run}.o" and "{profile}.{run}.json".
	Dir string

	// Repeat is the number of runs per profile.
	Repeat int

	Profiles []profile.Concrete
	Queries  *query.Set
	Tracer   Tracer

	// Units maps query names to the unit of their values, used
	// for logging and reports. Queries without an entry are in
	// microseconds, the unit of trace durations.
	Units map[string]string

	// Offenders, if positive, is the number of worst offenders to
	// collect from the first run of every profile.
	Offenders int
}

// A Result holds the measurements of an Analyzer run.
type Result struct {
	Source string
	Repeat int

	// Queries and Profiles list the names in evaluation order.
	Queries  []string
	Profiles []string

	// Units maps every query to its unit.
	Units map[string]string

	// Series maps query name, then profile name, to the runs.
	Series map[string]map[string]Series

	// Offenders maps profile names to the worst offenders of
	// their first run. Nil unless requested.
	Offenders map[string]*query.Offenders
}

// Summary maps query name, then profile name, to the minimum
// measurement. Profiles without any measurement are omitted.
type Summary map[string]map[string]float64

// Run compiles the source Repeat times under every profile and
// evaluates the queries against each trace. Any failure aborts the
// whole run.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	if a.Repeat < 1 {
		return nil, fmt.Errorf("repeat count must be at least 1, got %d", a.Repeat)
	}
	if a.Tracer == nil || a.Queries == nil {
		return nil, errors.New("analyzer needs a tracer and a query set")
	}

	res := &Result{
		Source:  a.Source,
		Repeat:  a.Repeat,
		Queries: a.Queries.Names(),
		Units:   make(map[string]string),
		Series:  make(map[string]map[string]Series),
	}
	for _, q := range res.Queries {
		res.Units[q] = benchunit.Micros
		if u, ok := a.Units[q]; ok {
			res.Units[q] = u
		}
		res.Series[q] = make(map[string]Series)
	}
	if a.Offenders > 0 {
		res.Offenders = make(map[string]*query.Offenders)
	}

	for _, p := range a.Profiles {
		runs := make([]query.Results, a.Repeat)
		for i := range runs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			doc, err := a.trace(ctx, p, i)
			if err != nil {
				return nil, fmt.Errorf("profile %s run %d: %w", p.Name, i, err)
			}
			if runs[i], err = a.Queries.Evaluate(doc); err != nil {
				return nil, fmt.Errorf("profile %s run %d: %w", p.Name, i, err)
			}
			if i == 0 && a.Offenders > 0 {
				if res.Offenders[p.Name], err = query.FindOffenders(doc, a.Offenders); err != nil {
					return nil, fmt.Errorf("profile %s: %w", p.Name, err)
				}
			}
		}

		// Invert runs×queries into per-query series.
		res.Profiles = append(res.Profiles, p.Name)
		for _, q := range res.Queries {
			s := make(Series, len(runs))
			for i, r := range runs {
				s[i].Value, s[i].OK = r[q]
			}
			res.Series[q][p.Name] = s
		}
		a.logProfile(res, p.Name)
	}
	return res, nil
}

func (a *Analyzer) trace(ctx context.Context, p profile.Concrete, run int) (*trace.Document, error) {
	output := filepath.Join(a.Dir, fmt.Sprintf("%s.%d.o", FileName(p.Name), run))
	path, err := a.Tracer.Generate(ctx, a.Source, output, p.Defines)
	if err != nil {
		return nil, err
	}
	return trace.Load(path)
}

func (a *Analyzer) logProfile(res *Result, name string) {
	for _, q := range res.Queries {
		s := res.Sample(q, name)
		sum := s.Summarize()
		ev := log.Info().Str("query", q).Str("profile", name).Int("runs", len(s.Runs))
		if sum.N > 0 {
			unit := res.Units[q]
			ev = ev.Str("mean", benchunit.Format(sum.Mean, unit)).
				Str("min", benchunit.Format(sum.Min, unit)).
				Str("spread", sum.SpreadString())
		}
		for _, w := range sum.Warnings {
			ev = ev.AnErr("warning", w)
		}
		ev.Msg("feature set done")
	}
}

// Sample returns the measurements of query q under profile p as a
// benchmath sample.
func (r *Result) Sample(q, p string) *benchmath.Sample {
	return benchmath.NewSample(r.Series[q][p].Floats())
}

// Stats summarizes the measurements of query q under profile p.
func (r *Result) Stats(q, p string) benchmath.Summary {
	return r.Sample(q, p).Summarize()
}

// Summary reduces every series to its minimum.
func (r *Result) Summary() Summary {
	sum := make(Summary, len(r.Queries))
	for _, q := range r.Queries {
		sum[q] = make(map[string]float64)
		for _, p := range r.Profiles {
			if s := r.Sample(q, p); s.Defined() {
				sum[q][p] = s.Min()
			}
		}
	}
	return sum
}

// FileName maps a profile name to a string safe to use as a file name.
func FileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, name)
}
