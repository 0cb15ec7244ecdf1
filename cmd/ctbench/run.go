// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/slo-cpp/ctbench/analyze"
	"github.com/slo-cpp/ctbench/config"
	"github.com/slo-cpp/ctbench/query"
	"github.com/slo-cpp/ctbench/report"
	"github.com/slo-cpp/ctbench/trace"
)

type runFlags struct {
	output         string
	repeat         int
	includes       []string
	systemIncludes []string
	compiler       string
	cpus           []int
	noPin          bool
	ambiguity      string
	offenders      bool
	formats        []string
}

func newRunCmd(g *globals) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [dir|profiles.toml ...]",
		Short: "Run every benchmark record below the given directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := f.apply(cmd, g.settings)
			if err := s.Validate(); err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"."}
			}
			paths, err := config.Discover(args, s.Output)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no %s found", config.RecordFile)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRecords(ctx, s, paths, g.runner)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output directory")
	fl.IntVarP(&f.repeat, "repeat", "r", 0, "runs per profile")
	fl.StringSliceVarP(&f.includes, "include", "I", nil, "include directory")
	fl.StringSliceVar(&f.systemIncludes, "isystem", nil, "system include directory")
	fl.StringVar(&f.compiler, "compiler", "", "compiler to run (default $CXX or clang++)")
	fl.IntSliceVar(&f.cpus, "cpus", nil, "CPUs to pin compiler invocations to, one record per CPU")
	fl.BoolVar(&f.noPin, "no-pin", false, "do not pin invocations to a CPU; run records one at a time")
	fl.StringVar(&f.ambiguity, "ambiguity", "", "what to do when a query matches more than once: first or strict")
	fl.BoolVar(&f.offenders, "offenders", false, "collect the slowest class parses and function instantiations")
	fl.StringSliceVar(&f.formats, "format", nil, "additional report formats: text, html, bench")
	return cmd
}

// apply overrides s with the flags set on the command line.
func (f *runFlags) apply(cmd *cobra.Command, s config.Settings) config.Settings {
	fl := cmd.Flags()
	if fl.Changed("output") {
		s.Output = f.output
	}
	if fl.Changed("repeat") {
		s.RepeatEach = f.repeat
	}
	if fl.Changed("include") {
		s.Includes = f.includes
	}
	if fl.Changed("isystem") {
		s.SystemIncludes = f.systemIncludes
	}
	if fl.Changed("compiler") {
		s.Compiler = f.compiler
	}
	if fl.Changed("cpus") {
		s.CPUs = f.cpus
	}
	if f.noPin {
		s.CPUs = nil
	}
	if fl.Changed("ambiguity") {
		s.Ambiguity = f.ambiguity
	}
	if fl.Changed("offenders") {
		s.Offenders = f.offenders
	}
	if fl.Changed("format") {
		s.Formats = f.formats
	}
	return s
}

// runRecords runs the records at paths, at most one per CPU of s at a
// time. A failed record is logged and does not stop the others.
func runRecords(ctx context.Context, s config.Settings, paths []string, runner trace.Runner) error {
	// Each worker owns one CPU for the duration of a record. Without
	// pinning there is a single unpinned slot.
	cpus := s.CPUs
	if len(cpus) == 0 {
		cpus = []int{-1}
	}
	pool := make(chan int, len(cpus))
	for _, c := range cpus {
		pool <- c
	}

	var failed atomic.Int32
	var eg errgroup.Group
	eg.SetLimit(len(cpus))
	owners := make(map[string]string)
	for _, path := range paths {
		rec, err := config.LoadRecord(path)
		if err != nil {
			log.Error().Err(err).Msg("invalid benchmark record")
			failed.Add(1)
			continue
		}
		if other, ok := owners[rec.Name()]; ok {
			log.Error().Str("record", path).Str("other", other).
				Msg("two records share an output directory; skipping")
			failed.Add(1)
			continue
		}
		owners[rec.Name()] = path

		path := path // per-iteration copy; go directive is below 1.22
		eg.Go(func() error {
			cpu := <-pool
			defer func() { pool <- cpu }()
			if err := runRecord(ctx, s, rec, cpu, runner); err != nil {
				log.Error().Err(err).Str("record", path).Msg("benchmark failed")
				failed.Add(1)
			}
			return nil
		})
	}
	eg.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d benchmarks failed", n, len(paths))
	}
	return ctx.Err()
}

// runRecord benchmarks one record with every invocation pinned to cpu,
// or unpinned if cpu is negative, and writes its artifacts.
func runRecord(ctx context.Context, s config.Settings, rec *config.Record, cpu int, runner trace.Runner) error {
	start := time.Now()
	profiles, err := rec.Expand()
	if err != nil {
		return err
	}
	queries, err := query.Compile(rec.Query, query.WithPolicy(s.Policy()))
	if err != nil {
		return err
	}

	out := filepath.Join(s.Output, rec.Name())
	l := log.With().Str("record", rec.Name()).Int("cpu", cpu).Logger()
	l.Info().Str("source", rec.Source).Int("profiles", len(profiles)).
		Int("repeat", s.RepeatEach).Msg("starting benchmark")

	a := &analyze.Analyzer{
		Source:    rec.Source,
		Dir:       out,
		Repeat:    s.RepeatEach,
		Profiles:  profiles,
		Queries:   queries,
		Tracer:    trace.NewGenerator(s.TraceOptions(rec, cpu), runner),
		Units:     rec.Unit,
		Offenders: s.OffenderCount(),
	}
	res, err := a.Run(ctx)
	if err != nil {
		return err
	}

	arts, err := report.Artifacts(res, out, s.Formats)
	if err != nil {
		return err
	}
	for _, art := range arts {
		if err := os.MkdirAll(filepath.Dir(art.Path), 0777); err != nil {
			return err
		}
		if err := os.WriteFile(art.Path, art.Data, 0666); err != nil {
			return err
		}
		l.Debug().Str("path", art.Path).Msg("wrote")
	}
	l.Info().Str("output", out).Dur("elapsed", time.Since(start)).Msg("benchmark done")
	return nil
}
