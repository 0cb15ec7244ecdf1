// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace runs the compiler with -ftime-trace and loads the
// resulting trace documents.
package trace

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/slo-cpp/ctbench/profile"
)

// DefaultStandard is the language standard used when a benchmark does
// not select one.
const DefaultStandard = "c++23"

// DefaultCompiler returns $CXX, or clang++ if it is unset.
func DefaultCompiler() string {
	if cxx := os.Getenv("CXX"); cxx != "" {
		return cxx
	}
	return "clang++"
}

// Options configures the compiler invocation.
type Options struct {
	// Compiler is the compiler executable. Empty means
	// DefaultCompiler().
	Compiler string

	// Standard is passed as -std=. Empty means DefaultStandard.
	Standard string

	// SystemIncludes are passed with -isystem, Includes with -I.
	SystemIncludes []string
	Includes       []string

	// Extra holds additional compiler options, appended last.
	Extra []string

	// CPUList pins the compiler to these processors with
	// "taskset --cpu-list". Empty disables pinning.
	CPUList string
}

// A Runner executes a command in dir and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// ExecRunner runs commands as child processes. Standard error of the
// child is captured and returned as part of the error.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ExitError{Err: err, Stderr: stderr.String()}
	}
	return nil
}

// An ExitError is a failed child process together with its standard
// error output.
type ExitError struct {
	Err    error
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n" + msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// A CompilationError reports a compiler invocation that failed. It is
// fatal for the benchmark run; timings of a failed compile mean
// nothing.
type CompilationError struct {
	Source string
	Argv   []string
	Err    error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compiling %s: %v\n\t%s", e.Source, e.Err, strings.Join(e.Argv, " "))
}

func (e *CompilationError) Unwrap() error { return e.Err }

// A Generator produces one trace document per compiler invocation.
type Generator struct {
	opts   Options
	runner Runner
}

// NewGenerator returns a Generator that runs the compiler through r. A
// nil r uses ExecRunner.
func NewGenerator(opts Options, r Runner) *Generator {
	if opts.Compiler == "" {
		opts.Compiler = DefaultCompiler()
	}
	if opts.Standard == "" {
		opts.Standard = DefaultStandard
	}
	if r == nil {
		r = ExecRunner{}
	}
	return &Generator{opts: opts, runner: r}
}

// Command returns the argument vector that compiles source into output
// with the given defines.
func (g *Generator) Command(source, output string, defines []profile.Define) []string {
	var argv []string
	if g.opts.CPUList != "" {
		argv = append(argv, "taskset", "--cpu-list", g.opts.CPUList)
	}
	argv = append(argv, g.opts.Compiler, source, "-o", output)
	for _, d := range defines {
		argv = append(argv, "-D"+d.String())
	}
	for _, dir := range g.opts.SystemIncludes {
		argv = append(argv, "-isystem", dir)
	}
	for _, dir := range g.opts.Includes {
		argv = append(argv, "-I"+dir)
	}
	argv = append(argv, "-std="+g.opts.Standard, "-ftime-trace", "-c")
	return append(argv, g.opts.Extra...)
}

// TracePath returns where the compiler writes the trace for output:
// next to it, with the extension replaced by ".json".
func TracePath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".json"
}

// Generate compiles source into output with defines and returns the
// path of the trace file. The object file is removed once the compiler
// succeeds. A non-zero exit is returned as a *CompilationError and is
// never retried.
//
// Source and output may be relative to the current directory.
func (g *Generator) Generate(ctx context.Context, source, output string, defines []profile.Define) (string, error) {
	// The compiler runs in the source directory.
	source, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	if output, err = filepath.Abs(output); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0777); err != nil {
		return "", err
	}
	argv := g.Command(source, output, defines)
	log.Debug().Strs("argv", argv).Msg("compiling")
	if err := g.runner.Run(ctx, filepath.Dir(source), argv); err != nil {
		return "", &CompilationError{Source: source, Argv: argv, Err: err}
	}
	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		return "", err
	}
	path := TracePath(output)
	log.Debug().Str("trace", path).Msg("generated trace")
	return path, nil
}
