// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/slo-cpp/ctbench/internal/logging"
	"github.com/slo-cpp/ctbench/query"
	"github.com/slo-cpp/ctbench/report"
	"github.com/slo-cpp/ctbench/trace"
)

// SettingsFile is the name of the optional settings file looked up in
// the working directory.
const SettingsFile = "ctbench.yaml"

// Settings apply to every record of one invocation. They are built
// once and passed by value.
type Settings struct {
	// Output is the directory receiving the results. Each record
	// writes to a subdirectory named after the record's directory.
	Output string `yaml:"output"`

	// RepeatEach is the number of runs per profile.
	RepeatEach int `yaml:"repeat_each"`

	Includes       []string `yaml:"includes"`
	SystemIncludes []string `yaml:"system_includes"`

	// Compiler is the compiler to run. Empty means $CXX, falling
	// back to clang++.
	Compiler string `yaml:"compiler"`

	// CPUs are the cores invocations are pinned to. Records run
	// concurrently, one per CPU. An empty list disables pinning and
	// runs records one at a time.
	CPUs []int `yaml:"cpus"`

	// Ambiguity is the query ambiguity policy, "first" or "strict".
	Ambiguity string `yaml:"ambiguity"`

	// Offenders enables collection of the worst offenders of the
	// first run of every profile.
	Offenders bool `yaml:"offenders"`

	// Formats are the optional report formats to write.
	Formats []string `yaml:"formats"`

	Log logging.Config `yaml:"log"`
}

// DefaultSettings returns the settings used when no settings file
// exists.
func DefaultSettings() Settings {
	return Settings{
		Output:     "benchmark",
		RepeatEach: 1,
		CPUs:       []int{0},
		Ambiguity:  query.First.String(),
		Log:        logging.Config{Level: "info"},
	}
}

// LoadSettings reads the settings file at path over the defaults.
// Relative paths in the file are resolved against its directory. If
// path does not exist and optional is set, the defaults are returned.
func LoadSettings(path string, optional bool) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	s.Output = resolve(dir, s.Output)
	for i := range s.Includes {
		s.Includes[i] = resolve(dir, s.Includes[i])
	}
	for i := range s.SystemIncludes {
		s.SystemIncludes[i] = resolve(dir, s.SystemIncludes[i])
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	return s, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Validate reports the first invalid setting.
func (s Settings) Validate() error {
	if s.Output == "" {
		return errors.New("output: must not be empty")
	}
	if s.RepeatEach < 1 {
		return fmt.Errorf("repeat_each: must be at least 1, got %d", s.RepeatEach)
	}
	for _, c := range s.CPUs {
		if c < 0 {
			return fmt.Errorf("cpus: invalid CPU %d", c)
		}
	}
	if _, err := query.ParsePolicy(s.Ambiguity); err != nil {
		return fmt.Errorf("ambiguity: %w", err)
	}
	if err := report.CheckFormats(s.Formats); err != nil {
		return fmt.Errorf("formats: %w", err)
	}
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Policy returns the parsed ambiguity policy.
func (s Settings) Policy() query.Policy {
	p, err := query.ParsePolicy(s.Ambiguity)
	if err != nil {
		return query.First
	}
	return p
}

// OffenderCount returns the number of offenders to collect, or 0.
func (s Settings) OffenderCount() int {
	if s.Offenders {
		return query.DefaultOffenders
	}
	return 0
}

// TraceOptions returns the compiler options of a record under s.
// Pinning is to cpu, or disabled if cpu is negative.
func (s Settings) TraceOptions(r *Record, cpu int) trace.Options {
	opts := trace.Options{
		Compiler:       s.Compiler,
		Standard:       r.Standard,
		Includes:       s.Includes,
		SystemIncludes: s.SystemIncludes,
		Extra:          r.Options,
	}
	if cpu >= 0 {
		opts.CPUList = fmt.Sprint(cpu)
	}
	return opts
}
