// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/slo-cpp/ctbench/analyze"
)

// Optional output formats.
const (
	Text  = "text"  // summary.txt
	HTML  = "html"  // summary.html
	Bench = "bench" // results.bench
)

var formatFiles = map[string]struct {
	name  string
	write func(io.Writer, *analyze.Result) error
}{
	Text:  {"summary.txt", WriteText},
	HTML:  {"summary.html", WriteHTML},
	Bench: {"results.bench", WriteBenchfmt},
}

// CheckFormats returns an error if any of formats is not a known
// output format.
func CheckFormats(formats []string) error {
	for _, f := range formats {
		if _, ok := formatFiles[f]; !ok {
			return fmt.Errorf("unknown output format %q (want %s, %s or %s)", f, Text, HTML, Bench)
		}
	}
	return nil
}

// An Artifact is an output document and the path it belongs at.
type Artifact struct {
	Path string
	Data []byte
}

// SummaryDocument returns the JSON summary of res: query, then
// profile, to the minimum measurement.
func SummaryDocument(res *analyze.Result) ([]byte, error) {
	return json.Marshal(res.Summary())
}

// Artifacts returns the output documents of res, rooted at dir: one
// chart per query at "<query>.json", then "summary.json", then
// "offenders.json" if res has offenders, then one document for each
// requested format in the order text, html, bench. The text format
// also adds "offenders.txt" if res has offenders.
func Artifacts(res *analyze.Result, dir string, formats []string) ([]Artifact, error) {
	if err := CheckFormats(formats); err != nil {
		return nil, err
	}

	var out []Artifact
	for _, c := range Charts(res) {
		data, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", c.Title, err)
		}
		out = append(out, Artifact{filepath.Join(dir, analyze.FileName(c.Title)+".json"), data})
	}

	data, err := SummaryDocument(res)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	out = append(out, Artifact{filepath.Join(dir, "summary.json"), data})

	if res.Offenders != nil {
		data, err := json.Marshal(res.Offenders)
		if err != nil {
			return nil, fmt.Errorf("offenders: %w", err)
		}
		out = append(out, Artifact{filepath.Join(dir, "offenders.json"), data})
	}

	for _, f := range []string{Text, HTML, Bench} {
		if !slices.Contains(formats, f) {
			continue
		}
		var buf bytes.Buffer
		ff := formatFiles[f]
		if err := ff.write(&buf, res); err != nil {
			return nil, fmt.Errorf("%s: %w", ff.name, err)
		}
		out = append(out, Artifact{filepath.Join(dir, ff.name), buf.Bytes()})

		if f == Text && res.Offenders != nil {
			var buf bytes.Buffer
			if err := WriteOffenders(&buf, res); err != nil {
				return nil, fmt.Errorf("offenders.txt: %w", err)
			}
			out = append(out, Artifact{filepath.Join(dir, "offenders.txt"), buf.Bytes()})
		}
	}
	return out, nil
}
