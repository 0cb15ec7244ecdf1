// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report turns the measurements of an analyze.Result into
// output documents: chart descriptions for an external line-chart
// renderer, a JSON summary, worst offenders and human-readable
// tables. The package produces bytes; it never writes files.
package report

import (
	"fmt"
	"hash/crc32"
	"strconv"

	"github.com/slo-cpp/ctbench/analyze"
)

// A Chart describes one line chart: one line per profile, one point
// per run.
type Chart struct {
	Title       string      `json:"title"`
	Data        ChartData   `json:"data"`
	Type        string      `json:"type"`
	Height      int         `json:"height"`
	Colors      []string    `json:"colors"`
	LineOptions LineOptions `json:"lineOptions"`
}

// ChartData holds the points of a Chart.
type ChartData struct {
	// Labels are the run indexes, "0" through repeat-1.
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`

	// YMarkers mark the minimum of every profile.
	YMarkers []Marker `json:"yMarkers"`
}

// A Dataset is the series of one profile. Gaps are encoded as null.
type Dataset struct {
	Name      string         `json:"name"`
	Values    analyze.Series `json:"values"`
	ChartType string         `json:"chartType"`
}

// A Marker is a labelled horizontal line.
type Marker struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type LineOptions struct {
	RegionFill int `json:"regionFill"`
	Spline     int `json:"spline"`
}

// ChartHeight is the height of every chart, in pixels.
const ChartHeight = 400

// Color returns the line color of profile name. It is stable across
// runs and machines.
func Color(name string) string {
	return fmt.Sprintf("#%06x", crc32.ChecksumIEEE([]byte(name))&0xffffff)
}

// Charts returns one chart per query of res, in query order.
func Charts(res *analyze.Result) []*Chart {
	labels := make([]string, res.Repeat)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	colors := make([]string, len(res.Profiles))
	for i, p := range res.Profiles {
		colors[i] = Color(p)
	}

	charts := make([]*Chart, 0, len(res.Queries))
	for _, q := range res.Queries {
		c := &Chart{
			Title: q,
			Data: ChartData{
				Labels:   labels,
				Datasets: []Dataset{},
				YMarkers: []Marker{},
			},
			Type:        "line",
			Height:      ChartHeight,
			Colors:      colors,
			LineOptions: LineOptions{RegionFill: 1, Spline: 1},
		}
		for _, p := range res.Profiles {
			c.Data.Datasets = append(c.Data.Datasets, Dataset{
				Name:      p,
				Values:    res.Series[q][p],
				ChartType: "line",
			})
			if s := res.Sample(q, p); s.Defined() {
				c.Data.YMarkers = append(c.Data.YMarkers, Marker{Label: p, Value: s.Min()})
			}
		}
		charts = append(charts, c)
	}
	return charts
}
