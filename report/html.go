// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"

	"github.com/slo-cpp/ctbench/analyze"
)

var htmlTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Source}}</title>
<style>
table.ctbench { border-collapse: collapse; margin-bottom: 1em; }
table.ctbench td, table.ctbench th { padding: 0 0.5em; }
table.ctbench td.num { text-align: right; font-family: monospace; }
</style>
</head>
<body>
<h1>{{.Source}}</h1>
<p>{{.Repeat}} runs per profile</p>
{{- range .Tables}}
<table class="ctbench">
<tbody>
<tr><th>{{.Query}}<th>min<th>mean<th>max<th>±<th>runs<th>best
{{range .Rows -}}
<tr><td>{{.Profile}}<td class="num">{{.Min}}<td class="num">{{.Mean}}<td class="num">{{.Max}}<td class="num">{{.Spread}}<td class="num">{{.Runs}}<td class="num">{{.Best}}
{{end -}}
</tbody>
</table>
{{- end}}
</body>
</html>
`))

// WriteHTML writes an HTML page summarizing res to w.
func WriteHTML(w io.Writer, res *analyze.Result) error {
	return htmlTemplate.Execute(w, struct {
		Source string
		Repeat int
		Tables []table
	}{res.Source, res.Repeat, tables(res)})
}
