// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slo-cpp/ctbench/query"
	"github.com/slo-cpp/ctbench/report"
	"github.com/slo-cpp/ctbench/trace"
)

func newOffendersCmd(_ *globals) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "offenders trace.json ...",
		Short: "List the slowest class parses and function instantiations of traces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("-n must be at least 1, got %d", n)
			}
			w := cmd.OutOrStdout()
			for i, path := range args {
				doc, err := trace.Load(path)
				if err != nil {
					return err
				}
				off, err := query.FindOffenders(doc, n)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, path)
				if err := report.WriteEvents(w, off.Classes, off.Functions); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", query.DefaultOffenders, "events to list per kind")
	return cmd
}
