// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slo-cpp/ctbench/config"
	"github.com/slo-cpp/ctbench/internal/texttab"
)

func newExpandCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "expand [dir|profiles.toml ...]",
		Short: "Print the concrete profiles of every benchmark record without compiling",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			paths, err := config.Discover(args, g.settings.Output)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, path := range paths {
				rec, err := config.LoadRecord(path)
				if err != nil {
					return err
				}
				profiles, err := rec.Expand()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s (%s)\n", rec.Name(), rec.Source)
				var tab texttab.Table
				for _, p := range profiles {
					defs := make([]string, len(p.Defines))
					for j, d := range p.Defines {
						defs[j] = "-D" + d.String()
					}
					tab.Row().Cell(p.Name).Cell(strings.Join(defs, " "))
				}
				if err := tab.Format(w); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
