// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gogpu/ubershader/precompile"
	"github.com/gogpu/ubershader/vertex"
)

func newPrecompileCmd() *cobra.Command {
	var (
		hf     hostFlags
		jobs   int
		outDir string
		quiet  bool
	)
	cmd := &cobra.Command{
		Use:   "precompile",
		Short: "Generate and check every vertex uber-shader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hc, err := hf.config(cmd)
			if err != nil {
				return err
			}

			opts := []precompile.Option{precompile.WithConcurrency(jobs)}
			var bar *progressbar.ProgressBar
			if !quiet {
				bar = progressbar.NewOptions(vertex.NumUids,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("precompile "+hc.Profile()),
					progressbar.OptionShowCount(),
				)
				opts = append(opts, precompile.WithProgress(func(int, int) {
					_ = bar.Add(1)
				}))
			}

			cache, err := precompile.Warm(cmd.Context(), hc, precompile.LintCompiler{}, opts...)
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			if outDir != "" {
				if err := writePrograms(outDir, cache, hc.Bits(), extension(hc.Dialect().String())); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d programs for %s %s\n", cache.Len(), hc.API, hc.Profile())
			return nil
		},
	}
	hf.register(cmd)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "programs in flight")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to write programs to")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress bar")
	return cmd
}

func extension(dialect string) string {
	if dialect == "hlsl" {
		return ".hlsl"
	}
	return ".glsl"
}

func writePrograms(dir string, cache *precompile.Cache, bits uint32, ext string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for uid := range vertex.EnumerateUids() {
		bin, ok := cache.Get(precompile.Key{Uid: uid, HostBits: bits})
		if !ok {
			return fmt.Errorf("missing program %s", uid)
		}
		if err := os.WriteFile(filepath.Join(dir, uid.String()+ext), bin, 0o644); err != nil {
			return err
		}
	}
	return nil
}
