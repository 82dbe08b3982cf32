// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/ubershader/vertex"
)

func newGenCmd() *cobra.Command {
	var (
		hf      hostFlags
		texGens int
		ppl     bool
		output  string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate one vertex uber-shader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hc, err := hf.config(cmd)
			if err != nil {
				return err
			}
			uid, err := vertex.NewUid(texGens, ppl)
			if err != nil {
				return err
			}
			src, err := vertex.Generate(uid, hc)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), src)
				return err
			}
			if err := os.WriteFile(output, []byte(src), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s, %d bytes)\n", output, uid, len(src))
			return nil
		},
	}
	hf.register(cmd)
	cmd.Flags().IntVar(&texGens, "texgens", 0, "number of texgens, 0-8")
	cmd.Flags().BoolVar(&ppl, "ppl", false, "per-pixel lighting")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
