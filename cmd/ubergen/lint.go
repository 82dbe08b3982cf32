// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/ubershader/lint"
)

func newLintCmd() *cobra.Command {
	var hf hostFlags
	cmd := &cobra.Command{
		Use:   "lint <file>...",
		Short: "Check shader files for the host dialect",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hc, err := hf.config(cmd)
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				err = lint.Check(string(src), hc.Dialect())
				var lerr *lint.Error
				if !errors.As(err, &lerr) {
					continue
				}
				failed++
				for _, is := range lerr.Issues {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", path, is)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files have issues", failed, len(args))
			}
			return nil
		},
	}
	hf.register(cmd)
	return cmd
}
