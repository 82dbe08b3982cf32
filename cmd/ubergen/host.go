// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/ubershader/host"
)

func newHostCmd() *cobra.Command {
	var hf hostFlags
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Print the resolved host description as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hc, err := hf.config(cmd)
			if err != nil {
				return err
			}
			return host.Encode(cmd.OutOrStdout(), hc)
		},
	}
	hf.register(cmd)
	return cmd
}
