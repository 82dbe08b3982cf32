// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/ubershader/vertex"
)

func newUidsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uids",
		Short: "List every vertex uid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-3s %-10s %-16s %s\n", "#", "uid", "hash", "size")
			for uid, i := range vertex.EnumerateUids() {
				fmt.Fprintf(w, "%-3d %-10s %016x %d\n", i, uid, uid.Hash(), vertex.SizeHint(uid))
			}
			return nil
		},
	}
}
