// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command ubergen generates, lists, lints and precompiles vertex
// uber-shaders.
//
// Usage:
//
//	ubergen gen --api d3d11 --texgens 3 --ppl -o vs-t3-ppl.hlsl
//	ubergen uids
//	ubergen precompile --host host.yaml --jobs 4
//	ubergen lint --api opengl shader.glsl
//	ubergen host --api vulkan > host.yaml
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/ubershader"
	"github.com/gogpu/ubershader/host"
)

const ubergenVersion = "0.1.0-dev"

// hostFlags selects the host configuration of a command.
type hostFlags struct {
	api  string
	file string
}

func (f *hostFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.api, "api", "opengl", "host API: opengl, vulkan or d3d11")
	cmd.Flags().StringVar(&f.file, "host", "", "YAML host description; --api overrides its api key")
}

// config resolves the host configuration. An explicit --api wins over the
// file. Switching to an API of the other dialect takes that API's default
// GLSL version and shader model.
func (f *hostFlags) config(cmd *cobra.Command) (host.Config, error) {
	var api host.APIType
	if err := api.UnmarshalText([]byte(f.api)); err != nil {
		return host.Config{}, err
	}
	if f.file == "" {
		return host.Defaults(api), nil
	}
	cfg, err := host.LoadFile(f.file)
	if err != nil {
		return host.Config{}, err
	}
	if cmd.Flags().Changed("api") && api != cfg.API {
		if api.Dialect() != cfg.Dialect() {
			def := host.Defaults(api)
			cfg.GLSLVersion = def.GLSLVersion
			cfg.ShaderModel = def.ShaderModel
		}
		cfg.API = api
	}
	if err := cfg.Validate(); err != nil {
		return host.Config{}, err
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "ubergen",
		Short:         "Vertex uber-shader generator",
		Version:       ubergenVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose {
				ubershader.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
					&slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newGenCmd(),
		newUidsCmd(),
		newPrecompileCmd(),
		newLintCmd(),
		newHostCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ubergen: %v\n", err)
		os.Exit(1)
	}
}
