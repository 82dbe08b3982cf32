// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package precompile generates and compiles every vertex uber-shader for a
// host ahead of time.
//
// Usage:
//
//	cache, err := precompile.Warm(ctx, host.Defaults(host.APID3D11), compiler,
//	    precompile.WithConcurrency(4),
//	    precompile.WithProgress(func(done, total int) { ... }))
//
// Programs already in a cache passed with WithCache are skipped.
package precompile

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/ubershader"
	"github.com/gogpu/ubershader/host"
	"github.com/gogpu/ubershader/vertex"
)

// ProgressFunc receives the number of finished programs and the total.
// It may be called from several goroutines at once.
type ProgressFunc func(done, total int)

type options struct {
	concurrency int
	logger      *slog.Logger
	progress    ProgressFunc
	cache       *Cache
}

// Option configures Warm.
type Option func(*options)

// WithConcurrency bounds the number of programs in flight. Values below
// one mean one.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithLogger overrides the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithCache warms c instead of a new cache.
func WithCache(c *Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// Warm generates and compiles all vertex uids for hc and returns the cache
// holding the results.
//
// The first failure cancels the remaining work. Its error names the uid.
// The cache is returned even on failure and holds whatever finished.
func Warm(ctx context.Context, hc host.Config, compiler Compiler, opts ...Option) (*Cache, error) {
	o := options{
		concurrency: runtime.GOMAXPROCS(0),
		logger:      ubershader.Logger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = NewCache()
	}
	cache := o.cache

	if err := hc.Validate(); err != nil {
		return cache, fmt.Errorf("precompile: %w", err)
	}

	start := time.Now()
	bits := hc.Bits()
	profile := hc.Profile()
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for uid := range vertex.EnumerateUids() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			key := Key{Uid: uid, HostBits: bits}
			if _, ok := cache.Get(key); !ok {
				if err := build(gctx, compiler, cache, key, hc, profile); err != nil {
					return fmt.Errorf("precompile %s: %w", uid, err)
				}
				o.logger.Debug("precompile: compiled", "uid", uid.String(), "profile", profile)
			}
			n := int(done.Add(1))
			if o.progress != nil {
				o.progress(n, vertex.NumUids)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return cache, err
	}
	if err := ctx.Err(); err != nil {
		return cache, err
	}

	o.logger.Info("precompile: done",
		"api", hc.API.String(), "profile", profile, "programs", cache.Len(), "elapsed", time.Since(start))
	return cache, nil
}

func build(ctx context.Context, compiler Compiler, cache *Cache, key Key, hc host.Config, profile string) error {
	src, err := vertex.Generate(key.Uid, hc)
	if err != nil {
		return err
	}
	bin, err := compiler.Compile(ctx, Program{Uid: key.Uid, Host: hc, Profile: profile, Source: src})
	if err != nil {
		return err
	}
	cache.Put(key, bin)
	return nil
}
