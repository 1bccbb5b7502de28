// Package appleremote receives Apple Remote button events on macOS and delivers them to Go
// handlers.
//
// The infrared receiver is read by iremotepipe, a small helper executable that prints one
// line per button event. This module launches the helper, decodes its output into typed
// events and fans them out to any number of listeners, with the helper's lifetime tied to
// the remote's.
//
// # Getting Documentation
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/lakospeter91/appleremote/core/remote
//	go doc -all github.com/lakospeter91/appleremote/core/provision
//
// # Core Packages
//
//	github.com/lakospeter91/appleremote/core/remote     - Helper process supervision, line decoding and event dispatch
//	github.com/lakospeter91/appleremote/core/provision  - Locating, verifying and installing the iremotepipe helper
//	github.com/lakospeter91/appleremote/core/config     - Type-safe environment variable loading
//	github.com/lakospeter91/appleremote/core/logger     - Structured logging built on slog
//	github.com/lakospeter91/appleremote/core/health     - Readiness checks and HTTP health probes
//
// # Integrations
//
//	github.com/lakospeter91/appleremote/integration/database/redis      - Redis client and pub/sub event sink
//	github.com/lakospeter91/appleremote/integration/metrics/prometheus  - Prometheus collector for remote statistics
//
// # Quick Start
//
//	package main
//
//	import (
//		"context"
//		"os/signal"
//		"syscall"
//
//		"golang.org/x/sync/errgroup"
//
//		"github.com/lakospeter91/appleremote/core/config"
//		"github.com/lakospeter91/appleremote/core/logger"
//		"github.com/lakospeter91/appleremote/core/remote"
//	)
//
//	func main() {
//		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//		defer stop()
//
//		log := logger.New(logger.WithDevelopment("appleremote"))
//
//		var cfg remote.Config
//		config.MustLoad(&cfg)
//
//		r, err := remote.NewFromConfig(cfg, remote.WithLogger(log))
//		if err != nil {
//			log.Error("invalid configuration", logger.Error(err))
//			return
//		}
//
//		r.AddListener(remote.NewMux().
//			On(remote.ButtonPlayPause, remote.PhasePressed, togglePlayback).
//			OnButton(remote.ButtonVolumeUp, volumeUp).
//			OnButton(remote.ButtonVolumeDown, volumeDown))
//
//		g, ctx := errgroup.WithContext(ctx)
//		g.Go(r.Run(ctx))
//		if err := g.Wait(); err != nil {
//			log.Error("remote stopped", logger.Error(err))
//		}
//	}
package appleremote
