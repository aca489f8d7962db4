// SPDX-License-Identifier: GPL-3.0-or-later

// Command stumpsd bootstraps a set of mocking/recording proxy instances
// from a YAML descriptor file and runs them until it receives a shutdown
// signal (see §6, administrative contract — this is the thinnest possible
// wrapper around [stumps.HostRegistry]).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/stumps/stumps"
	stumpsconfig "github.com/stumps/stumps/internal/config"
)

func main() {
	descriptorPath := flag.String("config", "instances.yaml", "path to the instance descriptor YAML file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(*descriptorPath, logger); err != nil {
		logger.Error("stumpsd exited with error", "error", err)
		os.Exit(1)
	}
}

func run(descriptorPath string, logger *slog.Logger) error {
	doc, err := stumpsconfig.Load(descriptorPath)
	if err != nil {
		return err
	}

	cfg := stumps.NewConfig()
	cfg.Logger = logger

	store := stumps.NewMemoryDataStore()
	registry := stumps.NewHostRegistry(store, cfg)

	for _, d := range doc.Instances {
		id := d.ID
		if id == "" {
			id = stumps.NewInstanceID()
		}
		descriptor := &stumps.ProxyServerDescriptor{
			InstanceID:                 id,
			ExternalHostName:           d.ExternalHostName,
			UseSecureTransportUpstream: d.UseSecureTransportUpstream,
			ListeningPort:              d.ListeningPort,
			AutoStart:                  d.AutoStart,
			StumpsEnabled:              d.StumpsEnabled,
			RecordTraffic:              d.RecordTraffic,
			RecordingBehavior:          recordingBehaviorFrom(d.RecordingBehavior),
			FallbackResponse:           fallbackResponseFrom(d.FallbackResponse),
		}
		if err := store.ProxyServerCreate(descriptor); err != nil {
			return err
		}
	}

	if err := registry.Load(); err != nil {
		return err
	}
	if err := registry.StartAll(); err != nil {
		return err
	}
	logger.Info("stumpsd started", "instances", len(doc.Instances))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("stumpsd shutting down")
	return registry.StopAll()
}

func recordingBehaviorFrom(b stumpsconfig.RecordingBehavior) stumps.RecordingBehavior {
	if b == stumpsconfig.RecordingBehaviorDisableStumpsWhileRecording {
		return stumps.DisableStumpsWhileRecording
	}
	return stumps.LeaveStumpsUnchanged
}

func fallbackResponseFrom(f stumpsconfig.FallbackResponse) stumps.FallbackResponse {
	if f == stumpsconfig.FallbackResponseServiceUnavailable {
		return stumps.Http503ServiceUnavailable
	}
	return stumps.Http404NotFound
}
