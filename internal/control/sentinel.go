// Package control wires the sentinel's components together and manages
// their lifecycle.
package control

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/vietddude/sentinel/internal/core/config"
	"github.com/vietddude/sentinel/internal/health"
	"github.com/vietddude/sentinel/internal/infra/rpc"
	"github.com/vietddude/sentinel/internal/monitor"
	"github.com/vietddude/sentinel/internal/notify"
)

// Sentinel is the main application struct that manages the monitor lifecycle.
type Sentinel struct {
	cfg          *config.Config
	loop         *monitor.Loop
	healthServer *health.Server
	log          *slog.Logger
}

// New creates a Sentinel with all dependencies initialized from the config.
func New(cfg *config.Config) (*Sentinel, error) {
	localClient := rpc.NewHeightClient("local", cfg.LocalRPCURL, cfg.RPCTimeout)
	remoteClient := rpc.NewHeightClient("remote", cfg.RemoteRPCURL, cfg.RPCTimeout)

	collector := monitor.NewCollector(localClient, remoteClient)
	tracker := monitor.NewTracker(cfg.AlertCooldown, cfg.NotifyOnRecovery)
	notifier := notify.NewDiscordNotifier(cfg.WebhookURL, cfg.RPCTimeout)

	healthMon := health.NewMonitor()
	healthServer := health.NewServer(healthMon, cfg.HealthPort)

	loop := monitor.NewLoop(monitor.LoopConfig{
		Node:         nodeIdentity(cfg.LocalRPCURL),
		PollInterval: cfg.PollInterval,
		LagThreshold: cfg.LagThreshold,
		Collector:    collector,
		Tracker:      tracker,
		Notifier:     notifier,
		Sink:         healthMon,
	})

	return &Sentinel{
		cfg:          cfg,
		loop:         loop,
		healthServer: healthServer,
		log:          slog.Default(),
	}, nil
}

// Start starts the health server and the polling loop.
func (s *Sentinel) Start(ctx context.Context) error {
	go func() {
		if err := s.healthServer.Start(); err != nil {
			s.log.Error("Health server failed", "error", err)
		}
	}()

	go func() {
		if err := s.loop.Start(ctx); err != nil {
			s.log.Error("Monitor loop failed", "error", err)
		}
	}()

	s.log.Info("Sentinel started",
		"local", s.cfg.LocalRPCURL,
		"remote", s.cfg.RemoteRPCURL,
		"threshold", s.cfg.LagThreshold,
		"interval", s.cfg.PollInterval,
		"cooldown", s.cfg.AlertCooldown,
	)
	return nil
}

// Stop stops the loop and the health server.
func (s *Sentinel) Stop(ctx context.Context) error {
	s.log.Info("Stopping Sentinel...")

	if err := s.loop.Stop(); err != nil {
		s.log.Warn("Failed to stop monitor loop", "error", err)
	}

	return s.healthServer.Stop(ctx)
}

// nodeIdentity derives the identity used in alert messages from the local
// endpoint URL. Falls back to the raw string if it does not parse.
func nodeIdentity(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
