// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Command server runs the Reelgraph API: the follow-request lifecycle, the
// social graph, posts and notifications, and the media search proxy, all
// under one supervised process.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/reelgraph/reelgraph/internal/api"
	"github.com/reelgraph/reelgraph/internal/auth"
	"github.com/reelgraph/reelgraph/internal/config"
	"github.com/reelgraph/reelgraph/internal/engagement"
	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/media"
	"github.com/reelgraph/reelgraph/internal/social"
	"github.com/reelgraph/reelgraph/internal/store"
	"github.com/reelgraph/reelgraph/internal/supervisor"
	"github.com/reelgraph/reelgraph/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Logger().Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Msg("starting reelgraph")

	db, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close store")
		}
	}()

	users := store.NewUserStore(db)
	requests := store.NewRequestStore(db)
	notifications := store.NewNotificationStore(db)
	posts := store.NewPostStore(db)

	socialSvc := social.NewService(users, requests, notifications, cfg.Social.Cooldown)
	sweeper := social.NewSweeper(requests, cfg.Social.Cooldown, cfg.Social.SweepInterval)

	jwt, err := auth.NewJWTManager(cfg.Security)
	if err != nil {
		return err
	}
	authSvc := auth.NewService(users, jwt)
	authMW := auth.NewMiddleware(jwt)

	engagementSvc := engagement.NewService(posts, users, notifications)

	var mediaClient media.Searcher
	if cfg.Media.Enabled() {
		mediaClient = media.NewClient(cfg.Media)
		logging.Info().Str("provider", cfg.Media.BaseURL).Msg("media metadata provider configured")
	} else {
		logging.Warn().Msg("no media metadata provider configured; media search disabled")
	}

	handlers := api.NewHandlers(cfg, socialSvc, authSvc, users, notifications, engagementSvc, mediaClient)
	router := api.NewRouter(cfg, handlers, authMW)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddBackgroundService(services.NewSweeperService(sweeper))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service did not stop in time")
		}
	}

	logging.Info().Msg("shutdown complete")
	return nil
}
