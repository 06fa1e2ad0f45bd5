package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/eringen/techreader"
	"github.com/eringen/techreader/strapi"
	"github.com/eringen/techreader/views"
)

func setup() (techreader.SiteConfig, *zap.Logger, *strapi.Client, error) {
	cfg, err := techreader.LoadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := techreader.NewLogger(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		return cfg, nil, nil, err
	}
	cms, err := strapi.NewClient(strapi.Config{
		BaseURL:   cfg.StrapiURL,
		Token:     cfg.StrapiToken,
		Logger:    logger.Named("strapi"),
		UserAgent: "techreader/" + version,
	})
	if err != nil {
		return cfg, logger, nil, err
	}
	return cfg, logger, cms, nil
}

func runServe() error {
	cfg, logger, cms, err := setup()
	if err != nil {
		return err
	}

	app := techreader.New(cfg, cms, views.New(views.SiteFromConfig(cfg)), techreader.WithLogger(logger))
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Start(ctx)
}
