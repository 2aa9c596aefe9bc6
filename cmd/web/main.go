package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/memmatch/internal/config"
	"github.com/peterkuimelis/memmatch/internal/log"
	"github.com/peterkuimelis/memmatch/internal/results"
	"github.com/peterkuimelis/memmatch/internal/score"
	"github.com/peterkuimelis/memmatch/internal/web"
)

func main() {
	configFile := flag.String("config", "memmatch.yaml", "path to config YAML file")
	listen := flag.String("listen", "", "address to listen on (overrides config)")
	assets := flag.String("assets", "", "path to sound assets directory (overrides config)")
	flag.Parse()

	if err := run(*configFile, *listen, *assets); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, listen, assets string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}
	if assets != "" {
		cfg.AssetsDir = assets
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := log.NewZap(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	kv, err := score.OpenKV(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return err
	}
	if c, ok := kv.(io.Closer); ok {
		defer c.Close()
	}

	var publisher results.Publisher = results.Nop{}
	if cfg.NATS.URL != "" {
		p, err := results.Connect(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			logger.Warn("results publishing disabled", zap.Error(err))
		} else {
			defer p.Close()
			publisher = p
		}
	}

	srv := web.NewServer(web.Options{
		AssetsDir: cfg.AssetsDir,
		Session:   cfg.Session(),
		Scores:    score.NewStore(kv, logger),
		Publisher: publisher,
		Events:    log.NewZapLogger(logger),
		Logger:    logger,
	})

	logger.Info("memmatch web UI listening", zap.String("addr", cfg.Listen))
	if err := srv.ListenAndServe(cfg.Listen); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
