package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/memmatch/internal/config"
	"github.com/peterkuimelis/memmatch/internal/log"
	mmmcp "github.com/peterkuimelis/memmatch/internal/mcp"
	"github.com/peterkuimelis/memmatch/internal/results"
	"github.com/peterkuimelis/memmatch/internal/score"
)

func main() {
	configFile := flag.String("config", "memmatch.yaml", "path to config YAML file")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
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

	mmmcp.SetOptions(mmmcp.Options{
		Session:   cfg.Session(),
		Scores:    score.NewStore(kv, logger),
		Publisher: publisher,
		Logger:    logger,
	})
	defer mmmcp.Reset()

	s := server.NewMCPServer("memmatch", "1.0.0")
	mmmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}
