package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/memmatch/internal/audio"
	"github.com/peterkuimelis/memmatch/internal/config"
	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/log"
	mmnet "github.com/peterkuimelis/memmatch/internal/net"
	"github.com/peterkuimelis/memmatch/internal/score"
	"github.com/peterkuimelis/memmatch/internal/session"
)

var (
	configFile string
	difficulty string
	storePath  string
	seed       int64
	showEvents bool
)

var rootCmd = &cobra.Command{
	Use:   "memmatch-cli",
	Short: "Play the memory matching game in a terminal",
	Long: `memmatch-cli runs a memory matching game against a local store.

Play a round on the default board
	memmatch-cli play

Play a hard board and list its best times afterwards
	memmatch-cli play --difficulty hard
	memmatch-cli scores hard
`,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive game",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := log.NewZap("warn")
		if err != nil {
			return err
		}
		defer logger.Sync()

		kv, closeKV, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeKV()

		sc := cfg.Session()
		if cmd.Flags().Changed("difficulty") {
			sc.Difficulty = game.Normalize(difficulty)
		}
		if cmd.Flags().Changed("seed") {
			sc.Seed = seed
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		deps := session.Deps{
			Clock:  game.RealClock{},
			Scores: score.NewStore(kv, logger),
			Mixer:  audio.NewMixer(cfg.AssetsDir, logger),
			Events: eventLogger(showEvents, cmd.ErrOrStderr()),
			Logger: logger,
		}
		return mmnet.PlayLocal(ctx, sc, deps, os.Stdin, os.Stdout)
	},
}

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show the most recent saved times for a difficulty",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		kv, closeKV, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeKV()

		d := cfg.Difficulty()
		if len(args) == 1 {
			d = game.Normalize(args[0])
		}
		return printScores(cmd.OutOrStdout(), score.NewStore(kv, nil), d)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "memmatch.yaml", "path to config YAML file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "path to the score database (overrides config)")
	playCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "board size: easy, medium or hard")
	playCmd.Flags().Int64Var(&seed, "seed", 0, "shuffle seed, 0 for a random deal")
	playCmd.Flags().BoolVar(&showEvents, "events", false, "print the game event log to stderr")

	rootCmd.AddCommand(playCmd, scoresCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if storePath != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.Path = storePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (score.KeyValueStore, func(), error) {
	kv, err := score.OpenKV(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	closeKV := func() {}
	if c, ok := kv.(io.Closer); ok {
		closeKV = func() { c.Close() }
	}
	return kv, closeKV, nil
}

// eventLogger prints events as they happen when enabled.
func eventLogger(enabled bool, w io.Writer) log.EventLogger {
	if !enabled {
		return log.NewMemoryLogger()
	}
	return log.NewTextLogger(w)
}

func printScores(w io.Writer, store *score.Store, d game.Difficulty) error {
	records := store.Recent(d.String())
	if _, err := fmt.Fprintf(w, "Best scores (%s):\n", d); err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "  No scores yet")
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "  %s\n", r); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
