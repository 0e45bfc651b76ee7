// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall play           - Play in the terminal
//	blockfall pieces         - Show the configured piece table
//	blockfall sim            - Run a headless seeded simulation
//	blockfall config         - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Use a custom config YAML
//	--log-file <path>     - Append logs to a file
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogFile  string
	flagLogLevel string

	// Set up by the root command before any subcommand runs
	logger    *log.Logger
	logFile   io.Closer
	gameCfg   config.BlocksConfig
	cfgSource string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - falling blocks in your terminal",
	Long: `Blockfall is a terminal falling-block puzzle. Pieces drop into a
well; complete rows are cleared for points that double with every extra
row cleared in the same drop. When a new piece has no room the board is
wiped and play continues.

Available commands:
  play     - Play in the terminal
  pieces   - Show the configured piece table
  sim      - Run a headless seeded simulation
  config   - Print the effective configuration

Examples:
  blockfall play
  blockfall play --seed 42 --log-file blockfall.log
  blockfall sim --ticks 5000 --seed 7
  blockfall config > ~/.blockfall/configs/blocks.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(piecesCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setup creates the logger and loads the configuration.
// The TUI owns the terminal, so play logs nowhere unless --log-file is set.
func setup(cmd *cobra.Command, args []string) error {
	var fallback io.Writer = os.Stderr
	if cmd == playCmd {
		fallback = io.Discard
	}

	l, closer, err := newLogger(flagLogFile, flagLogLevel, fallback)
	if err != nil {
		return err
	}
	logger = l
	logFile = closer

	cfg, source, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return err
	}
	gameCfg = cfg
	cfgSource = source
	logger.Debug("config loaded", "source", source)

	blocks.SetConfig(cfg)
	blocks.SetLogger(logger)
	return nil
}

// newLogger builds the process logger. Output goes to path when set,
// otherwise to fallback.
func newLogger(path, level string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w := fallback
	var closer io.Closer
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
		Level:           lvl,
	})
	return l, closer, nil
}
