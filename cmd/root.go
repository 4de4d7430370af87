package cmd

import (
	"os"

	"github.com/bodul/xpuzzle/internal/config"
	"github.com/bodul/xpuzzle/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "xpuzzle",
	Short: "Generate clue-in-grid crossword puzzles",
	Long: `xpuzzle places keywords into arrow-word crosswords, where every clue sits
in a grid cell next to its answer.

Run "xpuzzle generate" to build a puzzle from a word list on the command line
or "xpuzzle serve" to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var path string
		cfg, path = config.LoadConfigWithPriority(configPath)

		level := cfg.Log.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger.SetLevel(level)
		if path != "" {
			logger.New("config").Debugf("using %s", path)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
