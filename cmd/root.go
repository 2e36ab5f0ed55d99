package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipfit/infrastructure/config"
	"clipfit/infrastructure/logging"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "clipfit",
	Short: "Trim videos and fit them under a size limit",
	Long: `clipfit cuts a range out of a video without re-encoding and, when the
result is larger than a size ceiling, re-encodes it at the bitrate that lands
under the ceiling. All codec work is done by ffmpeg and ffprobe.

  - Trim by start/end timestamps (stream copy)
  - Compress to a target size in MB
  - Copy the result to the clipboard, save it, or share it through Google Drive

Example:
  clipfit trim --source match.mkv --start 00:01:10 --end 00:01:40 --max-size 25 --clipboard`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	// A missing file falls back to defaults; commands that need it check GetConfig
	cfg, cfgErr = config.LoadOrDefault(cfgFile)

	level := "info"
	if cfg != nil {
		level = cfg.Logging.Level
	}
	logging.Init(level, verbose)
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}
