package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "evseatd",
	Short: "Seat manager for explicitly added input devices",
	Long: "evseatd groups explicitly added evdev nodes into seats, applies stored\n" +
		"calibration and keeps the set suspendable and resumable. It is the\n" +
		"path-style companion for compositors and kiosks that know exactly\n" +
		"which /dev/input nodes they want.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: $XDG_CONFIG_HOME/evseat/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(
		newRunCommand(),
		newDevicesCommand(),
		newCalibrationCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func newLogger(level string, debug bool) (*zap.SugaredLogger, error) {
	if debug {
		level = "debug"
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(lvl)
	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
