package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vivmac33/marketprism/pkg/config"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// testLoggerCmd represents the test-logger command
var testLoggerCmd = &cobra.Command{
	Use:   "test-logger",
	Short: "Exercise the structured logger",
	Long: `Prints sample output in both JSON and console format so log
shipping and level configuration can be verified by eye.

Example:
  go run ./cmd/prism test-logger`,
	RunE: runTestLogger,
}

func init() {
	rootCmd.AddCommand(testLoggerCmd)
}

func runTestLogger(cmd *cobra.Command, args []string) error {
	fmt.Println("1. JSON Format (Production)")
	fmt.Println("--------------------------------")
	jsonLog := logger.New(&config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	})
	jsonLog.Info("Service started")
	jsonLog.WithFields(map[string]interface{}{
		"symbol":    "AAPL",
		"score":     63.4,
		"sentiment": "bullish",
	}).Info("Composite synthesized")
	jsonLog.WithError(errors.New("connection timeout")).Error("Failed to cache composite")
	fmt.Println()

	fmt.Println("2. Console Format (Development)")
	fmt.Println("--------------------------------")
	consoleLog := logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
	})
	consoleLog.Debug("Debugging card evaluation")
	consoleLog.WithField("card_id", "momentum_trend").Info("Card computed")
	consoleLog.Warn("Cache miss, synthesizing from scratch")
	fmt.Println()

	fmt.Println("All logger checks completed")
	return nil
}
