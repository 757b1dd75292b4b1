package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "nutriguide",
	Short: "Health-driven diet and restaurant recommendations",
	Long: `nutriguide turns blood test metrics into a health advisory, diet
suggestions and nearby restaurants. Each stage falls back to fixed results
when its upstream service is unavailable or not configured.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./config.yaml, ./config/config.yaml, /etc/nutriguide/config.yaml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
