package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alchemorsel/nutriguide/internal/domain/health"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/config"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/container"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/monitoring"
	"github.com/alchemorsel/nutriguide/internal/ports/inbound"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	recMetrics  []string
	recLocation string
	recTimeout  time.Duration
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"rec"},
	Short:   "Build one recommendation and print it as JSON",
	Example: `  nutriguide recommend --metric bloodSugar=160 --metric LDL=150 --location 東京都新宿区`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		metrics, err := parseMetrics(recMetrics)
		if err != nil {
			return err
		}

		var (
			svc     inbound.RecommendationService
			tracing *monitoring.TracingProvider
		)
		app := fx.New(
			fx.NopLogger,
			container.WithConfigPath(cfgFile),
			container.CoreModule,
			// stdout carries the result
			fx.Decorate(func(cfg *config.Config) *config.Config {
				cfg.App.LogOutput = []string{"stderr"}
				return cfg
			}),
			fx.Populate(&svc, &tracing),
		)
		if err := app.Err(); err != nil {
			return fmt.Errorf("failed to build application: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), recTimeout)
		defer cancel()

		result := svc.BuildRecommendation(ctx, inbound.RecommendCommand{
			Metrics:  metrics,
			Location: recLocation,
		})
		if err := tracing.Shutdown(context.Background()); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		return writeResult(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringArrayVarP(&recMetrics, "metric", "m", nil, "metric as name=value (e.g., bloodSugar=160); repeatable")
	recommendCmd.Flags().StringVarP(&recLocation, "location", "l", "", "address to search restaurants near; empty skips restaurants")
	recommendCmd.Flags().DurationVar(&recTimeout, "timeout", 60*time.Second, "overall timeout")
	_ = recommendCmd.MarkFlagRequired("metric")
}

// parseMetrics turns name=value pairs into metrics
func parseMetrics(pairs []string) (health.Metrics, error) {
	metrics := health.Metrics{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid metric %q: expected name=value", pair)
		}
		metrics[name] = strings.TrimSpace(value)
	}
	if len(metrics) == 0 {
		return nil, fmt.Errorf("at least one --metric is required")
	}
	return metrics, nil
}

func writeResult(w io.Writer, result *inbound.RecommendationDTO) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
