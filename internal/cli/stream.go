// Package cli — stream.go implements the "janus stream" command.
//
// Stream is the long-running recorder: it subscribes to BBO updates
// and writes every sample into Redis TimeSeries, reconnecting the
// websocket on failure. Inside the dev stack it runs against the
// stack's Redis via JANUS_REDIS_URL; anywhere else, point --redis-url
// at a TimeSeries-enabled instance.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/hyperliquid"
	"github.com/janus-labs/janus/internal/logging"
	"github.com/janus-labs/janus/internal/metadata"
	"github.com/janus-labs/janus/internal/stream"
)

// streamFlags holds the flag values for the stream command.
type streamFlags struct {
	redisURL       string // --redis-url: TimeSeries-enabled Redis
	env            string // --env: exchange environment (dev or prod)
	retentionHours int    // --retention-hours: sample retention
	metricsAddr    string // --metrics-addr: Prometheus listen address
}

// NewStreamCommand creates the "stream" cobra command.
func NewStreamCommand() *cobra.Command {
	flags := &streamFlags{}

	cmd := &cobra.Command{
		Use:   "stream [product...]",
		Short: "Record best bid/offer feeds into Redis TimeSeries",
		Long: `Record BBO updates into Redis TimeSeries, one series per product
side, keyed "hyperliquid:bbo:<product>:<bid|ask>".

Without arguments the default product set is recorded: BTC, ETH, and
SOL spot and perpetual markets plus the HYPE perpetual. Runs until
interrupted, reconnecting the websocket after transient failures.

Examples:
  janus stream
  janus stream BTC-USDC ETH-USDC --env prod
  janus stream --redis-url redis://localhost:6379 --metrics-addr :9100`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStream(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.redisURL, "redis-url", defaultRedisURL(), "Redis URL (TimeSeries module required)")
	cmd.Flags().StringVar(&flags.env, "env", "dev", "Exchange environment (dev or prod)")
	cmd.Flags().IntVar(&flags.retentionHours, "retention-hours", 24, "Sample retention in hours")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Prometheus metrics listen address (disabled when empty)")

	return cmd
}

// defaultRedisURL prefers the stack-injected JANUS_REDIS_URL and
// falls back to localhost.
func defaultRedisURL() string {
	if url := os.Getenv("JANUS_REDIS_URL"); url != "" {
		return url
	}
	return "redis://localhost:6379"
}

// runStream wires the sink and service together and runs until
// interrupted.
func runStream(ctx context.Context, args []string, flags *streamFlags) error {
	level := "info"
	if IsVerbose() {
		level = "debug"
	}
	logging.Init(level, true)

	env, err := hyperliquid.ParseEnv(flags.env)
	if err != nil {
		return err
	}

	var products []metadata.Product
	for _, arg := range args {
		product, parseErr := metadata.ParseProduct(arg)
		if parseErr != nil {
			return parseErr
		}
		products = append(products, product)
	}

	sink, err := stream.NewSink(flags.redisURL, time.Duration(flags.retentionHours)*time.Hour)
	if err != nil {
		return err
	}
	defer sink.Close()

	svc, err := stream.NewService(env, sink, products)
	if err != nil {
		return err
	}

	if flags.metricsAddr != "" {
		stream.ServeMetrics(flags.metricsAddr)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logging.Get().Info().Msg("stream stopped")
	return nil
}
