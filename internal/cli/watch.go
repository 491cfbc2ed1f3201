// Package cli — watch.go implements the "janus watch" command.
//
// Watch subscribes to BBO updates for the given products and prints
// them to stdout, one line per update. It is the quick ad-hoc view of
// the feed; "janus stream" is the recording counterpart that writes
// to Redis.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/hyperliquid"
	"github.com/janus-labs/janus/internal/logging"
	"github.com/janus-labs/janus/internal/metadata"
	"github.com/janus-labs/janus/internal/stream"
)

// watchFlags holds the flag values for the watch command.
type watchFlags struct {
	env string // --env: exchange environment (dev or prod)
}

// NewWatchCommand creates the "watch" cobra command.
func NewWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <product>...",
		Short: "Print live best bid/offer updates",
		Long: `Subscribe to BBO updates for the given products and print each
update to stdout. Products use the display form: BASE-QUOTE for
perpetuals, BASE/QUOTE for spot pairs.

Runs until interrupted.

Examples:
  janus watch BTC-USDC
  janus watch BTC/USDC ETH-USDC --env prod`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.env, "env", "dev", "Exchange environment (dev or prod)")

	return cmd
}

// runWatch connects, subscribes, and prints updates until interrupted.
func runWatch(ctx context.Context, args []string, flags *watchFlags) error {
	level := "info"
	if IsVerbose() {
		level = "debug"
	}
	logging.Init(level, true)

	env, err := hyperliquid.ParseEnv(flags.env)
	if err != nil {
		return err
	}

	products := make([]metadata.Product, 0, len(args))
	for _, arg := range args {
		product, parseErr := metadata.ParseProduct(arg)
		if parseErr != nil {
			return parseErr
		}
		products = append(products, product)
	}

	// Resolve the exchange coin identifiers for the requested products.
	coinToProduct, err := resolveCoinIdentifiers(ctx, env, products)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reconnect loop: a dropped connection is redialed after a short
	// pause, resubscribing to the same set of coins.
	for {
		err := watchOnce(ctx, env, coinToProduct)
		if ctx.Err() != nil {
			return nil
		}
		logging.Get().Warn().Err(err).Dur("retry_in", watchReconnectDelay).Msg("websocket dropped, reconnecting")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(watchReconnectDelay):
		}
	}
}

// watchReconnectDelay is how long watch waits before redialing after
// the websocket drops.
const watchReconnectDelay = 3 * time.Second

// watchOnce runs one websocket connection until it fails or ctx is
// cancelled.
func watchOnce(ctx context.Context, env hyperliquid.Env, coinToProduct map[string]metadata.Product) error {
	ws := hyperliquid.NewWSClient(env)
	if err := ws.Connect(ctx); err != nil {
		return err
	}
	defer ws.Close()

	for coin := range coinToProduct {
		if err := ws.SubscribeBBO(coin); err != nil {
			return err
		}
	}
	logging.Get().Debug().Int("products", len(coinToProduct)).Msg("subscribed")

	// ReadMessage blocks without honoring ctx; the watcher closes the
	// connection on cancellation and is released when this connection
	// ends, so reconnect iterations do not accumulate goroutines.
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-connCtx.Done()
		ws.Close()
	}()

	for {
		msg, err := ws.ReadMessage()
		if err != nil {
			return err
		}

		bbo, err := stream.ParseBBO(msg)
		if err != nil {
			logging.Get().Warn().Err(err).Msg("discarding unparseable message")
			continue
		}
		if bbo == nil {
			continue
		}
		product, ok := coinToProduct[bbo.Coin]
		if !ok {
			continue
		}

		printBBO(product, bbo)
	}
}

// resolveCoinIdentifiers maps products to the coin identifiers used
// in websocket subscriptions, via the exchange metadata.
func resolveCoinIdentifiers(ctx context.Context, env hyperliquid.Env, products []metadata.Product) (map[string]metadata.Product, error) {
	client := hyperliquid.NewClient(env)

	perpMeta, err := client.Meta(ctx)
	if err != nil {
		return nil, err
	}
	spotMeta, err := client.SpotMeta(ctx)
	if err != nil {
		return nil, err
	}

	perps, err := hyperliquid.BuildPerpetualMetadata(perpMeta)
	if err != nil {
		return nil, err
	}
	spots, err := hyperliquid.BuildSpotMetadata(spotMeta)
	if err != nil {
		return nil, err
	}

	out := make(map[string]metadata.Product, len(products))
	for _, product := range products {
		switch p := product.(type) {
		case metadata.Perpetual:
			pm, ok := perps[p]
			if !ok {
				return nil, fmt.Errorf("%s is not listed on the exchange", p)
			}
			out[pm.Coin] = p
		case metadata.Spot:
			pm, ok := spots[p]
			if !ok {
				return nil, fmt.Errorf("%s is not listed on the exchange", p)
			}
			out[pm.Coin] = p
		default:
			return nil, fmt.Errorf("unsupported product type %T", product)
		}
	}
	return out, nil
}

// printBBO writes one update line in the active output format.
func printBBO(product metadata.Product, bbo *stream.BBO) {
	if IsJSONOutput() {
		out := map[string]interface{}{
			"product": product.String(),
			"bid":     bbo.BidPrice,
			"bidSize": bbo.BidSize,
			"ask":     bbo.AskPrice,
			"askSize": bbo.AskSize,
			"time":    bbo.Time,
		}
		data, _ := json.Marshal(out)
		fmt.Println(string(data))
		return
	}

	ts := time.Now().Format("15:04:05.000")
	if bbo.Time != 0 {
		ts = time.UnixMilli(bbo.Time).Format("15:04:05.000")
	}
	fmt.Printf("%s  %-12s bid %.6g x %.6g | ask %.6g x %.6g\n",
		ts, product, bbo.BidPrice, bbo.BidSize, bbo.AskPrice, bbo.AskSize)
}
