package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/janus-labs/janus/internal/hyperliquid"
	"github.com/janus-labs/janus/internal/logging"
	"github.com/janus-labs/janus/internal/metadata"
)

const (
	// reconnectDelay is how long the service waits before redialing
	// after the websocket drops.
	reconnectDelay = 3 * time.Second

	// progressInterval is how many writes pass between progress log
	// lines.
	progressInterval = 100
)

// Service ties the websocket feed to the Redis sink for a fixed set
// of products.
type Service struct {
	env      hyperliquid.Env
	sink     *Sink
	products []metadata.Product

	// coinToProduct maps the exchange coin identifier in incoming
	// messages back to the product it belongs to.
	coinToProduct map[string]metadata.Product
}

// NewService returns a stream service for the given products. Pass a
// nil product slice to watch the default set.
func NewService(env hyperliquid.Env, sink *Sink, products []metadata.Product) (*Service, error) {
	if len(products) == 0 {
		defaults, err := DefaultProducts()
		if err != nil {
			return nil, err
		}
		products = defaults
	}
	return &Service{
		env:      env,
		sink:     sink,
		products: products,
	}, nil
}

// resolveCoins queries the exchange metadata and builds the coin
// identifier map for the configured products.
func (s *Service) resolveCoins(ctx context.Context) error {
	client := hyperliquid.NewClient(s.env)

	perpMeta, err := client.Meta(ctx)
	if err != nil {
		return fmt.Errorf("stream: fetch perpetuals metadata: %w", err)
	}
	spotMeta, err := client.SpotMeta(ctx)
	if err != nil {
		return fmt.Errorf("stream: fetch spot metadata: %w", err)
	}

	perps, err := hyperliquid.BuildPerpetualMetadata(perpMeta)
	if err != nil {
		return err
	}
	spots, err := hyperliquid.BuildSpotMetadata(spotMeta)
	if err != nil {
		return err
	}

	s.coinToProduct = make(map[string]metadata.Product, len(s.products))
	for _, product := range s.products {
		switch p := product.(type) {
		case metadata.Perpetual:
			pm, ok := perps[p]
			if !ok {
				return fmt.Errorf("stream: %s is not listed on the exchange", p)
			}
			s.coinToProduct[pm.Coin] = p
		case metadata.Spot:
			pm, ok := spots[p]
			if !ok {
				return fmt.Errorf("stream: %s is not listed on the exchange", p)
			}
			s.coinToProduct[pm.Coin] = p
		default:
			return fmt.Errorf("stream: unsupported product type %T", product)
		}
	}
	return nil
}

// Run streams BBO updates into the sink until ctx is cancelled. The
// websocket is redialed after transient failures.
func (s *Service) Run(ctx context.Context) error {
	if err := s.sink.Ping(ctx); err != nil {
		return err
	}
	if err := s.resolveCoins(ctx); err != nil {
		return err
	}
	if err := s.sink.EnsureSeries(ctx, s.products); err != nil {
		return err
	}

	log := logging.Get()
	log.Info().
		Str("env", s.env.String()).
		Int("products", len(s.products)).
		Msg("starting bbo stream")

	for {
		err := s.consume(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return ctx.Err()
		}

		log.Warn().Err(err).Dur("retry_in", reconnectDelay).Msg("websocket dropped, reconnecting")
		reconnects.Inc()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

// closeWhenDone closes c when ctx is cancelled. The returned stop
// function ends the watch; since closing twice is harmless, stop may
// race a real cancellation.
func closeWhenDone(ctx context.Context, c io.Closer) (stop func()) {
	watchCtx, cancel := context.WithCancel(ctx)
	go func() {
		<-watchCtx.Done()
		c.Close()
	}()
	return cancel
}

// consume opens one websocket connection, subscribes, and pumps
// messages into the sink until the connection fails or ctx is
// cancelled.
func (s *Service) consume(ctx context.Context) error {
	ws := hyperliquid.NewWSClient(s.env)
	if err := ws.Connect(ctx); err != nil {
		return err
	}
	defer ws.Close()

	for coin := range s.coinToProduct {
		if err := ws.SubscribeBBO(coin); err != nil {
			return err
		}
	}

	// ReadMessage blocks without honoring ctx, so cancellation is
	// delivered by closing the connection out from under it. The stop
	// function releases the watcher when this connection ends, so
	// reconnect iterations do not accumulate goroutines.
	stop := closeWhenDone(ctx, ws)
	defer stop()

	log := logging.Get()
	var written int

	for {
		msg, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		bbo, err := ParseBBO(msg)
		if err != nil {
			parseFailures.Inc()
			log.Warn().Err(err).Msg("discarding unparseable message")
			continue
		}
		if bbo == nil {
			continue
		}

		product, ok := s.coinToProduct[bbo.Coin]
		if !ok {
			continue
		}

		if err := s.sink.Write(ctx, product, bbo); err != nil {
			log.Error().Err(err).Str("product", product.String()).Msg("redis write failed")
			continue
		}

		updatesProcessed.WithLabelValues(product.String()).Inc()
		lastPrice.WithLabelValues(product.String(), string(SideBid)).Set(bbo.BidPrice)
		lastPrice.WithLabelValues(product.String(), string(SideAsk)).Set(bbo.AskPrice)

		written++
		if written%progressInterval == 0 {
			log.Info().Int("written", written).Msg("bbo stream progress")
		}
	}
}
