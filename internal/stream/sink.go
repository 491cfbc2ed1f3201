package stream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/janus-labs/janus/internal/metadata"
)

// DefaultRetention is how long BBO samples are kept when no retention
// is configured.
const DefaultRetention = 24 * time.Hour

// Sink writes BBO updates into Redis TimeSeries, one series per
// product side.
type Sink struct {
	rdb       *redis.Client
	retention time.Duration
}

// NewSink returns a sink backed by the Redis instance at url. The URL
// uses the redis://host:port form.
func NewSink(url string, retention time.Duration) (*Sink, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("stream: parse redis url: %w", err)
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Sink{
		rdb:       redis.NewClient(opts),
		retention: retention,
	}, nil
}

// Ping verifies the Redis connection is alive.
func (s *Sink) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("stream: redis ping: %w", err)
	}
	return nil
}

// EnsureSeries creates the bid and ask time series for each product,
// skipping any that already exist.
func (s *Sink) EnsureSeries(ctx context.Context, products []metadata.Product) error {
	opts := &redis.TSOptions{
		Retention: int(s.retention.Milliseconds()),
		Labels:    map[string]string{"source": "hyperliquid", "feed": "bbo"},
	}
	for _, product := range products {
		for _, side := range []Side{SideBid, SideAsk} {
			key := SeriesKey(product, side)
			err := s.rdb.TSCreateWithArgs(ctx, key, opts).Err()
			if err != nil && !isAlreadyExists(err) {
				return fmt.Errorf("stream: create series %s: %w", key, err)
			}
		}
	}
	return nil
}

// Write records one BBO update as a bid and an ask sample. When the
// update carries no exchange timestamp the current wall clock is
// used.
func (s *Sink) Write(ctx context.Context, product metadata.Product, bbo *BBO) error {
	ts := bbo.Time
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}

	if err := s.rdb.TSAdd(ctx, SeriesKey(product, SideBid), ts, bbo.BidPrice).Err(); err != nil {
		return fmt.Errorf("stream: add bid sample for %s: %w", product, err)
	}
	if err := s.rdb.TSAdd(ctx, SeriesKey(product, SideAsk), ts, bbo.AskPrice).Err(); err != nil {
		return fmt.Errorf("stream: add ask sample for %s: %w", product, err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *Sink) Close() error {
	return s.rdb.Close()
}

func isAlreadyExists(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "already exists")
}
