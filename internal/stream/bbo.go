package stream

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/janus-labs/janus/internal/hyperliquid"
	"github.com/janus-labs/janus/internal/metadata"
)

// Side identifies one side of the book.
type Side string

const (
	SideBid Side = "bid"
	SideAsk Side = "ask"
)

// BBO is one decoded best bid/offer update.
type BBO struct {
	// Coin is the exchange-native coin identifier the update is for.
	Coin string

	// BidPrice and AskPrice are the top-of-book prices. BidSize and
	// AskSize are the resting quantities at those prices.
	BidPrice float64
	BidSize  float64
	AskPrice float64
	AskSize  float64

	// Time is the exchange timestamp in milliseconds, when present.
	Time int64
}

// bboData mirrors the wire format of the data field of a bbo channel
// message: bbo is a two-element array of [price, size] string pairs,
// bid first.
type bboData struct {
	Coin string      `json:"coin"`
	Time int64       `json:"time"`
	BBO  [][2]string `json:"bbo"`
}

// ParseBBO decodes a websocket message as a BBO update. It returns
// nil with no error for messages on other channels (subscription
// acks, pongs) so the read loop can skip them.
func ParseBBO(msg *hyperliquid.Message) (*BBO, error) {
	if msg.Channel != "bbo" {
		return nil, nil
	}

	var data bboData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return nil, fmt.Errorf("stream: decode bbo data: %w", err)
	}
	if len(data.BBO) != 2 {
		return nil, fmt.Errorf("stream: bbo for %s: expected 2 levels, got %d", data.Coin, len(data.BBO))
	}

	bidPx, err := strconv.ParseFloat(data.BBO[0][0], 64)
	if err != nil {
		return nil, fmt.Errorf("stream: bbo for %s: bid price %q: %w", data.Coin, data.BBO[0][0], err)
	}
	bidSz, err := strconv.ParseFloat(data.BBO[0][1], 64)
	if err != nil {
		return nil, fmt.Errorf("stream: bbo for %s: bid size %q: %w", data.Coin, data.BBO[0][1], err)
	}
	askPx, err := strconv.ParseFloat(data.BBO[1][0], 64)
	if err != nil {
		return nil, fmt.Errorf("stream: bbo for %s: ask price %q: %w", data.Coin, data.BBO[1][0], err)
	}
	askSz, err := strconv.ParseFloat(data.BBO[1][1], 64)
	if err != nil {
		return nil, fmt.Errorf("stream: bbo for %s: ask size %q: %w", data.Coin, data.BBO[1][1], err)
	}

	return &BBO{
		Coin:     data.Coin,
		BidPrice: bidPx,
		BidSize:  bidSz,
		AskPrice: askPx,
		AskSize:  askSz,
		Time:     data.Time,
	}, nil
}

// SeriesKey returns the Redis TimeSeries key for one side of a
// product's book, e.g. "hyperliquid:bbo:BTC-USDC:bid".
func SeriesKey(product metadata.Product, side Side) string {
	return fmt.Sprintf("hyperliquid:bbo:%s:%s", product, side)
}

// DefaultProducts returns the product set the stream command watches
// when none is configured: BTC, ETH, and SOL spot and perpetual
// markets plus the HYPE perpetual, all quoted in USDC.
func DefaultProducts() ([]metadata.Product, error) {
	usdc, err := metadata.FromName("USDC")
	if err != nil {
		return nil, err
	}

	var products []metadata.Product
	for _, name := range []string{"BTC", "ETH", "SOL"} {
		base, err := metadata.FromName(name)
		if err != nil {
			return nil, err
		}
		products = append(products, base.Perp(usdc), base.Spot(usdc))
	}

	hype, err := metadata.FromName("HYPE")
	if err != nil {
		return nil, err
	}
	products = append(products, hype.Perp(usdc))

	return products, nil
}
