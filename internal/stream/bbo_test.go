package stream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-labs/janus/internal/hyperliquid"
	"github.com/janus-labs/janus/internal/metadata"
)

func TestParseBBO(t *testing.T) {
	msg := &hyperliquid.Message{
		Channel: "bbo",
		Data:    json.RawMessage(`{"coin":"BTC","time":1714000000000,"bbo":[["97000.5","1.25"],["97001.0","0.8"]]}`),
	}

	bbo, err := ParseBBO(msg)
	require.NoError(t, err)
	require.NotNil(t, bbo)
	assert.Equal(t, "BTC", bbo.Coin)
	assert.Equal(t, 97000.5, bbo.BidPrice)
	assert.Equal(t, 1.25, bbo.BidSize)
	assert.Equal(t, 97001.0, bbo.AskPrice)
	assert.Equal(t, 0.8, bbo.AskSize)
	assert.Equal(t, int64(1714000000000), bbo.Time)
}

func TestParseBBOSkipsOtherChannels(t *testing.T) {
	tests := []struct {
		name    string
		channel string
	}{
		{name: "subscription ack", channel: "subscriptionResponse"},
		{name: "pong", channel: "pong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bbo, err := ParseBBO(&hyperliquid.Message{Channel: tt.channel, Data: json.RawMessage(`{}`)})
			assert.NoError(t, err)
			assert.Nil(t, bbo)
		})
	}
}

func TestParseBBOMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `nope`},
		{name: "missing ask level", data: `{"coin":"BTC","bbo":[["97000.5","1.25"]]}`},
		{name: "non numeric price", data: `{"coin":"BTC","bbo":[["high","1.25"],["97001.0","0.8"]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBBO(&hyperliquid.Message{Channel: "bbo", Data: json.RawMessage(tt.data)})
			assert.Error(t, err)
		})
	}
}

func TestSeriesKey(t *testing.T) {
	btc, err := metadata.FromName("BTC")
	require.NoError(t, err)
	usdc, err := metadata.FromName("USDC")
	require.NoError(t, err)

	assert.Equal(t, "hyperliquid:bbo:BTC-USDC:bid", SeriesKey(btc.Perp(usdc), SideBid))
	assert.Equal(t, "hyperliquid:bbo:BTC/USDC:ask", SeriesKey(btc.Spot(usdc), SideAsk))
}

func TestDefaultProducts(t *testing.T) {
	products, err := DefaultProducts()
	require.NoError(t, err)
	require.Len(t, products, 7)

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		seen[p.String()] = true
	}
	assert.True(t, seen["BTC-USDC"])
	assert.True(t, seen["BTC/USDC"])
	assert.True(t, seen["SOL/USDC"])
	assert.True(t, seen["HYPE-USDC"])
}
