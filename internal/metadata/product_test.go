package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProductString verifies the display forms that double as product
// identifiers in Redis keys.
func TestProductString(t *testing.T) {
	assert.Equal(t, "BTC-USDC", BTC.Perp(USDC).String())
	assert.Equal(t, "BTC/USDC", BTC.Spot(USDC).String())
	assert.Equal(t, "HYPE-USDC", HYPE.Perp(USDC).String())
}

// TestProductComparability verifies that products work as map keys and
// that the perp and spot forms of the same pair stay distinct.
func TestProductComparability(t *testing.T) {
	m := map[Product]string{}
	m[BTC.Perp(USDC)] = "perp"
	m[BTC.Spot(USDC)] = "spot"

	assert.Len(t, m, 2)
	assert.Equal(t, "perp", m[NewPerpetual(BTC, USDC)])
	assert.Equal(t, "spot", m[NewSpot(BTC, USDC)])

	// Same product constructed twice is the same key.
	assert.Equal(t, BTC.Perp(USDC), NewPerpetual(BTC, USDC))
}

func TestParseProduct(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Product
		wantErr bool
	}{
		{name: "perp", input: "BTC-USDC", want: BTC.Perp(USDC)},
		{name: "spot", input: "BTC/USDC", want: BTC.Spot(USDC)},
		{name: "alias base", input: "XBT-USDC", want: BTC.Perp(USDC)},
		{name: "lowercase", input: "eth/usdc", want: ETH.Spot(USDC)},
		{name: "no separator", input: "BTCUSDC", wantErr: true},
		{name: "unknown coin", input: "DOGE-USDC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProduct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestProductAccessors verifies base/quote exposure through the interface.
func TestProductAccessors(t *testing.T) {
	var p Product = ETH.Perp(USDC)
	assert.Same(t, ETH, p.Base())
	assert.Same(t, USDC, p.Quote())

	var s Product = SOL.Spot(USDC)
	assert.Same(t, SOL, s.Base())
	assert.Same(t, USDC, s.Quote())
}
