package metadata

import (
	"fmt"
	"strings"
)

// Product is a tradeable instrument pairing a base and a quote coin.
// Its two implementations, Perpetual and Spot, are small comparable
// structs, so Product values can key maps (interface keys compare by
// dynamic type and value).
type Product interface {
	// Base returns the base coin of the pair.
	Base() *Coin

	// Quote returns the quote coin of the pair.
	Quote() *Coin

	// String returns the display form: "BTC-USDC" for perpetuals,
	// "BTC/USDC" for spot pairs. The two forms never collide, so the
	// string also serves as a unique product identifier in Redis keys.
	String() string
}

// Perpetual is a perpetual futures contract on Base quoted in Quote.
type Perpetual struct {
	base  *Coin
	quote *Coin
}

// NewPerpetual creates a perpetual product.
func NewPerpetual(base, quote *Coin) Perpetual {
	return Perpetual{base: base, quote: quote}
}

// Perp pairs the coin with a quote coin as a perpetual, allowing the
// compact form metadata.BTC.Perp(metadata.USDC).
func (c *Coin) Perp(quote *Coin) Perpetual {
	return NewPerpetual(c, quote)
}

// Base returns the base coin.
func (p Perpetual) Base() *Coin { return p.base }

// Quote returns the quote coin.
func (p Perpetual) Quote() *Coin { return p.quote }

// String returns the hyphenated perpetual form, e.g. "BTC-USDC".
func (p Perpetual) String() string {
	return p.base.Name + "-" + p.quote.Name
}

// Spot is a spot market trading Base against Quote.
type Spot struct {
	base  *Coin
	quote *Coin
}

// NewSpot creates a spot product.
func NewSpot(base, quote *Coin) Spot {
	return Spot{base: base, quote: quote}
}

// Spot pairs the coin with a quote coin as a spot market, allowing the
// compact form metadata.BTC.Spot(metadata.USDC).
func (c *Coin) Spot(quote *Coin) Spot {
	return NewSpot(c, quote)
}

// Base returns the base coin.
func (s Spot) Base() *Coin { return s.base }

// Quote returns the quote coin.
func (s Spot) Quote() *Coin { return s.quote }

// String returns the slashed spot form, e.g. "BTC/USDC".
func (s Spot) String() string {
	return s.base.Name + "/" + s.quote.Name
}

// ParseProduct converts the display form back to a product:
// "BTC-USDC" is the BTC perpetual quoted in USDC, "BTC/USDC" the spot
// pair. Coin names resolve through the registry, aliases included.
func ParseProduct(s string) (Product, error) {
	var baseName, quoteName string
	var spot bool

	switch {
	case strings.Contains(s, "/"):
		parts := strings.SplitN(s, "/", 2)
		baseName, quoteName = parts[0], parts[1]
		spot = true
	case strings.Contains(s, "-"):
		parts := strings.SplitN(s, "-", 2)
		baseName, quoteName = parts[0], parts[1]
	default:
		return nil, fmt.Errorf("invalid product %q (expected BASE-QUOTE for perps or BASE/QUOTE for spot)", s)
	}

	base, err := FromName(baseName)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", s, err)
	}
	quote, err := FromName(quoteName)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", s, err)
	}

	if spot {
		return NewSpot(base, quote), nil
	}
	return NewPerpetual(base, quote), nil
}
