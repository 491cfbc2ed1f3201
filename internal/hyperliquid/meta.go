package hyperliquid

import (
	"fmt"

	"github.com/janus-labs/janus/internal/logging"
	"github.com/janus-labs/janus/internal/metadata"
)

// l1TokenAliases maps Hyperliquid L1 wrapped-token names to the coin
// names they represent on the spot exchange.
var l1TokenAliases = map[string]string{
	"UBTC": "BTC",
	"UETH": "ETH",
	"USOL": "SOL",
}

// ProductMetadata carries the exchange-side details needed to trade or
// index one product.
type ProductMetadata struct {
	// Coin is the exchange-native coin identifier used in websocket
	// subscriptions ("BTC" for perps, "UBTC/USDC" style pair names for
	// spot map through the pair name).
	Coin string

	// Decimals is the size decimals for order quantities.
	Decimals int
}

// BuildPerpetualMetadata maps every asset in the perpetuals universe
// to a Perpetual product quoted in USDC. Assets with no registered
// coin are skipped.
func BuildPerpetualMetadata(meta *Meta) (map[metadata.Perpetual]ProductMetadata, error) {
	usdc, err := metadata.FromName("USDC")
	if err != nil {
		return nil, fmt.Errorf("hyperliquid: build perpetual metadata: %w", err)
	}

	out := make(map[metadata.Perpetual]ProductMetadata, len(meta.Universe))
	for _, asset := range meta.Universe {
		base, err := metadata.FromName(asset.Name)
		if err != nil {
			logging.Get().Debug().Str("asset", asset.Name).Msg("skipping unregistered perpetual asset")
			continue
		}
		out[base.Perp(usdc)] = ProductMetadata{
			Coin:     asset.Name,
			Decimals: asset.SzDecimals,
		}
	}
	return out, nil
}

// BuildSpotMetadata maps every spot pair whose base and quote coins
// are both registered to a Spot product. L1 wrapped tokens (UBTC,
// UETH, USOL) resolve to the coins they wrap; pairs with an
// unregistered coin on either side are skipped.
func BuildSpotMetadata(meta *SpotMeta) (map[metadata.Spot]ProductMetadata, error) {
	tokensByIndex := make(map[int]SpotToken, len(meta.Tokens))
	for _, tok := range meta.Tokens {
		tokensByIndex[tok.Index] = tok
	}

	out := make(map[metadata.Spot]ProductMetadata)
	for _, pair := range meta.Universe {
		baseTok, ok := tokensByIndex[pair.Tokens[0]]
		if !ok {
			return nil, fmt.Errorf("hyperliquid: build spot metadata: pair %s references unknown token index %d",
				pair.Name, pair.Tokens[0])
		}
		quoteTok, ok := tokensByIndex[pair.Tokens[1]]
		if !ok {
			return nil, fmt.Errorf("hyperliquid: build spot metadata: pair %s references unknown token index %d",
				pair.Name, pair.Tokens[1])
		}

		base, err := metadata.FromName(resolveTokenName(baseTok.Name))
		if err != nil {
			logging.Get().Debug().Str("token", baseTok.Name).Msg("skipping unregistered spot token")
			continue
		}
		quote, err := metadata.FromName(resolveTokenName(quoteTok.Name))
		if err != nil {
			logging.Get().Debug().Str("token", quoteTok.Name).Msg("skipping unregistered spot token")
			continue
		}

		out[base.Spot(quote)] = ProductMetadata{
			Coin:     pair.Name,
			Decimals: baseTok.SzDecimals,
		}
	}
	return out, nil
}

// resolveTokenName applies the L1 wrapped-token alias table.
func resolveTokenName(name string) string {
	if alias, ok := l1TokenAliases[name]; ok {
		return alias
	}
	return name
}
