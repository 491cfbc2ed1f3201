// Package metadata defines the coins and tradeable products janus knows
// about.
//
// Coins are identified by a canonical name plus a set of aliases, all
// resolved case-insensitively through a package-level registry. Products
// pair two coins: a Perpetual ("BTC-USDC") or a Spot ("BTC/USDC"). Both
// product types are comparable values, so they can key maps of per-product
// state (exchange metadata, Redis key prefixes).
package metadata
