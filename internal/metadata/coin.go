package metadata

import (
	"fmt"
	"sort"
	"strings"
)

// Coin identifies a single asset. Coin values are registered once and
// then referenced by pointer, so two *Coin variables are the same coin
// exactly when the pointers are equal.
type Coin struct {
	// Name is the canonical symbol, e.g. "BTC".
	Name string

	// Aliases are alternative spellings accepted by FromName,
	// e.g. "Bitcoin" or "XBT". The canonical name itself is always
	// accepted and does not need to be repeated here.
	Aliases []string
}

// String returns the canonical symbol.
func (c *Coin) String() string {
	return c.Name
}

// registry maps every lowercase name and alias to its coin.
// One coin claims several keys; every key belongs to exactly one coin.
var registry = map[string]*Coin{}

// Register adds a coin to the registry under its name and all aliases.
// Registration fails if any key (case-insensitive) is already claimed by
// another coin, which catches alias collisions at startup rather than at
// lookup time.
func Register(c *Coin) error {
	keys := make([]string, 0, len(c.Aliases)+1)
	keys = append(keys, strings.ToLower(c.Name))
	for _, a := range c.Aliases {
		keys = append(keys, strings.ToLower(a))
	}

	// Check all keys before inserting any, so a failed registration
	// leaves the registry untouched.
	for _, k := range keys {
		if existing, ok := registry[k]; ok && existing != c {
			return fmt.Errorf("duplicate coin key %q: already registered for %s", k, existing.Name)
		}
	}

	for _, k := range keys {
		registry[k] = c
	}
	return nil
}

// MustRegister registers a coin and panics on a key collision.
// Used for the builtin coins below, where a collision is a programming
// error that should surface immediately.
func MustRegister(c *Coin) *Coin {
	if err := Register(c); err != nil {
		panic(err)
	}
	return c
}

// FromName resolves a coin by canonical name or alias, case-insensitively.
// Returns an error listing the known keys when the name is not recognized.
func FromName(name string) (*Coin, error) {
	if c, ok := registry[strings.ToLower(name)]; ok {
		return c, nil
	}

	known := make([]string, 0, len(registry))
	for k := range registry {
		known = append(known, k)
	}
	sort.Strings(known)

	return nil, fmt.Errorf("unknown coin name or alias: %q (known: %s)", name, strings.Join(known, ", "))
}

// Builtin coins. The alias sets cover the spellings seen in exchange
// metadata and user input.
var (
	BTC  = MustRegister(&Coin{Name: "BTC", Aliases: []string{"XBT", "Bitcoin"}})
	ETH  = MustRegister(&Coin{Name: "ETH", Aliases: []string{"Ether", "Ethereum"}})
	SOL  = MustRegister(&Coin{Name: "SOL", Aliases: []string{"Solana"}})
	XRP  = MustRegister(&Coin{Name: "XRP", Aliases: []string{"Ripple"}})
	HYPE = MustRegister(&Coin{Name: "HYPE", Aliases: []string{"Hyperliquid"}})
	USDC = MustRegister(&Coin{Name: "USDC", Aliases: []string{"USD Coin"}})
)
