package hyperliquid

import (
	"fmt"
	"strings"
)

// Env selects which Hyperliquid deployment the client talks to.
type Env string

const (
	// EnvDev is the public testnet. It is the default everywhere in
	// janus so that a stray command never touches mainnet data limits.
	EnvDev Env = "dev"

	// EnvProd is mainnet.
	EnvProd Env = "prod"
)

// ParseEnv converts a string to an Env, case-insensitively.
func ParseEnv(s string) (Env, error) {
	switch strings.ToLower(s) {
	case "dev":
		return EnvDev, nil
	case "prod":
		return EnvProd, nil
	default:
		return "", fmt.Errorf("unrecognised environment: %q (valid: dev, prod)", s)
	}
}

// APIURL returns the REST base URL for the environment.
func (e Env) APIURL() string {
	if e == EnvProd {
		return "https://api.hyperliquid.xyz"
	}
	return "https://api.hyperliquid-testnet.xyz"
}

// WSURL returns the websocket URL for the environment.
func (e Env) WSURL() string {
	if e == EnvProd {
		return "wss://api.hyperliquid.xyz/ws"
	}
	return "wss://api.hyperliquid-testnet.xyz/ws"
}

// String returns the environment name.
func (e Env) String() string {
	return string(e)
}
