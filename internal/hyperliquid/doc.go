// Package hyperliquid implements a client for the Hyperliquid exchange:
// the REST /info endpoints and the public websocket feed.
//
// The REST client is rate-limited (golang.org/x/time/rate) and returns
// typed errors: ClientError for 4xx responses (with the error code and
// message parsed from the JSON body when present) and ServerError for
// 5xx responses. The websocket client manages BBO subscriptions and
// decodes the channel envelope; reconnect policy is left to callers,
// which redial and resubscribe.
//
// Environments follow the upstream convention: "dev" is the public
// testnet, "prod" is mainnet.
package hyperliquid
