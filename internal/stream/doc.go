// Package stream consumes Hyperliquid best bid/offer updates over the
// websocket feed and writes them into Redis TimeSeries. It owns the
// subscription lifecycle, the reconnect loop, and the Prometheus
// instrumentation for the janus stream command.
package stream
