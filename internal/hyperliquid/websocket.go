package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// subscription is the subscription descriptor sent inside subscribe
// and unsubscribe requests.
type subscription struct {
	Type string `json:"type"`
	Coin string `json:"coin"`
}

// wsRequest is the envelope for websocket control messages.
type wsRequest struct {
	Method       string       `json:"method"`
	Subscription subscription `json:"subscription"`
}

// Message is a raw message received from the websocket feed. Data is
// left undecoded so callers can dispatch on Channel first.
type Message struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// WSClient is a Hyperliquid websocket client. It tracks active BBO
// subscriptions so they can be replayed after a reconnect.
//
// Close may be called from a different goroutine than the one blocked
// in ReadMessage; the mutex guards the connection handle and the
// subscription set, and gorilla supports closing a connection out
// from under a concurrent reader.
type WSClient struct {
	url string

	mu            sync.Mutex
	conn          *websocket.Conn
	subscriptions map[string]struct{}
}

// NewWSClient returns a websocket client for the given environment.
// The connection is not opened until Connect is called.
func NewWSClient(env Env) *WSClient {
	return &WSClient{
		url:           env.WSURL(),
		subscriptions: make(map[string]struct{}),
	}
}

// NewWSClientURL returns a websocket client pointed at an explicit
// URL. Mainly useful for tests.
func NewWSClientURL(url string) *WSClient {
	return &WSClient{
		url:           url,
		subscriptions: make(map[string]struct{}),
	}
}

// Connect dials the websocket endpoint and replays any subscriptions
// registered before a previous connection dropped.
func (c *WSClient) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("hyperliquid: dial %s: %w", c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	coins := make([]string, 0, len(c.subscriptions))
	for coin := range c.subscriptions {
		coins = append(coins, coin)
	}
	c.mu.Unlock()

	for _, coin := range coins {
		if err := c.sendRequest("subscribe", coin); err != nil {
			return err
		}
	}
	return nil
}

// SubscribeBBO subscribes to best bid/offer updates for the given
// exchange coin identifier.
func (c *WSClient) SubscribeBBO(coin string) error {
	if err := c.sendRequest("subscribe", coin); err != nil {
		return err
	}
	c.mu.Lock()
	c.subscriptions[coin] = struct{}{}
	c.mu.Unlock()
	return nil
}

// UnsubscribeBBO cancels a BBO subscription.
func (c *WSClient) UnsubscribeBBO(coin string) error {
	if err := c.sendRequest("unsubscribe", coin); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.subscriptions, coin)
	c.mu.Unlock()
	return nil
}

// ReadMessage blocks until the next message arrives and decodes its
// envelope.
func (c *WSClient) ReadMessage() (*Message, error) {
	conn := c.current()
	if conn == nil {
		return nil, fmt.Errorf("hyperliquid: websocket not connected")
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("hyperliquid: read message: %w", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("hyperliquid: decode message: %w", err)
	}
	return &msg, nil
}

// Close tears down the websocket connection. Registered subscriptions
// are kept so a subsequent Connect replays them. Closing an already
// closed client is a no-op.
func (c *WSClient) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// current returns the connection handle under the lock.
func (c *WSClient) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// sendRequest writes one control message. The lock is held for the
// write, serializing writers as gorilla requires.
func (c *WSClient) sendRequest(method, coin string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("hyperliquid: websocket not connected")
	}
	req := wsRequest{
		Method:       method,
		Subscription: subscription{Type: "bbo", Coin: coin},
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("hyperliquid: %s bbo %s: %w", method, coin, err)
	}
	return nil
}
