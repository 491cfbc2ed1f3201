package hyperliquid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsTestServer upgrades incoming connections and hands them to the
// given session function.
func wsTestServer(t *testing.T, session func(conn *websocket.Conn)) string {
	t.Helper()

	var upgrader websocket.Upgrader
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		session(conn)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWSClientSubscribeAndRead(t *testing.T) {
	url := wsTestServer(t, func(conn *websocket.Conn) {
		var req wsRequest
		require.NoError(t, conn.ReadJSON(&req))
		assert.Equal(t, "subscribe", req.Method)
		assert.Equal(t, "bbo", req.Subscription.Type)
		assert.Equal(t, "BTC", req.Subscription.Coin)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"channel":"bbo","data":{"coin":"BTC","bbo":[["97000.5","1.25"],["97001.0","0.8"]]}}`)))
	})

	client := NewWSClientURL(url)
	require.NoError(t, client.Connect(t.Context()))
	defer client.Close()

	require.NoError(t, client.SubscribeBBO("BTC"))

	msg, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "bbo", msg.Channel)
	assert.Contains(t, string(msg.Data), `"coin":"BTC"`)
}

// TestWSClientCloseDuringRead verifies that closing the client from
// another goroutine while a reader is blocked in ReadMessage unblocks
// the reader with an error instead of panicking, and that further
// reads and closes on the closed client stay safe.
func TestWSClientCloseDuringRead(t *testing.T) {
	url := wsTestServer(t, func(conn *websocket.Conn) {
		// Hold the connection open without sending anything, keeping
		// the client reader blocked.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	client := NewWSClientURL(url)
	require.NoError(t, client.Connect(t.Context()))

	readErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			if _, err := client.ReadMessage(); err != nil {
				readErr <- err
				return
			}
		}
	}()

	// Give the reader a moment to block, then close underneath it.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, client.Close())

	select {
	case err := <-readErr:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not unblock after Close")
	}
	wg.Wait()

	// The client is now disconnected, not broken.
	_, err := client.ReadMessage()
	assert.ErrorContains(t, err, "not connected")
	assert.NoError(t, client.Close())
}

// TestWSClientResubscribeOnReconnect verifies that subscriptions
// registered before a connection drop are replayed by Connect.
func TestWSClientResubscribeOnReconnect(t *testing.T) {
	subs := make(chan string, 4)
	url := wsTestServer(t, func(conn *websocket.Conn) {
		for {
			var req wsRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if req.Method == "subscribe" {
				subs <- req.Subscription.Coin
			}
		}
	})

	client := NewWSClientURL(url)
	require.NoError(t, client.Connect(t.Context()))
	require.NoError(t, client.SubscribeBBO("ETH"))
	assert.Equal(t, "ETH", <-subs)

	require.NoError(t, client.Close())
	require.NoError(t, client.Connect(t.Context()))
	defer client.Close()

	select {
	case coin := <-subs:
		assert.Equal(t, "ETH", coin)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription was not replayed after reconnect")
	}
}
