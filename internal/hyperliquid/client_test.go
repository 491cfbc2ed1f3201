package hyperliquid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient spins up an httptest server backed by handler and
// returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(EnvDev, WithBaseURL(server.URL))
}

func TestClientMeta(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/info", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "meta", payload["type"])

		// The dex field is always present; empty selects the
		// first-party dex.
		dex, ok := payload["dex"]
		assert.True(t, ok)
		assert.Empty(t, dex)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"universe":[{"name":"BTC","szDecimals":5},{"name":"ETH","szDecimals":4}]}`))
	})

	meta, err := client.Meta(context.Background())
	require.NoError(t, err)
	require.Len(t, meta.Universe, 2)
	assert.Equal(t, "BTC", meta.Universe[0].Name)
	assert.Equal(t, 5, meta.Universe[0].SzDecimals)
	assert.Equal(t, "ETH", meta.Universe[1].Name)
}

func TestClientMetaForDex(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "meta", payload["type"])
		assert.Equal(t, "test", payload["dex"])

		_, _ = w.Write([]byte(`{"universe":[]}`))
	})

	_, err := client.MetaForDex(context.Background(), "test")
	require.NoError(t, err)
}

func TestClientSpotMeta(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "spotMeta", payload["type"])

		_, _ = w.Write([]byte(`{
			"tokens":[{"name":"USDC","index":0,"szDecimals":8},{"name":"UBTC","index":1,"szDecimals":5}],
			"universe":[{"name":"UBTC/USDC","tokens":[1,0],"index":0}]
		}`))
	})

	meta, err := client.SpotMeta(context.Background())
	require.NoError(t, err)
	require.Len(t, meta.Tokens, 2)
	require.Len(t, meta.Universe, 1)
	assert.Equal(t, "UBTC/USDC", meta.Universe[0].Name)
	assert.Equal(t, [2]int{1, 0}, meta.Universe[0].Tokens)
}

func TestClientMetaAndAssetCtxs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"universe":[{"name":"BTC","szDecimals":5}]},
			[{"markPx":"97000.5","midPx":"97001.0","dayNtlVlm":"1234567.0"}]
		]`))
	})

	meta, ctxs, err := client.MetaAndAssetCtxs(context.Background())
	require.NoError(t, err)
	require.Len(t, meta.Universe, 1)
	require.Len(t, ctxs, 1)
	assert.Equal(t, "97000.5", ctxs[0].MarkPx)
}

func TestClientPerpDexs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[null,{"name":"test","full_name":"test dex","deployer":"0xabc"}]`))
	})

	dexs, err := client.PerpDexs(context.Background())
	require.NoError(t, err)
	require.Len(t, dexs, 1)
	assert.Equal(t, "test", dexs[0].Name)
}

func TestClientError4xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":"INVALID_REQUEST","msg":"unknown info type","data":{"type":"bogus"}}`))
	})

	_, err := client.Meta(context.Background())
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusUnprocessableEntity, clientErr.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", clientErr.Code)
	assert.Equal(t, "unknown info type", clientErr.Message)
	assert.JSONEq(t, `{"type":"bogus"}`, string(clientErr.Data))
}

func TestClientError4xxUnparseableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	})

	_, err := client.Meta(context.Background())
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Empty(t, clientErr.Code)
	assert.Equal(t, "bad request", clientErr.Message)
}

func TestClientError5xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := client.Meta(context.Background())
	require.Error(t, err)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.StatusCode)
	assert.Equal(t, "upstream down", serverErr.Body)
}
