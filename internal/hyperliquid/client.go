package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// defaultHTTPTimeout bounds each /info request.
	defaultHTTPTimeout = 10 * time.Second

	// defaultRequestsPerSecond is the client-side rate cap applied to
	// REST calls. The public API tolerates far more, this just keeps a
	// buggy caller from hammering the endpoint.
	defaultRequestsPerSecond = 10
)

// Client is a Hyperliquid exchange REST client covering the /info
// endpoint. The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint derived from the environment.
// Mainly useful for pointing the client at a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit overrides the client-side request rate cap.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
}

// NewClient returns a REST client for the given environment.
func NewClient(env Env, opts ...Option) *Client {
	c := &Client{
		baseURL:    env.APIURL(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AssetInfo describes one perpetual asset in the trading universe.
type AssetInfo struct {
	Name         string `json:"name"`
	SzDecimals   int    `json:"szDecimals"`
	MaxLeverage  int    `json:"maxLeverage,omitempty"`
	OnlyIsolated bool   `json:"onlyIsolated,omitempty"`
}

// Meta is the perpetuals metadata returned by the meta info request.
type Meta struct {
	Universe []AssetInfo `json:"universe"`
}

// SpotToken describes one token listed on the spot exchange.
type SpotToken struct {
	Name       string `json:"name"`
	Index      int    `json:"index"`
	SzDecimals int    `json:"szDecimals"`
}

// SpotPair describes one tradeable spot pair. Tokens holds the indices
// of the base and quote tokens in the token list.
type SpotPair struct {
	Name   string `json:"name"`
	Tokens [2]int `json:"tokens"`
	Index  int    `json:"index"`
}

// SpotMeta is the spot metadata returned by the spotMeta info request.
type SpotMeta struct {
	Tokens   []SpotToken `json:"tokens"`
	Universe []SpotPair  `json:"universe"`
}

// AssetCtx carries per-asset market context such as mark price and
// funding. Fields are strings in the API wire format.
type AssetCtx struct {
	MarkPx    string `json:"markPx"`
	MidPx     string `json:"midPx"`
	DayNtlVlm string `json:"dayNtlVlm"`
	Funding   string `json:"funding,omitempty"`
}

// PerpDex describes one perpetuals dex (builder-deployed or first-party).
type PerpDex struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Deployer string `json:"deployer"`
}

// Meta fetches the perpetuals trading universe of the first-party dex.
func (c *Client) Meta(ctx context.Context) (*Meta, error) {
	return c.MetaForDex(ctx, "")
}

// MetaForDex fetches the perpetuals trading universe of the named
// perp dex. The empty name is the first-party dex and is always sent
// explicitly.
func (c *Client) MetaForDex(ctx context.Context, dex string) (*Meta, error) {
	var out Meta
	if err := c.post(ctx, map[string]string{"type": "meta", "dex": dex}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SpotMeta fetches the spot tokens and pairs.
func (c *Client) SpotMeta(ctx context.Context) (*SpotMeta, error) {
	var out SpotMeta
	if err := c.post(ctx, map[string]string{"type": "spotMeta"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MetaAndAssetCtxs fetches the perpetuals universe together with the
// current per-asset market context. The response is a two-element
// array: [meta, contexts].
func (c *Client) MetaAndAssetCtxs(ctx context.Context) (*Meta, []AssetCtx, error) {
	var raw []json.RawMessage
	if err := c.post(ctx, map[string]string{"type": "metaAndAssetCtxs"}, &raw); err != nil {
		return nil, nil, err
	}
	if len(raw) != 2 {
		return nil, nil, fmt.Errorf("hyperliquid: metaAndAssetCtxs: expected 2 elements, got %d", len(raw))
	}

	var meta Meta
	if err := json.Unmarshal(raw[0], &meta); err != nil {
		return nil, nil, fmt.Errorf("hyperliquid: metaAndAssetCtxs: decode meta: %w", err)
	}
	var ctxs []AssetCtx
	if err := json.Unmarshal(raw[1], &ctxs); err != nil {
		return nil, nil, fmt.Errorf("hyperliquid: metaAndAssetCtxs: decode contexts: %w", err)
	}
	return &meta, ctxs, nil
}

// SpotMetaAndAssetCtxs fetches the spot metadata together with the
// current per-pair market context.
func (c *Client) SpotMetaAndAssetCtxs(ctx context.Context) (*SpotMeta, []AssetCtx, error) {
	var raw []json.RawMessage
	if err := c.post(ctx, map[string]string{"type": "spotMetaAndAssetCtxs"}, &raw); err != nil {
		return nil, nil, err
	}
	if len(raw) != 2 {
		return nil, nil, fmt.Errorf("hyperliquid: spotMetaAndAssetCtxs: expected 2 elements, got %d", len(raw))
	}

	var meta SpotMeta
	if err := json.Unmarshal(raw[0], &meta); err != nil {
		return nil, nil, fmt.Errorf("hyperliquid: spotMetaAndAssetCtxs: decode meta: %w", err)
	}
	var ctxs []AssetCtx
	if err := json.Unmarshal(raw[1], &ctxs); err != nil {
		return nil, nil, fmt.Errorf("hyperliquid: spotMetaAndAssetCtxs: decode contexts: %w", err)
	}
	return &meta, ctxs, nil
}

// PerpDexs fetches the list of perpetuals dexs. The first element of
// the API response is null (the first-party dex) and is skipped.
func (c *Client) PerpDexs(ctx context.Context) ([]PerpDex, error) {
	var raw []*PerpDex
	if err := c.post(ctx, map[string]string{"type": "perpDexs"}, &raw); err != nil {
		return nil, err
	}

	out := make([]PerpDex, 0, len(raw))
	for _, d := range raw {
		if d == nil {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

// post sends a request to the /info endpoint and decodes the JSON
// response into out. 4xx responses become *ClientError, 5xx responses
// become *ServerError.
func (c *Client) post(ctx context.Context, payload any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("hyperliquid: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/info", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("hyperliquid: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hyperliquid: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("hyperliquid: read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return newClientError(resp.StatusCode, respBody)
	case resp.StatusCode >= 500:
		return &ServerError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("hyperliquid: decode response: %w", err)
	}
	return nil
}
