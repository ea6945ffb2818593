package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/vietddude/sentinel/internal/core/domain"
	"github.com/vietddude/sentinel/internal/metrics"
)

// HeightClient issues eth_blockNumber queries against a single JSON-RPC
// endpoint. It is stateless apart from the underlying connection pool and
// performs exactly one request per FetchHeight call, no retries.
type HeightClient struct {
	name       string
	endpoint   string
	httpClient *http.Client
}

// NewHeightClient creates a client for one endpoint. Name is used for logs
// and metric labels ("local" or "remote").
func NewHeightClient(name, endpoint string, timeout time.Duration) *HeightClient {
	return &HeightClient{
		name:     name,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Name returns the client's node label.
func (c *HeightClient) Name() string {
	return c.name
}

// Endpoint returns the configured endpoint URL.
func (c *HeightClient) Endpoint() string {
	return c.endpoint
}

// FetchHeight performs a single eth_blockNumber call. A failure is returned
// inside the HeightResult, classified as unreachable (transport) or
// protocol_error (bad status, malformed payload, RPC error object).
func (c *HeightClient) FetchHeight(ctx context.Context) domain.HeightResult {
	start := time.Now()
	metrics.RPCCallsTotal.WithLabelValues(c.name).Inc()

	reqBody := map[string]any{
		"jsonrpc": "2.0",
		"method":  "eth_blockNumber",
		"params":  []any{},
		"id":      1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return c.protocolError(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return c.protocolError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connection refused, DNS failure, timeout: the endpoint is down.
		metrics.RPCErrorsTotal.WithLabelValues(c.name, string(domain.ReasonUnreachable)).Inc()
		return domain.HeightResult{
			Err:    fmt.Errorf("rpc call: %w", err),
			Reason: domain.ReasonUnreachable,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.protocolError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.protocolError(fmt.Errorf("http %d: %s", resp.StatusCode, string(body)))
	}

	var rpcResp struct {
		Result any             `json:"result"`
		Error  *map[string]any `json:"error"`
	}

	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return c.protocolError(fmt.Errorf("parse response: %w", err))
	}

	if rpcResp.Error != nil {
		errMsg := "unknown error"
		if msg, ok := (*rpcResp.Error)["message"].(string); ok {
			errMsg = msg
		}
		return c.protocolError(fmt.Errorf("rpc error: %s", errMsg))
	}

	height, err := parseHeight(rpcResp.Result)
	if err != nil {
		return c.protocolError(err)
	}

	metrics.RPCLatency.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	metrics.NodeHeight.WithLabelValues(c.name).Set(float64(height))

	return domain.HeightResult{Height: height}
}

func (c *HeightClient) protocolError(err error) domain.HeightResult {
	metrics.RPCErrorsTotal.WithLabelValues(c.name, string(domain.ReasonProtocol)).Inc()
	return domain.HeightResult{
		Err:    err,
		Reason: domain.ReasonProtocol,
	}
}

// parseHeight accepts the usual hex string form ("0x10a") as well as a bare
// numeric result, which some endpoints return.
func parseHeight(result any) (uint64, error) {
	switch v := result.(type) {
	case string:
		return parseHexString(v)
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("negative block number: %v", v)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("invalid block number response: %T", result)
	}
}

func parseHexString(hexStr string) (uint64, error) {
	n := new(big.Int)
	if _, ok := n.SetString(strings.TrimPrefix(hexStr, "0x"), 16); !ok {
		return 0, fmt.Errorf("invalid hex: %s", hexStr)
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("block number out of range: %s", hexStr)
	}
	return n.Uint64(), nil
}
