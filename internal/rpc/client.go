package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

func logger() *log.Logger { return log.Default().WithPrefix("rpc") }

// Client talks JSON-RPC 2.0 to a single cluster endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient validates the endpoint and returns a client for it. Validation
// happens here so a malformed endpoint fails before any network I/O.
func NewClient(endpoint string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q is not a valid http(s) URL", endpoint)
	}

	return &Client{
		url: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// URL returns the endpoint the client was built for.
func (c *Client) URL() string { return c.url }

type jsonRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp jsonRPCResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	return rpcResp.Result, nil
}

// GetFirstAvailableBlock returns the slot of the lowest confirmed block the
// node has not purged from its ledger.
func (c *Client) GetFirstAvailableBlock(ctx context.Context) (uint64, error) {
	result, err := c.call(ctx, "getFirstAvailableBlock", nil)
	if err != nil {
		return 0, fmt.Errorf("getFirstAvailableBlock: %w", err)
	}

	var block uint64
	if err := json.Unmarshal(result, &block); err != nil {
		return 0, fmt.Errorf("parsing getFirstAvailableBlock result: %w", err)
	}

	logger().Debug("got first available block", "block", block)
	return block, nil
}

// EpochSchedule is the cluster's epoch timing configuration.
type EpochSchedule struct {
	SlotsPerEpoch            uint64 `json:"slotsPerEpoch"`
	LeaderScheduleSlotOffset uint64 `json:"leaderScheduleSlotOffset"`
	Warmup                   bool   `json:"warmup"`
	FirstNormalEpoch         uint64 `json:"firstNormalEpoch"`
	FirstNormalSlot          uint64 `json:"firstNormalSlot"`
}

// GetEpochSchedule returns the cluster's epoch schedule.
func (c *Client) GetEpochSchedule(ctx context.Context) (EpochSchedule, error) {
	result, err := c.call(ctx, "getEpochSchedule", nil)
	if err != nil {
		return EpochSchedule{}, fmt.Errorf("getEpochSchedule: %w", err)
	}

	var schedule EpochSchedule
	if err := json.Unmarshal(result, &schedule); err != nil {
		return EpochSchedule{}, fmt.Errorf("parsing getEpochSchedule result: %w", err)
	}

	logger().Debug("got epoch schedule", "slots_per_epoch", schedule.SlotsPerEpoch)
	return schedule, nil
}

// EpochInfo is the cluster's position within the current epoch.
type EpochInfo struct {
	AbsoluteSlot     uint64 `json:"absoluteSlot"`
	BlockHeight      uint64 `json:"blockHeight"`
	Epoch            uint64 `json:"epoch"`
	SlotIndex        uint64 `json:"slotIndex"`
	SlotsInEpoch     uint64 `json:"slotsInEpoch"`
	TransactionCount uint64 `json:"transactionCount,omitempty"`
}

// GetEpochInfo returns information about the current epoch.
func (c *Client) GetEpochInfo(ctx context.Context) (EpochInfo, error) {
	result, err := c.call(ctx, "getEpochInfo", nil)
	if err != nil {
		return EpochInfo{}, fmt.Errorf("getEpochInfo: %w", err)
	}

	var info EpochInfo
	if err := json.Unmarshal(result, &info); err != nil {
		return EpochInfo{}, fmt.Errorf("parsing getEpochInfo result: %w", err)
	}

	logger().Debug("got epoch info", "epoch", info.Epoch, "slot", info.AbsoluteSlot)
	return info, nil
}

// GetGenesisHash returns the hash of the cluster's genesis block.
func (c *Client) GetGenesisHash(ctx context.Context) (string, error) {
	result, err := c.call(ctx, "getGenesisHash", nil)
	if err != nil {
		return "", fmt.Errorf("getGenesisHash: %w", err)
	}

	var hash string
	if err := json.Unmarshal(result, &hash); err != nil {
		return "", fmt.Errorf("parsing getGenesisHash result: %w", err)
	}

	logger().Debug("got genesis hash", "hash", hash)
	return hash, nil
}
