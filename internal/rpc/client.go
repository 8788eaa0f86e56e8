// Package rpc is a minimal JSON-RPC client for Solana-compatible ledger nodes.
// It covers only the read-only queries the dashboard needs.
package rpc

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNoSamples is returned when the node has no performance samples yet.
var ErrNoSamples = stderrors.New("node returned no performance samples")

// maxResponseBytes bounds a single response body. getClusterNodes on
// mainnet is the largest reply and stays well under this.
const maxResponseBytes = 32 << 20

// Client talks JSON-RPC 2.0 over HTTP to a single node.
type Client struct {
	url        string
	httpClient *http.Client
	commitment string
	log        logger.Logger
	nextID     atomic.Uint64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, e.g. to route through an SSH tunnel.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithCommitment sets the commitment level sent with commitment-aware queries.
func WithCommitment(commitment string) Option {
	return func(c *Client) {
		c.commitment = commitment
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for the node at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        strings.TrimSuffix(url, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		commitment: "confirmed",
		log:        logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint this client talks to.
func (c *Client) URL() string {
	return c.url
}

// call performs one JSON-RPC request and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	req := Request{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRPC,
			fmt.Sprintf("Invalid RPC endpoint '%s'", c.url),
			"Use an http:// or https:// URL")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug("%s failed after %s: %v", method, time.Since(start), err)
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s: http %d: %s", method, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var rpcResp Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decode %s: %w", method, err)
	}
	c.log.Debug("%s ok in %s", method, time.Since(start))

	if rpcResp.Error != nil {
		return fmt.Errorf("%s: %w", method, rpcResp.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) commitmentParam() map[string]interface{} {
	return map[string]interface{}{"commitment": c.commitment}
}

// Health returns nil when the node reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	var status string
	if err := c.call(ctx, "getHealth", nil, &status); err != nil {
		return err
	}
	if status != "ok" {
		return fmt.Errorf("getHealth: node reported %q", status)
	}
	return nil
}

// Version returns the node's solana-core version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var info VersionInfo
	if err := c.call(ctx, "getVersion", nil, &info); err != nil {
		return "", err
	}
	return info.SolanaCore, nil
}

// Slot returns the node's current slot at the configured commitment.
func (c *Client) Slot(ctx context.Context) (uint64, error) {
	var slot uint64
	err := c.call(ctx, "getSlot", []interface{}{c.commitmentParam()}, &slot)
	return slot, err
}

// EpochInfo returns the current epoch information.
func (c *Client) EpochInfo(ctx context.Context) (EpochInfo, error) {
	var info EpochInfo
	err := c.call(ctx, "getEpochInfo", []interface{}{c.commitmentParam()}, &info)
	return info, err
}

// ClusterNodeCount returns how many nodes the cluster gossip table knows.
func (c *Client) ClusterNodeCount(ctx context.Context) (uint64, error) {
	var nodes []ClusterNode
	if err := c.call(ctx, "getClusterNodes", nil, &nodes); err != nil {
		return 0, err
	}
	return uint64(len(nodes)), nil
}

// RecentPerformanceSample returns the most recent performance sample.
func (c *Client) RecentPerformanceSample(ctx context.Context) (PerformanceSample, error) {
	var samples []PerformanceSample
	if err := c.call(ctx, "getRecentPerformanceSamples", []interface{}{1}, &samples); err != nil {
		return PerformanceSample{}, err
	}
	if len(samples) == 0 {
		return PerformanceSample{}, ErrNoSamples
	}
	return samples[0], nil
}

// VoteAccounts returns current and delinquent vote accounts.
func (c *Client) VoteAccounts(ctx context.Context) (VoteAccounts, error) {
	var accounts VoteAccounts
	err := c.call(ctx, "getVoteAccounts", []interface{}{c.commitmentParam()}, &accounts)
	return accounts, err
}

// BlocksWithLimit returns up to limit confirmed block slots starting at fromSlot.
func (c *Client) BlocksWithLimit(ctx context.Context, fromSlot, limit uint64) ([]uint64, error) {
	var blocks []uint64
	err := c.call(ctx, "getBlocksWithLimit", []interface{}{fromSlot, limit, c.commitmentParam()}, &blocks)
	return blocks, err
}

// LargestAccounts returns the accounts with the largest lamport balances.
func (c *Client) LargestAccounts(ctx context.Context) ([]AccountBalance, error) {
	var result contextValue[[]AccountBalance]
	if err := c.call(ctx, "getLargestAccounts", []interface{}{c.commitmentParam()}, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}
