// Package entropy supplies seeds for gardens requested without one. Seeds come
// from random.org when an API key is configured, otherwise from crypto/rand.
package entropy

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// DefaultEndpoint is the random.org JSON-RPC endpoint.
const DefaultEndpoint = "https://api.random.org/json-rpc/4/invoke"

// poolSize is how many seeds one random.org request fetches.
const poolSize = 32

// Client hands out seeds from random.org with a local pool.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client

	mu   sync.Mutex
	pool []int64
}

// NewClient creates a random.org client. Returns nil if apiKey is empty; a nil
// Client still works and always falls back to crypto/rand.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoint points the client at a different JSON-RPC URL.
func (c *Client) WithEndpoint(url string) *Client {
	if c != nil {
		c.endpoint = url
	}
	return c
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Seed returns a non-zero seed. It uses the pool, refilling from random.org
// when empty, and falls back to crypto/rand on any API failure.
func (c *Client) Seed() int64 {
	if !c.Enabled() {
		return Seed()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) == 0 {
		if err := c.refill(); err != nil {
			slog.Debug("random.org refill failed", "error", err)
		}
	}
	if len(c.pool) == 0 {
		return Seed()
	}

	val := c.pool[0]
	c.pool = c.pool[1:]
	return val
}

func (c *Client) refill() error {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateIntegers",
		"params": map[string]any{
			"apiKey": c.apiKey,
			"n":      poolSize,
			"min":    1,
			"max":    1_000_000_000,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	var result struct {
		Result struct {
			Random struct {
				Data []int64 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if result.Error != nil {
		return fmt.Errorf("api: %s", result.Error.Message)
	}

	for _, v := range result.Result.Random.Data {
		if v != 0 {
			c.pool = append(c.pool, v)
		}
	}
	slog.Debug("random.org pool refilled", "count", len(result.Result.Random.Data))
	return nil
}

// Seed returns a non-zero seed from crypto/rand.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano() | 1
	}
	// Keep it positive so it reads cleanly on the command line.
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		return 1
	}
	return n
}

// Resolve returns seed unchanged unless it is zero, in which case a fresh one
// is drawn from c (or crypto/rand when c is nil).
func Resolve(c *Client, seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return c.Seed()
}
