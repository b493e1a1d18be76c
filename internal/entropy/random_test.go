package entropy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsPositive(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Greater(t, Seed(), int64(0))
	}
}

func TestNilClientFallsBack(t *testing.T) {
	var c *Client
	assert.False(t, c.Enabled())
	assert.Nil(t, NewClient(""))
	assert.Greater(t, c.Seed(), int64(0))
}

func TestResolveKeepsExplicitSeed(t *testing.T) {
	assert.Equal(t, int64(42), Resolve(nil, 42))
	assert.NotZero(t, Resolve(nil, 0))
}

func TestClientUsesPool(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req struct {
			Method string `json:"method"`
			Params struct {
				APIKey string `json:"apiKey"`
			} `json:"params"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, "generateIntegers", req.Method)
		assert.Equal(t, "secret", req.Params.APIKey)
		w.Write([]byte(`{"jsonrpc":"2.0","result":{"random":{"data":[7,0,9]}},"id":1}`))
	}))
	defer srv.Close()

	c := NewClient("secret").WithEndpoint(srv.URL)
	require.True(t, c.Enabled())
	assert.Equal(t, int64(7), c.Seed())
	assert.Equal(t, int64(9), c.Seed(), "zero values are dropped from the pool")
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, int64(7), c.Seed())
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","error":{"message":"bad key"},"id":1}`))
	}))
	defer srv.Close()

	c := NewClient("nope").WithEndpoint(srv.URL)
	assert.Greater(t, c.Seed(), int64(0))
	assert.Empty(t, c.pool)
}
