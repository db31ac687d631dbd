package common

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"infinite-experiment/consortium/internal/governance"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonCache mimics RedisCacheService: values come back as decoded JSON.
type jsonCache struct {
	data map[string][]byte
}

func newJSONCache() *jsonCache { return &jsonCache{data: map[string][]byte{}} }

func (c *jsonCache) Set(key string, value interface{}, _ time.Duration) {
	b, _ := json.Marshal(value)
	c.data[key] = b
}

func (c *jsonCache) Get(key string) (interface{}, bool) {
	b, ok := c.data[key]
	if !ok {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return v, true
}

func (c *jsonCache) Delete(key string) { delete(c.data, key) }

func (c *jsonCache) GetOrSet(key string, d time.Duration, loader func() (any, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := loader()
	if err != nil {
		return nil, err
	}
	c.Set(key, v, d)
	return v, nil
}

func (c *jsonCache) Close() error { return nil }

func TestCacheGet_BothBackends(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	airline := governance.Airline{
		Address:      governance.MustParseAddress("0x00000000000000000000000000000000000000aa"),
		Registered:   true,
		Funded:       true,
		FundedAmount: decimal.RequireFromString("10000000000000000000"),
		RegisteredAt: &now,
	}

	backends := map[string]CacheInterface{
		"memory": NewCacheService(time.Minute, time.Minute),
		"json":   newJSONCache(),
	}
	for name, c := range backends {
		t.Run(name, func(t *testing.T) {
			c.Set("airline", airline, time.Minute)
			c.Set("count", 7, time.Minute)
			c.Set("flag", true, time.Minute)

			got, ok := CacheGet[governance.Airline](c, "airline")
			require.True(t, ok)
			assert.Equal(t, airline.Address, got.Address)
			assert.True(t, got.FundedAmount.Equal(airline.FundedAmount))
			require.NotNil(t, got.RegisteredAt)
			assert.True(t, got.RegisteredAt.Equal(now))

			n, ok := CacheGet[int](c, "count")
			require.True(t, ok)
			assert.Equal(t, 7, n)

			flag, ok := CacheGet[bool](c, "flag")
			require.True(t, ok)
			assert.True(t, flag)

			_, ok = CacheGet[int](c, "missing")
			assert.False(t, ok)

			_, ok = CacheGet[int](c, "flag")
			assert.False(t, ok, "mismatched type is a miss")
		})
	}
}

func TestCacheService_GetOrSet(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	defer c.Close()

	calls := 0
	loader := func() (any, error) {
		calls++
		return "value", nil
	}

	v, err := c.GetOrSet("k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.GetOrSet("k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)

	_, err = c.GetOrSet("other", time.Minute, func() (any, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	_, found := c.Get("other")
	assert.False(t, found)

	c.Delete("k")
	assert.Equal(t, 0, c.ItemCount())
}

func TestCacheService_Expiry(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	c.Set("short", 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("short")
	assert.False(t, found)
}
