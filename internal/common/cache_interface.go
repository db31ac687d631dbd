package common

import (
	"encoding/json"
	"time"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// CacheGet reads key as a T. The in-memory cache hands back the stored value
// as is while Redis returns decoded JSON, so anything that is not already a T
// is converted through JSON.
func CacheGet[T any](c CacheInterface, key string) (T, bool) {
	var zero T

	val, found := c.Get(key)
	if !found || val == nil {
		return zero, false
	}
	if typed, ok := val.(T); ok {
		return typed, true
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return zero, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, false
	}
	return out, true
}
