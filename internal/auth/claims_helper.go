package auth

import (
	"context"
	"errors"
	"fmt"

	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/models/entities"
)

var ErrInactiveApiKey = errors.New("api key is inactive")

// ApiKeyLookup resolves an API key to its stored record.
type ApiKeyLookup interface {
	GetStatus(ctx context.Context, key string) (*entities.ApiKey, error)
}

// MakeClaimsFromApiKey resolves key and returns the claims of the address it
// was issued to. Revoked keys are rejected.
func MakeClaimsFromApiKey(ctx context.Context, lookup ApiKeyLookup, key string) (*APIKeyClaims, error) {
	rec, err := lookup.GetStatus(ctx, key)
	if err != nil {
		return nil, err
	}
	if !rec.Status {
		return nil, ErrInactiveApiKey
	}

	addr, err := governance.ParseAddress(rec.CallerAddress)
	if err != nil {
		return nil, fmt.Errorf("api key bound to bad address: %w", err)
	}
	return &APIKeyClaims{CallerAddress: addr}, nil
}
