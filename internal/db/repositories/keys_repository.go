package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

var ErrApiKeyNotFound = errors.New("api key not found")

type KeysRepo struct {
	db *sqlx.DB
}

func NewApiKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

// GetStatus resolves an API key to the caller address it was issued for.
func (r *KeysRepo) GetStatus(ctx context.Context, key string) (*entities.ApiKey, error) {
	var keyRes entities.ApiKey

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(constants.GetStatusByApiKey), key).StructScan(&keyRes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApiKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch api key: %w", err)
	}

	return &keyRes, nil
}

// Insert issues a new active key for callerAddress.
func (r *KeysRepo) Insert(ctx context.Context, key string, callerAddress string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(constants.InsertApiKey), key, callerAddress, true); err != nil {
		return fmt.Errorf("failed to insert api key: %w", err)
	}
	return nil
}

// Revoke deactivates a key without deleting it.
func (r *KeysRepo) Revoke(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(constants.RevokeApiKey), false, key)
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrApiKeyNotFound
	}
	return nil
}
