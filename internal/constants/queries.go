package constants

// Queries use ? placeholders and go through sqlx Rebind so they run on both
// postgres and sqlite.
const (
	GetStatusByApiKey = `
	SELECT api_key, caller_address, status FROM api_keys WHERE api_key = ?
	`

	InsertApiKey = `
	INSERT INTO api_keys (api_key, caller_address, status, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`

	RevokeApiKey = `
	UPDATE api_keys SET status = ? WHERE api_key = ?
	`
)
