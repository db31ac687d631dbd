package constants

import "time"

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceJWT    RequestSource = "JWT"
	RequestSourceAPIKey RequestSource = "API_KEY"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAirline     CachePrefix = "AIRLINE_"
	CachePrefixOperational CachePrefix = "GOV_OPERATIONAL"
	CachePrefixCount       CachePrefix = "GOV_REGISTERED_COUNT"
)

const (
	// Governance reads are invalidated on every local write; the TTL bounds
	// staleness when several instances share one ledger.
	GovernanceCacheTTL     = 30 * time.Second
	GovernanceCacheCleanup = 5 * time.Minute

	RedisCacheNamespace = "consortium:"
	EventStreamMaxLen   = 100000

	DefaultEventsLimit = 50
	MaxEventsLimit     = 500
)
