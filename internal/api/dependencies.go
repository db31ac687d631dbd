package api

import (
	"fmt"
	"strings"

	"infinite-experiment/consortium/internal/common"
	"infinite-experiment/consortium/internal/config"
	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/db"
	"infinite-experiment/consortium/internal/db/repositories"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/logging"
	"infinite-experiment/consortium/internal/metrics"
	"infinite-experiment/consortium/internal/services"

	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	Ledger *repositories.LedgerRepositoryGORM
	Keys   *repositories.KeysRepo
}

type Services struct {
	Consortium *governance.Consortium
	App        *services.AppService
	Governance GovernanceService
	Cache      common.CacheInterface
	Events     governance.EventSink

	// Redis is nil unless the cache or the event stream needs it.
	Redis *redis.Client
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires the ledger, cache, event sink and application
// service. db.PgDB and db.DB must already be open.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	appIdentity, err := governance.ParseAddress(cfg.Governance.AppAddress)
	if err != nil {
		return nil, fmt.Errorf("APP_ADDRESS: %w", err)
	}

	repos := &Repositories{
		Ledger: repositories.NewLedgerRepositoryGORM(db.PgDB),
		Keys:   repositories.NewApiKeysRepo(db.DB),
	}

	useRedisCache := strings.EqualFold(cfg.CacheBackend, config.CacheRedis)

	var rdb *redis.Client
	if useRedisCache || cfg.Governance.EventsEnabled {
		rdb = common.NewRedisClient(cfg.Redis)
	}

	var cache common.CacheInterface
	if useRedisCache {
		redisCache, err := common.NewRedisCacheService(rdb, constants.RedisCacheNamespace)
		if err != nil {
			return nil, err
		}
		cache = redisCache
		logging.Info("Using Redis cache", "addr", cfg.Redis.Addr())
	} else {
		cache = common.NewCacheService(constants.GovernanceCacheTTL, constants.GovernanceCacheCleanup)
		logging.Info("Using in-memory cache")
	}

	var sink governance.EventSink = common.LogEventSink{}
	if cfg.Governance.EventsEnabled {
		sink = common.NewRedisQueueService(rdb, cfg.Governance.EventsStream, constants.EventStreamMaxLen)
		logging.Info("Publishing governance events", "stream", cfg.Governance.EventsStream)
	}
	sink = services.NewCountingSink(sink, metricsReg)

	consortium := governance.NewConsortium(
		repos.Ledger,
		governance.Settings{MinFunding: cfg.Governance.MinFunding},
		sink,
	)
	app := services.NewAppService(consortium, appIdentity, cache, metricsReg)

	return &Dependencies{
		Repo: repos,
		Services: &Services{
			Consortium: consortium,
			App:        app,
			Governance: app,
			Cache:      cache,
			Events:     sink,
			Redis:      rdb,
		},
	}, nil
}

// Close releases the cache and the Redis connection.
func (d *Dependencies) Close() error {
	if err := d.Services.Cache.Close(); err != nil {
		return err
	}
	if d.Services.Redis != nil {
		return d.Services.Redis.Close()
	}
	return nil
}
