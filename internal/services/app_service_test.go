package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"infinite-experiment/consortium/internal/common"
	"infinite-experiment/consortium/internal/db/dbtest"
	"infinite-experiment/consortium/internal/db/repositories"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddr(n int) governance.Address {
	return governance.MustParseAddress(fmt.Sprintf("0x%040x", n))
}

var (
	ownerAddr = testAddr(1)
	appAddr   = testAddr(2)
	seedAddr  = testAddr(3)
)

type failingSink struct{}

func (failingSink) Publish(context.Context, governance.Event) error {
	return errors.New("stream unavailable")
}

func setupAppService(t *testing.T, sink governance.EventSink) (*AppService, *metrics.MetricsRegistry) {
	t.Helper()

	db := dbtest.NewSQLite(t)
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	if sink != nil {
		sink = NewCountingSink(sink, m)
	}
	c := governance.NewConsortium(
		repositories.NewLedgerRepositoryGORM(db),
		governance.Settings{MinFunding: decimal.NewFromInt(100)},
		sink,
	)

	ctx := context.Background()
	require.NoError(t, c.Initialize(ctx, ownerAddr, seedAddr))

	cache := common.NewCacheService(time.Minute, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	return NewAppService(c, appAddr, cache, m), m
}

func TestAppService_RegisterRequiresAuthorizedIdentity(t *testing.T) {
	svc, m := setupAppService(t, nil)
	ctx := context.Background()

	_, err := svc.RegisterAirline(ctx, ownerAddr, testAddr(10))
	assert.ErrorIs(t, err, governance.ErrUnauthorized)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GovernanceOpsTotal.WithLabelValues("register_airline", "UNAUTHORIZED")))

	require.NoError(t, svc.AuthorizeCaller(ctx, ownerAddr, appAddr))

	res, err := svc.RegisterAirline(ctx, ownerAddr, testAddr(10))
	require.NoError(t, err)
	assert.True(t, res.Registered)
	assert.Equal(t, governance.AdmissionDirect, res.Method)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GovernanceOpsTotal.WithLabelValues("register_airline", "OK")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AirlinesRegistered))
}

func TestAppService_DeauthorizedIdentityLosesAccess(t *testing.T) {
	svc, _ := setupAppService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.AuthorizeCaller(ctx, ownerAddr, appAddr))
	ok, err := svc.IsAuthorizedCaller(ctx, appAddr)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.DeauthorizeCaller(ctx, ownerAddr, appAddr))
	ok, err = svc.IsAuthorizedCaller(ctx, appAddr)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.RegisterAirline(ctx, ownerAddr, testAddr(10))
	assert.ErrorIs(t, err, governance.ErrUnauthorized)
}

func TestAppService_FundInvalidatesCachedAirline(t *testing.T) {
	svc, m := setupAppService(t, nil)
	ctx := context.Background()

	funded, err := svc.IsFunded(ctx, seedAddr)
	require.NoError(t, err)
	assert.False(t, funded)

	// Served from cache the second time.
	_, err = svc.IsFunded(ctx, seedAddr)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("AIRLINE_")))

	airline, err := svc.Fund(ctx, seedAddr, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, airline.Funded)

	funded, err = svc.IsFunded(ctx, seedAddr)
	require.NoError(t, err)
	assert.True(t, funded)
}

func TestAppService_OperationalCacheFollowsWrites(t *testing.T) {
	svc, m := setupAppService(t, nil)
	ctx := context.Background()

	op, err := svc.IsOperational(ctx)
	require.NoError(t, err)
	assert.True(t, op)

	require.NoError(t, svc.SetOperatingStatus(ctx, ownerAddr, false))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.OperationalStatus))

	op, err = svc.IsOperational(ctx)
	require.NoError(t, err)
	assert.False(t, op)

	_, err = svc.Fund(ctx, seedAddr, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, governance.ErrNotOperational)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GovernanceOpsTotal.WithLabelValues("fund", "NOT_OPERATIONAL")))
}

func TestAppService_CountCacheInvalidatedOnRegistration(t *testing.T) {
	svc, _ := setupAppService(t, nil)
	ctx := context.Background()
	require.NoError(t, svc.AuthorizeCaller(ctx, ownerAddr, appAddr))

	n, err := svc.RegisteredAirlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.RegisterAirline(ctx, ownerAddr, testAddr(10))
	require.NoError(t, err)

	n, err = svc.RegisteredAirlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, err := svc.IsAirline(ctx, testAddr(10))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAppService_ConsensusVotesThroughApp(t *testing.T) {
	svc, m := setupAppService(t, nil)
	ctx := context.Background()
	require.NoError(t, svc.AuthorizeCaller(ctx, ownerAddr, appAddr))

	// Grow the committee to four and fund every member.
	members := []governance.Address{seedAddr, testAddr(10), testAddr(11), testAddr(12)}
	for _, a := range members[1:] {
		_, err := svc.RegisterAirline(ctx, ownerAddr, a)
		require.NoError(t, err)
	}
	for _, a := range members {
		_, err := svc.Fund(ctx, a, decimal.NewFromInt(100))
		require.NoError(t, err)
	}

	candidate := testAddr(20)
	res, err := svc.RegisterAirline(ctx, members[0], candidate)
	require.NoError(t, err)
	assert.False(t, res.Registered)
	assert.Equal(t, 1, res.Votes)
	assert.Equal(t, 2, res.Required)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PendingCandidacies))

	cand, err := svc.GetCandidacy(ctx, candidate)
	require.NoError(t, err)
	assert.Equal(t, []governance.Address{members[0]}, cand.Voters)

	res, err = svc.RegisterAirline(ctx, members[1], candidate)
	require.NoError(t, err)
	assert.True(t, res.Registered)
	assert.Equal(t, governance.AdmissionConsensus, res.Method)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PendingCandidacies))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.AirlinesRegistered))
}

func TestAppService_PublishFailuresAreCounted(t *testing.T) {
	svc, m := setupAppService(t, failingSink{})
	ctx := context.Background()

	// Initialize already failed to publish the seed registration.
	require.NoError(t, svc.SetOperatingStatus(ctx, ownerAddr, false))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublishErrors))

	events, err := svc.ListEvents(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, governance.EventOperationalChanged, events[0].Kind)
}
