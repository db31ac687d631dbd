package services

import (
	"context"
	"errors"

	"infinite-experiment/consortium/internal/common"
	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/logging"
	"infinite-experiment/consortium/internal/metrics"

	"github.com/shopspring/decimal"
)

// AppService is the application front-end of the consortium. It holds one
// identity, the delegate address the consortium sees on every registration it
// forwards, and otherwise passes calls through unchanged. Reads are cached and
// every call is counted by operation and result code.
type AppService struct {
	consortium *governance.Consortium
	identity   governance.Address
	cache      common.CacheInterface
	metrics    *metrics.MetricsRegistry
}

func NewAppService(
	consortium *governance.Consortium,
	identity governance.Address,
	cache common.CacheInterface,
	m *metrics.MetricsRegistry,
) *AppService {
	return &AppService{
		consortium: consortium,
		identity:   identity,
		cache:      cache,
		metrics:    m,
	}
}

// Identity is the delegate address this application calls the consortium as.
func (s *AppService) Identity() governance.Address { return s.identity }

/* ---------- Operational status ---------- */

func (s *AppService) IsOperational(ctx context.Context) (bool, error) {
	key := string(constants.CachePrefixOperational)
	if v, ok := common.CacheGet[bool](s.cache, key); ok {
		s.hit(constants.CachePrefixOperational)
		return v, nil
	}
	s.miss(constants.CachePrefixOperational)

	operational, err := s.consortium.IsOperational(ctx)
	if err != nil {
		return false, err
	}
	s.cache.Set(key, operational, constants.GovernanceCacheTTL)
	return operational, nil
}

func (s *AppService) SetOperatingStatus(ctx context.Context, caller governance.Address, operational bool) error {
	err := s.consortium.SetOperatingStatus(ctx, caller, operational)
	s.record("set_operating_status", caller, err)
	if err != nil {
		return err
	}

	s.cache.Delete(string(constants.CachePrefixOperational))
	s.setOperationalGauge(operational)
	return nil
}

/* ---------- Authorized callers ---------- */

func (s *AppService) AuthorizeCaller(ctx context.Context, caller, addr governance.Address) error {
	err := s.consortium.AuthorizeCaller(ctx, caller, addr)
	s.record("authorize_caller", caller, err)
	return err
}

func (s *AppService) DeauthorizeCaller(ctx context.Context, caller, addr governance.Address) error {
	err := s.consortium.DeauthorizeCaller(ctx, caller, addr)
	s.record("deauthorize_caller", caller, err)
	return err
}

func (s *AppService) IsAuthorizedCaller(ctx context.Context, addr governance.Address) (bool, error) {
	return s.consortium.IsAuthorizedCaller(ctx, addr)
}

/* ---------- Funding ---------- */

func (s *AppService) Fund(ctx context.Context, from governance.Address, amount decimal.Decimal) (*governance.Airline, error) {
	airline, err := s.consortium.Fund(ctx, from, amount)
	s.record("fund", from, err)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(airlineKey(from))
	return airline, nil
}

func (s *AppService) IsFunded(ctx context.Context, addr governance.Address) (bool, error) {
	airline, err := s.GetAirline(ctx, addr)
	if err != nil {
		return false, err
	}
	return airline.Funded, nil
}

/* ---------- Registry ---------- */

// RegisterAirline forwards a registration from caller. The consortium checks
// this service's identity against its allow-list and caller's eligibility.
func (s *AppService) RegisterAirline(ctx context.Context, caller, candidate governance.Address) (*governance.AdmissionResult, error) {
	result, err := s.consortium.RegisterAirline(ctx, s.identity, caller, candidate)
	s.record("register_airline", caller, err)
	if err != nil {
		return nil, err
	}

	if result.Registered {
		s.cache.Delete(airlineKey(candidate))
		s.cache.Delete(string(constants.CachePrefixCount))
		logging.Info("Airline registered",
			"candidate", candidate.String(),
			"method", string(result.Method),
			"votes", result.Votes,
		)
	}
	s.RefreshGauges(ctx)
	return result, nil
}

func (s *AppService) IsAirline(ctx context.Context, addr governance.Address) (bool, error) {
	airline, err := s.GetAirline(ctx, addr)
	if err != nil {
		return false, err
	}
	return airline.Registered, nil
}

func (s *AppService) GetAirline(ctx context.Context, addr governance.Address) (*governance.Airline, error) {
	key := airlineKey(addr)
	if v, ok := common.CacheGet[governance.Airline](s.cache, key); ok {
		s.hit(constants.CachePrefixAirline)
		return &v, nil
	}
	s.miss(constants.CachePrefixAirline)

	airline, err := s.consortium.GetAirline(ctx, addr)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *airline, constants.GovernanceCacheTTL)
	return airline, nil
}

func (s *AppService) RegisteredAirlineCount(ctx context.Context) (int, error) {
	key := string(constants.CachePrefixCount)
	if v, ok := common.CacheGet[int](s.cache, key); ok {
		s.hit(constants.CachePrefixCount)
		return v, nil
	}
	s.miss(constants.CachePrefixCount)

	n, err := s.consortium.RegisteredAirlineCount(ctx)
	if err != nil {
		return 0, err
	}
	s.cache.Set(key, n, constants.GovernanceCacheTTL)
	return n, nil
}

func (s *AppService) GetCandidacy(ctx context.Context, candidate governance.Address) (*governance.Candidacy, error) {
	return s.consortium.GetCandidacy(ctx, candidate)
}

func (s *AppService) ListEvents(ctx context.Context, limit int) ([]governance.Event, error) {
	return s.consortium.ListEvents(ctx, limit)
}

// RefreshGauges reloads the governance gauges from the ledger. Failures are
// logged; the gauges keep their previous values.
func (s *AppService) RefreshGauges(ctx context.Context) {
	if s.metrics == nil {
		return
	}

	if operational, err := s.consortium.IsOperational(ctx); err == nil {
		s.setOperationalGauge(operational)
	} else if !errors.Is(err, governance.ErrNotInitialized) {
		logging.Warn("Failed to refresh operational gauge", "error", err.Error())
	}
	if n, err := s.consortium.RegisteredAirlineCount(ctx); err == nil {
		s.metrics.AirlinesRegistered.Set(float64(n))
	}
	if n, err := s.consortium.PendingCandidacies(ctx); err == nil {
		s.metrics.PendingCandidacies.Set(float64(n))
	} else {
		logging.Warn("Failed to refresh candidacy gauge", "error", err.Error())
	}
}

func (s *AppService) record(op string, caller governance.Address, err error) {
	code := governance.ErrorCode(err)
	if s.metrics != nil {
		s.metrics.GovernanceOpsTotal.WithLabelValues(op, code).Inc()
	}

	switch code {
	case "OK":
		logging.Debug("Governance call accepted", "operation", op, "caller", caller.String())
	case "INTERNAL":
		logging.Error("Governance call failed", "operation", op, "caller", caller.String(), "error", err.Error())
	default:
		logging.Info("Governance call rejected", "operation", op, "caller", caller.String(), "code", code)
	}
}

func (s *AppService) setOperationalGauge(operational bool) {
	if s.metrics == nil {
		return
	}
	v := 0.0
	if operational {
		v = 1
	}
	s.metrics.OperationalStatus.Set(v)
}

func (s *AppService) hit(prefix constants.CachePrefix) {
	if s.metrics != nil {
		s.metrics.CacheHitsTotal.WithLabelValues(string(prefix)).Inc()
	}
}

func (s *AppService) miss(prefix constants.CachePrefix) {
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.WithLabelValues(string(prefix)).Inc()
	}
}

func airlineKey(addr governance.Address) string {
	return string(constants.CachePrefixAirline) + addr.String()
}
