package governance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"infinite-experiment/consortium/internal/logging"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DirectAdmissionLimit is the committee size below which an eligible caller
// admits a new airline without a vote.
const DirectAdmissionLimit = 4

// RequiredVotes is the consensus threshold for a committee of the given size:
// half of the registered airlines, rounded up.
func RequiredVotes(registered int) int {
	return (registered + 1) / 2
}

type Settings struct {
	// MinFunding is the cumulative funding, in the smallest currency unit,
	// that grants an airline voting and admission rights.
	MinFunding decimal.Decimal
}

// Consortium is the state-holding governance component. It owns the
// operational flag, the delegate allow-list, the funding ledger and the
// admission state machine; every mutation runs as one Store transaction.
type Consortium struct {
	store    Store
	settings Settings
	sink     EventSink
	now      func() time.Time
}

// NewConsortium wires a consortium over store. A nil sink discards events.
func NewConsortium(store Store, settings Settings, sink EventSink) *Consortium {
	if sink == nil {
		sink = discardSink{}
	}
	return &Consortium{
		store:    store,
		settings: settings,
		sink:     sink,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (c *Consortium) Settings() Settings { return c.settings }

// Initialize creates the governance singleton with owner and registers the
// seed airline. It fails with ErrAlreadyInitialized on a second call.
func (c *Consortium) Initialize(ctx context.Context, owner, seed Address) error {
	if owner.IsZero() || seed.IsZero() {
		return fmt.Errorf("%w: owner and seed airline are required", ErrInvalidAddress)
	}

	m := &mutation{}
	err := c.store.Update(ctx, func(tx Tx) error {
		if _, err := tx.State(); err == nil {
			return ErrAlreadyInitialized
		} else if !errors.Is(err, ErrNotInitialized) {
			return err
		}

		m.tx = tx
		m.state = &State{Operational: true, Owner: owner}
		m.events = nil
		return c.admit(m, seed, owner, "seed")
	})
	if err != nil {
		return err
	}

	logging.Info("Consortium initialized", "owner", owner.String(), "seed_airline", seed.String())
	c.publish(ctx, m.events)
	return nil
}

// mutate runs body inside one transaction after every check has passed.
// Events emitted by body are published once the transaction commits.
func (c *Consortium) mutate(ctx context.Context, body func(m *mutation) error, checks ...precondition) error {
	m := &mutation{}
	err := c.store.Update(ctx, func(tx Tx) error {
		st, err := tx.State()
		if err != nil {
			return err
		}

		m.tx = tx
		m.state = st
		m.events = nil

		for _, check := range checks {
			if err := check(m); err != nil {
				return err
			}
		}
		return body(m)
	})
	if err != nil {
		return err
	}

	c.publish(ctx, m.events)
	return nil
}

func (c *Consortium) emit(m *mutation, kind EventKind, subject, actor Address, detail string) error {
	ev := Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Subject:   subject,
		Actor:     actor,
		Detail:    detail,
		CreatedAt: c.now(),
	}
	if err := m.tx.AppendEvent(&ev); err != nil {
		return fmt.Errorf("append %s event: %w", kind, err)
	}
	m.events = append(m.events, ev)
	return nil
}

func (c *Consortium) publish(ctx context.Context, events []Event) {
	for _, ev := range events {
		if err := c.sink.Publish(ctx, ev); err != nil {
			logging.Warn("Failed to publish governance event",
				"event_id", ev.ID,
				"kind", string(ev.Kind),
				"error", err.Error(),
			)
		}
	}
}

/* ---------- Operational Status Controller ---------- */

func (c *Consortium) IsOperational(ctx context.Context) (bool, error) {
	st, err := c.state(ctx)
	if err != nil {
		return false, err
	}
	return st.Operational, nil
}

// SetOperatingStatus is owner-only. Setting the current value is a no-op.
func (c *Consortium) SetOperatingStatus(ctx context.Context, caller Address, operational bool) error {
	return c.mutate(ctx, func(m *mutation) error {
		if m.state.Operational == operational {
			return nil
		}
		m.state.Operational = operational
		if err := m.tx.SaveState(m.state); err != nil {
			return err
		}
		return c.emit(m, EventOperationalChanged, m.state.Owner, caller, fmt.Sprintf("operational=%t", operational))
	}, requireOwner(caller))
}

/* ---------- Authorization Gate ---------- */

// AuthorizeCaller adds addr to the delegate allow-list. Idempotent.
func (c *Consortium) AuthorizeCaller(ctx context.Context, caller, addr Address) error {
	return c.setAuthorized(ctx, caller, addr, true)
}

// DeauthorizeCaller removes addr from the delegate allow-list. Idempotent.
func (c *Consortium) DeauthorizeCaller(ctx context.Context, caller, addr Address) error {
	return c.setAuthorized(ctx, caller, addr, false)
}

func (c *Consortium) setAuthorized(ctx context.Context, caller, addr Address, authorized bool) error {
	return c.mutate(ctx, func(m *mutation) error {
		current, err := m.tx.IsAuthorized(addr)
		if err != nil {
			return err
		}
		if current == authorized {
			return nil
		}
		if err := m.tx.SetAuthorized(addr, authorized); err != nil {
			return err
		}
		kind := EventCallerAuthorized
		if !authorized {
			kind = EventCallerDeauthorized
		}
		return c.emit(m, kind, addr, caller, "")
	}, requireOperational(), requireOwner(caller))
}

func (c *Consortium) IsAuthorizedCaller(ctx context.Context, addr Address) (bool, error) {
	var ok bool
	err := c.store.View(ctx, func(tx Tx) error {
		var err error
		ok, err = tx.IsAuthorized(addr)
		return err
	})
	return ok, err
}

/* ---------- Funding Ledger ---------- */

// Fund credits amount to from. The airline becomes funded the first time its
// cumulative funding reaches MinFunding and stays funded afterwards.
func (c *Consortium) Fund(ctx context.Context, from Address, amount decimal.Decimal) (*Airline, error) {
	if amount.IsNegative() || !amount.IsInteger() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount.String())
	}

	var funded *Airline
	err := c.mutate(ctx, func(m *mutation) error {
		airline, err := m.tx.Airline(from)
		if err != nil {
			return err
		}

		airline.FundedAmount = airline.FundedAmount.Add(amount)
		if !airline.Funded && airline.FundedAmount.GreaterThanOrEqual(c.settings.MinFunding) {
			airline.Funded = true
		}
		if err := m.tx.SaveAirline(airline); err != nil {
			return err
		}

		funded = airline
		return c.emit(m, EventAirlineFunded, from, from,
			fmt.Sprintf("amount=%s total=%s funded=%t", amount.String(), airline.FundedAmount.String(), airline.Funded))
	}, requireOperational())
	if err != nil {
		return nil, err
	}
	return funded, nil
}

func (c *Consortium) IsFunded(ctx context.Context, addr Address) (bool, error) {
	airline, err := c.GetAirline(ctx, addr)
	if err != nil {
		return false, err
	}
	return airline.Funded, nil
}

/* ---------- Airline Registry & Consensus Voter ---------- */

type AdmissionMethod string

const (
	AdmissionDirect    AdmissionMethod = "direct"
	AdmissionConsensus AdmissionMethod = "consensus"
)

// AdmissionResult describes what one RegisterAirline call did. A consensus
// call that did not reach the threshold leaves Registered false.
type AdmissionResult struct {
	Candidate     Address         `json:"candidate"`
	Method        AdmissionMethod `json:"method"`
	Registered    bool            `json:"registered"`
	Votes         int             `json:"votes"`
	Required      int             `json:"required"`
	DuplicateVote bool            `json:"duplicate_vote"`
}

// RegisterAirline is invoked by delegate on behalf of caller. The delegate
// must be the owner or on the allow-list; caller must be an eligible airline.
func (c *Consortium) RegisterAirline(ctx context.Context, delegate, caller, candidate Address) (*AdmissionResult, error) {
	result := &AdmissionResult{Candidate: candidate}

	err := c.mutate(ctx, func(m *mutation) error {
		registered := m.state.RegisteredAirlineCount

		if registered < DirectAdmissionLimit {
			result.Method = AdmissionDirect
			result.Votes = 1
			result.Required = 1
			result.Registered = true
			return c.admit(m, candidate, caller, string(AdmissionDirect))
		}

		result.Method = AdmissionConsensus
		added, err := m.tx.AddVoter(candidate, caller)
		if err != nil {
			return err
		}
		voters, err := m.tx.Voters(candidate)
		if err != nil {
			return err
		}

		required := RequiredVotes(registered)
		result.Votes = len(voters)
		result.Required = required
		result.DuplicateVote = !added

		if added {
			detail := fmt.Sprintf("votes=%d required=%d", len(voters), required)
			if err := c.emit(m, EventAirlineVoted, candidate, caller, detail); err != nil {
				return err
			}
		}

		if len(voters) < required {
			return nil
		}

		if err := m.tx.DeleteCandidacy(candidate); err != nil {
			return err
		}
		result.Registered = true
		return c.admit(m, candidate, caller, string(AdmissionConsensus))
	},
		requireOperational(),
		requireAuthorizedCaller(delegate),
		requireEligibleAirline(caller),
		requireUnregistered(candidate),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// admit marks candidate registered and keeps the registered count in step.
func (c *Consortium) admit(m *mutation, candidate, actor Address, how string) error {
	airline, err := m.tx.Airline(candidate)
	if err != nil {
		return err
	}

	now := c.now()
	airline.Registered = true
	airline.RegisteredAt = &now
	if err := m.tx.SaveAirline(airline); err != nil {
		return err
	}

	m.state.RegisteredAirlineCount++
	if err := m.tx.SaveState(m.state); err != nil {
		return err
	}

	return c.emit(m, EventAirlineRegistered, candidate, actor,
		fmt.Sprintf("method=%s registered=%d", how, m.state.RegisteredAirlineCount))
}

func (c *Consortium) IsAirline(ctx context.Context, addr Address) (bool, error) {
	airline, err := c.GetAirline(ctx, addr)
	if err != nil {
		return false, err
	}
	return airline.Registered, nil
}

func (c *Consortium) GetAirline(ctx context.Context, addr Address) (*Airline, error) {
	var airline *Airline
	err := c.store.View(ctx, func(tx Tx) error {
		var err error
		airline, err = tx.Airline(addr)
		return err
	})
	if err != nil {
		return nil, err
	}
	return airline, nil
}

func (c *Consortium) RegisteredAirlineCount(ctx context.Context) (int, error) {
	st, err := c.state(ctx)
	if err != nil {
		return 0, err
	}
	return st.RegisteredAirlineCount, nil
}

// Candidacy is the read model of a pending admission.
type Candidacy struct {
	Candidate  Address   `json:"candidate"`
	Registered bool      `json:"registered"`
	Direct     bool      `json:"direct"`
	Voters     []Address `json:"voters"`
	Required   int       `json:"required"`
}

// GetCandidacy reports the votes gathered for candidate and the threshold it
// would have to meet if one more eligible vote arrived now.
func (c *Consortium) GetCandidacy(ctx context.Context, candidate Address) (*Candidacy, error) {
	out := &Candidacy{Candidate: candidate, Voters: []Address{}}
	err := c.store.View(ctx, func(tx Tx) error {
		st, err := tx.State()
		if err != nil {
			return err
		}
		airline, err := tx.Airline(candidate)
		if err != nil {
			return err
		}
		if airline.Registered {
			out.Registered = true
			return nil
		}

		if st.RegisteredAirlineCount < DirectAdmissionLimit {
			out.Direct = true
			out.Required = 1
			return nil
		}

		voters, err := tx.Voters(candidate)
		if err != nil {
			return err
		}
		out.Voters = append(out.Voters, voters...)
		out.Required = RequiredVotes(st.RegisteredAirlineCount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PendingCandidacies counts candidates that hold at least one vote.
func (c *Consortium) PendingCandidacies(ctx context.Context) (int, error) {
	var n int
	err := c.store.View(ctx, func(tx Tx) error {
		var err error
		n, err = tx.CountCandidacies()
		return err
	})
	return n, err
}

// ListEvents returns the most recent audit events, newest first.
func (c *Consortium) ListEvents(ctx context.Context, limit int) ([]Event, error) {
	var events []Event
	err := c.store.View(ctx, func(tx Tx) error {
		var err error
		events, err = tx.Events(limit)
		return err
	})
	return events, err
}

func (c *Consortium) state(ctx context.Context) (*State, error) {
	var st *State
	err := c.store.View(ctx, func(tx Tx) error {
		var err error
		st, err = tx.State()
		return err
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}
