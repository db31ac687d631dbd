package governance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Airline is the ledger record of a consortium participant. A record that was
// never written reads back as the zero value with only Address set.
type Airline struct {
	Address      Address
	Registered   bool
	Funded       bool
	FundedAmount decimal.Decimal
	RegisteredAt *time.Time
}

// State is the governance singleton.
type State struct {
	Operational            bool
	Owner                  Address
	RegisteredAirlineCount int
}

// Store is the Ledger Store boundary. Update runs fn as one exclusive,
// all-or-nothing transaction: any error returned by fn rolls back every write
// made through the Tx. Updates are serialized against each other.
type Store interface {
	Update(ctx context.Context, fn func(tx Tx) error) error
	View(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of record operations available inside a Store transaction.
type Tx interface {
	// State returns ErrNotInitialized when the singleton has not been created.
	State() (*State, error)
	SaveState(st *State) error

	Airline(addr Address) (*Airline, error)
	SaveAirline(a *Airline) error
	CountRegistered() (int, error)

	Voters(candidate Address) ([]Address, error)
	// AddVoter reports false when voter already voted for candidate.
	AddVoter(candidate, voter Address) (bool, error)
	DeleteCandidacy(candidate Address) error
	CountCandidacies() (int, error)

	IsAuthorized(addr Address) (bool, error)
	SetAuthorized(addr Address, authorized bool) error

	AppendEvent(ev *Event) error
	Events(limit int) ([]Event, error)
}
