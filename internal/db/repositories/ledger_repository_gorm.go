package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"infinite-experiment/consortium/internal/governance"
	gormModels "infinite-experiment/consortium/internal/models/gorm"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepositoryGORM implements governance.Store on top of GORM.
//
// Updates are serialized twice: an in-process mutex covers every dialect, and
// on postgres the governance_state row is locked FOR UPDATE so that several
// service processes sharing one database also apply votes one at a time.
type LedgerRepositoryGORM struct {
	db *gorm.DB
	mu sync.Mutex
}

var _ governance.Store = (*LedgerRepositoryGORM)(nil)

// NewLedgerRepositoryGORM creates a new GORM-based ledger store
func NewLedgerRepositoryGORM(db *gorm.DB) *LedgerRepositoryGORM {
	return &LedgerRepositoryGORM{db: db}
}

func (r *LedgerRepositoryGORM) Update(ctx context.Context, fn func(tx governance.Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			var st gormModels.GovernanceState
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", gormModels.GovernanceStateID).
				Limit(1).
				Find(&st).Error
			if err != nil {
				return fmt.Errorf("failed to lock governance state: %w", err)
			}
		}
		return fn(&ledgerTx{db: tx})
	})
}

func (r *LedgerRepositoryGORM) View(ctx context.Context, fn func(tx governance.Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{db: tx})
	})
}

// ledgerTx binds governance.Tx to one open GORM transaction.
type ledgerTx struct {
	db *gorm.DB
}

func (t *ledgerTx) State() (*governance.State, error) {
	var row gormModels.GovernanceState
	res := t.db.Where("id = ?", gormModels.GovernanceStateID).Limit(1).Find(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to fetch governance state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, governance.ErrNotInitialized
	}

	return &governance.State{
		Operational:            row.Operational,
		Owner:                  governance.Address(row.Owner),
		RegisteredAirlineCount: row.RegisteredAirlineCount,
	}, nil
}

func (t *ledgerTx) SaveState(st *governance.State) error {
	row := gormModels.GovernanceState{
		ID:                     gormModels.GovernanceStateID,
		Operational:            st.Operational,
		Owner:                  st.Owner.String(),
		RegisteredAirlineCount: st.RegisteredAirlineCount,
	}
	if err := t.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save governance state: %w", err)
	}
	return nil
}

func (t *ledgerTx) Airline(addr governance.Address) (*governance.Airline, error) {
	var row gormModels.Airline
	res := t.db.Where("address = ?", addr.String()).Limit(1).Find(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to fetch airline %s: %w", addr, res.Error)
	}
	if res.RowsAffected == 0 {
		return &governance.Airline{Address: addr, FundedAmount: decimal.Zero}, nil
	}

	return &governance.Airline{
		Address:      governance.Address(row.Address),
		Registered:   row.Registered,
		Funded:       row.Funded,
		FundedAmount: row.FundedAmount,
		RegisteredAt: row.RegisteredAt,
	}, nil
}

func (t *ledgerTx) SaveAirline(a *governance.Airline) error {
	row := gormModels.Airline{
		Address:      a.Address.String(),
		Registered:   a.Registered,
		Funded:       a.Funded,
		FundedAmount: a.FundedAmount,
		RegisteredAt: a.RegisteredAt,
	}
	if err := t.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save airline %s: %w", a.Address, err)
	}
	return nil
}

func (t *ledgerTx) CountRegistered() (int, error) {
	var n int64
	if err := t.db.Model(&gormModels.Airline{}).Where("registered = ?", true).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count airlines: %w", err)
	}
	return int(n), nil
}

func (t *ledgerTx) Voters(candidate governance.Address) ([]governance.Address, error) {
	var rows []gormModels.CandidacyVote
	err := t.db.Where("candidate = ?", candidate.String()).
		Order("created_at ASC").
		Order("voter ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch votes for %s: %w", candidate, err)
	}

	voters := make([]governance.Address, 0, len(rows))
	for _, row := range rows {
		voters = append(voters, governance.Address(row.Voter))
	}
	return voters, nil
}

func (t *ledgerTx) AddVoter(candidate, voter governance.Address) (bool, error) {
	row := gormModels.CandidacyVote{
		Candidate: candidate.String(),
		Voter:     voter.String(),
	}
	res := t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to record vote for %s: %w", candidate, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (t *ledgerTx) DeleteCandidacy(candidate governance.Address) error {
	err := t.db.Where("candidate = ?", candidate.String()).Delete(&gormModels.CandidacyVote{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete candidacy %s: %w", candidate, err)
	}
	return nil
}

func (t *ledgerTx) CountCandidacies() (int, error) {
	var n int64
	err := t.db.Model(&gormModels.CandidacyVote{}).Distinct("candidate").Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count candidacies: %w", err)
	}
	return int(n), nil
}

func (t *ledgerTx) IsAuthorized(addr governance.Address) (bool, error) {
	var n int64
	err := t.db.Model(&gormModels.AuthorizedCaller{}).Where("address = ?", addr.String()).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check authorized caller %s: %w", addr, err)
	}
	return n > 0, nil
}

func (t *ledgerTx) SetAuthorized(addr governance.Address, authorized bool) error {
	var err error
	if authorized {
		row := gormModels.AuthorizedCaller{Address: addr.String()}
		err = t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	} else {
		err = t.db.Where("address = ?", addr.String()).Delete(&gormModels.AuthorizedCaller{}).Error
	}
	if err != nil {
		return fmt.Errorf("failed to update authorized caller %s: %w", addr, err)
	}
	return nil
}

func (t *ledgerTx) AppendEvent(ev *governance.Event) error {
	row := gormModels.GovernanceEvent{
		ID:        ev.ID,
		Kind:      string(ev.Kind),
		Subject:   ev.Subject.String(),
		Actor:     ev.Actor.String(),
		Detail:    ev.Detail,
		CreatedAt: ev.CreatedAt,
	}
	if err := t.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (t *ledgerTx) Events(limit int) ([]governance.Event, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	var rows []gormModels.GovernanceEvent
	err := t.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]governance.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, governance.Event{
			ID:        row.ID,
			Kind:      governance.EventKind(row.Kind),
			Subject:   governance.Address(row.Subject),
			Actor:     governance.Address(row.Actor),
			Detail:    row.Detail,
			CreatedAt: row.CreatedAt,
		})
	}
	return events, nil
}
