package gorm

import (
	"time"

	"github.com/shopspring/decimal"
)

// Airline is one consortium participant. Rows are created on first funding or
// admission and never deleted.
type Airline struct {
	Address      string          `gorm:"column:address;primaryKey;size:42"`
	Registered   bool            `gorm:"column:registered;not null;index"`
	Funded       bool            `gorm:"column:funded;not null"`
	FundedAmount decimal.Decimal `gorm:"column:funded_amount;type:varchar(80);not null"`
	RegisteredAt *time.Time      `gorm:"column:registered_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airline) TableName() string {
	return "airlines"
}

// CandidacyVote is one voter's ballot for a pending candidate. The set of rows
// sharing a candidate is the candidacy.
type CandidacyVote struct {
	Candidate string    `gorm:"column:candidate;primaryKey;size:42"`
	Voter     string    `gorm:"column:voter;primaryKey;size:42"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (CandidacyVote) TableName() string {
	return "candidacy_votes"
}
