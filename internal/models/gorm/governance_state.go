package gorm

import "time"

// GovernanceStateID is the primary key of the single governance_state row.
const GovernanceStateID = 1

type GovernanceState struct {
	ID                     uint      `gorm:"column:id;primaryKey;autoIncrement:false"`
	Operational            bool      `gorm:"column:operational;not null"`
	Owner                  string    `gorm:"column:owner;size:42;not null"`
	RegisteredAirlineCount int       `gorm:"column:registered_airline_count;not null"`
	CreatedAt              time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (GovernanceState) TableName() string {
	return "governance_state"
}

// AuthorizedCaller is a delegate allowed to invoke privileged mutators.
type AuthorizedCaller struct {
	Address   string    `gorm:"column:address;primaryKey;size:42"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AuthorizedCaller) TableName() string {
	return "authorized_callers"
}

type GovernanceEvent struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Kind      string    `gorm:"column:kind;size:32;index"`
	Subject   string    `gorm:"column:subject;size:42;index"`
	Actor     string    `gorm:"column:actor;size:42"`
	Detail    string    `gorm:"column:detail"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

// TableName specifies the table name for GORM
func (GovernanceEvent) TableName() string {
	return "governance_events"
}

// ApiKey maps an issued API key to the caller address it authenticates.
type ApiKey struct {
	Key           string    `gorm:"column:api_key;primaryKey;size:64"`
	CallerAddress string    `gorm:"column:caller_address;size:42;not null;index"`
	Status        bool      `gorm:"column:status;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ApiKey) TableName() string {
	return "api_keys"
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&GovernanceState{},
		&Airline{},
		&CandidacyVote{},
		&AuthorizedCaller{},
		&GovernanceEvent{},
		&ApiKey{},
	}
}
