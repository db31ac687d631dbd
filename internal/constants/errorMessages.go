package constants

const (
	MsgMissingCaller     = "Unauthorized: missing caller identity"
	MsgInvalidBody       = "Invalid request body"
	MsgAddressRequired   = "Address is required"
	MsgCandidateRequired = "Candidate is required"
	MsgAmountRequired    = "Amount is required"
	MsgStatusRequired    = "Operational status is required"
	MsgInvalidLimit      = "Limit must be a positive integer"
)

// Error codes produced by the transport layer itself. Governance errors carry
// their own codes (see governance.ErrorCode).
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHENTICATED"
	CodeRateLimited  = "RATE_LIMITED"
)
