package dtos

import "github.com/shopspring/decimal"

type SetOperationalReq struct {
	Operational *bool `json:"operational"`
}

type AuthorizeCallerReq struct {
	Address string `json:"address"`
}

// FundReq carries the amount in the smallest currency unit. Both JSON numbers
// and strings are accepted; strings avoid float rounding in JS clients.
type FundReq struct {
	Amount *decimal.Decimal `json:"amount"`
}

type RegisterAirlineReq struct {
	Candidate string `json:"candidate"`
}
