package dtos

import (
	"time"

	"infinite-experiment/consortium/internal/governance"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ErrorCode    string `json:"error_code,omitempty"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type OperationalResponse struct {
	Operational bool `json:"operational"`
}

type CallerResponse struct {
	Address    string `json:"address"`
	Authorized bool   `json:"authorized"`
}

// AirlineResponse is both the airline lookup and the funding receipt.
type AirlineResponse struct {
	Address      string     `json:"address"`
	Registered   bool       `json:"registered"`
	Funded       bool       `json:"funded"`
	FundedAmount string     `json:"funded_amount"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}

func NewAirlineResponse(a *governance.Airline) AirlineResponse {
	return AirlineResponse{
		Address:      a.Address.String(),
		Registered:   a.Registered,
		Funded:       a.Funded,
		FundedAmount: a.FundedAmount.String(),
		RegisteredAt: a.RegisteredAt,
	}
}

type FundedResponse struct {
	Address string `json:"address"`
	Funded  bool   `json:"funded"`
}

type CountResponse struct {
	RegisteredAirlines int `json:"registered_airlines"`
}

type EventsResponse struct {
	Events []governance.Event `json:"events"`
}
