package api

import (
	"net/http"
	"time"

	"infinite-experiment/consortium/internal/common"
	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/models/dtos"
)

// Fund handles POST /api/v1/funding
// The authenticated caller is the funding airline.
func (h *Handlers) Fund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		caller, ok := callerFrom(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.FundReq
		if !decodeBody(w, r, initTime, &req) {
			return
		}
		if req.Amount == nil {
			respondBadRequest(w, initTime, constants.MsgAmountRequired)
			return
		}

		airline, err := h.svc.Fund(r.Context(), caller, *req.Amount)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Funding recorded", dtos.NewAirlineResponse(airline))
	}
}

// IsFunded handles GET /api/v1/airlines/{address}/funded
func (h *Handlers) IsFunded() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		addr, ok := addressParam(w, r, initTime)
		if !ok {
			return
		}

		funded, err := h.svc.IsFunded(r.Context(), addr)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Funding status", dtos.FundedResponse{Address: addr.String(), Funded: funded})
	}
}

// RegisterAirline handles POST /api/v1/airlines
// The authenticated caller proposes or votes for the candidate; this service
// forwards the call under its own delegate identity.
func (h *Handlers) RegisterAirline() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		caller, ok := callerFrom(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.RegisterAirlineReq
		if !decodeBody(w, r, initTime, &req) {
			return
		}
		if req.Candidate == "" {
			respondBadRequest(w, initTime, constants.MsgCandidateRequired)
			return
		}
		candidate, err := governance.ParseAddress(req.Candidate)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		result, err := h.svc.RegisterAirline(r.Context(), caller, candidate)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		if result.Registered {
			common.RespondSuccess(w, initTime, "Airline registered", result, http.StatusCreated)
			return
		}
		common.RespondSuccess(w, initTime, "Vote recorded", result, http.StatusAccepted)
	}
}

// GetAirline handles GET /api/v1/airlines/{address}
// Unknown addresses read as unregistered and unfunded rather than 404.
func (h *Handlers) GetAirline() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		addr, ok := addressParam(w, r, initTime)
		if !ok {
			return
		}

		airline, err := h.svc.GetAirline(r.Context(), addr)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Airline", dtos.NewAirlineResponse(airline))
	}
}

// CountAirlines handles GET /api/v1/airlines/count
func (h *Handlers) CountAirlines() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		n, err := h.svc.RegisteredAirlineCount(r.Context())
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Registered airlines", dtos.CountResponse{RegisteredAirlines: n})
	}
}

// GetCandidacy handles GET /api/v1/candidacies/{address}
func (h *Handlers) GetCandidacy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		addr, ok := addressParam(w, r, initTime)
		if !ok {
			return
		}

		candidacy, err := h.svc.GetCandidacy(r.Context(), addr)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Candidacy", candidacy)
	}
}
