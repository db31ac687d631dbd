package api

import (
	"net/http"
	"strconv"
	"time"

	"infinite-experiment/consortium/internal/common"
	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/models/dtos"
)

// GetOperational handles GET /api/v1/governance/operational
func (h *Handlers) GetOperational() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		operational, err := h.svc.IsOperational(r.Context())
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Operational status", dtos.OperationalResponse{Operational: operational})
	}
}

// SetOperational handles PUT /api/v1/governance/operational (owner only)
func (h *Handlers) SetOperational() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		caller, ok := callerFrom(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.SetOperationalReq
		if !decodeBody(w, r, initTime, &req) {
			return
		}
		if req.Operational == nil {
			respondBadRequest(w, initTime, constants.MsgStatusRequired)
			return
		}

		if err := h.svc.SetOperatingStatus(r.Context(), caller, *req.Operational); err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Operational status updated", dtos.OperationalResponse{Operational: *req.Operational})
	}
}

// AuthorizeCaller handles POST /api/v1/governance/callers (owner only)
func (h *Handlers) AuthorizeCaller() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		caller, ok := callerFrom(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.AuthorizeCallerReq
		if !decodeBody(w, r, initTime, &req) {
			return
		}
		if req.Address == "" {
			respondBadRequest(w, initTime, constants.MsgAddressRequired)
			return
		}
		addr, err := governance.ParseAddress(req.Address)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		if err := h.svc.AuthorizeCaller(r.Context(), caller, addr); err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Caller authorized", dtos.CallerResponse{Address: addr.String(), Authorized: true})
	}
}

// DeauthorizeCaller handles DELETE /api/v1/governance/callers/{address} (owner only)
func (h *Handlers) DeauthorizeCaller() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		caller, ok := callerFrom(w, r, initTime)
		if !ok {
			return
		}
		addr, ok := addressParam(w, r, initTime)
		if !ok {
			return
		}

		if err := h.svc.DeauthorizeCaller(r.Context(), caller, addr); err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Caller deauthorized", dtos.CallerResponse{Address: addr.String(), Authorized: false})
	}
}

// GetCaller handles GET /api/v1/governance/callers/{address}
func (h *Handlers) GetCaller() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		addr, ok := addressParam(w, r, initTime)
		if !ok {
			return
		}

		authorized, err := h.svc.IsAuthorizedCaller(r.Context(), addr)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Caller status", dtos.CallerResponse{Address: addr.String(), Authorized: authorized})
	}
}

// ListEvents handles GET /api/v1/governance/events?limit=n
func (h *Handlers) ListEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit := constants.DefaultEventsLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				respondBadRequest(w, initTime, constants.MsgInvalidLimit)
				return
			}
			limit = min(n, constants.MaxEventsLimit)
		}

		events, err := h.svc.ListEvents(r.Context(), limit)
		if err != nil {
			respondWithGovernanceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Governance events", dtos.EventsResponse{Events: events})
	}
}
