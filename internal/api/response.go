package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"infinite-experiment/consortium/internal/auth"
	"infinite-experiment/consortium/internal/common"
	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/logging"

	"github.com/go-chi/chi/v5"
)

// statusFor maps governance errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, governance.ErrNotOperational), errors.Is(err, governance.ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errors.Is(err, governance.ErrUnauthorized), errors.Is(err, governance.ErrCallerNotEligible):
		return http.StatusForbidden
	case errors.Is(err, governance.ErrAlreadyRegistered), errors.Is(err, governance.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, governance.ErrInvalidAddress), errors.Is(err, governance.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondWithGovernanceError(w http.ResponseWriter, initTime time.Time, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.Error("Governance request failed", "error", err.Error())
		message = "Internal error"
	}
	common.RespondError(w, initTime, governance.ErrorCode(err), message, status)
}

func respondBadRequest(w http.ResponseWriter, initTime time.Time, message string) {
	common.RespondError(w, initTime, constants.CodeBadRequest, message, http.StatusBadRequest)
}

// callerFrom returns the authenticated caller or writes a 401.
func callerFrom(w http.ResponseWriter, r *http.Request, initTime time.Time) (governance.Address, bool) {
	claims := auth.GetCallerClaims(r.Context())
	if claims == nil {
		common.RespondError(w, initTime, constants.CodeUnauthorized, constants.MsgMissingCaller, http.StatusUnauthorized)
		return "", false
	}
	return claims.Address(), true
}

// addressParam parses the {address} URL parameter or writes a 400.
func addressParam(w http.ResponseWriter, r *http.Request, initTime time.Time) (governance.Address, bool) {
	addr, err := governance.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		respondWithGovernanceError(w, initTime, err)
		return "", false
	}
	return addr, true
}

// decodeBody decodes a JSON request body into dst or writes a 400.
func decodeBody(w http.ResponseWriter, r *http.Request, initTime time.Time, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondBadRequest(w, initTime, constants.MsgInvalidBody)
		return false
	}
	return true
}
