package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeAccountRequired     = "account_required"
	codePlateRequired       = "plate_required"
	codeInvalidZone         = "invalid_zone"
	codeInvalidDuration     = "invalid_duration"
	codeInvalidAmount       = "invalid_amount"
	codeInvalidStartAt      = "invalid_start_at"
	codeUnauthorized        = "unauthorized"
	codePaused              = "paused"
	codeInsufficientPayment = "insufficient_payment"
	codeZoneMismatch        = "zone_mismatch"
	codeTicketExpired       = "ticket_expired"
	codeDestinationActive   = "destination_active"
	codeInsufficientBalance = "insufficient_balance"
	codeTicketNotFound      = "ticket_not_found"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps service errors onto HTTP statuses: validation
// failures are 400, payment shortfalls 402, role failures 403, and state
// conflicts 409. Anything unrecognized is a 500 with no detail leaked.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountRequired):
		writeError(w, http.StatusBadRequest, codeAccountRequired, err.Error())
	case errors.Is(err, domain.ErrPlateRequired):
		writeError(w, http.StatusBadRequest, codePlateRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidZone):
		writeError(w, http.StatusBadRequest, codeInvalidZone, err.Error())
	case errors.Is(err, domain.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, codeInvalidDuration, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
	case errors.Is(err, domain.ErrInsufficientPayment):
		writeError(w, http.StatusPaymentRequired, codeInsufficientPayment, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusForbidden, codeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, codeTicketNotFound, err.Error())
	case errors.Is(err, domain.ErrPaused):
		writeError(w, http.StatusConflict, codePaused, err.Error())
	case errors.Is(err, domain.ErrZoneMismatch):
		writeError(w, http.StatusConflict, codeZoneMismatch, err.Error())
	case errors.Is(err, domain.ErrTicketExpired):
		writeError(w, http.StatusConflict, codeTicketExpired, err.Error())
	case errors.Is(err, domain.ErrDestinationActive):
		writeError(w, http.StatusConflict, codeDestinationActive, err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, codeInsufficientBalance, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
