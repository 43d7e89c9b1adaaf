package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/app"
	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
)

// TicketBuyer is the minimal interface needed to purchase a ticket.
type TicketBuyer interface {
	BuyTicket(ctx context.Context, in app.BuyTicketInput) (app.TicketStatus, error)
}

// HandleBuyTicket returns an HTTP handler for buying or extending a ticket.
func HandleBuyTicket(svc TicketBuyer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req buyTicketRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		zone, err := domain.ParseZone(req.Zone)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidZone, "invalid zone")
			return
		}

		var startAt *time.Time
		if req.StartAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.StartAt)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidStartAt, "start_at must be RFC 3339")
				return
			}
			startAt = &parsed
		}

		status, err := svc.BuyTicket(r.Context(), app.BuyTicketInput{
			Account: AccountFromContext(r.Context()),
			Plate:   req.Plate,
			Minutes: req.Minutes,
			Zone:    zone,
			Payment: req.Payment,
			StartAt: startAt,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newTicketResponse(status.Ticket, status.Active))
	}
}

// TicketQuerier covers the read-only ticket operations.
type TicketQuerier interface {
	IsTicketValid(ctx context.Context, plate string, zone domain.Zone) (bool, error)
	GetTicket(ctx context.Context, plate string) (app.TicketStatus, error)
}

// HandleTicketValidity returns an HTTP handler for the validity query.
func HandleTicketValidity(svc TicketQuerier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zone, err := domain.ParseZone(r.URL.Query().Get("zone"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidZone, "invalid zone")
			return
		}

		valid, err := svc.IsTicketValid(r.Context(), chi.URLParam(r, "plate"), zone)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, validityResponse{Valid: valid})
	}
}

// HandleGetTicket returns an HTTP handler for reading a plate's record.
func HandleGetTicket(svc TicketQuerier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.GetTicket(r.Context(), chi.URLParam(r, "plate"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTicketResponse(status.Ticket, status.Active))
	}
}

// TicketCanceller is the minimal interface needed to cancel a ticket.
type TicketCanceller interface {
	CancelTicket(ctx context.Context, in app.CancelTicketInput) (int64, error)
}

// HandleCancelTicket returns an HTTP handler for cancelling a ticket.
func HandleCancelTicket(svc TicketCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refund, err := svc.CancelTicket(r.Context(), app.CancelTicketInput{
			Account: AccountFromContext(r.Context()),
			Plate:   chi.URLParam(r, "plate"),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, cancelTicketResponse{Refund: refund})
	}
}

// TicketTransferrer is the minimal interface needed to transfer a ticket.
type TicketTransferrer interface {
	TransferTicket(ctx context.Context, in app.TransferTicketInput) error
}

// HandleTransferTicket returns an HTTP handler for moving a ticket to a new
// plate and holder.
func HandleTransferTicket(svc TicketTransferrer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transferTicketRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err := svc.TransferTicket(r.Context(), app.TransferTicketInput{
			Account:   AccountFromContext(r.Context()),
			OldPlate:  chi.URLParam(r, "plate"),
			NewPlate:  req.NewPlate,
			NewHolder: req.NewHolder,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type buyTicketRequest struct {
	Plate   string `json:"plate"`
	Minutes int    `json:"minutes"`
	Zone    string `json:"zone"`
	Payment int64  `json:"payment"`
	StartAt string `json:"start_at,omitempty"`
}

type transferTicketRequest struct {
	NewPlate  string `json:"new_plate"`
	NewHolder string `json:"new_holder"`
}

type ticketResponse struct {
	Plate     string `json:"plate"`
	Zone      string `json:"zone"`
	Holder    string `json:"holder"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Active    bool   `json:"active"`
}

func newTicketResponse(t domain.Ticket, active bool) ticketResponse {
	resp := ticketResponse{
		Plate:  t.Plate,
		Zone:   t.Zone.String(),
		Holder: t.Holder,
		Active: active,
	}
	if !t.Expiration.IsZero() {
		resp.ExpiresAt = t.Expiration.UTC().Format(time.RFC3339)
	}
	return resp
}

type validityResponse struct {
	Valid bool `json:"valid"`
}

type cancelTicketResponse struct {
	Refund int64 `json:"refund"`
}
