package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/app"
	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
)

// ZonePriceLister serves the public price table.
type ZonePriceLister interface {
	ListZonePrices(ctx context.Context) ([]domain.ZonePrice, error)
}

// HandleListZonePrices returns an HTTP handler for the public price table.
func HandleListZonePrices(svc ZonePriceLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prices, err := svc.ListZonePrices(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]zonePriceResponse, 0, len(prices))
		for _, zp := range prices {
			out = append(out, zonePriceResponse{
				Zone:           zp.Zone.String(),
				PricePerMinute: zp.PricePerMinute,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// PriceChanger is the minimal interface needed to change a zone price.
type PriceChanger interface {
	ChangeZonePrice(ctx context.Context, in app.ChangeZonePriceInput) error
}

// HandleChangeZonePrice returns an HTTP handler for overwriting a zone's
// per-minute rate.
func HandleChangeZonePrice(svc PriceChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zone, err := domain.ParseZone(chi.URLParam(r, "zone"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidZone, "invalid zone")
			return
		}

		var req changeZonePriceRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err = svc.ChangeZonePrice(r.Context(), app.ChangeZonePriceInput{
			Account: AccountFromContext(r.Context()),
			Zone:    zone,
			Price:   req.Price,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Withdrawer is the minimal interface needed to pay out collected funds.
type Withdrawer interface {
	Withdraw(ctx context.Context, in app.WithdrawInput) error
}

// HandleWithdraw returns an HTTP handler for administrator withdrawals.
func HandleWithdraw(svc Withdrawer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req withdrawRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err := svc.Withdraw(r.Context(), app.WithdrawInput{
			Account: AccountFromContext(r.Context()),
			Amount:  req.Amount,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, withdrawResponse{Amount: req.Amount})
	}
}

// Pauser is the minimal interface needed to flip the purchase halt switch.
type Pauser interface {
	SetPaused(ctx context.Context, account string, paused bool) error
}

// HandleSetPaused returns an HTTP handler that pauses or resumes purchases.
func HandleSetPaused(svc Pauser, paused bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.SetPaused(r.Context(), AccountFromContext(r.Context()), paused); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RegistryReader covers the admin status and ledger reads plus the
// caller-facing account balance.
type RegistryReader interface {
	Status(ctx context.Context, account string) (domain.Registry, error)
	AccountBalance(ctx context.Context, account string) (int64, error)
	LedgerEntries(ctx context.Context, account string, limit int) ([]domain.LedgerEntry, error)
}

// HandleRegistryStatus returns an HTTP handler for the pause flag and
// custodial balance.
func HandleRegistryStatus(svc RegistryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registry, err := svc.Status(r.Context(), AccountFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, registryStatusResponse{
			Paused:  registry.Paused,
			Balance: registry.Balance,
		})
	}
}

// HandleAccountBalance returns an HTTP handler for the caller's credited
// balance.
func HandleAccountBalance(svc RegistryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := AccountFromContext(r.Context())
		balance, err := svc.AccountBalance(r.Context(), account)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, accountBalanceResponse{
			Account: account,
			Balance: balance,
		})
	}
}

// HandleLedger returns an HTTP handler for the admin audit trail.
func HandleLedger(svc RegistryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "limit must be an integer")
				return
			}
			limit = n
		}

		entries, err := svc.LedgerEntries(r.Context(), AccountFromContext(r.Context()), limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]ledgerEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, ledgerEntryResponse{
				ID:        e.ID,
				Kind:      string(e.Kind),
				Account:   e.Account,
				Plate:     e.Plate,
				Amount:    e.Amount,
				CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type changeZonePriceRequest struct {
	Price int64 `json:"price"`
}

type withdrawRequest struct {
	Amount int64 `json:"amount"`
}

type withdrawResponse struct {
	Amount int64 `json:"amount"`
}

type zonePriceResponse struct {
	Zone           string `json:"zone"`
	PricePerMinute int64  `json:"price_per_minute"`
}

type registryStatusResponse struct {
	Paused  bool  `json:"paused"`
	Balance int64 `json:"balance"`
}

type accountBalanceResponse struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

type ledgerEntryResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Account   string `json:"account"`
	Plate     string `json:"plate,omitempty"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}
