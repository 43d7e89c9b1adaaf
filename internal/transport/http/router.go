package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// TicketAPI is everything the router needs from the ticket service.
type TicketAPI interface {
	TicketBuyer
	TicketQuerier
	TicketCanceller
	TicketTransferrer
}

// AdminAPI is everything the router needs from the admin service.
type AdminAPI interface {
	ZonePriceLister
	PriceChanger
	Withdrawer
	Pauser
	RegistryReader
}

// NewRouter wires every operation onto its route. Reads under /tickets and
// /zones are public; everything that acts on behalf of a caller requires the
// account header.
func NewRouter(tickets TicketAPI, admin AdminAPI, logger *slog.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", HealthHandler)
	r.Get("/zones", HandleListZonePrices(admin))
	r.Get("/tickets/{plate}", HandleGetTicket(tickets))
	r.Get("/tickets/{plate}/valid", HandleTicketValidity(tickets))

	r.Group(func(r chi.Router) {
		r.Use(WithAccount)
		r.Post("/tickets", HandleBuyTicket(tickets))
		r.Post("/tickets/{plate}/cancel", HandleCancelTicket(tickets))
		r.Post("/tickets/{plate}/transfer", HandleTransferTicket(tickets))
		r.Get("/account/balance", HandleAccountBalance(admin))

		r.Put("/admin/zones/{zone}/price", HandleChangeZonePrice(admin))
		r.Post("/admin/withdrawals", HandleWithdraw(admin))
		r.Post("/admin/pause", HandleSetPaused(admin, true))
		r.Post("/admin/unpause", HandleSetPaused(admin, false))
		r.Get("/admin/status", HandleRegistryStatus(admin))
		r.Get("/admin/ledger", HandleLedger(admin))
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return RequestLogger(CORS(corsOrigins, r), logger)
}
