package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *TicketRepository) GetRegistryForUpdate(ctx context.Context) (domain.Registry, error) {
	return getRegistry(ctx, queryTarget(ctx, r.pool), true)
}

func (r *TicketRepository) GetTicket(ctx context.Context, plate string) (*domain.Ticket, error) {
	return r.getTicket(ctx, plate, false)
}

func (r *TicketRepository) GetTicketForUpdate(ctx context.Context, plate string) (*domain.Ticket, error) {
	return r.getTicket(ctx, plate, true)
}

func (r *TicketRepository) getTicket(ctx context.Context, plate string, forUpdate bool) (*domain.Ticket, error) {
	query := `SELECT plate, zone, holder, starts_at, expires_at FROM tickets WHERE plate = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		t         domain.Ticket
		zone      int
		startsAt  *time.Time
		expiresAt *time.Time
	)
	err := queryTarget(ctx, r.pool).QueryRow(ctx, query, plate).
		Scan(&t.Plate, &zone, &t.Holder, &startsAt, &expiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	t.Zone = domain.Zone(zone)
	if startsAt != nil {
		t.Start = startsAt.UTC()
	}
	if expiresAt != nil {
		t.Expiration = expiresAt.UTC()
	}
	return &t, nil
}

func (r *TicketRepository) GetZonePrice(ctx context.Context, zone domain.Zone) (int64, error) {
	const query = `SELECT price_per_minute FROM zone_prices WHERE zone = $1`
	var price int64
	err := queryTarget(ctx, r.pool).QueryRow(ctx, query, int(zone)).Scan(&price)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrInvalidZone
		}
		return 0, fmt.Errorf("get zone price: %w", err)
	}
	return price, nil
}

// SaveTicket upserts the plate's record. An invalidated ticket stores a NULL
// expiration; the row itself is never deleted.
func (r *TicketRepository) SaveTicket(ctx context.Context, ticket domain.Ticket) error {
	const stmt = `
INSERT INTO tickets (plate, zone, holder, starts_at, expires_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (plate) DO UPDATE
SET zone = EXCLUDED.zone,
	holder = EXCLUDED.holder,
	starts_at = EXCLUDED.starts_at,
	expires_at = EXCLUDED.expires_at,
	updated_at = NOW()`

	var startsAt *time.Time
	if !ticket.Start.IsZero() {
		start := ticket.Start.UTC()
		startsAt = &start
	}
	var expiresAt *time.Time
	if !ticket.Expiration.IsZero() {
		exp := ticket.Expiration.UTC()
		expiresAt = &exp
	}

	_, err := queryTarget(ctx, r.pool).Exec(ctx, stmt,
		ticket.Plate,
		int(ticket.Zone),
		ticket.Holder,
		startsAt,
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("save ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) AddRegistryBalance(ctx context.Context, delta int64) error {
	return addRegistryBalance(ctx, queryTarget(ctx, r.pool), delta)
}

func (r *TicketRepository) CreditAccount(ctx context.Context, account string, amount int64) error {
	return creditAccount(ctx, queryTarget(ctx, r.pool), account, amount)
}

func (r *TicketRepository) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return appendLedgerEntry(ctx, queryTarget(ctx, r.pool), entry)
}
