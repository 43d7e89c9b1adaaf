package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AdminRepository) GetRegistry(ctx context.Context) (domain.Registry, error) {
	return getRegistry(ctx, queryTarget(ctx, r.pool), false)
}

func (r *AdminRepository) GetRegistryForUpdate(ctx context.Context) (domain.Registry, error) {
	return getRegistry(ctx, queryTarget(ctx, r.pool), true)
}

func (r *AdminRepository) SetZonePrice(ctx context.Context, zone domain.Zone, price int64) error {
	const stmt = `UPDATE zone_prices SET price_per_minute = $1 WHERE zone = $2`
	tag, err := queryTarget(ctx, r.pool).Exec(ctx, stmt, price, int(zone))
	if err != nil {
		return fmt.Errorf("set zone price: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrInvalidZone
	}
	return nil
}

func (r *AdminRepository) ListZonePrices(ctx context.Context) ([]domain.ZonePrice, error) {
	const query = `SELECT zone, price_per_minute FROM zone_prices ORDER BY zone ASC`
	rows, err := queryTarget(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list zone prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.ZonePrice
	for rows.Next() {
		var (
			zone  int
			price int64
		)
		if err := rows.Scan(&zone, &price); err != nil {
			return nil, fmt.Errorf("scan zone price: %w", err)
		}
		prices = append(prices, domain.ZonePrice{Zone: domain.Zone(zone), PricePerMinute: price})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate zone prices: %w", rows.Err())
	}
	return prices, nil
}

func (r *AdminRepository) SetPaused(ctx context.Context, paused bool) error {
	const stmt = `UPDATE registry SET paused = $1 WHERE id = 1`
	tag, err := queryTarget(ctx, r.pool).Exec(ctx, stmt, paused)
	if err != nil {
		return fmt.Errorf("set paused: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("registry row missing")
	}
	return nil
}

func (r *AdminRepository) AddRegistryBalance(ctx context.Context, delta int64) error {
	return addRegistryBalance(ctx, queryTarget(ctx, r.pool), delta)
}

func (r *AdminRepository) CreditAccount(ctx context.Context, account string, amount int64) error {
	return creditAccount(ctx, queryTarget(ctx, r.pool), account, amount)
}

func (r *AdminRepository) GetAccountBalance(ctx context.Context, account string) (int64, error) {
	const query = `SELECT balance FROM accounts WHERE id = $1`
	var balance int64
	err := queryTarget(ctx, r.pool).QueryRow(ctx, query, account).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("get account balance: %w", err)
	}
	return balance, nil
}

func (r *AdminRepository) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return appendLedgerEntry(ctx, queryTarget(ctx, r.pool), entry)
}

func (r *AdminRepository) ListLedgerEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	const query = `
SELECT id, kind, account, COALESCE(plate, ''), amount, created_at
FROM ledger_entries
ORDER BY created_at DESC, id DESC
LIMIT $1`
	rows, err := queryTarget(ctx, r.pool).Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var (
			e         domain.LedgerEntry
			kind      string
			createdAt time.Time
		)
		if err := rows.Scan(&e.ID, &kind, &e.Account, &e.Plate, &e.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Kind = domain.LedgerKind(kind)
		e.CreatedAt = createdAt.UTC()
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", rows.Err())
	}
	return entries, nil
}
