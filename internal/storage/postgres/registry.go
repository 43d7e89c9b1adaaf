package postgres

import (
	"context"
	"fmt"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The registry is a single row holding the administrator identity, the
// pause flag, and the custodial balance. Both repositories share these
// helpers so every operation sees the same row semantics.

// EnsureRegistry creates the singleton registry row on first boot. The
// administrator identity is fixed from then on; later calls are no-ops.
func EnsureRegistry(ctx context.Context, pool *pgxpool.Pool, admin string) error {
	const stmt = `
INSERT INTO registry (id, admin_account, paused, balance)
VALUES (1, $1, FALSE, 0)
ON CONFLICT (id) DO NOTHING`
	if _, err := pool.Exec(ctx, stmt, admin); err != nil {
		return fmt.Errorf("ensure registry: %w", err)
	}
	return nil
}

func getRegistry(ctx context.Context, q querier, forUpdate bool) (domain.Registry, error) {
	query := `SELECT admin_account, paused, balance FROM registry WHERE id = 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var reg domain.Registry
	if err := q.QueryRow(ctx, query).Scan(&reg.Admin, &reg.Paused, &reg.Balance); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Registry{}, fmt.Errorf("registry row missing: run migrations and EnsureRegistry first")
		}
		return domain.Registry{}, fmt.Errorf("get registry: %w", err)
	}
	return reg, nil
}

func addRegistryBalance(ctx context.Context, q querier, delta int64) error {
	const stmt = `UPDATE registry SET balance = balance + $1 WHERE id = 1`
	tag, err := q.Exec(ctx, stmt, delta)
	if err != nil {
		return fmt.Errorf("add registry balance: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("registry row missing")
	}
	return nil
}

func creditAccount(ctx context.Context, q querier, account string, amount int64) error {
	const stmt = `
INSERT INTO accounts (id, balance)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`
	if _, err := q.Exec(ctx, stmt, account, amount); err != nil {
		return fmt.Errorf("credit account: %w", err)
	}
	return nil
}

func appendLedgerEntry(ctx context.Context, q querier, entry domain.LedgerEntry) error {
	const stmt = `
INSERT INTO ledger_entries (id, kind, account, plate, amount, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`
	_, err := q.Exec(ctx, stmt,
		entry.ID,
		string(entry.Kind),
		entry.Account,
		entry.Plate,
		entry.Amount,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}
