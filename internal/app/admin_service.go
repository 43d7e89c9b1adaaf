package app

import (
	"context"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/clock"
	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
)

type AdminRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRegistry(ctx context.Context) (domain.Registry, error)
	GetRegistryForUpdate(ctx context.Context) (domain.Registry, error)
	SetZonePrice(ctx context.Context, zone domain.Zone, price int64) error
	ListZonePrices(ctx context.Context) ([]domain.ZonePrice, error)
	SetPaused(ctx context.Context, paused bool) error
	AddRegistryBalance(ctx context.Context, delta int64) error
	CreditAccount(ctx context.Context, account string, amount int64) error
	GetAccountBalance(ctx context.Context, account string) (int64, error)
	AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error
	ListLedgerEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}

// AdminService implements the privileged half of the registry: pricing,
// fund withdrawal, and the purchase pause switch, plus the public price
// and balance reads.
type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

type ChangeZonePriceInput struct {
	Account string
	Zone    domain.Zone
	Price   int64
}

// ChangeZonePrice overwrites a zone's per-minute rate. Outstanding tickets
// are unaffected; only future purchases and refunds use the new rate.
func (s *AdminService) ChangeZonePrice(ctx context.Context, in ChangeZonePriceInput) error {
	if in.Account == "" {
		return domain.ErrAccountRequired
	}
	if !in.Zone.Valid() {
		return domain.ErrInvalidZone
	}
	if in.Price < 0 {
		return domain.ErrInvalidAmount
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		registry, err := s.repo.GetRegistryForUpdate(txCtx)
		if err != nil {
			return err
		}
		if !registry.IsAdmin(in.Account) {
			return domain.ErrUnauthorized
		}
		return s.repo.SetZonePrice(txCtx, in.Zone, in.Price)
	})
}

type WithdrawInput struct {
	Account string
	Amount  int64
}

// Withdraw moves collected funds out of registry custody into the
// administrator's account.
func (s *AdminService) Withdraw(ctx context.Context, in WithdrawInput) error {
	if in.Account == "" {
		return domain.ErrAccountRequired
	}
	if in.Amount < 0 {
		return domain.ErrInvalidAmount
	}

	now := s.clock.Now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		registry, err := s.repo.GetRegistryForUpdate(txCtx)
		if err != nil {
			return err
		}
		if !registry.IsAdmin(in.Account) {
			return domain.ErrUnauthorized
		}
		if in.Amount > registry.Balance {
			return domain.ErrInsufficientBalance
		}

		if err := s.repo.AddRegistryBalance(txCtx, -in.Amount); err != nil {
			return err
		}
		if err := s.repo.CreditAccount(txCtx, registry.Admin, in.Amount); err != nil {
			return err
		}
		return s.repo.AppendLedgerEntry(txCtx, domain.LedgerEntry{
			ID:        newUUID(),
			Kind:      domain.LedgerWithdrawal,
			Account:   registry.Admin,
			Amount:    in.Amount,
			CreatedAt: now,
		})
	})
}

// SetPaused flips the purchase halt switch. While paused only BuyTicket is
// blocked; holders can still cancel and transfer.
func (s *AdminService) SetPaused(ctx context.Context, account string, paused bool) error {
	if account == "" {
		return domain.ErrAccountRequired
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		registry, err := s.repo.GetRegistryForUpdate(txCtx)
		if err != nil {
			return err
		}
		if !registry.IsAdmin(account) {
			return domain.ErrUnauthorized
		}
		return s.repo.SetPaused(txCtx, paused)
	})
}

// Status returns the pause flag and custodial balance. Admin only.
func (s *AdminService) Status(ctx context.Context, account string) (domain.Registry, error) {
	if account == "" {
		return domain.Registry{}, domain.ErrAccountRequired
	}

	registry, err := s.repo.GetRegistry(ctx)
	if err != nil {
		return domain.Registry{}, err
	}
	if !registry.IsAdmin(account) {
		return domain.Registry{}, domain.ErrUnauthorized
	}
	return registry, nil
}

// ListZonePrices returns every zone's current per-minute rate.
func (s *AdminService) ListZonePrices(ctx context.Context) ([]domain.ZonePrice, error) {
	return s.repo.ListZonePrices(ctx)
}

// AccountBalance returns the credited balance of the caller's own account.
func (s *AdminService) AccountBalance(ctx context.Context, account string) (int64, error) {
	if account == "" {
		return 0, domain.ErrAccountRequired
	}
	return s.repo.GetAccountBalance(ctx, account)
}

// LedgerEntries returns the most recent balance movements. Admin only.
func (s *AdminService) LedgerEntries(ctx context.Context, account string, limit int) ([]domain.LedgerEntry, error) {
	if account == "" {
		return nil, domain.ErrAccountRequired
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	registry, err := s.repo.GetRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if !registry.IsAdmin(account) {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListLedgerEntries(ctx, limit)
}
