package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/clock"
	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
)

type TicketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRegistryForUpdate(ctx context.Context) (domain.Registry, error)
	GetTicket(ctx context.Context, plate string) (*domain.Ticket, error)
	GetTicketForUpdate(ctx context.Context, plate string) (*domain.Ticket, error)
	GetZonePrice(ctx context.Context, zone domain.Zone) (int64, error)
	SaveTicket(ctx context.Context, ticket domain.Ticket) error
	AddRegistryBalance(ctx context.Context, delta int64) error
	CreditAccount(ctx context.Context, account string, amount int64) error
	AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// TicketService implements the holder-facing half of the registry: buying
// and extending tickets, validity checks, cancellation, and transfer.
type TicketService struct {
	repo  TicketRepository
	clock clock.Clock
}

func NewTicketService(repo TicketRepository, clk clock.Clock) *TicketService {
	return &TicketService{
		repo:  repo,
		clock: clk,
	}
}

type BuyTicketInput struct {
	Account string
	Plate   string
	Minutes int
	Zone    domain.Zone
	Payment int64
	// StartAt optionally defers the ticket's start; it only applies when
	// the purchase creates a fresh ticket rather than extending one.
	StartAt *time.Time
}

// BuyTicket purchases parking time for a plate. A fresh purchase (no ticket,
// or an expired one) overwrites the record; a repurchase of an active ticket
// in the same zone stacks the new minutes onto the current expiration and
// reassigns the holder to the paying caller. The full payment is retained,
// including any overpayment beyond the computed cost.
func (s *TicketService) BuyTicket(ctx context.Context, in BuyTicketInput) (TicketStatus, error) {
	if in.Account == "" {
		return TicketStatus{}, domain.ErrAccountRequired
	}
	if in.Plate == "" {
		return TicketStatus{}, domain.ErrPlateRequired
	}
	if in.Minutes <= 0 {
		return TicketStatus{}, domain.ErrInvalidDuration
	}
	if !in.Zone.Valid() {
		return TicketStatus{}, domain.ErrInvalidZone
	}
	if in.Payment < 0 {
		return TicketStatus{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	paid := time.Duration(in.Minutes) * time.Minute
	var result domain.Ticket

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		registry, err := s.repo.GetRegistryForUpdate(txCtx)
		if err != nil {
			return err
		}
		if registry.Paused {
			return domain.ErrPaused
		}

		price, err := s.repo.GetZonePrice(txCtx, in.Zone)
		if err != nil {
			return err
		}
		cost := int64(in.Minutes) * price
		if in.Payment < cost {
			return domain.ErrInsufficientPayment
		}

		prior, err := s.repo.GetTicketForUpdate(txCtx, in.Plate)
		if err != nil {
			return err
		}

		ticket := domain.Ticket{
			Plate:  in.Plate,
			Zone:   in.Zone,
			Holder: in.Account,
		}
		switch {
		case prior == nil || !prior.ActiveAt(now):
			start := now
			if in.StartAt != nil && in.StartAt.After(now) {
				start = in.StartAt.UTC()
			}
			ticket.Start = start
			ticket.Expiration = start.Add(paid)
		case prior.Zone != in.Zone:
			return domain.ErrZoneMismatch
		default:
			ticket.Start = prior.Start
			ticket.Expiration = prior.Expiration.Add(paid)
		}

		if err := s.repo.SaveTicket(txCtx, ticket); err != nil {
			return err
		}
		if err := s.repo.AddRegistryBalance(txCtx, in.Payment); err != nil {
			return err
		}
		if err := s.repo.AppendLedgerEntry(txCtx, domain.LedgerEntry{
			ID:        newUUID(),
			Kind:      domain.LedgerPurchase,
			Account:   in.Account,
			Plate:     in.Plate,
			Amount:    in.Payment,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		result = ticket
		return nil
	})
	if err != nil {
		return TicketStatus{}, err
	}
	return TicketStatus{Ticket: result, Active: result.ActiveAt(now)}, nil
}

// IsTicketValid reports whether plate currently holds an active ticket for
// zone. It is a pure read callable by anyone.
func (s *TicketService) IsTicketValid(ctx context.Context, plate string, zone domain.Zone) (bool, error) {
	if plate == "" {
		return false, domain.ErrPlateRequired
	}
	if !zone.Valid() {
		return false, domain.ErrInvalidZone
	}

	now := s.clock.Now()
	ticket, err := s.repo.GetTicket(ctx, plate)
	if err != nil {
		return false, err
	}
	return ticket != nil && ticket.ValidFor(zone, now), nil
}

type TicketStatus struct {
	Ticket domain.Ticket
	Active bool
}

// GetTicket returns the plate's current record and whether it is active.
func (s *TicketService) GetTicket(ctx context.Context, plate string) (TicketStatus, error) {
	if plate == "" {
		return TicketStatus{}, domain.ErrPlateRequired
	}

	now := s.clock.Now()
	ticket, err := s.repo.GetTicket(ctx, plate)
	if err != nil {
		return TicketStatus{}, err
	}
	if ticket == nil {
		return TicketStatus{}, domain.ErrTicketNotFound
	}
	return TicketStatus{Ticket: *ticket, Active: ticket.ActiveAt(now)}, nil
}

type CancelTicketInput struct {
	Account string
	Plate   string
}

// CancelTicket invalidates the caller's active ticket and credits back 90%
// of the unused whole minutes at the zone's current rate. The unused window
// runs from the ticket's paid start (or now, once the start has passed) to
// the expiration, so a deferred ticket refunds only the minutes actually
// purchased. Elapsed time is charged in whole minutes with truncation, and
// the refund multiplies fully before dividing by 10 so no rounding is lost.
func (s *TicketService) CancelTicket(ctx context.Context, in CancelTicketInput) (int64, error) {
	if in.Account == "" {
		return 0, domain.ErrAccountRequired
	}
	if in.Plate == "" {
		return 0, domain.ErrPlateRequired
	}

	now := s.clock.Now()
	var refund int64

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		registry, err := s.repo.GetRegistryForUpdate(txCtx)
		if err != nil {
			return err
		}

		ticket, err := s.repo.GetTicketForUpdate(txCtx, in.Plate)
		if err != nil {
			return err
		}
		if ticket == nil || ticket.Holder != in.Account {
			return domain.ErrUnauthorized
		}
		if !ticket.ActiveAt(now) {
			return domain.ErrTicketExpired
		}

		price, err := s.repo.GetZonePrice(txCtx, ticket.Zone)
		if err != nil {
			return err
		}
		remainingMinutes := int64(ticket.Expiration.Sub(ticket.PaidFrom(now)) / time.Minute)
		refund = remainingMinutes * price * 9 / 10
		if refund > registry.Balance {
			// Accounting invariant broken; never a caller-facing error.
			return fmt.Errorf("refund %d exceeds registry balance %d for plate %q", refund, registry.Balance, in.Plate)
		}

		ticket.Expiration = time.Time{}
		if err := s.repo.SaveTicket(txCtx, *ticket); err != nil {
			return err
		}
		if err := s.repo.AddRegistryBalance(txCtx, -refund); err != nil {
			return err
		}
		if err := s.repo.CreditAccount(txCtx, in.Account, refund); err != nil {
			return err
		}
		return s.repo.AppendLedgerEntry(txCtx, domain.LedgerEntry{
			ID:        newUUID(),
			Kind:      domain.LedgerRefund,
			Account:   in.Account,
			Plate:     in.Plate,
			Amount:    refund,
			CreatedAt: now,
		})
	})
	if err != nil {
		return 0, err
	}
	return refund, nil
}

type TransferTicketInput struct {
	Account   string
	OldPlate  string
	NewPlate  string
	NewHolder string
}

// TransferTicket moves the caller's ticket to a new plate and holder. The
// destination plate must not hold an active ticket in any zone. No funds
// move; the old record is invalidated but kept.
func (s *TicketService) TransferTicket(ctx context.Context, in TransferTicketInput) error {
	if in.Account == "" || in.NewHolder == "" {
		return domain.ErrAccountRequired
	}
	if in.OldPlate == "" || in.NewPlate == "" {
		return domain.ErrPlateRequired
	}

	now := s.clock.Now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		old, err := s.repo.GetTicketForUpdate(txCtx, in.OldPlate)
		if err != nil {
			return err
		}
		if old == nil || old.Holder != in.Account {
			return domain.ErrUnauthorized
		}

		dest, err := s.repo.GetTicketForUpdate(txCtx, in.NewPlate)
		if err != nil {
			return err
		}
		if dest != nil && dest.ActiveAt(now) {
			return domain.ErrDestinationActive
		}

		if err := s.repo.SaveTicket(txCtx, domain.Ticket{
			Plate:      in.NewPlate,
			Zone:       old.Zone,
			Holder:     in.NewHolder,
			Start:      old.Start,
			Expiration: old.Expiration,
		}); err != nil {
			return err
		}

		old.Expiration = time.Time{}
		return s.repo.SaveTicket(txCtx, *old)
	})
}
