package app

import (
	"context"
	"sort"

	"github.com/MirzaMuhammadBaig/Parking-DAPP/internal/domain"
)

// fakeStore implements both repository interfaces in memory. WithTx keeps a
// snapshot and restores it when fn fails, mirroring the all-or-nothing
// behavior of the Postgres transaction.
type fakeStore struct {
	registry domain.Registry
	prices   map[domain.Zone]int64
	tickets  map[string]domain.Ticket
	accounts map[string]int64
	ledger   []domain.LedgerEntry
}

func newFakeStore(registry domain.Registry, prices map[domain.Zone]int64) *fakeStore {
	p := make(map[domain.Zone]int64, len(prices))
	for zone, price := range prices {
		p[zone] = price
	}
	return &fakeStore{
		registry: registry,
		prices:   p,
		tickets:  make(map[string]domain.Ticket),
		accounts: make(map[string]int64),
	}
}

func (f *fakeStore) putTicket(t domain.Ticket) {
	f.tickets[t.Plate] = t
}

func (f *fakeStore) snapshot() *fakeStore {
	s := newFakeStore(f.registry, f.prices)
	for plate, t := range f.tickets {
		s.tickets[plate] = t
	}
	for id, balance := range f.accounts {
		s.accounts[id] = balance
	}
	s.ledger = append([]domain.LedgerEntry{}, f.ledger...)
	return s
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	before := f.snapshot()
	if err := fn(ctx); err != nil {
		*f = *before
		return err
	}
	return nil
}

func (f *fakeStore) GetRegistry(context.Context) (domain.Registry, error) {
	return f.registry, nil
}

func (f *fakeStore) GetRegistryForUpdate(context.Context) (domain.Registry, error) {
	return f.registry, nil
}

func (f *fakeStore) GetTicket(_ context.Context, plate string) (*domain.Ticket, error) {
	t, ok := f.tickets[plate]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeStore) GetTicketForUpdate(ctx context.Context, plate string) (*domain.Ticket, error) {
	return f.GetTicket(ctx, plate)
}

func (f *fakeStore) GetZonePrice(_ context.Context, zone domain.Zone) (int64, error) {
	price, ok := f.prices[zone]
	if !ok {
		return 0, domain.ErrInvalidZone
	}
	return price, nil
}

func (f *fakeStore) SaveTicket(_ context.Context, ticket domain.Ticket) error {
	f.tickets[ticket.Plate] = ticket
	return nil
}

func (f *fakeStore) AddRegistryBalance(_ context.Context, delta int64) error {
	f.registry.Balance += delta
	return nil
}

func (f *fakeStore) CreditAccount(_ context.Context, account string, amount int64) error {
	f.accounts[account] += amount
	return nil
}

func (f *fakeStore) AppendLedgerEntry(_ context.Context, entry domain.LedgerEntry) error {
	f.ledger = append(f.ledger, entry)
	return nil
}

func (f *fakeStore) SetZonePrice(_ context.Context, zone domain.Zone, price int64) error {
	if _, ok := f.prices[zone]; !ok {
		return domain.ErrInvalidZone
	}
	f.prices[zone] = price
	return nil
}

func (f *fakeStore) ListZonePrices(context.Context) ([]domain.ZonePrice, error) {
	out := make([]domain.ZonePrice, 0, len(f.prices))
	for zone, price := range f.prices {
		out = append(out, domain.ZonePrice{Zone: zone, PricePerMinute: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out, nil
}

func (f *fakeStore) SetPaused(_ context.Context, paused bool) error {
	f.registry.Paused = paused
	return nil
}

func (f *fakeStore) GetAccountBalance(_ context.Context, account string) (int64, error) {
	return f.accounts[account], nil
}

func (f *fakeStore) ListLedgerEntries(_ context.Context, limit int) ([]domain.LedgerEntry, error) {
	entries := append([]domain.LedgerEntry{}, f.ledger...)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
