package domain

import "time"

type LedgerKind string

const (
	// LedgerPurchase records a payment taken into registry custody.
	LedgerPurchase LedgerKind = "purchase"
	// LedgerRefund records a cancellation refund credited to a holder.
	LedgerRefund LedgerKind = "refund"
	// LedgerWithdrawal records funds paid out to the administrator.
	LedgerWithdrawal LedgerKind = "withdrawal"
)

// LedgerEntry is one append-only audit record of a balance movement.
type LedgerEntry struct {
	ID      string
	Kind    LedgerKind
	Account string
	// Plate is the ticket the movement relates to; empty for withdrawals.
	Plate     string
	Amount    int64
	CreatedAt time.Time
}

// Account holds money credited back to a caller (refunds) or paid out to
// the administrator (withdrawals). Rows appear lazily on first credit.
type Account struct {
	ID      string
	Balance int64
}
