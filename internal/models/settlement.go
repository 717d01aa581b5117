package models

import "github.com/shopspring/decimal"

// Settlement represents a repayment between group members.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// Payer is the debtor settling up.
	Payer string

	// Receiver is the creditor being paid.
	Receiver string

	// Amount is what the payer handed over.
	Amount decimal.Decimal

	// Applied is the part of Amount that reduced the balance.
	// Overpayment is absorbed, so Applied can be less than Amount.
	Applied decimal.Decimal

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the authenticated person who recorded it, if any.
	CreatedBy string

	// Note is an optional description for the settlement.
	Note string
}
