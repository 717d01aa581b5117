package models

import "github.com/shopspring/decimal"

// Balance records that Debtor owes Creditor Amount.
// Amount is always strictly positive and Debtor never equals Creditor.
type Balance struct {
	Debtor   string
	Creditor string
	Amount   decimal.Decimal
}
