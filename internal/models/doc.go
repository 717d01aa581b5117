// Package models defines the core domain models for SplitSmart.
//
// # Models
//
//   - Person: someone who can pay for or take part in an expense
//   - Group: a named set of people sharing one debt ledger
//   - Expense: an amount paid by one person on behalf of participants
//   - SplitPolicy: how an expense amount is divided (equal, unequal, percent)
//   - Balance: what one person currently owes another
//   - Settlement: a repayment recorded against a balance
//
// # Design Principles
//
//  1. People are identified by name. The name is the equality key everywhere.
//  2. Money is a decimal.Decimal, never a float.
//  3. Relationships are expressed with ID or name strings, not pointers.
//  4. Expenses are immutable once their shares are computed.
package models
