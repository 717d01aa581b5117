// Package ledger keeps the current pairwise debts of one group.
//
// A Ledger folds expenses into at most one balance per pair of people,
// collapses debt chains after every change and applies settlements. It keeps
// no log of past movements beyond the expense history, which is retained for
// display only and never read back by the netting logic.
//
// A Ledger is not safe for concurrent use. Callers sharing one must serialize
// every call.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/models"
)

var (
	// ErrNoSuchDebt is returned when settling a pair with no outstanding balance.
	ErrNoSuchDebt = errors.New("no such debt")

	// ErrInvalidParty is returned when an operation names someone outside the ledger.
	ErrInvalidParty = errors.New("invalid party")

	// ErrInvalidAmount is returned for non-positive or malformed amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrCorrupt is returned by Restore when persisted balances break the
	// one-positive-record-per-pair rule.
	ErrCorrupt = errors.New("corrupt ledger state")
)

// Ledger owns the balances and expense history of one group.
type Ledger struct {
	members  []string
	known    map[string]bool
	balances *balanceSet
	expenses []*models.Expense

	// collapsed counts chains removed by simplify over the ledger's lifetime.
	collapsed int
}

// New creates an empty ledger for the given members.
func New(members ...string) *Ledger {
	l := &Ledger{
		known:    make(map[string]bool),
		balances: newBalanceSet(),
	}
	l.AddMembers(members...)
	return l
}

// Restore rebuilds a ledger from persisted state. Balances keep the given
// order. Expenses are added to the history without being folded again.
func Restore(members []string, balances []models.Balance, expenses []*models.Expense) (*Ledger, error) {
	l := New(members...)
	for i, b := range balances {
		switch {
		case !b.Amount.IsPositive():
			return nil, fmt.Errorf("%w: balance %d (%s -> %s) has non-positive amount %s", ErrCorrupt, i, b.Debtor, b.Creditor, b.Amount)
		case b.Debtor == b.Creditor:
			return nil, fmt.Errorf("%w: balance %d is a self-debt of %s", ErrCorrupt, i, b.Debtor)
		case !l.known[b.Debtor] || !l.known[b.Creditor]:
			return nil, fmt.Errorf("%w: balance %d names a non-member (%s -> %s)", ErrCorrupt, i, b.Debtor, b.Creditor)
		}
		key := keyOf(b.Debtor, b.Creditor)
		if _, dup := l.balances.byPair[key]; dup {
			return nil, fmt.Errorf("%w: duplicate balance for %s and %s", ErrCorrupt, key.lo, key.hi)
		}
		l.balances.merge(b.Debtor, b.Creditor, b.Amount)
	}
	for _, e := range expenses {
		l.expenses = append(l.expenses, e.Clone())
	}
	return l, nil
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		members:   append([]string(nil), l.members...),
		known:     make(map[string]bool, len(l.known)),
		balances:  l.balances.clone(),
		expenses:  make([]*models.Expense, len(l.expenses)),
		collapsed: l.collapsed,
	}
	for k := range l.known {
		c.known[k] = true
	}
	for i, e := range l.expenses {
		c.expenses[i] = e.Clone()
	}
	return c
}

// AddMembers registers new members and returns the names actually added.
// Membership only grows.
func (l *Ledger) AddMembers(names ...string) []string {
	var added []string
	for _, n := range names {
		if n == "" || l.known[n] {
			continue
		}
		l.known[n] = true
		l.members = append(l.members, n)
		added = append(added, n)
	}
	return added
}

// HasMember reports whether name belongs to the ledger.
func (l *Ledger) HasMember(name string) bool {
	return l.known[name]
}

// Members returns member names in the order they joined.
func (l *Ledger) Members() []string {
	return append([]string(nil), l.members...)
}

// ApplyExpense records e and folds every non-payer share into a debt owed to
// the payer, in participant order, then simplifies.
//
// The ledger is left unchanged when the expense names an unknown party or
// carries malformed amounts.
func (l *Ledger) ApplyExpense(e *models.Expense) error {
	if err := l.validateExpense(e); err != nil {
		return err
	}

	l.expenses = append(l.expenses, e.Clone())
	for _, p := range e.Participants {
		if p == e.Payer {
			continue
		}
		l.balances.merge(p, e.Payer, e.Shares[p])
	}
	l.collapsed += l.balances.simplify()
	return nil
}

func (l *Ledger) validateExpense(e *models.Expense) error {
	if e == nil {
		return fmt.Errorf("%w: nil expense", ErrInvalidAmount)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: expense amount must be positive, got %s", ErrInvalidAmount, e.Amount)
	}
	if len(e.Participants) == 0 {
		return fmt.Errorf("%w: expense has no participants", ErrInvalidParty)
	}
	if !l.known[e.Payer] {
		return fmt.Errorf("%w: payer %q is not a member", ErrInvalidParty, e.Payer)
	}
	for _, p := range e.Participants {
		if !l.known[p] {
			return fmt.Errorf("%w: participant %q is not a member", ErrInvalidParty, p)
		}
		share, ok := e.Shares[p]
		if !ok {
			return fmt.Errorf("%w: no share computed for %q", ErrInvalidAmount, p)
		}
		if share.IsNegative() {
			return fmt.Errorf("%w: share for %q is negative", ErrInvalidAmount, p)
		}
	}
	return nil
}

// SettleUp records that payer paid receiver amount against the balance payer
// owes receiver. Paying at least the outstanding amount clears the balance;
// any excess is absorbed and never turns into a credit. It returns the part
// of amount that was applied.
func (l *Ledger) SettleUp(payer, receiver string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !l.known[payer] {
		return decimal.Zero, fmt.Errorf("%w: payer %q is not a member", ErrInvalidParty, payer)
	}
	if !l.known[receiver] {
		return decimal.Zero, fmt.Errorf("%w: receiver %q is not a member", ErrInvalidParty, receiver)
	}
	if payer == receiver {
		return decimal.Zero, fmt.Errorf("%w: %q cannot settle with themselves", ErrInvalidParty, payer)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: settlement must be positive, got %s", ErrInvalidAmount, amount)
	}

	b, ok := l.balances.get(payer, receiver)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s does not owe %s", ErrNoSuchDebt, payer, receiver)
	}

	applied := decimal.Min(amount, b.Amount)
	l.balances.merge(receiver, payer, applied)
	l.collapsed += l.balances.simplify()
	return applied, nil
}

// Balance returns what debtor currently owes creditor.
func (l *Ledger) Balance(debtor, creditor string) (decimal.Decimal, bool) {
	b, ok := l.balances.get(debtor, creditor)
	return b.Amount, ok
}

// Balances returns the outstanding balances in storage order.
func (l *Ledger) Balances() []models.Balance {
	return l.balances.list()
}

// Len returns the number of outstanding balances.
func (l *Ledger) Len() int {
	return l.balances.len()
}

// Collapsed returns how many debt chains simplification has removed since
// the ledger was created or restored.
func (l *Ledger) Collapsed() int {
	return l.collapsed
}

// Expenses returns copies of the recorded expenses, oldest first.
func (l *Ledger) Expenses() []*models.Expense {
	out := make([]*models.Expense, len(l.expenses))
	for i, e := range l.expenses {
		out[i] = e.Clone()
	}
	return out
}

// NetPositions returns, for every member, what they are owed minus what they
// owe. The values always sum to zero.
func (l *Ledger) NetPositions() map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal, len(l.members))
	for _, m := range l.members {
		net[m] = decimal.Zero
	}
	for _, b := range l.balances.list() {
		net[b.Creditor] = net[b.Creditor].Add(b.Amount)
		net[b.Debtor] = net[b.Debtor].Sub(b.Amount)
	}
	return net
}
