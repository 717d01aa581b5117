package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/models"
)

// pairKey identifies an unordered pair of people. lo sorts before hi.
type pairKey struct {
	lo, hi string
}

func keyOf(a, b string) pairKey {
	if a < b {
		return pairKey{lo: a, hi: b}
	}
	return pairKey{lo: b, hi: a}
}

// balanceSet holds at most one balance per unordered pair, in storage order.
// Every stored amount is strictly positive.
type balanceSet struct {
	byPair map[pairKey]*models.Balance
	order  []pairKey
}

func newBalanceSet() *balanceSet {
	return &balanceSet{byPair: make(map[pairKey]*models.Balance)}
}

func (s *balanceSet) len() int {
	return len(s.order)
}

// get returns the balance debtor owes creditor, ignoring the opposite direction.
func (s *balanceSet) get(debtor, creditor string) (models.Balance, bool) {
	b, ok := s.byPair[keyOf(debtor, creditor)]
	if !ok || b.Debtor != debtor {
		return models.Balance{}, false
	}
	return *b, true
}

// merge folds "debtor owes creditor amount" into the set:
//   - same direction: added to the existing record
//   - opposite direction: offsets it, flipping in place when amount exceeds it
//     and deleting it when the two are equal
//   - no record: appended
//
// merge is the only function that changes individual records.
// Non-positive amounts and self-debts are ignored.
func (s *balanceSet) merge(debtor, creditor string, amount decimal.Decimal) {
	if !amount.IsPositive() || debtor == creditor {
		return
	}

	key := keyOf(debtor, creditor)
	b, ok := s.byPair[key]
	if !ok {
		s.byPair[key] = &models.Balance{Debtor: debtor, Creditor: creditor, Amount: amount}
		s.order = append(s.order, key)
		return
	}

	if b.Debtor == debtor {
		b.Amount = b.Amount.Add(amount)
		return
	}

	switch b.Amount.Cmp(amount) {
	case 1:
		b.Amount = b.Amount.Sub(amount)
	case -1:
		b.Debtor, b.Creditor = debtor, creditor
		b.Amount = amount.Sub(b.Amount)
	default:
		s.remove(key)
	}
}

func (s *balanceSet) remove(key pairKey) {
	delete(s.byPair, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// nextChain returns the first pair (d1, d2) in storage order where d1's
// creditor is d2's debtor and collapsing them would not create a self-debt.
func (s *balanceSet) nextChain() (d1, d2 models.Balance, ok bool) {
	for _, k1 := range s.order {
		b1 := s.byPair[k1]
		for _, k2 := range s.order {
			if k1 == k2 {
				continue
			}
			b2 := s.byPair[k2]
			if b1.Creditor == b2.Debtor && b1.Debtor != b2.Creditor {
				return *b1, *b2, true
			}
		}
	}
	return models.Balance{}, models.Balance{}, false
}

// simplify collapses chains until none remain and returns how many chains
// were collapsed.
//
// For a chain A owes B (d1) and B owes C (d2), t = min(d1, d2) moves onto a
// direct A owes C record and both links shrink by t, which removes at least
// one of them. The scan restarts from the beginning after every collapse.
// Each person's net position is unchanged by every step.
//
// This is a greedy local reduction: with cycles among three or more people
// the outcome depends on storage order and may not have the fewest records.
func (s *balanceSet) simplify() int {
	collapsed := 0
	for {
		d1, d2, ok := s.nextChain()
		if !ok {
			return collapsed
		}
		t := decimal.Min(d1.Amount, d2.Amount)
		debtor, middle, creditor := d1.Debtor, d1.Creditor, d2.Creditor

		s.merge(debtor, creditor, t)
		// Offsetting in the reverse direction shrinks each link by t.
		// t never exceeds either link, so neither can flip.
		s.merge(middle, debtor, t)
		s.merge(creditor, middle, t)
		collapsed++
	}
}

func (s *balanceSet) list() []models.Balance {
	out := make([]models.Balance, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, *s.byPair[k])
	}
	return out
}

func (s *balanceSet) clone() *balanceSet {
	c := &balanceSet{
		byPair: make(map[pairKey]*models.Balance, len(s.byPair)),
		order:  append([]pairKey(nil), s.order...),
	}
	for k, b := range s.byPair {
		copied := *b
		c.byPair[k] = &copied
	}
	return c
}
