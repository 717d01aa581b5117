package ledger

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bal(debtor, creditor, amount string) models.Balance {
	return models.Balance{Debtor: debtor, Creditor: creditor, Amount: dec(amount)}
}

// render formats balances as "A->B:10.00" for readable comparisons.
func render(balances []models.Balance) []string {
	out := make([]string, len(balances))
	for i, b := range balances {
		out[i] = fmt.Sprintf("%s->%s:%s", b.Debtor, b.Creditor, b.Amount.StringFixed(2))
	}
	return out
}

func setOf(balances ...models.Balance) *balanceSet {
	s := newBalanceSet()
	for _, b := range balances {
		s.merge(b.Debtor, b.Creditor, b.Amount)
	}
	return s
}

func TestBalanceSetMerge(t *testing.T) {
	tests := []struct {
		name    string
		initial []models.Balance
		merge   models.Balance
		want    []string
	}{
		{
			name:  "insert into empty set",
			merge: bal("Bob", "Alice", "50"),
			want:  []string{"Bob->Alice:50.00"},
		},
		{
			name:    "same direction reinforces",
			initial: []models.Balance{bal("Bob", "Alice", "50")},
			merge:   bal("Bob", "Alice", "25"),
			want:    []string{"Bob->Alice:75.00"},
		},
		{
			name:    "opposite direction partially offsets",
			initial: []models.Balance{bal("Bob", "Alice", "50")},
			merge:   bal("Alice", "Bob", "20"),
			want:    []string{"Bob->Alice:30.00"},
		},
		{
			name:    "opposite direction flips in place",
			initial: []models.Balance{bal("Bob", "Alice", "50"), bal("Charlie", "Alice", "5")},
			merge:   bal("Alice", "Bob", "80"),
			want:    []string{"Alice->Bob:30.00", "Charlie->Alice:5.00"},
		},
		{
			name:    "exact offset deletes",
			initial: []models.Balance{bal("Bob", "Alice", "50"), bal("Charlie", "Alice", "5")},
			merge:   bal("Alice", "Bob", "50"),
			want:    []string{"Charlie->Alice:5.00"},
		},
		{
			name:    "new pair appends",
			initial: []models.Balance{bal("Bob", "Alice", "50")},
			merge:   bal("Charlie", "Diana", "10"),
			want:    []string{"Bob->Alice:50.00", "Charlie->Diana:10.00"},
		},
		{
			name:    "zero amount ignored",
			initial: []models.Balance{bal("Bob", "Alice", "50")},
			merge:   bal("Alice", "Bob", "0"),
			want:    []string{"Bob->Alice:50.00"},
		},
		{
			name:    "self debt ignored",
			initial: []models.Balance{bal("Bob", "Alice", "50")},
			merge:   bal("Alice", "Alice", "10"),
			want:    []string{"Bob->Alice:50.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setOf(tt.initial...)
			s.merge(tt.merge.Debtor, tt.merge.Creditor, tt.merge.Amount)
			assert.Equal(t, tt.want, render(s.list()))
			assert.Equal(t, len(tt.want), len(s.byPair))
		})
	}
}

func TestBalanceSetSimplify(t *testing.T) {
	t.Run("two-hop chain collapses", func(t *testing.T) {
		s := setOf(bal("A", "B", "30"), bal("B", "C", "30"))
		assert.Equal(t, 1, s.simplify())
		assert.Equal(t, []string{"A->C:30.00"}, render(s.list()))
	})

	t.Run("uneven chain leaves remainder", func(t *testing.T) {
		s := setOf(bal("A", "B", "50"), bal("B", "C", "20"))
		s.simplify()
		assert.Equal(t, []string{"A->B:30.00", "A->C:20.00"}, render(s.list()))
	})

	t.Run("three-party cycle cancels", func(t *testing.T) {
		s := setOf(bal("A", "B", "10"), bal("B", "C", "10"), bal("C", "A", "10"))
		s.simplify()
		assert.Equal(t, 0, s.len())
	})

	t.Run("no eligible pair is a no-op", func(t *testing.T) {
		s := setOf(bal("A", "C", "10"), bal("B", "C", "10"))
		assert.Equal(t, 0, s.simplify())
		assert.Equal(t, []string{"A->C:10.00", "B->C:10.00"}, render(s.list()))
	})

	t.Run("outcome depends on storage order", func(t *testing.T) {
		first := setOf(bal("A", "B", "10"), bal("B", "C", "10"), bal("B", "D", "10"))
		first.simplify()
		assert.Equal(t, []string{"B->D:10.00", "A->C:10.00"}, render(first.list()))

		second := setOf(bal("A", "B", "10"), bal("B", "D", "10"), bal("B", "C", "10"))
		second.simplify()
		assert.Equal(t, []string{"B->C:10.00", "A->D:10.00"}, render(second.list()))
	})
}

func TestBalanceSetCloneIsIndependent(t *testing.T) {
	s := setOf(bal("A", "B", "10"))
	c := s.clone()
	c.merge("A", "B", dec("5"))
	c.merge("C", "D", dec("1"))

	assert.Equal(t, []string{"A->B:10.00"}, render(s.list()))
	assert.Equal(t, []string{"A->B:15.00", "C->D:1.00"}, render(c.list()))
}
