package ledger

import (
	"math/rand"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/calculator"
	"github.com/mmynk/splitsmart/internal/models"
)

func mustExpense(t *testing.T, amount, payer string, participants []string, policy models.SplitPolicy) *models.Expense {
	t.Helper()
	e, err := calculator.NewExpense("test", dec(amount), payer, participants, policy)
	assert.NoError(t, err)
	return e
}

func equal(t *testing.T, amount, payer string, participants ...string) *models.Expense {
	t.Helper()
	return mustExpense(t, amount, payer, participants, models.Equal{})
}

// assertInvariants checks the structural rules every ledger must satisfy
// after any operation.
func assertInvariants(t *testing.T, l *Ledger) {
	t.Helper()
	seen := make(map[pairKey]bool)
	for _, b := range l.Balances() {
		assert.True(t, b.Amount.IsPositive(), "balance %s->%s is not positive: %s", b.Debtor, b.Creditor, b.Amount)
		assert.NotEqual(t, b.Debtor, b.Creditor, "self-debt for %s", b.Debtor)
		key := keyOf(b.Debtor, b.Creditor)
		assert.False(t, seen[key], "more than one balance for %s and %s", key.lo, key.hi)
		seen[key] = true
	}
	for _, b1 := range l.Balances() {
		for _, b2 := range l.Balances() {
			if b1.Creditor == b2.Debtor && b1.Debtor != b2.Creditor {
				t.Errorf("chain left after simplify: %s->%s->%s", b1.Debtor, b1.Creditor, b2.Creditor)
			}
		}
	}
}

func TestApplyExpense(t *testing.T) {
	t.Run("equal split creates one debt", func(t *testing.T) {
		l := New("Alice", "Bob")
		assert.NoError(t, l.ApplyExpense(equal(t, "100", "Alice", "Alice", "Bob")))
		assert.Equal(t, []string{"Bob->Alice:50.00"}, render(l.Balances()))
		assert.Equal(t, 1, len(l.Expenses()))
	})

	t.Run("opposing expenses net to zero", func(t *testing.T) {
		l := New("Alice", "Bob")
		assert.NoError(t, l.ApplyExpense(equal(t, "100", "Alice", "Alice", "Bob")))
		assert.NoError(t, l.ApplyExpense(equal(t, "100", "Bob", "Bob", "Alice")))
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, 2, len(l.Expenses()))
	})

	t.Run("chain collapses to a direct debt", func(t *testing.T) {
		l := New("A", "B", "C")
		assert.NoError(t, l.ApplyExpense(equal(t, "60", "B", "A", "B")))
		assert.NoError(t, l.ApplyExpense(equal(t, "60", "C", "B", "C")))
		assert.Equal(t, []string{"A->C:30.00"}, render(l.Balances()))
		assert.True(t, l.NetPositions()["B"].IsZero())
		assert.Equal(t, 1, l.Collapsed())
	})

	t.Run("payer outside participants", func(t *testing.T) {
		l := New("Alice", "Bob", "Charlie")
		assert.NoError(t, l.ApplyExpense(equal(t, "30", "Alice", "Bob", "Charlie")))
		assert.Equal(t, []string{"Bob->Alice:15.00", "Charlie->Alice:15.00"}, render(l.Balances()))
	})

	t.Run("percent split", func(t *testing.T) {
		l := New("Alice", "Bob")
		w := map[string]decimal.Decimal{"Alice": dec("60"), "Bob": dec("40")}
		assert.NoError(t, l.ApplyExpense(mustExpense(t, "200", "Alice", []string{"Alice", "Bob"}, models.Percent{Weights: w})))
		assert.Equal(t, []string{"Bob->Alice:80.00"}, render(l.Balances()))
	})

	t.Run("zero share creates no debt", func(t *testing.T) {
		l := New("Alice", "Bob", "Charlie")
		w := map[string]decimal.Decimal{"Alice": dec("1"), "Bob": dec("1")}
		assert.NoError(t, l.ApplyExpense(mustExpense(t, "10", "Alice", []string{"Alice", "Bob", "Charlie"}, models.Unequal{Weights: w})))
		assert.Equal(t, []string{"Bob->Alice:5.00"}, render(l.Balances()))
	})

	t.Run("unknown payer leaves ledger unchanged", func(t *testing.T) {
		l := New("Alice", "Bob")
		assert.NoError(t, l.ApplyExpense(equal(t, "10", "Alice", "Alice", "Bob")))
		err := l.ApplyExpense(equal(t, "10", "Mallory", "Alice", "Bob"))
		assert.IsError(t, err, ErrInvalidParty)
		assert.Equal(t, []string{"Bob->Alice:5.00"}, render(l.Balances()))
		assert.Equal(t, 1, len(l.Expenses()))
	})

	t.Run("unknown participant leaves ledger unchanged", func(t *testing.T) {
		l := New("Alice", "Bob")
		err := l.ApplyExpense(equal(t, "10", "Alice", "Bob", "Mallory"))
		assert.IsError(t, err, ErrInvalidParty)
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, 0, len(l.Expenses()))
	})

	t.Run("missing share is rejected", func(t *testing.T) {
		l := New("Alice", "Bob")
		e := equal(t, "10", "Alice", "Alice", "Bob")
		delete(e.Shares, "Bob")
		assert.IsError(t, l.ApplyExpense(e), ErrInvalidAmount)
		assert.IsError(t, l.ApplyExpense(nil), ErrInvalidAmount)
	})

	t.Run("history is a copy", func(t *testing.T) {
		l := New("Alice", "Bob")
		e := equal(t, "10", "Alice", "Alice", "Bob")
		assert.NoError(t, l.ApplyExpense(e))
		e.Shares["Bob"] = dec("1000")
		got := l.Expenses()[0]
		assert.Equal(t, "5.00", got.Share("Bob").StringFixed(2))
		got.Shares["Bob"] = dec("1000")
		assert.Equal(t, "5.00", l.Expenses()[0].Share("Bob").StringFixed(2))
	})
}

func TestSettleUp(t *testing.T) {
	setup := func(t *testing.T) *Ledger {
		l := New("Alice", "Bob", "Charlie")
		assert.NoError(t, l.ApplyExpense(equal(t, "100", "Alice", "Alice", "Bob")))
		return l
	}

	t.Run("exact amount clears the debt", func(t *testing.T) {
		l := setup(t)
		applied, err := l.SettleUp("Bob", "Alice", dec("50"))
		assert.NoError(t, err)
		assert.Equal(t, "50.00", applied.StringFixed(2))
		assert.Equal(t, 0, l.Len())
	})

	t.Run("partial payment decrements", func(t *testing.T) {
		l := setup(t)
		applied, err := l.SettleUp("Bob", "Alice", dec("20"))
		assert.NoError(t, err)
		assert.Equal(t, "20.00", applied.StringFixed(2))
		assert.Equal(t, []string{"Bob->Alice:30.00"}, render(l.Balances()))
	})

	t.Run("overpayment is absorbed", func(t *testing.T) {
		l := setup(t)
		applied, err := l.SettleUp("Bob", "Alice", dec("75"))
		assert.NoError(t, err)
		assert.Equal(t, "50.00", applied.StringFixed(2))
		assert.Equal(t, 0, l.Len())
		_, ok := l.Balance("Alice", "Bob")
		assert.False(t, ok)
	})

	t.Run("wrong direction is no such debt", func(t *testing.T) {
		l := setup(t)
		_, err := l.SettleUp("Alice", "Bob", dec("10"))
		assert.IsError(t, err, ErrNoSuchDebt)
		assert.Equal(t, []string{"Bob->Alice:50.00"}, render(l.Balances()))
	})

	t.Run("unrelated pair is no such debt", func(t *testing.T) {
		l := setup(t)
		_, err := l.SettleUp("Charlie", "Alice", dec("10"))
		assert.IsError(t, err, ErrNoSuchDebt)
	})

	t.Run("unknown party", func(t *testing.T) {
		l := setup(t)
		_, err := l.SettleUp("Mallory", "Alice", dec("10"))
		assert.IsError(t, err, ErrInvalidParty)
		_, err = l.SettleUp("Bob", "Mallory", dec("10"))
		assert.IsError(t, err, ErrInvalidParty)
		_, err = l.SettleUp("Bob", "Bob", dec("10"))
		assert.IsError(t, err, ErrInvalidParty)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		l := setup(t)
		_, err := l.SettleUp("Bob", "Alice", dec("0"))
		assert.IsError(t, err, ErrInvalidAmount)
		_, err = l.SettleUp("Bob", "Alice", dec("-5"))
		assert.IsError(t, err, ErrInvalidAmount)
		assert.Equal(t, []string{"Bob->Alice:50.00"}, render(l.Balances()))
	})
}

func TestRestore(t *testing.T) {
	t.Run("keeps order and history", func(t *testing.T) {
		e := equal(t, "10", "Alice", "Alice", "Bob")
		l, err := Restore([]string{"Alice", "Bob", "Charlie"},
			[]models.Balance{bal("Charlie", "Alice", "3"), bal("Bob", "Alice", "5")},
			[]*models.Expense{e})
		assert.NoError(t, err)
		assert.Equal(t, []string{"Charlie->Alice:3.00", "Bob->Alice:5.00"}, render(l.Balances()))
		assert.Equal(t, 1, len(l.Expenses()))
		assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, l.Members())
	})

	bad := []struct {
		name     string
		balances []models.Balance
	}{
		{"zero amount", []models.Balance{bal("Bob", "Alice", "0")}},
		{"negative amount", []models.Balance{bal("Bob", "Alice", "-1")}},
		{"self debt", []models.Balance{bal("Bob", "Bob", "1")}},
		{"non member", []models.Balance{bal("Mallory", "Alice", "1")}},
		{"duplicate pair", []models.Balance{bal("Bob", "Alice", "1"), bal("Alice", "Bob", "2")}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Restore([]string{"Alice", "Bob"}, tt.balances, nil)
			assert.IsError(t, err, ErrCorrupt)
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := New("Alice", "Bob")
	assert.NoError(t, l.ApplyExpense(equal(t, "10", "Alice", "Alice", "Bob")))

	c := l.Clone()
	c.AddMembers("Charlie")
	assert.NoError(t, c.ApplyExpense(equal(t, "30", "Alice", "Bob", "Charlie")))

	assert.False(t, l.HasMember("Charlie"))
	assert.Equal(t, 1, len(l.Expenses()))
	assert.Equal(t, []string{"Bob->Alice:5.00"}, render(l.Balances()))
	assert.Equal(t, 2, len(c.Expenses()))
}

func TestAddMembers(t *testing.T) {
	l := New("Alice")
	added := l.AddMembers("Bob", "Alice", "", "Charlie", "Bob")
	assert.Equal(t, []string{"Bob", "Charlie"}, added)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, l.Members())
}

// TestRandomOperations drives the ledger with a deterministic stream of
// expenses and settlements and checks the invariants and the conservation of
// every member's net position after each step.
func TestRandomOperations(t *testing.T) {
	people := []string{"Alice", "Bob", "Charlie", "Diana", "Eve"}
	rng := rand.New(rand.NewSource(42))
	l := New(people...)

	var settlements []*models.Settlement
	pick := func() string { return people[rng.Intn(len(people))] }
	amount := func() decimal.Decimal { return decimal.New(int64(1+rng.Intn(50000)), -2) }

	for step := 0; step < 400; step++ {
		if rng.Intn(3) > 0 || l.Len() == 0 {
			var participants []string
			for _, p := range people {
				if rng.Intn(2) == 0 {
					participants = append(participants, p)
				}
			}
			if len(participants) == 0 {
				participants = []string{pick()}
			}

			var policy models.SplitPolicy
			switch rng.Intn(3) {
			case 0:
				policy = models.Equal{}
			case 1:
				w := make(map[string]decimal.Decimal)
				for _, p := range participants {
					w[p] = decimal.NewFromInt(int64(1 + rng.Intn(5)))
				}
				policy = models.Unequal{Weights: w}
			default:
				w := make(map[string]decimal.Decimal)
				for _, p := range participants {
					w[p] = decimal.NewFromInt(int64(rng.Intn(60)))
				}
				policy = models.Percent{Weights: w}
			}

			e, err := calculator.NewExpense("random", amount(), pick(), participants, policy)
			assert.NoError(t, err)
			assert.NoError(t, l.ApplyExpense(e))
		} else {
			balances := l.Balances()
			b := balances[rng.Intn(len(balances))]
			pay := amount()
			if rng.Intn(4) == 0 {
				pay = b.Amount
			}
			applied, err := l.SettleUp(b.Debtor, b.Creditor, pay)
			assert.NoError(t, err)
			assert.True(t, applied.LessThanOrEqual(pay))
			settlements = append(settlements, &models.Settlement{
				Payer: b.Debtor, Receiver: b.Creditor, Amount: pay, Applied: applied,
			})
		}

		assertInvariants(t, l)

		net := l.NetPositions()
		total := decimal.Zero
		for _, mb := range calculator.CalculateMemberBalances(people, l.Expenses(), settlements) {
			assert.True(t, mb.NetBalance.Equal(net[mb.MemberName]),
				"step %d: %s net %s, history says %s", step, mb.MemberName, net[mb.MemberName], mb.NetBalance)
			total = total.Add(net[mb.MemberName])
		}
		assert.True(t, total.IsZero(), "net positions must sum to zero, got %s", total)
	}
}
