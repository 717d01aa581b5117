package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/models"
)

// MemberBalance summarises one member's position from a group's history.
type MemberBalance struct {
	MemberName string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal // Shares fronted as payer plus settlements paid
	TotalOwed  decimal.Decimal // Own shares plus settlements received
}

// CalculateMemberBalances recomputes every member's net position from the
// expense history and the applied part of each settlement.
//
// Algorithm:
//   - For each expense: the payer fronted every share, each participant owes
//     their own share (a payer who participates nets out their own share)
//   - For each settlement: the payer's position improves, the receiver's drops
//   - net_balance = total_paid - total_owed
//
// The result matches the net positions held by the debt ledger exactly, which
// makes it the reference used to check that simplification conserves money.
// Members are returned sorted by name; members listed in members but absent
// from the history are included with zero totals.
func CalculateMemberBalances(members []string, expenses []*models.Expense, settlements []*models.Settlement) []MemberBalance {
	balances := make(map[string]*MemberBalance)
	get := func(name string) *MemberBalance {
		if _, exists := balances[name]; !exists {
			balances[name] = &MemberBalance{
				MemberName: name,
				NetBalance: decimal.Zero,
				TotalPaid:  decimal.Zero,
				TotalOwed:  decimal.Zero,
			}
		}
		return balances[name]
	}

	for _, m := range members {
		get(m)
	}

	for _, e := range expenses {
		payer := get(e.Payer)
		for _, participant := range e.Participants {
			share := e.Share(participant)
			payer.TotalPaid = payer.TotalPaid.Add(share)
			p := get(participant)
			p.TotalOwed = p.TotalOwed.Add(share)
		}
	}

	for _, s := range settlements {
		get(s.Payer).TotalPaid = get(s.Payer).TotalPaid.Add(s.Applied)
		get(s.Receiver).TotalOwed = get(s.Receiver).TotalOwed.Add(s.Applied)
	}

	result := make([]MemberBalance, 0, len(balances))
	for _, bal := range balances {
		bal.NetBalance = bal.TotalPaid.Sub(bal.TotalOwed)
		result = append(result, *bal)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MemberName < result[j].MemberName
	})
	return result
}
