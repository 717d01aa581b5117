package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/calculator"
	"github.com/mmynk/splitsmart/internal/models"
	"github.com/mmynk/splitsmart/pkg/api"
)

// money renders an amount the way every response carries it.
func money(d decimal.Decimal) string {
	return d.StringFixed(calculator.SharePlaces)
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", errInvalidArgument, field, s)
	}
	return d, nil
}

// parseMoney parses an amount of money. Anything finer than a cent is
// rejected so the ledger never holds a balance its listings cannot show.
func parseMoney(field, s string) (decimal.Decimal, error) {
	d, err := parseAmount(field, s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.Equal(d.Round(calculator.SharePlaces)) {
		return decimal.Zero, fmt.Errorf("%w: %s %q has more than %d decimal places", errInvalidArgument, field, s, calculator.SharePlaces)
	}
	return d, nil
}

// parseSplit converts an API split into a policy. An empty kind means equal.
func parseSplit(s api.Split) (models.SplitPolicy, error) {
	kind := models.SplitEqual
	if strings.TrimSpace(s.Kind) != "" {
		var err error
		if kind, err = models.ParseSplitKind(s.Kind); err != nil {
			return nil, err
		}
	}

	var weights map[string]decimal.Decimal
	if kind != models.SplitEqual {
		weights = make(map[string]decimal.Decimal, len(s.Weights))
		for name, w := range s.Weights {
			d, err := parseAmount("weight for "+name, w)
			if err != nil {
				return nil, err
			}
			weights[strings.TrimSpace(name)] = d
		}
	}
	return models.NewSplitPolicy(kind, weights)
}

func toAPISplit(p models.SplitPolicy) api.Split {
	if p == nil {
		return api.Split{}
	}
	s := api.Split{Kind: string(p.Kind())}
	if weights := models.PolicyWeights(p); weights != nil {
		s.Weights = make(map[string]string, len(weights))
		for name, w := range weights {
			s.Weights[name] = w.String()
		}
	}
	return s
}

func toAPIPerson(p *models.Person) *api.Person {
	return &api.Person{
		Name:      p.Name,
		Email:     p.Email,
		CanLogin:  p.CanLogin(),
		CreatedAt: p.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

// toAPIShares lists shares in participant order.
func toAPIShares(participants []string, shares map[string]decimal.Decimal) []api.Share {
	out := make([]api.Share, 0, len(participants))
	for _, p := range participants {
		out = append(out, api.Share{Participant: p, Amount: money(shares[p])})
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       money(e.Amount),
		Payer:        e.Payer,
		Participants: e.Participants,
		Split:        toAPISplit(e.Policy),
		Shares:       toAPIShares(e.Participants, e.Shares),
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:        s.ID,
		GroupID:   s.GroupID,
		Payer:     s.Payer,
		Receiver:  s.Receiver,
		Amount:    money(s.Amount),
		Applied:   money(s.Applied),
		CreatedAt: s.CreatedAt,
		CreatedBy: s.CreatedBy,
		Note:      s.Note,
	}
}

func toAPIBalances(balances []models.Balance) []api.Balance {
	out := make([]api.Balance, 0, len(balances))
	for _, b := range balances {
		out = append(out, api.Balance{Debtor: b.Debtor, Creditor: b.Creditor, Amount: money(b.Amount)})
	}
	return out
}

func toAPIMemberBalances(balances []calculator.MemberBalance) []api.MemberBalance {
	out := make([]api.MemberBalance, 0, len(balances))
	for _, b := range balances {
		out = append(out, api.MemberBalance{
			Name:       b.MemberName,
			NetBalance: money(b.NetBalance),
			TotalPaid:  money(b.TotalPaid),
			TotalOwed:  money(b.TotalOwed),
		})
	}
	return out
}

// cleanNames trims names, drops blanks and duplicates, and keeps order.
func cleanNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
