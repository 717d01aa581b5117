// Package export renders the registry, groups and ledgers as one JSON document.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/models"
)

// Indent is the indentation used for every exported document.
const Indent = "    "

// Summary is the top-level export document.
type Summary struct {
	Users  []User  `json:"users"`
	Groups []Group `json:"groups"`
}

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Group struct {
	Name     string    `json:"name"`
	Members  []string  `json:"members"`
	Expenses []Expense `json:"expenses"`
	Debts    []Debt    `json:"debts"`
}

type Expense struct {
	Description  string                 `json:"description"`
	Amount       json.Number            `json:"amount"`
	Payer        string                 `json:"payer"`
	Participants []string               `json:"participants"`
	SplitType    string                 `json:"split_type"`
	Splits       map[string]json.Number `json:"splits"`
}

type Debt struct {
	Debtor   string      `json:"debtor"`
	Creditor string      `json:"creditor"`
	Amount   json.Number `json:"amount"`
}

// GroupState is everything exported for one group.
type GroupState struct {
	Group    *models.Group
	Expenses []*models.Expense
	Balances []models.Balance
}

// Build assembles a summary. Groups keep the given order; balances keep
// their storage order.
func Build(people []*models.Person, groups []GroupState) *Summary {
	s := &Summary{
		Users:  make([]User, 0, len(people)),
		Groups: make([]Group, 0, len(groups)),
	}
	for _, p := range people {
		s.Users = append(s.Users, User{Name: p.Name, Email: p.Email})
	}
	for _, g := range groups {
		out := Group{
			Name:     g.Group.Name,
			Members:  append([]string{}, g.Group.Members...),
			Expenses: make([]Expense, 0, len(g.Expenses)),
			Debts:    make([]Debt, 0, len(g.Balances)),
		}
		for _, e := range g.Expenses {
			out.Expenses = append(out.Expenses, expense(e))
		}
		for _, b := range g.Balances {
			out.Debts = append(out.Debts, Debt{Debtor: b.Debtor, Creditor: b.Creditor, Amount: number(b.Amount)})
		}
		s.Groups = append(s.Groups, out)
	}
	return s
}

func expense(e *models.Expense) Expense {
	out := Expense{
		Description:  e.Description,
		Amount:       number(e.Amount),
		Payer:        e.Payer,
		Participants: append([]string{}, e.Participants...),
		Splits:       make(map[string]json.Number, len(e.Shares)),
	}
	if e.Policy != nil {
		out.SplitType = string(e.Policy.Kind())
	}
	for name, share := range e.Shares {
		out.Splits[name] = number(share)
	}
	return out
}

// number renders an amount as a JSON number with two decimal places.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// Marshal encodes the summary with four-space indentation.
func Marshal(s *Summary) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return data, nil
}

// Write encodes the summary to w followed by a newline.
func Write(w io.Writer, s *Summary) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
