package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownSplitKind is returned when a split type name is not recognised.
var ErrUnknownSplitKind = errors.New("unknown split type")

// SplitKind names a split policy at storage and API boundaries.
type SplitKind string

const (
	SplitEqual   SplitKind = "equal"
	SplitUnequal SplitKind = "unequal"
	SplitPercent SplitKind = "percent"
)

// ParseSplitKind converts a user supplied name into a SplitKind.
func ParseSplitKind(s string) (SplitKind, error) {
	switch kind := SplitKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case SplitEqual, SplitUnequal, SplitPercent:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSplitKind, s)
	}
}

// SplitPolicy governs how an expense amount is divided among participants.
// The set of implementations is closed: Equal, Unequal and Percent.
type SplitPolicy interface {
	Kind() SplitKind
	splitPolicy()
}

// Equal divides the amount evenly.
type Equal struct{}

// Unequal divides the amount proportionally to Weights.
// Participants missing from Weights get a zero share.
type Unequal struct {
	Weights map[string]decimal.Decimal
}

// Percent gives each participant Weights[p] percent of the amount.
// Weights are not required to sum to 100.
type Percent struct {
	Weights map[string]decimal.Decimal
}

func (Equal) Kind() SplitKind   { return SplitEqual }
func (Unequal) Kind() SplitKind { return SplitUnequal }
func (Percent) Kind() SplitKind { return SplitPercent }

func (Equal) splitPolicy()   {}
func (Unequal) splitPolicy() {}
func (Percent) splitPolicy() {}

// NewSplitPolicy builds the policy for kind. Weights are ignored for Equal.
func NewSplitPolicy(kind SplitKind, weights map[string]decimal.Decimal) (SplitPolicy, error) {
	switch kind {
	case SplitEqual:
		return Equal{}, nil
	case SplitUnequal:
		return Unequal{Weights: copyWeights(weights)}, nil
	case SplitPercent:
		return Percent{Weights: copyWeights(weights)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitKind, kind)
	}
}

// PolicyWeights returns a copy of the weights carried by p, or nil for Equal.
func PolicyWeights(p SplitPolicy) map[string]decimal.Decimal {
	switch v := p.(type) {
	case Unequal:
		return copyWeights(v.Weights)
	case Percent:
		return copyWeights(v.Weights)
	default:
		return nil
	}
}

func copyWeights(weights map[string]decimal.Decimal) map[string]decimal.Decimal {
	if weights == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(weights))
	for k, v := range weights {
		out[k] = v
	}
	return out
}

// Expense is an amount paid by Payer on behalf of Participants.
// Shares are computed once when the expense is created and never change.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group whose ledger the expense was applied to.
	GroupID string

	// Description is free text (e.g., "Lunch", "Taxi").
	Description string

	// Amount is the total paid. Always positive.
	Amount decimal.Decimal

	// Payer is the person who paid.
	Payer string

	// Participants are the people sharing the expense, deduplicated, in the
	// order given. The payer may or may not be one of them.
	Participants []string

	// Policy is how Amount was divided.
	Policy SplitPolicy

	// Shares maps each participant to their rounded share of Amount.
	Shares map[string]decimal.Decimal

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// CreatedBy is the authenticated person who recorded it, if any.
	CreatedBy string
}

// Share returns the share of name, or zero if name did not participate.
func (e *Expense) Share(name string) decimal.Decimal {
	return e.Shares[name]
}

// ShareTotal sums all shares. It may differ from Amount by rounding drift.
func (e *Expense) ShareTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Shares {
		total = total.Add(s)
	}
	return total
}

// Clone returns a deep copy of e.
func (e *Expense) Clone() *Expense {
	c := *e
	c.Participants = append([]string(nil), e.Participants...)
	c.Shares = copyWeights(e.Shares)
	if e.Policy != nil {
		c.Policy, _ = NewSplitPolicy(e.Policy.Kind(), PolicyWeights(e.Policy))
	}
	return &c
}
