package calculator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/models"
)

// ErrInvalidSplit is returned when an expense cannot be divided.
var ErrInvalidSplit = errors.New("invalid split")

// SharePlaces is the number of decimal places every share is rounded to.
const SharePlaces = 2

var hundred = decimal.NewFromInt(100)

// ComputeShares divides amount among participants according to policy.
//
// Every share is rounded independently to two places, half away from zero
// (half up for the positive amounts accepted here). No remainder correction
// is applied, so the shares may drift from amount by up to half a cent per
// participant:
//   - Equal: amount / n
//   - Unequal: amount × w[p] / Σw, missing weights count as zero
//   - Percent: amount × w[p] / 100, weights need not sum to 100
//
// Duplicate participant names are collapsed into one.
func ComputeShares(amount decimal.Decimal, participants []string, policy models.SplitPolicy) (map[string]decimal.Decimal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidSplit, amount)
	}
	people, err := UniqueParticipants(participants)
	if err != nil {
		return nil, err
	}

	switch p := policy.(type) {
	case models.Equal:
		return equalShares(amount, people), nil
	case models.Unequal:
		return unequalShares(amount, people, p.Weights)
	case models.Percent:
		return percentShares(amount, people, p.Weights)
	case nil:
		return nil, fmt.Errorf("%w: split policy required", ErrInvalidSplit)
	default:
		return nil, fmt.Errorf("%w: unsupported split policy %T", ErrInvalidSplit, policy)
	}
}

// UniqueParticipants trims names, drops duplicates and keeps first-seen order.
func UniqueParticipants(participants []string) ([]string, error) {
	seen := make(map[string]bool, len(participants))
	people := make([]string, 0, len(participants))
	for _, p := range participants {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, fmt.Errorf("%w: participant name cannot be empty", ErrInvalidSplit)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		people = append(people, name)
	}
	if len(people) == 0 {
		return nil, fmt.Errorf("%w: must have at least one participant", ErrInvalidSplit)
	}
	return people, nil
}

func equalShares(amount decimal.Decimal, people []string) map[string]decimal.Decimal {
	share := amount.Div(decimal.NewFromInt(int64(len(people)))).Round(SharePlaces)
	shares := make(map[string]decimal.Decimal, len(people))
	for _, p := range people {
		shares[p] = share
	}
	return shares
}

func unequalShares(amount decimal.Decimal, people []string, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	total := decimal.Zero
	for name, w := range weights {
		if w.IsNegative() {
			return nil, fmt.Errorf("%w: weight for %s cannot be negative", ErrInvalidSplit, name)
		}
		total = total.Add(w)
	}
	if total.IsZero() {
		return nil, fmt.Errorf("%w: total weight cannot be zero", ErrInvalidSplit)
	}

	shares := make(map[string]decimal.Decimal, len(people))
	for _, p := range people {
		shares[p] = amount.Mul(weights[p]).Div(total).Round(SharePlaces)
	}
	return shares, nil
}

func percentShares(amount decimal.Decimal, people []string, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	for name, w := range weights {
		if w.IsNegative() || w.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: percentage for %s must be between 0 and 100, got %s", ErrInvalidSplit, name, w)
		}
	}

	shares := make(map[string]decimal.Decimal, len(people))
	for _, p := range people {
		shares[p] = amount.Mul(weights[p]).Div(hundred).Round(SharePlaces)
	}
	return shares, nil
}

// NewExpense validates the inputs, computes shares and returns an expense
// ready to be applied to a ledger. The ID and GroupID are left to the caller.
func NewExpense(description string, amount decimal.Decimal, payer string, participants []string, policy models.SplitPolicy) (*models.Expense, error) {
	payer = strings.TrimSpace(payer)
	if payer == "" {
		return nil, fmt.Errorf("%w: payer required", ErrInvalidSplit)
	}
	people, err := UniqueParticipants(participants)
	if err != nil {
		return nil, err
	}
	shares, err := ComputeShares(amount, people, policy)
	if err != nil {
		return nil, err
	}

	// Detach the stored policy from the caller's weight map.
	frozen, err := models.NewSplitPolicy(policy.Kind(), models.PolicyWeights(policy))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSplit, err)
	}

	return &models.Expense{
		Description:  strings.TrimSpace(description),
		Amount:       amount,
		Payer:        payer,
		Participants: people,
		Policy:       frozen,
		Shares:       shares,
		CreatedAt:    time.Now().Unix(),
	}, nil
}

// Drift returns sum(shares) - amount for an expense.
func Drift(e *models.Expense) decimal.Decimal {
	return e.ShareTotal().Sub(e.Amount)
}
