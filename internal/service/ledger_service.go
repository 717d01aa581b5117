package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/calculator"
	"github.com/mmynk/splitsmart/internal/export"
	"github.com/mmynk/splitsmart/internal/ledger"
	"github.com/mmynk/splitsmart/internal/metrics"
	"github.com/mmynk/splitsmart/internal/middleware"
	"github.com/mmynk/splitsmart/internal/models"
	"github.com/mmynk/splitsmart/internal/storage"
	"github.com/mmynk/splitsmart/pkg/api"
)

// LedgerService implements the Connect LedgerService: expenses, settlements
// and the balances they leave behind.
type LedgerService struct {
	store   storage.Store
	ledgers *Ledgers
	metrics *metrics.Metrics
}

// NewLedgerService creates a new LedgerService. m may be nil.
func NewLedgerService(store storage.Store, ledgers *Ledgers, m *metrics.Metrics) *LedgerService {
	return &LedgerService{store: store, ledgers: ledgers, metrics: m}
}

// CalculateShares previews how an amount would be divided. Nothing is stored.
func (s *LedgerService) CalculateShares(ctx context.Context, req *connect.Request[api.CalculateSharesRequest]) (*connect.Response[api.CalculateSharesResponse], error) {
	slog.Info("CalculateShares request received",
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.Participants),
		"split", req.Msg.Split.Kind,
	)

	amount, err := parseMoney("amount", req.Msg.Amount)
	if err != nil {
		return nil, fail("CalculateShares failed", err)
	}
	policy, err := parseSplit(req.Msg.Split)
	if err != nil {
		return nil, fail("CalculateShares failed", err)
	}
	participants, err := calculator.UniqueParticipants(req.Msg.Participants)
	if err != nil {
		return nil, fail("CalculateShares failed", err)
	}
	shares, err := calculator.ComputeShares(amount, participants, policy)
	if err != nil {
		return nil, fail("CalculateShares failed", err, "split", policy.Kind())
	}

	total := decimal.Zero
	for _, share := range shares {
		total = total.Add(share)
	}

	slog.Info("CalculateShares successful", "total", money(total), "drift", money(total.Sub(amount)))
	return connect.NewResponse(&api.CalculateSharesResponse{
		Shares: toAPIShares(participants, shares),
		Total:  money(total),
		Drift:  money(total.Sub(amount)),
	}), nil
}

// AddExpense computes shares, folds them into the group's ledger and stores
// the expense together with the new balances.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("AddExpense request received",
		"group_id", groupID,
		"payer", req.Msg.Payer,
		"amount", req.Msg.Amount,
		"split", req.Msg.Split.Kind,
	)

	amount, err := parseMoney("amount", req.Msg.Amount)
	if err != nil {
		return nil, fail("AddExpense failed", err, "group_id", groupID)
	}
	policy, err := parseSplit(req.Msg.Split)
	if err != nil {
		return nil, fail("AddExpense failed", err, "group_id", groupID)
	}
	expense, err := calculator.NewExpense(req.Msg.Description, amount, req.Msg.Payer, req.Msg.Participants, policy)
	if err != nil {
		return nil, fail("AddExpense failed", err, "group_id", groupID)
	}
	expense.ID = uuid.New().String()
	expense.GroupID = groupID
	expense.CreatedBy = middleware.GetPerson(ctx)

	collapsed := 0
	l, err := s.ledgers.Update(ctx, groupID, func(l *ledger.Ledger) error {
		if err := requireMember(ctx, l); err != nil {
			return err
		}
		before := l.Collapsed()
		if err := l.ApplyExpense(expense); err != nil {
			return err
		}
		collapsed = l.Collapsed() - before
		return s.store.SaveExpense(ctx, expense, l.Balances())
	})
	if err != nil {
		return nil, fail("AddExpense failed", err, "group_id", groupID, "payer", expense.Payer)
	}

	s.metrics.ExpenseApplied(string(policy.Kind()), collapsed)
	s.metrics.SetOutstanding(groupID, l.Len())
	if drift := calculator.Drift(expense); !drift.IsZero() {
		slog.Debug("Rounding drift", "expense_id", expense.ID, "drift", money(drift))
	}

	slog.Info("Expense added",
		"group_id", groupID,
		"expense_id", expense.ID,
		"payer", expense.Payer,
		"amount", money(expense.Amount),
		"balances", l.Len(),
		"chains_collapsed", collapsed,
	)
	return connect.NewResponse(&api.AddExpenseResponse{
		Expense:  toAPIExpense(expense),
		Balances: toAPIBalances(l.Balances()),
	}), nil
}

// SettleUp records a repayment against what the payer owes the receiver.
// Overpayment clears the debt; the excess is not turned into a credit.
func (s *LedgerService) SettleUp(ctx context.Context, req *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error) {
	groupID := req.Msg.GroupID
	payer := strings.TrimSpace(req.Msg.Payer)
	receiver := strings.TrimSpace(req.Msg.Receiver)
	slog.Info("SettleUp request received",
		"group_id", groupID,
		"payer", payer,
		"receiver", receiver,
		"amount", req.Msg.Amount,
	)

	amount, err := parseMoney("amount", req.Msg.Amount)
	if err != nil {
		s.metrics.Settlement(metrics.OutcomeRejected)
		return nil, fail("SettleUp failed", err, "group_id", groupID)
	}

	settlement := &models.Settlement{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		Payer:     payer,
		Receiver:  receiver,
		Amount:    amount,
		CreatedBy: middleware.GetPerson(ctx),
		Note:      strings.TrimSpace(req.Msg.Note),
	}

	var owed decimal.Decimal
	l, err := s.ledgers.Update(ctx, groupID, func(l *ledger.Ledger) error {
		if err := requireMember(ctx, l); err != nil {
			return err
		}
		owed, _ = l.Balance(payer, receiver)
		applied, err := l.SettleUp(payer, receiver, amount)
		if err != nil {
			return err
		}
		settlement.Applied = applied
		return s.store.SaveSettlement(ctx, settlement, l.Balances())
	})
	if err != nil {
		s.metrics.Settlement(metrics.OutcomeRejected)
		return nil, fail("SettleUp failed", err, "group_id", groupID, "payer", payer, "receiver", receiver)
	}

	s.metrics.Settlement(settlementOutcome(amount, owed))
	s.metrics.SetOutstanding(groupID, l.Len())

	slog.Info("Settlement recorded",
		"group_id", groupID,
		"settlement_id", settlement.ID,
		"payer", payer,
		"receiver", receiver,
		"amount", money(amount),
		"applied", money(settlement.Applied),
	)
	return connect.NewResponse(&api.SettleUpResponse{
		Settlement: toAPISettlement(settlement),
		Balances:   toAPIBalances(l.Balances()),
	}), nil
}

func settlementOutcome(amount, owed decimal.Decimal) string {
	switch amount.Cmp(owed) {
	case -1:
		return metrics.OutcomePartial
	case 1:
		return metrics.OutcomeOverpaid
	default:
		return metrics.OutcomeCleared
	}
}

// ListBalances returns the group's outstanding balances in storage order and
// each member's totals recomputed from the history.
func (s *LedgerService) ListBalances(ctx context.Context, req *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("ListBalances request received", "group_id", groupID)

	var resp api.ListBalancesResponse
	err := s.ledgers.View(ctx, groupID, func(l *ledger.Ledger) error {
		settlements, err := s.store.ListSettlements(ctx, groupID)
		if err != nil {
			return err
		}
		resp.Balances = toAPIBalances(l.Balances())
		resp.Members = toAPIMemberBalances(calculator.CalculateMemberBalances(l.Members(), l.Expenses(), settlements))
		return nil
	})
	if err != nil {
		return nil, fail("ListBalances failed", err, "group_id", groupID)
	}

	slog.Info("ListBalances successful", "group_id", groupID, "count", len(resp.Balances))
	return connect.NewResponse(&resp), nil
}

// ListExpenses returns the group's expenses and settlements, oldest first.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("ListExpenses request received", "group_id", groupID)

	resp := api.ListExpensesResponse{
		Expenses:    []*api.Expense{},
		Settlements: []*api.Settlement{},
	}
	err := s.ledgers.View(ctx, groupID, func(l *ledger.Ledger) error {
		for _, e := range l.Expenses() {
			resp.Expenses = append(resp.Expenses, toAPIExpense(e))
		}
		settlements, err := s.store.ListSettlements(ctx, groupID)
		if err != nil {
			return err
		}
		for _, st := range settlements {
			resp.Settlements = append(resp.Settlements, toAPISettlement(st))
		}
		return nil
	})
	if err != nil {
		return nil, fail("ListExpenses failed", err, "group_id", groupID)
	}

	slog.Info("ListExpenses successful", "group_id", groupID, "expenses", len(resp.Expenses), "settlements", len(resp.Settlements))
	return connect.NewResponse(&resp), nil
}

// ExportSummary renders every person, group, expense and debt as JSON.
func (s *LedgerService) ExportSummary(ctx context.Context, req *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error) {
	slog.Info("ExportSummary request received")

	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, fail("ExportSummary failed", err)
	}
	data, err := export.Marshal(summary)
	if err != nil {
		return nil, fail("ExportSummary failed", err)
	}

	slog.Info("ExportSummary successful", "groups", len(summary.Groups), "bytes", len(data))
	return connect.NewResponse(&api.ExportSummaryResponse{Summary: string(data)}), nil
}

// Summary collects the export document from the store and the ledgers.
func (s *LedgerService) Summary(ctx context.Context) (*export.Summary, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	states := make([]export.GroupState, 0, len(groups))
	for _, g := range groups {
		state := export.GroupState{Group: g}
		err := s.ledgers.View(ctx, g.ID, func(l *ledger.Ledger) error {
			state.Expenses = l.Expenses()
			state.Balances = l.Balances()
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger for group %s: %w", g.Name, err)
		}
		states = append(states, state)
	}
	return export.Build(people, states), nil
}
