package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/internal/models"
)

// SaveExpense persists an expense with its shares and split weights and
// replaces the group's balance snapshot, all in one transaction.
func (s *SQLiteStore) SaveExpense(ctx context.Context, expense *models.Expense, balances []models.Balance) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Policy == nil {
		return fmt.Errorf("expense %s has no split policy", expense.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, payer, split_type, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount.String(), expense.Payer,
		string(expense.Policy.Kind()), expense.CreatedAt, expense.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, name := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, name, share) VALUES (?, ?, ?, ?)",
			expense.ID, i, name, expense.Share(name).String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	for name, weight := range models.PolicyWeights(expense.Policy) {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_weights (expense_id, name, weight) VALUES (?, ?, ?)",
			expense.ID, name, weight.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense weight: %w", err)
		}
	}

	if err := replaceBalances(ctx, tx, expense.GroupID, balances); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenses returns a group's expenses, oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, payer, split_type, created_at, created_by
		 FROM expenses WHERE group_id = ? ORDER BY created_at, rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	type row struct {
		expense *models.Expense
		kind    string
	}
	var found []row
	for rows.Next() {
		e := &models.Expense{}
		var amount, kind string
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Description, &amount, &e.Payer, &kind, &e.CreatedAt, &e.CreatedBy); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("expense %s has malformed amount %q: %w", e.ID, amount, err)
		}
		found = append(found, row{expense: e, kind: kind})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	expenses := make([]*models.Expense, 0, len(found))
	for _, r := range found {
		e := r.expense
		if e.Participants, e.Shares, err = s.expenseShares(ctx, e.ID); err != nil {
			return nil, err
		}
		weights, err := s.expenseWeights(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		if e.Policy, err = models.NewSplitPolicy(models.SplitKind(r.kind), weights); err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (s *SQLiteStore) expenseShares(ctx context.Context, expenseID string) ([]string, map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, share FROM expense_participants WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	shares := make(map[string]decimal.Decimal)
	for rows.Next() {
		var name string
		var share decimal.Decimal
		if err := rows.Scan(&name, &share); err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		participants = append(participants, name)
		shares[name] = share
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}
	return participants, shares, nil
}

func (s *SQLiteStore) expenseWeights(ctx context.Context, expenseID string) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, weight FROM expense_weights WHERE expense_id = ?", expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense weights: %w", err)
	}
	defer rows.Close()

	var weights map[string]decimal.Decimal
	for rows.Next() {
		var name string
		var weight decimal.Decimal
		if err := rows.Scan(&name, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan expense weight: %w", err)
		}
		if weights == nil {
			weights = make(map[string]decimal.Decimal)
		}
		weights[name] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense weights: %w", err)
	}
	return weights, nil
}

// ListBalances returns a group's balance snapshot in storage order.
func (s *SQLiteStore) ListBalances(ctx context.Context, groupID string) ([]models.Balance, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT debtor, creditor, amount FROM balances WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var balances []models.Balance
	for rows.Next() {
		var b models.Balance
		if err := rows.Scan(&b.Debtor, &b.Creditor, &b.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}
	return balances, nil
}

// replaceBalances overwrites the group's snapshot with balances, keeping order.
func replaceBalances(ctx context.Context, tx *sql.Tx, groupID string, balances []models.Balance) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM balances WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to clear balances: %w", err)
	}
	for i, b := range balances {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO balances (group_id, position, debtor, creditor, amount) VALUES (?, ?, ?, ?, ?)",
			groupID, i, b.Debtor, b.Creditor, b.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert balance: %w", err)
		}
	}
	return nil
}
