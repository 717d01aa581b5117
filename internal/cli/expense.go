package cli

import (
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/pkg/api"
)

type ExpenseCmd struct {
	Add  ExpenseAddCmd  `cmd:"" help:"Record an expense and update the group's debts."`
	List ExpenseListCmd `cmd:"" help:"List a group's expenses and settlements."`
}

type ExpenseAddCmd struct {
	Group        string            `arg:"" help:"Group name."`
	Description  string            `short:"d" help:"What the money was spent on."`
	Amount       string            `short:"a" help:"Total amount paid."`
	Payer        string            `help:"Who paid."`
	Participants []string          `short:"p" help:"Who shares the expense, comma separated."`
	Split        string            `enum:"equal,unequal,percent" default:"equal" help:"How to split: equal, unequal or percent."`
	Weights      map[string]string `short:"w" help:"Weight or percentage per participant, e.g. 'Alice=60;Bob=40'."`
	Interactive  bool              `short:"i" help:"Prompt for the expense details."`
}

func (cmd *ExpenseAddCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.group(cmd.Group)
	if err != nil {
		return report(ctx.Stderr, err)
	}
	if cmd.Interactive {
		if err := cmd.prompt(g.Members); err != nil {
			return report(ctx.Stderr, err)
		}
	}

	resp, err := s.app.Ledger.AddExpense(s.ctx, connect.NewRequest(&api.AddExpenseRequest{
		GroupID:      g.ID,
		Description:  cmd.Description,
		Amount:       cmd.Amount,
		Payer:        cmd.Payer,
		Participants: cmd.Participants,
		Split:        api.Split{Kind: cmd.Split, Weights: cmd.Weights},
	}))
	if err != nil {
		return report(ctx.Stderr, err)
	}

	e := resp.Msg.Expense
	printSuccess(ctx.Stdout, fmt.Sprintf("Added %q: %s paid %s",
		e.Description, nameStyle.Render(e.Payer), amountStyle.Render(e.Amount)))
	for _, share := range e.Shares {
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s %s\n", share.Participant, amountStyle.Render(share.Amount))
	}
	printBalances(ctx.Stdout, resp.Msg.Balances)
	return nil
}

// prompt fills the expense fields from an interactive form.
func (cmd *ExpenseAddCmd) prompt(members []string) error {
	if !isTerminal() {
		return errors.New("--interactive needs a terminal")
	}
	if len(members) == 0 {
		return errors.New("group has no members")
	}

	if cmd.Payer == "" {
		cmd.Payer = members[0]
	}
	if len(cmd.Participants) == 0 {
		cmd.Participants = append([]string(nil), members...)
	}

	options := huh.NewOptions(members...)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(&cmd.Description),
			huh.NewInput().Title("Amount").Value(&cmd.Amount).Validate(validateAmount),
			huh.NewSelect[string]().Title("Paid by").Options(options...).Value(&cmd.Payer),
			huh.NewMultiSelect[string]().Title("Split between").Options(options...).Value(&cmd.Participants),
			huh.NewSelect[string]().Title("Split").
				Options(huh.NewOptions("equal", "unequal", "percent")...).
				Value(&cmd.Split),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to read expense: %w", err)
	}
	if cmd.Split == "equal" {
		return nil
	}

	label := "Weight"
	if cmd.Split == "percent" {
		label = "Percentage"
	}
	values := make([]string, len(cmd.Participants))
	fields := make([]huh.Field, len(cmd.Participants))
	for i, p := range cmd.Participants {
		values[i] = cmd.Weights[p]
		fields[i] = huh.NewInput().
			Title(fmt.Sprintf("%s for %s", label, p)).
			Value(&values[i]).
			Validate(validateWeight)
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("failed to read weights: %w", err)
	}

	cmd.Weights = make(map[string]string, len(values))
	for i, p := range cmd.Participants {
		cmd.Weights[p] = values[i]
	}
	return nil
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("not a number")
	}
	if !d.IsPositive() {
		return errors.New("must be positive")
	}
	if !d.Equal(d.Round(2)) {
		return errors.New("must be in whole cents")
	}
	return nil
}

func validateWeight(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("not a number")
	}
	if d.IsNegative() {
		return errors.New("cannot be negative")
	}
	return nil
}

type ExpenseListCmd struct {
	Group string `arg:"" help:"Group name."`
}

func (cmd *ExpenseListCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.group(cmd.Group)
	if err != nil {
		return report(ctx.Stderr, err)
	}
	resp, err := s.app.Ledger.ListExpenses(s.ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: g.ID}))
	if err != nil {
		return report(ctx.Stderr, err)
	}

	if len(resp.Msg.Expenses) == 0 {
		printInfof(ctx.Stdout, "No expenses in this group.")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("DESCRIPTION", "AMOUNT", "PAID BY", "SPLIT", "BETWEEN")
		for _, e := range resp.Msg.Expenses {
			t.Row(e.Description, e.Amount, e.Payer, e.Split.Kind, strings.Join(e.Participants, ", "))
		}
		_, _ = fmt.Fprintln(ctx.Stdout, t.String())
	}

	if len(resp.Msg.Settlements) > 0 {
		_, _ = fmt.Fprintln(ctx.Stdout, headerStyle.Render("Settlements"))
		for _, st := range resp.Msg.Settlements {
			line := fmt.Sprintf("  %s paid %s %s", st.Payer, st.Receiver, st.Amount)
			if partlyApplied(st) {
				line += fmt.Sprintf(" (%s applied)", st.Applied)
			}
			if st.Note != "" {
				line += " - " + st.Note
			}
			_, _ = fmt.Fprintln(ctx.Stdout, line)
		}
	}
	return nil
}
