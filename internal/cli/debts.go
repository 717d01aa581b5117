package cli

import (
	"fmt"
	"io"

	"connectrpc.com/connect"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/splitsmart/pkg/api"
)

type DebtsCmd struct {
	Group   string `arg:"" help:"Group name."`
	Members bool   `short:"m" help:"Also show what each member paid and owes."`
}

func (cmd *DebtsCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.group(cmd.Group)
	if err != nil {
		return report(ctx.Stderr, err)
	}
	resp, err := s.app.Ledger.ListBalances(s.ctx, connect.NewRequest(&api.ListBalancesRequest{GroupID: g.ID}))
	if err != nil {
		return report(ctx.Stderr, err)
	}

	printBalances(ctx.Stdout, resp.Msg.Balances)
	if cmd.Members {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("MEMBER", "PAID", "OWED", "NET")
		for _, m := range resp.Msg.Members {
			t.Row(m.Name, m.TotalPaid, m.TotalOwed, m.NetBalance)
		}
		_, _ = fmt.Fprintln(ctx.Stdout, t.String())
	}
	return nil
}

// printBalances writes one "X owes Y amount" line per balance.
func printBalances(w io.Writer, balances []api.Balance) {
	if len(balances) == 0 {
		_, _ = fmt.Fprintln(w, "No debts in this group.")
		return
	}
	for _, b := range balances {
		_, _ = fmt.Fprintf(w, "%s owes %s %s\n",
			nameStyle.Render(b.Debtor),
			nameStyle.Render(b.Creditor),
			amountStyle.Render(b.Amount),
		)
	}
}
