package cli

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitsmart/pkg/api"
)

type SettleCmd struct {
	Group    string `arg:"" help:"Group name."`
	Payer    string `arg:"" help:"Who pays back."`
	Receiver string `arg:"" help:"Who receives the money."`
	Amount   string `arg:"" help:"Amount paid."`
	Note     string `short:"n" help:"Optional note, e.g. how it was paid."`
}

func (cmd *SettleCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.group(cmd.Group)
	if err != nil {
		return report(ctx.Stderr, err)
	}
	resp, err := s.app.Ledger.SettleUp(s.ctx, connect.NewRequest(&api.SettleUpRequest{
		GroupID:  g.ID,
		Payer:    cmd.Payer,
		Receiver: cmd.Receiver,
		Amount:   cmd.Amount,
		Note:     cmd.Note,
	}))
	if err != nil {
		return report(ctx.Stderr, err)
	}

	st := resp.Msg.Settlement
	printSuccess(ctx.Stdout, fmt.Sprintf("%s paid %s %s",
		nameStyle.Render(st.Payer), nameStyle.Render(st.Receiver), amountStyle.Render(st.Amount)))
	if partlyApplied(st) {
		printInfof(ctx.Stdout, "Only %s was owed, the rest is not credited", st.Applied)
	}
	printBalances(ctx.Stdout, resp.Msg.Balances)
	return nil
}

// partlyApplied reports whether only part of a settlement paid off debt.
func partlyApplied(st *api.Settlement) bool {
	amount, err := decimal.NewFromString(st.Amount)
	if err != nil {
		return false
	}
	applied, err := decimal.NewFromString(st.Applied)
	if err != nil {
		return false
	}
	return applied.LessThan(amount)
}
