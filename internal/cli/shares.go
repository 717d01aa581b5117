package cli

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/alecthomas/kong"

	"github.com/mmynk/splitsmart/pkg/api"
)

type SharesCmd struct {
	Amount       string            `arg:"" help:"Total amount."`
	Participants []string          `arg:"" help:"Who shares the amount."`
	Split        string            `enum:"equal,unequal,percent" default:"equal" help:"How to split: equal, unequal or percent."`
	Weights      map[string]string `short:"w" help:"Weight or percentage per participant, e.g. 'Alice=60;Bob=40'."`
}

func (cmd *SharesCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	resp, err := s.app.Ledger.CalculateShares(s.ctx, connect.NewRequest(&api.CalculateSharesRequest{
		Amount:       cmd.Amount,
		Participants: cmd.Participants,
		Split:        api.Split{Kind: cmd.Split, Weights: cmd.Weights},
	}))
	if err != nil {
		return report(ctx.Stderr, err)
	}

	for _, share := range resp.Msg.Shares {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s %s\n", nameStyle.Render(share.Participant), amountStyle.Render(share.Amount))
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "Total %s\n", amountStyle.Render(resp.Msg.Total))
	if resp.Msg.Drift != "0.00" {
		printInfof(ctx.Stdout, "Shares differ from the amount by %s after rounding", resp.Msg.Drift)
	}
	return nil
}
