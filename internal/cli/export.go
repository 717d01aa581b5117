package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mmynk/splitsmart/internal/export"
)

type ExportCmd struct {
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout."`
}

func (cmd *ExportCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.app.Ledger.Summary(s.ctx)
	if err != nil {
		return report(ctx.Stderr, err)
	}

	if cmd.Output == "" {
		return export.Write(ctx.Stdout, summary)
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return report(ctx.Stderr, err)
	}
	if err := export.Write(f, summary); err != nil {
		f.Close()
		return report(ctx.Stderr, err)
	}
	if err := f.Close(); err != nil {
		return report(ctx.Stderr, err)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Exported %d group(s) to %s", len(summary.Groups), cmd.Output))
	return nil
}
