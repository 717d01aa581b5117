package cli

import "github.com/alecthomas/kong"

// Set via ldflags when building.
var (
	Version   = ""
	CommitSHA = ""
)

// Commands is the root command tree.
type Commands struct {
	Globals

	Version kong.VersionFlag `help:"Show version information."`

	Person  PersonCmd  `cmd:"" help:"Register and list people."`
	Group   GroupCmd   `cmd:"" help:"Create groups and manage their members."`
	Expense ExpenseCmd `cmd:"" help:"Record and list shared expenses."`
	Shares  SharesCmd  `cmd:"" help:"Preview how an amount would be split without recording it."`
	Debts   DebtsCmd   `cmd:"" help:"Show who owes whom in a group."`
	Settle  SettleCmd  `cmd:"" help:"Record a repayment between two members."`
	Export  ExportCmd  `cmd:"" help:"Export people, groups, expenses and debts as JSON."`
}
