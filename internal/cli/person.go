package cli

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/splitsmart/pkg/api"
)

type PersonCmd struct {
	Add  PersonAddCmd  `cmd:"" help:"Register a person."`
	List PersonListCmd `cmd:"" help:"List registered people."`
}

type PersonAddCmd struct {
	Name     string `arg:"" help:"Unique name of the person."`
	Email    string `help:"Email address."`
	Password string `help:"Password for API login. Without one the person cannot log in." env:"SPLITSMART_PASSWORD"`
}

func (cmd *PersonAddCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	resp, err := s.app.People.Register(s.ctx, connect.NewRequest(&api.RegisterRequest{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
	}))
	if err != nil {
		return report(ctx.Stderr, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Registered %s", nameStyle.Render(resp.Msg.Person.Name)))
	return nil
}

type PersonListCmd struct{}

func (cmd *PersonListCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	resp, err := s.app.People.ListPeople(s.ctx, connect.NewRequest(&api.ListPeopleRequest{}))
	if err != nil {
		return report(ctx.Stderr, err)
	}
	if len(resp.Msg.People) == 0 {
		printInfof(ctx.Stdout, "No people registered.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "EMAIL", "LOGIN")
	for _, p := range resp.Msg.People {
		login := "no"
		if p.CanLogin {
			login = "yes"
		}
		t.Row(p.Name, p.Email, login)
	}
	_, _ = fmt.Fprintln(ctx.Stdout, t.String())
	return nil
}
