package cli

import (
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/splitsmart/pkg/api"
)

type GroupCmd struct {
	Create     GroupCreateCmd     `cmd:"" help:"Create a group of registered people."`
	AddMembers GroupAddMembersCmd `cmd:"" name:"add-members" help:"Add registered people to a group."`
	List       GroupListCmd       `cmd:"" help:"List groups and their members."`
}

type GroupCreateCmd struct {
	Name    string   `arg:"" help:"Unique group name."`
	Members []string `arg:"" optional:"" help:"Names of the members."`
}

func (cmd *GroupCreateCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	resp, err := s.app.Groups.CreateGroup(s.ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:    cmd.Name,
		Members: cmd.Members,
	}))
	if err != nil {
		return report(ctx.Stderr, err)
	}

	g := resp.Msg.Group
	printSuccess(ctx.Stdout, fmt.Sprintf("Created group %s with %d member(s)", nameStyle.Render(g.Name), len(g.Members)))
	return nil
}

type GroupAddMembersCmd struct {
	Group   string   `arg:"" help:"Group name."`
	Members []string `arg:"" help:"Names of the people to add."`
}

func (cmd *GroupAddMembersCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.group(cmd.Group)
	if err != nil {
		return report(ctx.Stderr, err)
	}
	resp, err := s.app.Groups.AddMembers(s.ctx, connect.NewRequest(&api.AddMembersRequest{
		GroupID: g.ID,
		Members: cmd.Members,
	}))
	if err != nil {
		return report(ctx.Stderr, err)
	}

	if len(resp.Msg.Added) == 0 {
		printInfof(ctx.Stdout, "Everyone is already in %s", nameStyle.Render(g.Name))
		return nil
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Added %s to %s", strings.Join(resp.Msg.Added, ", "), nameStyle.Render(g.Name)))
	return nil
}

type GroupListCmd struct{}

func (cmd *GroupListCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.open()
	if err != nil {
		return err
	}
	defer s.Close()

	resp, err := s.app.Groups.ListGroups(s.ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		return report(ctx.Stderr, err)
	}
	if len(resp.Msg.Groups) == 0 {
		printInfof(ctx.Stdout, "No groups yet.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("GROUP", "MEMBERS")
	for _, g := range resp.Msg.Groups {
		t.Row(g.Name, strings.Join(g.Members, ", "))
	}
	_, _ = fmt.Fprintln(ctx.Stdout, t.String())
	return nil
}
