package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/alecthomas/assert/v2"

	"github.com/mmynk/splitsmart/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "Alice", "Bob", "Charlie")

	resp, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Roommates",
		Members: []string{"Alice", "Bob", " Alice ", "Charlie"},
	}))
	assert.NoError(t, err)
	assert.NotEqual(t, "", resp.Msg.Group.ID)
	assert.Equal(t, "Roommates", resp.Msg.Group.Name)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, resp.Msg.Group.Members)
	assert.NotZero(t, resp.Msg.Group.CreatedAt)
}

func TestCreateGroup_Errors(t *testing.T) {
	env := setupTestServer(t)
	env.newGroup(t, "Trip", "Alice")
	ctx := context.Background()

	_, err := env.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "  "}))
	assertCode(t, connect.CodeInvalidArgument, err)

	_, err = env.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Trip"}))
	assertCode(t, connect.CodeAlreadyExists, err)

	_, err = env.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Ghosts", Members: []string{"Casper"}}))
	assertCode(t, connect.CodeNotFound, err)
}

func TestGetGroup(t *testing.T) {
	env := setupTestServer(t)
	id := env.newGroup(t, "Work Lunch", "Diana", "Eve")
	ctx := context.Background()

	byID, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: id}))
	assert.NoError(t, err)
	assert.Equal(t, "Work Lunch", byID.Msg.Group.Name)
	assert.Equal(t, []string{"Diana", "Eve"}, byID.Msg.Group.Members)

	byName, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{Name: "Work Lunch"}))
	assert.NoError(t, err)
	assert.Equal(t, id, byName.Msg.Group.ID)
}

func TestGetGroup_NotFound(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: "nonexistent-id"}))
	assertCode(t, connect.CodeNotFound, err)

	_, err = env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{Name: "Nope"}))
	assertCode(t, connect.CodeNotFound, err)

	_, err = env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{}))
	assertCode(t, connect.CodeInvalidArgument, err)
}

func TestListGroups(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	empty, err := env.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(empty.Msg.Groups))

	env.newGroup(t, "Group A", "A1", "A2")
	env.newGroup(t, "Group B", "B1", "B2")

	resp, err := env.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(resp.Msg.Groups))
	assert.Equal(t, "Group A", resp.Msg.Groups[0].Name)
	assert.Equal(t, []string{"B1", "B2"}, resp.Msg.Groups[1].Members)
}

func TestAddMembers(t *testing.T) {
	env := setupTestServer(t)
	id := env.newGroup(t, "Trip", "Alice", "Bob")
	env.register(t, "Charlie", "Mallory")
	ctx := context.Background()

	t.Run("appends new members only", func(t *testing.T) {
		resp, err := env.groups.AddMembers(ctx, as("Alice", &api.AddMembersRequest{
			GroupID: id,
			Members: []string{"Bob", "Charlie"},
		}))
		assert.NoError(t, err)
		assert.Equal(t, []string{"Charlie"}, resp.Msg.Added)
		assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, resp.Msg.Group.Members)
	})

	t.Run("new member can take part in expenses", func(t *testing.T) {
		_, err := env.ledger.AddExpense(ctx, as("Charlie", &api.AddExpenseRequest{
			GroupID:      id,
			Description:  "Fuel",
			Amount:       "30",
			Payer:        "Charlie",
			Participants: []string{"Alice", "Bob", "Charlie"},
		}))
		assert.NoError(t, err)
	})

	t.Run("nothing new is a no-op", func(t *testing.T) {
		resp, err := env.groups.AddMembers(ctx, as("Alice", &api.AddMembersRequest{GroupID: id, Members: []string{"Alice"}}))
		assert.NoError(t, err)
		assert.Equal(t, 0, len(resp.Msg.Added))
	})

	t.Run("unregistered person", func(t *testing.T) {
		_, err := env.groups.AddMembers(ctx, as("Alice", &api.AddMembersRequest{GroupID: id, Members: []string{"Zed"}}))
		assertCode(t, connect.CodeNotFound, err)

		// The failed write must not leak into the cached ledger.
		_, err = env.ledger.AddExpense(ctx, as("Alice", &api.AddExpenseRequest{
			GroupID: id, Amount: "10", Payer: "Alice", Participants: []string{"Zed"},
		}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("caller outside the group", func(t *testing.T) {
		_, err := env.groups.AddMembers(ctx, as("Mallory", &api.AddMembersRequest{GroupID: id, Members: []string{"Mallory"}}))
		assertCode(t, connect.CodePermissionDenied, err)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := env.groups.AddMembers(ctx, as("Alice", &api.AddMembersRequest{GroupID: "missing", Members: []string{"Bob"}}))
		assertCode(t, connect.CodeNotFound, err)
	})
}
