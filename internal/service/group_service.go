package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsmart/internal/ledger"
	"github.com/mmynk/splitsmart/internal/middleware"
	"github.com/mmynk/splitsmart/internal/models"
	"github.com/mmynk/splitsmart/internal/storage"
	"github.com/mmynk/splitsmart/pkg/api"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store   storage.Store
	ledgers *Ledgers
}

// NewGroupService creates a new GroupService with the given storage backend
// and shared ledger registry.
func NewGroupService(store storage.Store, ledgers *Ledgers) *GroupService {
	return &GroupService{store: store, ledgers: ledgers}
}

// CreateGroup creates a new group. Every member must be registered.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, fail("CreateGroup failed", fmt.Errorf("%w: group name is required", errInvalidArgument))
	}

	group := &models.Group{
		Name:    name,
		Members: cleanNames(req.Msg.Members),
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fail("CreateGroup failed", err, "name", name)
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID, or by name when no ID is given.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	var group *models.Group
	var err error
	switch {
	case req.Msg.GroupID != "":
		group, err = s.store.GetGroup(ctx, req.Msg.GroupID)
	case strings.TrimSpace(req.Msg.Name) != "":
		group, err = s.store.GetGroupByName(ctx, strings.TrimSpace(req.Msg.Name))
	default:
		err = fmt.Errorf("%w: group id or name is required", errInvalidArgument)
	}
	if err != nil {
		return nil, fail("GetGroup failed", err, "group_id", req.Msg.GroupID, "name", req.Msg.Name)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)
	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, fail("ListGroups failed", err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMembers adds registered people to a group. Membership only grows;
// names already in the group are ignored.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("AddMembers request received",
		"group_id", groupID,
		"members_count", len(req.Msg.Members),
	)

	var added []string
	l, err := s.ledgers.Update(ctx, groupID, func(l *ledger.Ledger) error {
		if err := requireMember(ctx, l); err != nil {
			return err
		}
		added = l.AddMembers(cleanNames(req.Msg.Members)...)
		if len(added) == 0 {
			return nil
		}
		return s.store.AddGroupMembers(ctx, groupID, added)
	})
	if err != nil {
		return nil, fail("AddMembers failed", err, "group_id", groupID)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fail("Failed to fetch updated group", err, "group_id", groupID)
	}

	if added == nil {
		added = []string{}
	}
	slog.Info("Members added", "group_id", groupID, "added", added, "members_count", len(l.Members()))
	return connect.NewResponse(&api.AddMembersResponse{
		Group: toAPIGroup(group),
		Added: added,
	}), nil
}

// requireMember rejects authenticated callers outside the ledger's group.
// Anonymous calls are allowed; RequireAuth decides whether they get this far.
func requireMember(ctx context.Context, l *ledger.Ledger) error {
	caller := middleware.GetPerson(ctx)
	if caller != "" && !l.HasMember(caller) {
		return fmt.Errorf("%w: %s", errNotMember, caller)
	}
	return nil
}
