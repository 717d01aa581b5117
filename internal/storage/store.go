// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitsmart/internal/models"
)

var (
	// ErrNotFound is returned when a person, group or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique name or email is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines the persistence operations behind the people registry,
// groups and their ledgers.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreatePerson registers a new person.
	// Returns ErrAlreadyExists if the name or a non-empty email is taken.
	CreatePerson(ctx context.Context, person *models.Person) error

	// GetPerson retrieves a person by name.
	GetPerson(ctx context.Context, name string) (*models.Person, error)

	// GetPersonByEmail retrieves a person by email.
	GetPersonByEmail(ctx context.Context, email string) (*models.Person, error)

	// ListPeople returns every registered person ordered by name.
	ListPeople(ctx context.Context) ([]*models.Person, error)

	// CreateGroup persists a new group. The group.ID field is populated by the
	// store. Every member must be a registered person.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its members in join order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupByName retrieves a group by its unique name.
	GetGroupByName(ctx context.Context, name string) (*models.Group, error)

	// ListGroups returns every group ordered by creation time.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddGroupMembers appends people to a group, keeping join order.
	AddGroupMembers(ctx context.Context, groupID string, names []string) error

	// SaveExpense records an expense and replaces the group's balance snapshot
	// with balances in a single transaction.
	SaveExpense(ctx context.Context, expense *models.Expense, balances []models.Balance) error

	// ListExpenses returns a group's expenses, oldest first.
	ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// SaveSettlement records a settlement and replaces the group's balance
	// snapshot with balances in a single transaction.
	SaveSettlement(ctx context.Context, settlement *models.Settlement, balances []models.Balance) error

	// ListSettlements returns a group's settlements, oldest first.
	ListSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// ListBalances returns a group's balance snapshot in storage order.
	ListBalances(ctx context.Context, groupID string) ([]models.Balance, error)

	// Close releases any resources held by the store.
	Close() error
}
