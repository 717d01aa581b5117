// Package service implements the SplitSmart Connect services on top of the
// ledger core and the store.
package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsmart/internal/auth"
	"github.com/mmynk/splitsmart/internal/metrics"
	"github.com/mmynk/splitsmart/internal/storage"
	"github.com/mmynk/splitsmart/pkg/api"
)

// PublicProcedures are reachable without a token when auth is required.
// Everything that changes a group needs an authenticated member.
var PublicProcedures = []string{
	api.PersonServiceRegisterProcedure,
	api.PersonServiceLoginProcedure,
	api.PersonServiceListPeopleProcedure,
	api.GroupServiceGetGroupProcedure,
	api.GroupServiceListGroupsProcedure,
	api.LedgerServiceCalculateSharesProcedure,
	api.LedgerServiceListBalancesProcedure,
	api.LedgerServiceListExpensesProcedure,
	api.LedgerServiceExportSummaryProcedure,
}

// App wires the three services around one store and one ledger registry.
type App struct {
	Store   storage.Store
	Ledgers *Ledgers
	People  *PersonService
	Groups  *GroupService
	Ledger  *LedgerService
}

// NewApp builds the services. m may be nil.
func NewApp(store storage.Store, jwtManager *auth.JWTManager, m *metrics.Metrics) *App {
	ledgers := NewLedgers(store)
	return &App{
		Store:   store,
		Ledgers: ledgers,
		People:  NewPersonService(store, auth.NewPasswordAuthenticator(store), jwtManager),
		Groups:  NewGroupService(store, ledgers),
		Ledger:  NewLedgerService(store, ledgers, m),
	}
}

// Mount registers the Connect handlers on mux.
func (a *App) Mount(mux *http.ServeMux, opts ...connect.HandlerOption) {
	mux.Handle(api.NewPersonServiceHandler(a.People, opts...))
	mux.Handle(api.NewGroupServiceHandler(a.Groups, opts...))
	mux.Handle(api.NewLedgerServiceHandler(a.Ledger, opts...))
}
