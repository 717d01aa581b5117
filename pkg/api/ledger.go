package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "splitsmart.v1.LedgerService"

const (
	LedgerServiceCalculateSharesProcedure = "/" + LedgerServiceName + "/CalculateShares"
	LedgerServiceAddExpenseProcedure      = "/" + LedgerServiceName + "/AddExpense"
	LedgerServiceSettleUpProcedure        = "/" + LedgerServiceName + "/SettleUp"
	LedgerServiceListBalancesProcedure    = "/" + LedgerServiceName + "/ListBalances"
	LedgerServiceListExpensesProcedure    = "/" + LedgerServiceName + "/ListExpenses"
	LedgerServiceExportSummaryProcedure   = "/" + LedgerServiceName + "/ExportSummary"
)

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	CalculateShares(context.Context, *connect.Request[CalculateSharesRequest]) (*connect.Response[CalculateSharesResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	SettleUp(context.Context, *connect.Request[SettleUpRequest]) (*connect.Response[SettleUpResponse], error)
	ListBalances(context.Context, *connect.Request[ListBalancesRequest]) (*connect.Response[ListBalancesResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	ExportSummary(context.Context, *connect.Request[ExportSummaryRequest]) (*connect.Response[ExportSummaryResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	routes := map[string]http.Handler{
		LedgerServiceCalculateSharesProcedure: connect.NewUnaryHandler(LedgerServiceCalculateSharesProcedure, svc.CalculateShares, opts...),
		LedgerServiceAddExpenseProcedure:      connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceSettleUpProcedure:        connect.NewUnaryHandler(LedgerServiceSettleUpProcedure, svc.SettleUp, opts...),
		LedgerServiceListBalancesProcedure:    connect.NewUnaryHandler(LedgerServiceListBalancesProcedure, svc.ListBalances, opts...),
		LedgerServiceListExpensesProcedure:    connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...),
		LedgerServiceExportSummaryProcedure:   connect.NewUnaryHandler(LedgerServiceExportSummaryProcedure, svc.ExportSummary, opts...),
	}

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// LedgerServiceClient is a client for LedgerService.
type LedgerServiceClient interface {
	CalculateShares(context.Context, *connect.Request[CalculateSharesRequest]) (*connect.Response[CalculateSharesResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	SettleUp(context.Context, *connect.Request[SettleUpRequest]) (*connect.Response[SettleUpResponse], error)
	ListBalances(context.Context, *connect.Request[ListBalancesRequest]) (*connect.Response[ListBalancesResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	ExportSummary(context.Context, *connect.Request[ExportSummaryRequest]) (*connect.Response[ExportSummaryResponse], error)
}

type ledgerServiceClient struct {
	calculateShares *connect.Client[CalculateSharesRequest, CalculateSharesResponse]
	addExpense      *connect.Client[AddExpenseRequest, AddExpenseResponse]
	settleUp        *connect.Client[SettleUpRequest, SettleUpResponse]
	listBalances    *connect.Client[ListBalancesRequest, ListBalancesResponse]
	listExpenses    *connect.Client[ListExpensesRequest, ListExpensesResponse]
	exportSummary   *connect.Client[ExportSummaryRequest, ExportSummaryResponse]
}

// NewLedgerServiceClient constructs a client for LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		calculateShares: connect.NewClient[CalculateSharesRequest, CalculateSharesResponse](httpClient, baseURL+LedgerServiceCalculateSharesProcedure, opts...),
		addExpense:      connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		settleUp:        connect.NewClient[SettleUpRequest, SettleUpResponse](httpClient, baseURL+LedgerServiceSettleUpProcedure, opts...),
		listBalances:    connect.NewClient[ListBalancesRequest, ListBalancesResponse](httpClient, baseURL+LedgerServiceListBalancesProcedure, opts...),
		listExpenses:    connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		exportSummary:   connect.NewClient[ExportSummaryRequest, ExportSummaryResponse](httpClient, baseURL+LedgerServiceExportSummaryProcedure, opts...),
	}
}

func (c *ledgerServiceClient) CalculateShares(ctx context.Context, req *connect.Request[CalculateSharesRequest]) (*connect.Response[CalculateSharesResponse], error) {
	return c.calculateShares.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SettleUp(ctx context.Context, req *connect.Request[SettleUpRequest]) (*connect.Response[SettleUpResponse], error) {
	return c.settleUp.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListBalances(ctx context.Context, req *connect.Request[ListBalancesRequest]) (*connect.Response[ListBalancesResponse], error) {
	return c.listBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ExportSummary(ctx context.Context, req *connect.Request[ExportSummaryRequest]) (*connect.Response[ExportSummaryResponse], error) {
	return c.exportSummary.CallUnary(ctx, req)
}
