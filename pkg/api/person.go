package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PersonServiceName is the fully-qualified name of the PersonService service.
const PersonServiceName = "splitsmart.v1.PersonService"

const (
	PersonServiceRegisterProcedure   = "/" + PersonServiceName + "/Register"
	PersonServiceLoginProcedure      = "/" + PersonServiceName + "/Login"
	PersonServiceListPeopleProcedure = "/" + PersonServiceName + "/ListPeople"
)

// PersonServiceHandler is implemented by the server side of PersonService.
type PersonServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
}

// NewPersonServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewPersonServiceHandler(svc PersonServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	register := connect.NewUnaryHandler(PersonServiceRegisterProcedure, svc.Register, opts...)
	login := connect.NewUnaryHandler(PersonServiceLoginProcedure, svc.Login, opts...)
	listPeople := connect.NewUnaryHandler(PersonServiceListPeopleProcedure, svc.ListPeople, opts...)

	return "/" + PersonServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PersonServiceRegisterProcedure:
			register.ServeHTTP(w, r)
		case PersonServiceLoginProcedure:
			login.ServeHTTP(w, r)
		case PersonServiceListPeopleProcedure:
			listPeople.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PersonServiceClient is a client for PersonService.
type PersonServiceClient interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
}

type personServiceClient struct {
	register   *connect.Client[RegisterRequest, RegisterResponse]
	login      *connect.Client[LoginRequest, LoginResponse]
	listPeople *connect.Client[ListPeopleRequest, ListPeopleResponse]
}

// NewPersonServiceClient constructs a client for PersonService at baseURL.
func NewPersonServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PersonServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &personServiceClient{
		register:   connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+PersonServiceRegisterProcedure, opts...),
		login:      connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+PersonServiceLoginProcedure, opts...),
		listPeople: connect.NewClient[ListPeopleRequest, ListPeopleResponse](httpClient, baseURL+PersonServiceListPeopleProcedure, opts...),
	}
}

func (c *personServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *personServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *personServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}
