package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsmart/internal/auth"
	"github.com/mmynk/splitsmart/internal/storage"
	"github.com/mmynk/splitsmart/pkg/api"
)

// PersonService implements the Connect PersonService: the registry of
// people and their logins.
type PersonService struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewPersonService creates a new PersonService.
func NewPersonService(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *PersonService {
	return &PersonService{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register adds a person. A token is returned when a password was given.
func (s *PersonService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	slog.Info("Register request received", "name", req.Msg.Name, "email", req.Msg.Email)

	person, err := s.authenticator.Register(ctx, req.Msg.Name, req.Msg.Email, req.Msg.Password)
	if err != nil {
		return nil, fail("Register failed", err, "name", req.Msg.Name)
	}

	resp := &api.RegisterResponse{Person: toAPIPerson(person)}
	if person.CanLogin() {
		if resp.Token, err = s.jwtManager.Generate(person); err != nil {
			return nil, fail("Failed to generate token", err, "name", person.Name)
		}
	}

	slog.Info("Person registered", "name", person.Name, "can_login", person.CanLogin())
	return connect.NewResponse(resp), nil
}

// Login authenticates a person and returns a JWT token.
func (s *PersonService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	slog.Info("Login request received", "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" || req.Msg.Password == "" {
		return nil, fail("Login failed", auth.ErrInvalidCredentials, "name", name)
	}

	person, err := s.authenticator.Authenticate(ctx, name, req.Msg.Password)
	if err != nil {
		return nil, fail("Login failed", err, "name", name)
	}

	token, err := s.jwtManager.Generate(person)
	if err != nil {
		return nil, fail("Failed to generate token", err, "name", person.Name)
	}

	slog.Info("Person logged in", "name", person.Name)
	return connect.NewResponse(&api.LoginResponse{
		Person: toAPIPerson(person),
		Token:  token,
	}), nil
}

// ListPeople returns every registered person ordered by name.
func (s *PersonService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	slog.Info("ListPeople request received")

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, fail("ListPeople failed", err)
	}

	out := make([]*api.Person, len(people))
	for i, p := range people {
		out[i] = toAPIPerson(p)
	}

	slog.Info("ListPeople successful", "count", len(out))
	return connect.NewResponse(&api.ListPeopleResponse{People: out}), nil
}
