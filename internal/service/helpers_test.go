package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/assert/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/splitsmart/internal/auth"
	"github.com/mmynk/splitsmart/internal/metrics"
	"github.com/mmynk/splitsmart/internal/middleware"
	"github.com/mmynk/splitsmart/internal/storage/sqlite"
	"github.com/mmynk/splitsmart/pkg/api"
)

const testPersonHeader = "X-Test-Person"

// testAuthInterceptor injects the identity named in a test header,
// standing in for a validated token.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if name := req.Header().Get(testPersonHeader); name != "" {
				ctx = middleware.WithPerson(ctx, name, "")
			}
			return next(ctx, req)
		}
	}
}

// as builds a request made by the named person.
func as[T any](name string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testPersonHeader, name)
	return req
}

type testEnv struct {
	people   api.PersonServiceClient
	groups   api.GroupServiceClient
	ledger   api.LedgerServiceClient
	app      *App
	store    *sqlite.SQLiteStore
	dbPath   string
	jwt      *auth.JWTManager
	metrics  *metrics.Metrics
	registry *prometheus.Registry
}

// setupTestServer starts the services on a temp database behind an
// httptest server. interceptors default to testAuthInterceptor.
func setupTestServer(t *testing.T, interceptors ...connect.Interceptor) *testEnv {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "test-*.db")
	assert.NoError(t, err)
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	assert.NoError(t, err)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	app := NewApp(store, jwtManager, m)

	if len(interceptors) == 0 {
		interceptors = []connect.Interceptor{testAuthInterceptor()}
	}
	interceptors = append(interceptors, middleware.MetricsInterceptor(m))

	mux := http.NewServeMux()
	app.Mount(mux, connect.WithInterceptors(interceptors...))
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		people:   api.NewPersonServiceClient(http.DefaultClient, server.URL),
		groups:   api.NewGroupServiceClient(http.DefaultClient, server.URL),
		ledger:   api.NewLedgerServiceClient(http.DefaultClient, server.URL),
		app:      app,
		store:    store,
		dbPath:   tmpFile.Name(),
		jwt:      jwtManager,
		metrics:  m,
		registry: registry,
	}
}

// register adds people without passwords.
func (e *testEnv) register(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := e.people.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{Name: n}))
		assert.NoError(t, err)
	}
}

// newGroup registers members and creates a group of them.
func (e *testEnv) newGroup(t *testing.T, name string, members ...string) string {
	t.Helper()
	e.register(t, members...)
	resp, err := e.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    name,
		Members: members,
	}))
	assert.NoError(t, err)
	return resp.Msg.Group.ID
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err))
}
