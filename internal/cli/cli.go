// Package cli implements the splitsmart command-line interface. Commands run
// in-process against the SQLite store through the service layer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"connectrpc.com/connect"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/splitsmart/internal/auth"
	"github.com/mmynk/splitsmart/internal/config"
	"github.com/mmynk/splitsmart/internal/middleware"
	"github.com/mmynk/splitsmart/internal/service"
	"github.com/mmynk/splitsmart/internal/storage/sqlite"
	"github.com/mmynk/splitsmart/pkg/api"
	"github.com/mmynk/splitsmart/pkg/logging"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	nameStyle    = lipgloss.NewStyle().Bold(true)
	amountStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7875F", Dark: "#FFAF5F"})
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

// Globals defines global flags available to all commands.
type Globals struct {
	DB       string `help:"SQLite database path." env:"DB_PATH" default:"./data/splitsmart.db" type:"path"`
	As       string `help:"Act as this person. Mutations are then checked against group membership." env:"SPLITSMART_AS"`
	LogLevel string `help:"Log level for service logs (debug, info, warn, error)." env:"LOG_LEVEL" default:"error"`
}

// session is one open store with the services wired around it.
type session struct {
	app   *service.App
	store *sqlite.SQLiteStore
	ctx   context.Context
}

// open connects to the database and builds the services in-process.
func (g *Globals) open() (*session, error) {
	logging.SetupWithLevel(logging.ParseLevel(g.LogLevel))

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(g.DB)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if g.As != "" {
		ctx = middleware.WithPerson(ctx, g.As, "")
	}
	return &session{
		app:   service.NewApp(store, auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL), nil),
		store: store,
		ctx:   ctx,
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// group resolves a group by name.
func (s *session) group(name string) (*api.Group, error) {
	resp, err := s.app.Groups.GetGroup(s.ctx, connect.NewRequest(&api.GetGroupRequest{Name: name}))
	if err != nil {
		return nil, err
	}
	return resp.Msg.Group, nil
}

// CommandError signals a command failure with a specific exit code.
// Commands return this after printing their own error output.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// report prints err to w and turns it into a CommandError. Connect errors
// are shown by message only.
func report(w io.Writer, err error) error {
	msg := err.Error()
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		msg = connectErr.Message()
	}
	printError(w, msg)
	return NewCommandError(1)
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
