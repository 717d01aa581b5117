package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsmart/internal/auth"
	"github.com/mmynk/splitsmart/internal/calculator"
	"github.com/mmynk/splitsmart/internal/ledger"
	"github.com/mmynk/splitsmart/internal/models"
	"github.com/mmynk/splitsmart/internal/storage"
)

var (
	// errInvalidArgument marks malformed request fields.
	errInvalidArgument = errors.New("invalid argument")

	// errNotMember is returned when the caller does not belong to the group.
	errNotMember = errors.New("caller is not a member of the group")
)

// codeOf maps domain and storage errors to Connect codes.
func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, errInvalidArgument),
		errors.Is(err, calculator.ErrInvalidSplit),
		errors.Is(err, models.ErrUnknownSplitKind),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidParty),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrNameRequired):
		return connect.CodeInvalidArgument
	case errors.Is(err, ledger.ErrNoSuchDebt):
		return connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, errNotMember):
		return connect.CodePermissionDenied
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.CodeUnauthenticated
	case errors.Is(err, ledger.ErrCorrupt):
		return connect.CodeDataLoss
	default:
		return connect.CodeInternal
	}
}

// fail logs a failed request and converts err into a Connect error.
// Client mistakes log at warn, everything else at error.
func fail(msg string, err error, attrs ...any) error {
	code := codeOf(err)
	attrs = append(attrs, "code", code, "error", err)
	if code == connect.CodeInternal || code == connect.CodeDataLoss {
		slog.Error(msg, attrs...)
	} else {
		slog.Warn(msg, attrs...)
	}
	return connect.NewError(code, err)
}
