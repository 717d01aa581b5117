package auth

import (
	"context"

	"github.com/mmynk/splitsmart/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register adds a person to the registry. An empty credential registers
	// someone who can take part in expenses but cannot log in.
	Register(ctx context.Context, name, email, credential string) (*models.Person, error)

	// Authenticate verifies the person's credentials and returns them if successful.
	Authenticate(ctx context.Context, name, credential string) (*models.Person, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
