package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitsmart/internal/models"
	"github.com/mmynk/splitsmart/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrNameRequired       = errors.New("name is required")
)

// PersonStorage defines the person persistence operations the authenticator needs.
type PersonStorage interface {
	CreatePerson(ctx context.Context, person *models.Person) error
	GetPerson(ctx context.Context, name string) (*models.Person, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage PersonStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage PersonStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a person, hashing the password when one is given.
// Duplicate names or emails surface as storage.ErrAlreadyExists.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, email, credential string) (*models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var hash string
	if credential != "" {
		if err := a.ValidateCredential(credential); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash = string(hashed)
	}

	person := models.NewPerson(name, strings.TrimSpace(email), hash)
	if err := a.storage.CreatePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", name, err)
	}

	return person, nil
}

// Authenticate verifies the name and password, returning the person if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, name, credential string) (*models.Person, error) {
	person, err := a.storage.GetPerson(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !person.CanLogin() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return person, nil
}
