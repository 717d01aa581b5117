package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/mmynk/splitsmart/internal/models"
	"github.com/mmynk/splitsmart/internal/storage"
)

type memoryPeople map[string]*models.Person

func (m memoryPeople) CreatePerson(_ context.Context, p *models.Person) error {
	if _, ok := m[p.Name]; ok {
		return fmt.Errorf("person %q: %w", p.Name, storage.ErrAlreadyExists)
	}
	m[p.Name] = p
	return nil
}

func (m memoryPeople) GetPerson(_ context.Context, name string) (*models.Person, error) {
	p, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("person %q: %w", name, storage.ErrNotFound)
	}
	return p, nil
}

func TestJWTManager(t *testing.T) {
	person := &models.Person{Name: "Alice", Email: "alice@example.com"}

	t.Run("round trip", func(t *testing.T) {
		m := NewJWTManager("secret", time.Hour)
		token, err := m.Generate(person)
		assert.NoError(t, err)

		claims, err := m.Validate(token)
		assert.NoError(t, err)
		assert.Equal(t, "Alice", claims.Name)
		assert.Equal(t, "Alice", claims.Subject)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager("secret", time.Hour).Generate(person)
		assert.NoError(t, err)
		_, err = NewJWTManager("other", time.Hour).Validate(token)
		assert.IsError(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		m := NewJWTManager("secret", -time.Minute)
		token, err := m.Generate(person)
		assert.NoError(t, err)
		_, err = m.Validate(token)
		assert.IsError(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewJWTManager("secret", time.Hour).Validate("not-a-token")
		assert.IsError(t, err, ErrInvalidToken)
	})
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	people := memoryPeople{}
	a := NewPasswordAuthenticator(people)

	t.Run("register with password", func(t *testing.T) {
		p, err := a.Register(ctx, " Alice ", "alice@example.com", "correct horse")
		assert.NoError(t, err)
		assert.Equal(t, "Alice", p.Name)
		assert.True(t, p.CanLogin())
		assert.NotEqual(t, "correct horse", p.PasswordHash)
	})

	t.Run("register without password", func(t *testing.T) {
		p, err := a.Register(ctx, "Bob", "", "")
		assert.NoError(t, err)
		assert.False(t, p.CanLogin())
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "Charlie", "", "short")
		assert.IsError(t, err, ErrWeakPassword)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := a.Register(ctx, "  ", "", "")
		assert.IsError(t, err, ErrNameRequired)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := a.Register(ctx, "Alice", "", "")
		assert.IsError(t, err, storage.ErrAlreadyExists)
	})

	t.Run("authenticate", func(t *testing.T) {
		p, err := a.Authenticate(ctx, "Alice", "correct horse")
		assert.NoError(t, err)
		assert.Equal(t, "Alice", p.Name)

		_, err = a.Authenticate(ctx, "Alice", "wrong password")
		assert.IsError(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, "Bob", "")
		assert.IsError(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, "Nobody", "whatever1")
		assert.IsError(t, err, ErrInvalidCredentials)
	})
}
