package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/splitsmart/internal/models"
	"github.com/mmynk/splitsmart/internal/storage"
)

const personColumns = "name, email, password_hash, created_at"

// CreatePerson inserts a new person into the database.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO people (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		person.Name, nullable(person.Email), person.PasswordHash, person.CreatedAt,
	)
	if isConstraint(err) {
		return fmt.Errorf("person %q: %w", person.Name, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	return nil
}

// GetPerson retrieves a person by name.
func (s *SQLiteStore) GetPerson(ctx context.Context, name string) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+personColumns+" FROM people WHERE name = ?", name)
	person, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %q: %w", name, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// GetPersonByEmail retrieves a person by their email address.
func (s *SQLiteStore) GetPersonByEmail(ctx context.Context, email string) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+personColumns+" FROM people WHERE email = ?", email)
	person, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person with email %q: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person by email: %w", err)
	}
	return person, nil
}

// ListPeople returns every registered person ordered by name.
func (s *SQLiteStore) ListPeople(ctx context.Context) ([]*models.Person, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+personColumns+" FROM people ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (*models.Person, error) {
	person := &models.Person{}
	var email sql.NullString
	if err := row.Scan(&person.Name, &email, &person.PasswordHash, &person.CreatedAt); err != nil {
		return nil, err
	}
	person.Email = email.String
	return person, nil
}
