package models

import "time"

// Person represents someone who can pay for or share expenses.
// A Person is never mutated after creation.
type Person struct {
	// Name is the unique identity of the person.
	Name string

	// Email is display metadata. It is unique when non-empty.
	Email string

	// PasswordHash is the bcrypt hash used for API login.
	// Empty for people registered without credentials; they can take part in
	// expenses but cannot log in.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the person was registered.
	CreatedAt int64
}

// NewPerson creates a Person stamped with the current time.
func NewPerson(name, email, passwordHash string) *Person {
	return &Person{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// CanLogin reports whether the person has credentials.
func (p *Person) CanLogin() bool {
	return p.PasswordHash != ""
}
