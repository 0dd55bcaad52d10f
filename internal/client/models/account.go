// Package models defines the client-side data model: accounts, the session
// projection, and tickets.
package models

import "time"

// Account is a registered user identity. Accounts are created once at
// registration and never mutated or deleted afterwards.
type Account struct {
	// ID is an opaque unique identifier, stable for the account's lifetime.
	ID string `json:"id"`

	Name  string `json:"name"`
	Email string `json:"email"`

	// SecretHash is the argon2id digest of the account secret. The plaintext
	// secret is never persisted.
	SecretHash string `json:"passwordSecret"`

	CreatedAt time.Time `json:"createdAt"`
}

// Session is the public projection of an authenticated account. Credential
// material is deliberately excluded: this is the only account view that gets
// persisted under the session key or handed to consumers.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Projection reduces an account to its session view.
func (a Account) Projection() Session {
	return Session{ID: a.ID, Name: a.Name, Email: a.Email}
}
