package entity

import "time"

// User represents an account row in the `accounts` table.
type User struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	// Slug is derived from the email and never set directly.
	Slug string `db:"slug" json:"slug"`
	// PasswordHash is nullable: accounts provisioned externally may have no
	// local credential until one is issued.
	PasswordHash *string   `db:"password_hash" json:"-"`
	Image        *string   `db:"image" json:"image,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
	Roles        []Role    `db:"-" json:"roles,omitempty"`
}

// Role is immutable reference data assigned to accounts many-to-many. Its
// slug is the value carried in role claims.
type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// SlugFromEmail derives the URL-safe account slug: the email lower-cased with
// '@' and '.' replaced by '-'. The substitution is part of the account
// contract, so no general-purpose slug library is used here.
func SlugFromEmail(email string) string {
	b := []byte(email)
	for i, c := range b {
		switch {
		case c == '@' || c == '.':
			b[i] = '-'
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
