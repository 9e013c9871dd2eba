// Package domain contains the user record and the ports the users module
// depends on. It has no dependencies on outer layers.
package domain

// User is a user record.
//
// ID is zero until the record is first saved; from then on it never changes.
// Name and Email are required; the HTTP layer validates them before a record
// reaches the application layer.
type User struct {
	ID    UserID
	Name  string
	Email string
	Role  string
}

// NewUser creates a record without an id.
func NewUser(name, email, role string) *User {
	return &User{Name: name, Email: email, Role: role}
}

// Clone returns an independent copy of u.
func (u *User) Clone() *User {
	c := *u
	return &c
}
