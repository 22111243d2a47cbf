// Package models defines the persistent entities of the journal service.
package models

import "time"

// User is an owner identity keyed by a unique email address. Re-registering
// the same email updates DisplayName instead of erroring.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
