package user

import "context"

// Repository exposes data access for users.
type Repository interface {
	// GetOrCreate returns the user with username, inserting it when missing.
	GetOrCreate(ctx context.Context, username string) (*User, error)
}
