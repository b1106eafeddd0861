package user

import "time"

// User owns conversations. Users are created the first time their username is seen.
type User struct {
	ID        uint
	Username  string
	Email     *string
	CreatedAt time.Time
}
