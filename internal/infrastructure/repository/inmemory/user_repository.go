package inmemory

import (
	"context"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/user"
)

// UserRepository is the in-memory user.Repository.
type UserRepository struct {
	store *Store
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) GetOrCreate(ctx context.Context, username string) (*user.User, error) {
	var found user.User
	err := r.store.write(ctx, func(data *state) error {
		for _, u := range data.users {
			if u.Username == username {
				found = u
				return nil
			}
		}
		found = user.User{
			ID:        r.store.newID(data),
			Username:  username,
			CreatedAt: r.store.now(),
		}
		data.users[found.ID] = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}
