package user

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// DefaultCacheSize bounds the username to id cache.
const DefaultCacheSize = 1024

// Resolver maps a caller identity to a user id, creating the user on first use.
type Resolver struct {
	repo  Repository
	cache *lru.Cache
	group singleflight.Group
	log   zerolog.Logger
}

// NewResolver builds a caching resolver over repo.
func NewResolver(repo Repository, cacheSize int, log zerolog.Logger) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "user-resolver").Logger(),
	}, nil
}

// Resolve returns the id of the user named username.
func (r *Resolver) Resolve(ctx context.Context, username string) (uint, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"caller identity is missing", nil, "9a7e21c4-0b3f-4d8e-b6a1-53f0c2d9e101")
	}

	if cached, ok := r.cache.Get(username); ok {
		return cached.(uint), nil
	}

	value, err, _ := r.group.Do(username, func() (interface{}, error) {
		// Shared by every waiter, so one caller cancelling must not fail the rest.
		u, err := r.repo.GetOrCreate(context.WithoutCancel(ctx), username)
		if err != nil {
			return uint(0), err
		}
		r.cache.Add(username, u.ID)
		r.log.Debug().Str("username", username).Uint("user_id", u.ID).Msg("resolved user")
		return u.ID, nil
	})
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve user")
	}
	return value.(uint), nil
}
