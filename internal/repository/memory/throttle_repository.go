package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type ThrottleRepository struct {
	cache *cache.Cache
}

func NewThrottleRepository() *ThrottleRepository {
	// entries carry their own window as expiration; purge every minute
	return &ThrottleRepository{cache: cache.New(cache.NoExpiration, time.Minute)}
}

func (r *ThrottleRepository) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	for {
		if err := r.cache.Add(key, 1, window); err == nil {
			return 1, nil
		}
		n, err := r.cache.IncrementInt(key, 1)
		if err == nil {
			return n, nil
		}
		// expired between Add and Increment, start a new window
	}
}
