package implementation

import (
	"context"
	"fmt"
	"time"

	"portfolio-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type throttleRepositoryImpl struct {
	rdb    *redis.Client
	prefix string
}

func NewThrottleRepository(rdb *redis.Client) contract.ThrottleRepository {
	return &throttleRepositoryImpl{rdb: rdb, prefix: "portfolio:throttle:"}
}

// Hit opens the window with SET NX EX and counts with INCR inside one
// MULTI, so a key can never exist without its expiry.
func (r *throttleRepositoryImpl) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	redisKey := r.prefix + key

	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("throttle hit %s: %w", key, err)
	}
	return int(incr.Val()), nil
}
