package contract

import (
	"context"
	"time"
)

// ThrottleRepository counts hits per key in fixed windows.
type ThrottleRepository interface {
	// Hit records one hit for key and returns the count within the current
	// window, the first hit of a window starting it.
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}
