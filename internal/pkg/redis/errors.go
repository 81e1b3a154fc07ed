package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidConfig is returned by New for a bad configuration
var ErrInvalidConfig = errors.New("redis: invalid configuration")

// IsClosed reports use of a closed client
func IsClosed(err error) bool {
	return errors.Is(err, redis.ErrClosed)
}
