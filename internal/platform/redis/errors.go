package redis

import "errors"

// ErrNotConfigured is returned when REDIS_HOST is unset.
var ErrNotConfigured = errors.New("redis host not configured")
