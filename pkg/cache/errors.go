package cache

import "errors"

// ErrCacheMiss is returned by GetJSON when a key is absent or unreadable.
var ErrCacheMiss = errors.New("cache miss")
