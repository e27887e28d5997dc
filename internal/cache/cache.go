package cache

import "time"

// Cache is the read-model cache the analytics handlers sit behind. Keys
// are namespaced "survey:{id}:..." so a submission can invalidate every
// derived result for its survey with one prefix call.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	InvalidatePrefix(prefix string)
}
