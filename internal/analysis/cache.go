package analysis

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/coocood/freecache"
)

// resultsCache keeps marshaled analysis results keyed by a hash of the
// exercise and the raw request body. The engine is deterministic, so a
// repeated upload of the same clip can skip the whole pipeline.
type resultsCache struct {
	cache         *freecache.Cache
	expireSeconds int
}

func newResultsCache(sizeMegabytes, expireSeconds int) *resultsCache {
	return &resultsCache{
		cache:         freecache.NewCache(sizeMegabytes * 1024 * 1024),
		expireSeconds: expireSeconds,
	}
}

func (c *resultsCache) key(exercise Exercise, body []byte) []byte {
	digest := xxhash.New()
	_, _ = digest.WriteString(string(exercise))
	_, _ = digest.Write(body)

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, digest.Sum64())
	return key
}

func (c *resultsCache) get(exercise Exercise, body []byte) ([]byte, bool) {
	cached, err := c.cache.Get(c.key(exercise, body))
	if err != nil {
		// freecache returns ErrNotFound for missing entries
		return nil, false
	}
	return cached, true
}

func (c *resultsCache) set(exercise Exercise, body, result []byte) {
	// a failed set just means the result is recomputed next time
	_ = c.cache.Set(c.key(exercise, body), result, c.expireSeconds)
}
