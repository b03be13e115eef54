// pkg/memcache/plan_cache.go
package mem

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// PlanCacheStore caches generated itinerary JSON keyed by request hash.
// Plan generation is the slowest call in the system; identical requests
// within the TTL reuse the previous plan.
type PlanCacheStore interface {
	Get(key string) (string, bool)
	Set(key string, plan string, ttl time.Duration)
}

type planEntry struct {
	plan      string
	expiresAt time.Time
}

type PlanCache struct {
	mu   sync.RWMutex
	data map[string]planEntry
}

func NewPlanCache() *PlanCache {
	return &PlanCache{
		data: make(map[string]planEntry),
	}
}

// CacheKey hashes the request parameters that change the generated plan.
func CacheKey(userPrompt string, placeBlocks []string, dayCount int) string {
	h := sha256.New()
	h.Write([]byte(userPrompt))
	fmt.Fprintf(h, "|%d|", dayCount)
	for _, block := range placeBlocks {
		h.Write([]byte(block))
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

func (s *PlanCache) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.plan, true
}

func (s *PlanCache) Set(key string, plan string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = planEntry{
		plan:      plan,
		expiresAt: time.Now().Add(ttl),
	}

	// Opportunistic cleanup once the map grows.
	if len(s.data) > 1000 {
		now := time.Now()
		for k, e := range s.data {
			if now.After(e.expiresAt) {
				delete(s.data, k)
			}
		}
	}
}
