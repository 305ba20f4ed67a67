package services

import (
	"sync"
	"time"
)

// AlertThrottle suppresses repeats of the same operational alert within a TTL
// window, so a flapping dependency doesn't flood the log. Entries expire on
// access and the map is bounded, so it never grows without limit.
type AlertThrottle struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	seen       map[string]time.Time
}

func NewAlertThrottle(ttl time.Duration, maxEntries int) *AlertThrottle {
	return &AlertThrottle{
		ttl:        ttl,
		maxEntries: maxEntries,
		seen:       make(map[string]time.Time),
	}
}

// Allow reports whether an alert for key should be emitted now. The first
// call for a key within a TTL window returns true; repeats return false until
// the window expires.
func (t *AlertThrottle) Allow(key string) bool {
	return t.allowAt(key, time.Now())
}

func (t *AlertThrottle) allowAt(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evict(now)

	if last, ok := t.seen[key]; ok && now.Sub(last) < t.ttl {
		return false
	}

	// When full even after eviction, let the alert through rather than track it
	if len(t.seen) >= t.maxEntries {
		if _, ok := t.seen[key]; !ok {
			return true
		}
	}

	t.seen[key] = now
	return true
}

func (t *AlertThrottle) evict(now time.Time) {
	for key, last := range t.seen {
		if now.Sub(last) >= t.ttl {
			delete(t.seen, key)
		}
	}
}

// opAlerts throttles repeated operational error logs from the sweep and
// dispatch paths.
var opAlerts = NewAlertThrottle(10*time.Minute, 128)
