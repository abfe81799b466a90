package sheets

import (
	"sync"
	"time"

	"github.com/yourusername/print-order-board/internal/domain/entity"
)

// specCache is the single shared read-cache slot for the spec table.
// Every spec write must invalidate it before returning; other processes
// still observe up to one TTL of staleness.
type specCache struct {
	mu   sync.Mutex
	data []entity.Spec
	at   time.Time
	ttl  time.Duration
	now  func() time.Time
}

func newSpecCache(ttl time.Duration) *specCache {
	return &specCache{ttl: ttl, now: time.Now}
}

func (c *specCache) get() ([]entity.Spec, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.data) == 0 || c.now().Sub(c.at) >= c.ttl {
		return nil, false
	}
	return c.data, true
}

func (c *specCache) set(data []entity.Spec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.at = c.now()
}

func (c *specCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.at = time.Time{}
}
