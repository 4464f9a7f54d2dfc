package habits

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024

	DefaultOwnerCacheSize = 32 * megabyte
	DefaultOwnerCacheTTL  = 30 * time.Second
)

// OwnerCache keeps each owner's habit list for a short while.
// It is never the source of truth; every mutation drops the owner's entry.
// A nil *OwnerCache is a valid, always-missing cache.
//
// Each owner has a generation bumped by Invalidate. A list read from the
// store is only cached when no invalidation happened since the read began.
type OwnerCache struct {
	cache         *freecache.Cache
	expireSeconds int

	mu          sync.Mutex
	generations map[int]uint64
}

func NewOwnerCache(sizeBytes int, ttl time.Duration) *OwnerCache {
	return &OwnerCache{
		cache:         freecache.NewCache(sizeBytes),
		expireSeconds: int(ttl.Seconds()),
		generations:   make(map[int]uint64),
	}
}

// Generation must be taken before reading the owner's habits from the store.
func (c *OwnerCache) Generation(ownerID int) uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[ownerID]
}

func ownerCacheKey(ownerID int) []byte {
	return []byte(fmt.Sprintf("habits::%d", ownerID))
}

func (c *OwnerCache) Get(ownerID int) ([]*Habit, bool) {
	if c == nil {
		return nil, false
	}

	habitsBytes, err := c.cache.Get(ownerCacheKey(ownerID))
	if err != nil {
		return nil, false
	}

	var habits []*Habit
	if err := json.Unmarshal(habitsBytes, &habits); err != nil {
		log.Errorf("unmarshal cached habits for owner %d: %s", ownerID, err)
		c.Invalidate(ownerID)
		return nil, false
	}
	return habits, true
}

// SetIfGeneration stores habits unless the owner was invalidated after
// generation was taken. Reports whether the list was stored.
func (c *OwnerCache) SetIfGeneration(ownerID int, generation uint64, habits []*Habit) bool {
	if c == nil {
		return false
	}

	habitsBytes, err := json.Marshal(habits)
	if err != nil {
		log.Errorf("marshal habits for owner %d: %s", ownerID, err)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[ownerID] != generation {
		return false
	}
	if err := c.cache.Set(ownerCacheKey(ownerID), habitsBytes, c.expireSeconds); err != nil {
		log.Debugf("habits cache set for owner %d: %s", ownerID, err)
		return false
	}
	return true
}

func (c *OwnerCache) Invalidate(ownerID int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[ownerID]++
	c.cache.Del(ownerCacheKey(ownerID))
}
