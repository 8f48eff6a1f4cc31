package shell

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

const (
	cacheDirName = ".prompt-cache"
	statusKey    = "status"
)

// PromptCache holds cached prompt status data.
type PromptCache struct {
	Today          bool      `json:"today"`
	Streak         int       `json:"streak"`
	TodayDate      string    `json:"today_date"`
	StorageBackend string    `json:"storage_backend"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Cache stores the prompt status under the data directory.
type Cache struct {
	d *diskv.Diskv
}

// CachePath returns the directory holding the prompt cache.
func CachePath(dataDir string) string {
	return filepath.Join(dataDir, cacheDirName)
}

// OpenCache returns the prompt cache of dataDir. Nothing touches the disk
// until the first read or write.
func OpenCache(dataDir string) *Cache {
	return &Cache{d: diskv.New(diskv.Options{
		BasePath:     CachePath(dataDir),
		CacheSizeMax: 64 * 1024,
	})}
}

// Read returns the cached status, or nil if it does not exist or cannot be parsed.
func (c *Cache) Read() *PromptCache {
	data, err := c.d.Read(statusKey)
	if err != nil {
		return nil
	}
	var pc PromptCache
	if err := json.Unmarshal(data, &pc); err != nil {
		return nil
	}
	return &pc
}

// Write replaces the cached status.
func (c *Cache) Write(pc *PromptCache) error {
	data, err := json.Marshal(pc)
	if err != nil {
		return err
	}
	return c.d.Write(statusKey, data)
}

// Invalidate drops the cached status. A missing cache is not an error.
func (c *Cache) Invalidate() error {
	if !c.d.Has(statusKey) {
		return nil
	}
	return c.d.Erase(statusKey)
}

// IsFresh returns true if the cache is still valid at now given the TTL.
// A cache is stale if the TTL has elapsed or the date has changed (midnight rollover).
func (pc *PromptCache) IsFresh(ttl time.Duration, now time.Time) bool {
	if pc == nil {
		return false
	}
	if pc.TodayDate != now.Format("2006-01-02") {
		return false
	}
	return now.Sub(pc.UpdatedAt) <= ttl
}
