// Package cache holds forecast results for a short time. Entries are keyed by
// every parameter a forecast depends on besides the repository contents, so a
// TTL bounds how stale a cached result can get.
package cache

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Dan9191/cashflow-service/internal/models"
	"golang.org/x/crypto/blake2b"
)

// Key digests the forecast request parameters
func Key(orgID string, horizonMonths int, startingBalance float64, asOf time.Time, locale string) string {
	raw := fmt.Sprintf("%s\x00%d\x00%s\x00%s\x00%s",
		orgID, horizonMonths,
		strconv.FormatFloat(startingBalance, 'f', -1, 64),
		asOf.Format(time.DateOnly), locale)
	sum := blake2b.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

type entry struct {
	summary *models.ForecastSummary
	expires time.Time
}

// ForecastCache is a TTL cache of forecast summaries safe for concurrent use
type ForecastCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewForecastCache creates a cache whose entries live for ttl
func NewForecastCache(ttl time.Duration, now func() time.Time) *ForecastCache {
	if now == nil {
		now = time.Now
	}
	return &ForecastCache{ttl: ttl, now: now, entries: make(map[string]entry)}
}

// Get returns a cached summary that has not expired
func (c *ForecastCache) Get(key string) (*models.ForecastSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.summary, true
}

// Set stores a summary, dropping expired entries on the way
func (c *ForecastCache) Set(key string, summary *models.ForecastSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{summary: summary, expires: now.Add(c.ttl)}
}

// Len reports the number of stored entries, expired or not
func (c *ForecastCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
