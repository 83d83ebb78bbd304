package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// IdentifierStrategy selects how working-set keys are derived.
type IdentifierStrategy string

const (
	// IdentifierDaily keys by library, family, icon and the UTC calendar day,
	// so edits made to the same icon on the same day replace each other.
	IdentifierDaily IdentifierStrategy = "daily"
	// IdentifierContent keys by a hash of every visual field, so distinct
	// variants of one icon coexist.
	IdentifierContent IdentifierStrategy = "content"
)

// IdentifierFunc derives the working-set key for a configuration.
type IdentifierFunc func(IconConfig) string

// DailyIdentifier builds library-family-icon-YYYY-MM-DD.
func DailyIdentifier(c IconConfig, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%s", c.Library, c.Family, c.Icon, now.UTC().Format("2006-01-02"))
}

// ContentIdentifier builds library-family-icon-<hash of the visual fields>.
func ContentIdentifier(c IconConfig) string {
	c = c.Normalized()
	c.Timestamp = 0
	payload, _ := json.Marshal(c)
	return fmt.Sprintf("%s-%s-%s-%016x", c.Library, c.Family, c.Icon, xxhash.Sum64(payload))
}

// NewIdentifierFunc returns the derivation for a strategy. clock may be nil.
func NewIdentifierFunc(strategy IdentifierStrategy, clock func() time.Time) (IdentifierFunc, error) {
	if clock == nil {
		clock = time.Now
	}
	switch strategy {
	case IdentifierDaily, "":
		return func(c IconConfig) string { return DailyIdentifier(c, clock()) }, nil
	case IdentifierContent:
		return ContentIdentifier, nil
	}
	return nil, fmt.Errorf("unknown identifier strategy %q", strategy)
}
