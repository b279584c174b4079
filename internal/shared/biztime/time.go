// Package biztime centralises the time formats exchanged with the record store.
// The store holds UTC; the business timezone is only used when rendering times
// back to front-desk staff.
package biztime

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

const (
	// DefaultTimezone is the business timezone used when none is configured.
	DefaultTimezone = "Asia/Karachi"

	// StoreLayout is the timestamp layout the store accepts for date-time fields.
	StoreLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	bizLocation *time.Location
	bizMu       sync.RWMutex
)

// Init sets the business timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	bizMu.Lock()
	bizLocation = loc
	bizMu.Unlock()
	return nil
}

// Location returns the business timezone, initialising the default on first use.
func Location() *time.Location {
	bizMu.RLock()
	loc := bizLocation
	bizMu.RUnlock()
	if loc != nil {
		return loc
	}
	if err := Init(""); err != nil {
		return time.UTC
	}
	return Location()
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatStoreTime renders t in UTC with millisecond precision.
func FormatStoreTime(t time.Time) string {
	return t.UTC().Format(StoreLayout)
}

// ParseStoreTime accepts RFC 3339 timestamps with or without fractional seconds.
func ParseStoreTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid store time %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatInBizTimezone formats t in the business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
