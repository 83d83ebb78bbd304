package model

import "time"

// SavedConfig is a named snapshot in the saved-configuration store.
type SavedConfig struct {
	IconConfig
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// SavedName is the default display name for a snapshot.
func SavedName(icon string, at time.Time) string {
	return icon + " - " + at.Format("1/2/2006")
}

// Time returns the snapshot timestamp.
func (s SavedConfig) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}
