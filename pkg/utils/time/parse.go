// ABOUTME: Epoch timestamp helpers for upstream records with mixed precision
// ABOUTME: Normalizes second and millisecond timestamps to UTC times

package time

import "time"

// Timestamps past this point are treated as milliseconds. The cutover
// is late 2286 in seconds, so any sane second-precision value is below
// it and any millisecond value from 2001 onward is above it.
const millisThreshold = 9999999999

// FromEpoch converts a unix timestamp of unknown precision to a UTC
// time. Zero maps to the zero time.
func FromEpoch(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	if ts > millisThreshold {
		ts = ts / 1000
	}
	return time.Unix(ts, 0).UTC()
}

// RFC3339 renders an epoch timestamp for machine-readable output,
// empty for zero.
func RFC3339(ts int64) string {
	t := FromEpoch(ts)
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// W3CDate renders an epoch timestamp as a date-only string, the form
// sitemap lastmod fields use. Empty for zero.
func W3CDate(ts int64) string {
	t := FromEpoch(ts)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
