// Package dates implements the date formatting injected into the service
// layer. Keeping it behind the service's DateFormatter interface means a
// CLDR-backed locale library can be swapped in without touching the core.
package dates

import "time"

// LongForm formats instants in long US English form, e.g. "January 5, 2025",
// matching the locale-aware long format the outbound mail uses.
type LongForm struct{}

// FormatLong renders the instant's calendar date in long form.
func (LongForm) FormatLong(t time.Time) string {
	return t.Format("January 2, 2006")
}
