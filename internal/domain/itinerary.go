package domain

import "time"

// DayBucket groups the activities that fall on one calendar day of a trip.
// Buckets are derived on every read and never persisted. Date carries the
// trip's start instant shifted by whole days, so time-of-day matches the
// trip start rather than midnight.
type DayBucket struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

// BuildItinerary groups activities into one bucket per day of the trip's
// inclusive [startsAt, endsAt] range, ordered chronologically from the start
// day. The bucket count is the whole-day difference between the two instants
// plus one, so a trip within a single day yields exactly one bucket.
//
// Activities are matched to buckets by calendar day, not exact instant, and
// keep the relative order they arrived in (callers pass them pre-sorted
// ascending by occurrence time). An activity whose day falls outside the
// trip's range lands in no bucket; inconsistent rows are omitted, not
// rejected.
func BuildItinerary(startsAt, endsAt time.Time, activities []Activity) []DayBucket {
	days := int(endsAt.Sub(startsAt) / (24 * time.Hour))

	buckets := make([]DayBucket, 0, days+1)
	for i := 0; i <= days; i++ {
		date := startsAt.AddDate(0, 0, i)

		day := make([]Activity, 0)
		for _, a := range activities {
			if sameCalendarDay(a.OccursAt, date) {
				day = append(day, a)
			}
		}

		buckets = append(buckets, DayBucket{Date: date, Activities: day})
	}
	return buckets
}

// sameCalendarDay reports whether two instants fall on the same calendar
// date, each interpreted in its own location. Time-of-day never shifts an
// activity across a day boundary.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
