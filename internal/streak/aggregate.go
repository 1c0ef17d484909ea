package streak

import "time"

// KindPush is the activity kind that counts toward contributions. Other
// event kinds (stars, issues, comments) are ignored, matching GitHub's
// commit-log view of a day's work.
const KindPush = "PushEvent"

// Record is one unit of raw activity: an event kind, when it happened, and
// how many items (commits) it carried. Timestamps stay as strings so that a
// single malformed record can be skipped instead of failing the whole batch.
type Record struct {
	Kind      string
	Timestamp string // RFC 3339, e.g. "2026-08-29T23:30:00Z"
	Count     int
}

// Contributions maps a calendar day to its contribution count.
type Contributions map[Day]int

// Aggregate folds records into per-day contribution counts, bucketing each
// timestamp into the calendar day observed at the given UTC offset.
//
// Records are skipped when they are not push events, carry no commits, or
// have a missing or unparseable timestamp. Input order does not matter:
// counts for the same day sum commutatively.
func Aggregate(records []Record, offsetHours int) Contributions {
	byDay := make(Contributions)

	for _, r := range records {
		if r.Kind != KindPush || r.Count <= 0 {
			continue
		}

		t, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			continue // one bad record never aborts the run
		}

		byDay[LocalDay(t, offsetHours)] += r.Count
	}

	return byDay
}
