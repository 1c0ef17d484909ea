package streak

// Merge reconciles two contribution maps into a new one covering the union
// of their days. For each day the larger count wins.
//
// The baseline is typically a long-range contribution calendar and the
// overlay a fresher short-range event feed re-observing some of the same
// days. Summing would double-count the same underlying pushes, and letting
// the overlay win unconditionally would under-report days where it is
// stale — taking the max does neither. Neither input is modified.
func Merge(baseline, overlay Contributions) Contributions {
	merged := make(Contributions, len(baseline))
	for day, n := range baseline {
		merged[day] = n
	}
	for day, n := range overlay {
		cur := merged[day] // zero when the baseline never saw this day
		if n > cur {
			cur = n
		}
		merged[day] = cur
	}
	return merged
}
