package streak

// NoStreakLabel is shown in place of a date range when a streak is absent.
const NoStreakLabel = "No active streak"

// FormatRange renders a streak's date span as a compact label:
//
//	nil ends            → "No active streak"
//	single day          → "Aug 29, 2026"
//	same-year span      → "Aug 1 - Aug 29, 2026"
//	cross-year span     → "Dec 30, 2025 - Jan 2, 2026"
func FormatRange(start, end *Day) string {
	if start == nil || end == nil {
		return NoStreakLabel
	}
	if *start == *end {
		return start.time().Format("Jan 2, 2006")
	}
	if start.Year == end.Year {
		return start.time().Format("Jan 2") + " - " + end.time().Format("Jan 2, 2006")
	}
	return start.time().Format("Jan 2, 2006") + " - " + end.time().Format("Jan 2, 2006")
}
