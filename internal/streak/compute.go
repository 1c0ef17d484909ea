package streak

import "sort"

// Stats summarizes a contribution history: the all-time total plus the
// current and longest runs of consecutive active days. Date spans are nil
// when the corresponding streak does not exist.
type Stats struct {
	Total   int
	Current int
	Longest int

	CurrentStart *Day
	CurrentEnd   *Day
	LongestStart *Day
	LongestEnd   *Day
}

// Compute derives streak statistics from a contribution map and a reference
// day ("today" in the caller's timezone).
//
// Only days with a strictly positive count participate. The longest streak
// is the first maximal run found scanning days in ascending order — on equal
// lengths the earliest run is kept. The current streak is the run ending on
// the most recent active day at or before the reference day, counted only
// while that day is today or yesterday; one quiet day of grace keeps a
// streak alive overnight. Active days after the reference day are ignored
// for the current streak, and a reference day preceding all activity yields
// none at all.
//
// Longest is never smaller than Current: the closing run is always one of
// the candidates the longest scan evaluates.
func Compute(byDay Contributions, today Day) Stats {
	days := activeDays(byDay)
	if len(days) == 0 {
		return Stats{}
	}

	var total int
	for _, day := range days {
		total += byDay[day]
	}

	longestLen := 1
	longestStart, longestEnd := days[0], days[0]

	runStart, prev := days[0], days[0]
	closeRun := func() {
		if n := prev.Sub(runStart) + 1; n > longestLen {
			longestLen = n
			longestStart, longestEnd = runStart, prev
		}
	}

	for _, day := range days[1:] {
		if day.Sub(prev) == 1 {
			prev = day
			continue
		}
		closeRun()
		runStart, prev = day, day
	}
	closeRun() // the final run is still open when the scan ends

	stats := Stats{
		Total:        total,
		Longest:      longestLen,
		LongestStart: &longestStart,
		LongestEnd:   &longestEnd,
	}

	// Current streak: anchored on the most recent active day at or before
	// the reference day; days recorded after it cannot be part of an ongoing
	// run. Active only while that anchor is today or yesterday.
	idx := len(days) - 1
	for idx >= 0 && today.Before(days[idx]) {
		idx--
	}
	if idx < 0 {
		return stats
	}
	latest := days[idx]
	if today.Sub(latest) > 1 {
		return stats
	}

	start := latest
	for {
		eve := start.AddDays(-1)
		if byDay[eve] <= 0 {
			break
		}
		start = eve
	}

	end := latest
	stats.Current = end.Sub(start) + 1
	stats.CurrentStart = &start
	stats.CurrentEnd = &end
	return stats
}

// activeDays returns the strictly positive days of byDay in ascending order.
func activeDays(byDay Contributions) []Day {
	days := make([]Day, 0, len(byDay))
	for day, n := range byDay {
		if n > 0 {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
