package attendance

import "sort"

// RecordedDays returns the distinct days that have at least one record,
// whatever its completion state, most recent first.
func RecordedDays(records []CompletionRecord) []Day {
	idx := indexRecords(records)
	return idx.recordedDesc()
}

func (idx recordIndex) recordedDesc() []Day {
	days := make([]Day, 0, len(idx.logged))
	for d := range idx.logged {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}

// CurrentStreak counts fully-attended days walking back from the most
// recent recorded day.
//
// The walk visits only days that have at least one record. A day with no
// rows at all is skipped and does not break the streak; a logged day that
// is not fully attended stops the walk, unless it is today, which is
// treated as still in progress. If the latest recorded day is older than
// yesterday the streak is 0.
func CurrentStreak(today Day, plans []TrainingPlan, records []CompletionRecord) int {
	today = today.Normalize()
	idx := indexRecords(records)
	days := idx.recordedDesc()
	if len(days) == 0 {
		return 0
	}
	if days[0].AddDays(1) < today {
		return 0
	}

	r := NewResolver(plans)
	streak := 0
	for _, d := range days {
		if fullyAttended(r.Due(d), idx.completed(d)) {
			streak++
			continue
		}
		if d == today {
			continue
		}
		break
	}
	return streak
}

// LongestStreak returns the longest run of fully-attended recorded days,
// using the same walk rules as CurrentStreak: days without rows are skipped,
// and an unfinished today neither counts nor breaks the run. Staleness does
// not apply.
func LongestStreak(today Day, plans []TrainingPlan, records []CompletionRecord) int {
	today = today.Normalize()
	idx := indexRecords(records)
	r := NewResolver(plans)

	best, run := 0, 0
	for _, d := range idx.recordedDesc() {
		switch {
		case fullyAttended(r.Due(d), idx.completed(d)):
			run++
			best = max(best, run)
		case d == today:
		default:
			run = 0
		}
	}
	return best
}
