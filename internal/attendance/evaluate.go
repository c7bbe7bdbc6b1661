package attendance

// CompletedPlanIDs returns the plans with a completed record on day.
// Duplicate records are unioned: any completed row counts.
func CompletedPlanIDs(day Day, records []CompletionRecord) PlanSet {
	day = day.Normalize()
	done := make(PlanSet)
	for _, r := range records {
		if r.Completed && r.Day.Normalize() == day {
			done[r.PlanID] = struct{}{}
		}
	}
	return done
}

// IsFullyAttended reports whether every plan due on day has a completed
// record. A day with nothing due is never attended.
func IsFullyAttended(day Day, plans []TrainingPlan, records []CompletionRecord) bool {
	day = day.Normalize()
	return fullyAttended(DuePlanIDs(day, plans), CompletedPlanIDs(day, records))
}

func fullyAttended(due, completed PlanSet) bool {
	return len(due) > 0 && due.SubsetOf(completed)
}

// Evaluate returns the attendance view of a single day.
func Evaluate(day Day, plans []TrainingPlan, records []CompletionRecord) DayAttendance {
	day = day.Normalize()
	due := DuePlanIDs(day, plans)
	done := CompletedPlanIDs(day, records)
	return DayAttendance{
		Day:           day,
		Due:           due,
		Completed:     done,
		FullyAttended: fullyAttended(due, done),
	}
}

// DayAttendanceCalendar evaluates each of days, in order. It is the batch
// form of Evaluate used for week and month views.
func DayAttendanceCalendar(days []Day, plans []TrainingPlan, records []CompletionRecord) []DayAttendance {
	r := NewResolver(plans)
	idx := indexRecords(records)
	out := make([]DayAttendance, 0, len(days))
	for _, d := range days {
		d = d.Normalize()
		due := r.Due(d).clone()
		done := idx.completed(d).clone()
		out = append(out, DayAttendance{
			Day:           d,
			Due:           due,
			Completed:     done,
			FullyAttended: fullyAttended(due, done),
		})
	}
	return out
}

// recordIndex groups records by normalized day.
type recordIndex struct {
	done   map[Day]PlanSet
	logged map[Day]struct{}
}

func indexRecords(records []CompletionRecord) recordIndex {
	idx := recordIndex{
		done:   make(map[Day]PlanSet),
		logged: make(map[Day]struct{}),
	}
	for _, r := range records {
		d := r.Day.Normalize()
		idx.logged[d] = struct{}{}
		if !r.Completed {
			continue
		}
		set, ok := idx.done[d]
		if !ok {
			set = make(PlanSet)
			idx.done[d] = set
		}
		set[r.PlanID] = struct{}{}
	}
	return idx
}

func (idx recordIndex) completed(d Day) PlanSet {
	if set, ok := idx.done[d]; ok {
		return set
	}
	return PlanSet{}
}
