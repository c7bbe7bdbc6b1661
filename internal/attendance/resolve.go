package attendance

// DuePlanIDs returns the plans due on day.
func DuePlanIDs(day Day, plans []TrainingPlan) PlanSet {
	return dueOn(WeekdayOf(day), plans)
}

func dueOn(w Weekday, plans []TrainingPlan) PlanSet {
	due := make(PlanSet)
	for _, p := range plans {
		if p.Schedule.Includes(w) {
			due[p.ID] = struct{}{}
		}
	}
	return due
}

// Resolver memoizes due sets per weekday. Only seven distinct answers exist
// for a fixed plan list, so batch evaluations resolve each weekday once.
type Resolver struct {
	byWeekday [Sunday + 1]PlanSet
}

// NewResolver precomputes the due set for every weekday.
func NewResolver(plans []TrainingPlan) *Resolver {
	r := &Resolver{}
	for w := Monday; w <= Sunday; w++ {
		r.byWeekday[w] = dueOn(w, plans)
	}
	return r
}

// Due returns the plans due on day. The returned set is shared; callers
// must not modify it.
func (r *Resolver) Due(day Day) PlanSet {
	return r.byWeekday[WeekdayOf(day)]
}
