// Package attendance decides whether a calendar day was fully attended and
// how long the current full-attendance streak is.
//
// Everything here is a pure function of plan and completion-record
// snapshots. Nothing is cached between calls and inputs are never mutated,
// so any number of evaluations may run concurrently.
package attendance

import "sort"

// PlanID identifies a training plan.
type PlanID int64

// TrainingPlan is the engine's view of a plan: an identity and the weekdays
// it is due on.
type TrainingPlan struct {
	ID       PlanID
	Schedule Schedule
}

// CompletionRecord is one log row: plan, day and whether it was completed.
// Storage guarantees at most one record per (PlanID, Day).
type CompletionRecord struct {
	PlanID    PlanID
	Day       Day
	Completed bool
}

// PlanSet is a set of plan IDs.
type PlanSet map[PlanID]struct{}

// NewPlanSet returns a set holding ids.
func NewPlanSet(ids ...PlanID) PlanSet {
	s := make(PlanSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s PlanSet) Has(id PlanID) bool {
	_, ok := s[id]
	return ok
}

// SubsetOf reports whether every member of s is in other.
func (s PlanSet) SubsetOf(other PlanSet) bool {
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order.
func (s PlanSet) Sorted() []PlanID {
	ids := make([]PlanID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s PlanSet) clone() PlanSet {
	c := make(PlanSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// DayAttendance is the derived attendance view of one calendar day.
type DayAttendance struct {
	Day           Day
	Due           PlanSet
	Completed     PlanSet
	FullyAttended bool
}

// Missing returns the due plans that have no completed record, ascending.
func (a DayAttendance) Missing() []PlanID {
	var ids []PlanID
	for _, id := range a.Due.Sorted() {
		if !a.Completed.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
