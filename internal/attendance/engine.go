package attendance

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Source supplies read-only snapshots of plans and completion records.
type Source interface {
	ListPlans(ctx context.Context) ([]TrainingPlan, error)
	ListCompletionRecords(ctx context.Context) ([]CompletionRecord, error)
}

// Snapshot is one consistent read of a Source. All queries on a Snapshot
// see the same data.
type Snapshot struct {
	Plans   []TrainingPlan
	Records []CompletionRecord
}

// DuePlanIDs returns the plans due on day.
func (s Snapshot) DuePlanIDs(day Day) PlanSet {
	return DuePlanIDs(day, s.Plans)
}

// IsFullyAttended reports whether every plan due on day was completed.
func (s Snapshot) IsFullyAttended(day Day) bool {
	return IsFullyAttended(day, s.Plans, s.Records)
}

// Evaluate returns the due and completed sets for day.
func (s Snapshot) Evaluate(day Day) DayAttendance {
	return Evaluate(day, s.Plans, s.Records)
}

// CurrentStreak returns the streak as of today.
func (s Snapshot) CurrentStreak(today Day) int {
	return CurrentStreak(today, s.Plans, s.Records)
}

// LongestStreak returns the best run of fully-attended days on record.
func (s Snapshot) LongestStreak(today Day) int {
	return LongestStreak(today, s.Plans, s.Records)
}

// DayAttendanceCalendar evaluates each of days, in order.
func (s Snapshot) DayAttendanceCalendar(days []Day) []DayAttendance {
	return DayAttendanceCalendar(days, s.Plans, s.Records)
}

// Engine answers attendance questions against a Source, taking a fresh
// snapshot per call. Days may be any timestamp within the day; they are
// normalized to local midnight.
type Engine struct {
	src Source
}

// NewEngine creates an Engine reading from src.
func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// Snapshot reads plans and records once.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	plans, err := e.src.ListPlans(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing plans: %w", err)
	}
	records, err := e.src.ListCompletionRecords(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing completion records: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"plans":   len(plans),
		"records": len(records),
	}).Debug("attendance snapshot loaded")
	return Snapshot{Plans: plans, Records: records}, nil
}

// DuePlanIDs returns the plans due on day.
func (e *Engine) DuePlanIDs(ctx context.Context, day Day) (PlanSet, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.DuePlanIDs(day), nil
}

// IsFullyAttended reports whether day was fully attended.
func (e *Engine) IsFullyAttended(ctx context.Context, day Day) (bool, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	return snap.IsFullyAttended(day), nil
}

// CurrentStreak returns the streak ending at (or tolerating) today.
func (e *Engine) CurrentStreak(ctx context.Context, today Day) (int, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	streak := snap.CurrentStreak(today)
	logrus.WithFields(logrus.Fields{"today": today.String(), "streak": streak}).Debug("streak computed")
	return streak, nil
}

// DayAttendanceCalendar evaluates each of days.
func (e *Engine) DayAttendanceCalendar(ctx context.Context, days []Day) ([]DayAttendance, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.DayAttendanceCalendar(days), nil
}
