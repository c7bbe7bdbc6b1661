package diary

import (
	"context"

	"github.com/rnwolfe/fitdiary/internal/attendance"
)

// Engine returns an attendance engine reading from this store.
func (s *Store) Engine() *attendance.Engine {
	return attendance.NewEngine(engineSource{s})
}

// engineSource adapts Store to attendance.Source.
type engineSource struct {
	s *Store
}

func (e engineSource) ListPlans(ctx context.Context) ([]attendance.TrainingPlan, error) {
	plans, err := e.s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	return TrainingPlans(plans), nil
}

func (e engineSource) ListCompletionRecords(ctx context.Context) ([]attendance.CompletionRecord, error) {
	logs, err := e.s.ListLogs(ctx)
	if err != nil {
		return nil, err
	}
	return CompletionRecords(logs), nil
}

// TrainingPlans converts plans to the engine's view.
func TrainingPlans(plans []Plan) []attendance.TrainingPlan {
	out := make([]attendance.TrainingPlan, len(plans))
	for i, p := range plans {
		out[i] = attendance.TrainingPlan{ID: attendance.PlanID(p.ID), Schedule: p.Schedule}
	}
	return out
}

// CompletionRecords converts logs to the engine's view. Days are
// re-normalized so rows written with a non-midnight timestamp still group
// with the right calendar day.
func CompletionRecords(logs []Log) []attendance.CompletionRecord {
	out := make([]attendance.CompletionRecord, len(logs))
	for i, l := range logs {
		out[i] = attendance.CompletionRecord{
			PlanID:    attendance.PlanID(l.PlanID),
			Day:       attendance.DayKey(l.Day.Millis()),
			Completed: l.Completed,
		}
	}
	return out
}
