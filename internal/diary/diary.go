// Package diary persists training plans and daily check-in logs, and
// serves them to the attendance engine as snapshots.
package diary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/fitdiary/internal/attendance"
	"github.com/sirupsen/logrus"
)

// ErrPlanNotFound is returned when a plan ID does not exist.
var ErrPlanNotFound = errors.New("plan not found")

// Plan is a recurring training plan.
type Plan struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Category    string              `json:"category,omitempty"`
	Sets        int                 `json:"sets,omitempty"`
	Reps        int                 `json:"reps,omitempty"`
	Schedule    attendance.Schedule `json:"schedule"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Target renders sets × reps, or "" when neither is set.
func (p Plan) Target() string {
	switch {
	case p.Sets > 0 && p.Reps > 0:
		return fmt.Sprintf("%d×%d", p.Sets, p.Reps)
	case p.Sets > 0:
		return fmt.Sprintf("%d sets", p.Sets)
	case p.Reps > 0:
		return fmt.Sprintf("%d reps", p.Reps)
	}
	return ""
}

// Log is one check-in row: a plan on a calendar day.
type Log struct {
	ID          int64          `json:"id"`
	PlanID      int64          `json:"plan_id"`
	Day         attendance.Day `json:"day"`
	Completed   bool           `json:"completed"`
	DurationSec int            `json:"duration_sec,omitempty"`
}

// PlanUpdate holds optional plan field changes. Nil fields are left alone.
type PlanUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Sets        *int
	Reps        *int
	Schedule    *attendance.Schedule
}

// Empty reports whether the update changes nothing.
func (u PlanUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil &&
		u.Sets == nil && u.Reps == nil && u.Schedule == nil
}

// Store handles diary persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a new diary store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const planColumns = `id, name, description, category, sets, reps, scheduled_days, created_at`

// AddPlan creates a plan and returns its ID.
func (s *Store) AddPlan(p Plan) (int64, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return 0, fmt.Errorf("plan name must not be empty")
	}
	if p.Sets < 0 || p.Reps < 0 {
		return 0, fmt.Errorf("sets and reps must not be negative")
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO training_plans (name, description, category, sets, reps, scheduled_days, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, p.Description, p.Category, p.Sets, p.Reps, p.Schedule.String(), created.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("adding plan: %w", err)
	}
	id, _ := res.LastInsertId()
	logrus.WithFields(logrus.Fields{"plan": id, "schedule": p.Schedule.String()}).Info("plan added")
	return id, nil
}

// GetPlan returns a single plan by ID.
func (s *Store) GetPlan(id int64) (*Plan, error) {
	row := s.db.QueryRow(`SELECT `+planColumns+` FROM training_plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan #%d: %w", id, ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting plan #%d: %w", id, err)
	}
	return p, nil
}

// ListPlans returns all plans, newest first.
func (s *Store) ListPlans(ctx context.Context) ([]Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM training_plans ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// UpdatePlan applies the non-nil fields of u.
func (s *Store) UpdatePlan(id int64, u PlanUpdate) error {
	if u.Empty() {
		return fmt.Errorf("nothing to update for plan #%d", id)
	}

	var (
		sets []string
		args []any
	)
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return fmt.Errorf("plan name must not be empty")
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *u.Category)
	}
	if u.Sets != nil {
		if *u.Sets < 0 {
			return fmt.Errorf("sets must not be negative")
		}
		sets = append(sets, "sets = ?")
		args = append(args, *u.Sets)
	}
	if u.Reps != nil {
		if *u.Reps < 0 {
			return fmt.Errorf("reps must not be negative")
		}
		sets = append(sets, "reps = ?")
		args = append(args, *u.Reps)
	}
	if u.Schedule != nil {
		sets = append(sets, "scheduled_days = ?")
		args = append(args, u.Schedule.String())
	}
	args = append(args, id)

	res, err := s.db.Exec(`UPDATE training_plans SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating plan #%d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan #%d: %w", id, ErrPlanNotFound)
	}
	return nil
}

// DeletePlan removes a plan. Its logs are removed by the foreign key cascade.
func (s *Store) DeletePlan(id int64) error {
	res, err := s.db.Exec(`DELETE FROM training_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan #%d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan #%d: %w", id, ErrPlanNotFound)
	}
	logrus.WithField("plan", id).Info("plan deleted")
	return nil
}

// RenameCategory moves every plan in category from to category to.
// Returns the number of plans changed.
func (s *Store) RenameCategory(from, to string) (int, error) {
	if strings.TrimSpace(to) == "" {
		return 0, fmt.Errorf("new category must not be empty")
	}
	res, err := s.db.Exec(`UPDATE training_plans SET category = ? WHERE category = ?`, to, from)
	if err != nil {
		return 0, fmt.Errorf("renaming category: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// CheckIn records whether plan planID was completed on day. A second
// check-in for the same plan and day updates the existing row, so there is
// never more than one record per (plan, day). A durationSec of 0 keeps any
// previously recorded duration.
func (s *Store) CheckIn(planID int64, day attendance.Day, completed bool, durationSec int) error {
	if durationSec < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if _, err := s.GetPlan(planID); err != nil {
		return err
	}
	day = day.Normalize()

	_, err := s.db.Exec(
		`INSERT INTO daily_logs (plan_id, day, completed, duration_sec) VALUES (?, ?, ?, ?)
		 ON CONFLICT(plan_id, day) DO UPDATE SET
		   completed = excluded.completed,
		   duration_sec = CASE WHEN excluded.duration_sec > 0 THEN excluded.duration_sec ELSE daily_logs.duration_sec END`,
		planID, day.Millis(), boolInt(completed), durationSec,
	)
	if err != nil {
		return fmt.Errorf("checking in plan #%d: %w", planID, err)
	}
	logrus.WithFields(logrus.Fields{
		"plan":      planID,
		"day":       day.String(),
		"completed": completed,
	}).Info("check-in recorded")
	return nil
}

// ClearCheckIn deletes the record for plan planID on day, if any.
// Returns whether a row was removed.
func (s *Store) ClearCheckIn(planID int64, day attendance.Day) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM daily_logs WHERE plan_id = ? AND day = ?`, planID, day.Normalize().Millis())
	if err != nil {
		return false, fmt.Errorf("clearing check-in: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// LogsForDay returns the records on day, ordered by plan.
func (s *Store) LogsForDay(day attendance.Day) ([]Log, error) {
	rows, err := s.db.Query(
		`SELECT id, plan_id, day, completed, duration_sec FROM daily_logs WHERE day = ? ORDER BY plan_id`,
		day.Normalize().Millis(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	defer rows.Close()
	return scanLogRows(rows)
}

// ListLogs returns every record, most recent day first.
func (s *Store) ListLogs(ctx context.Context) ([]Log, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, plan_id, day, completed, duration_sec FROM daily_logs ORDER BY day DESC, plan_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	defer rows.Close()
	return scanLogRows(rows)
}

// CountLoggedDays returns the number of distinct days with any record.
func (s *Store) CountLoggedDays() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT day) FROM daily_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting logged days: %w", err)
	}
	return n, nil
}

// PurgeLogsBefore deletes every record dated before day. Returns the
// number of rows removed.
func (s *Store) PurgeLogsBefore(day attendance.Day) (int, error) {
	res, err := s.db.Exec(`DELETE FROM daily_logs WHERE day < ?`, day.Normalize().Millis())
	if err != nil {
		return 0, fmt.Errorf("purging logs: %w", err)
	}
	n, _ := res.RowsAffected()
	logrus.WithFields(logrus.Fields{"before": day.String(), "rows": n}).Info("logs purged")
	return int(n), nil
}

// Replace swaps the whole diary for plans and logs in a single
// transaction, keeping their IDs. Log days are re-keyed to local midnight,
// so a backup written in another time zone lands on the same calendar days.
// Used by backup restore.
func (s *Store) Replace(ctx context.Context, plans []Plan, logs []Log) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting restore: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_logs`); err != nil {
		return fmt.Errorf("clearing logs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM training_plans`); err != nil {
		return fmt.Errorf("clearing plans: %w", err)
	}

	for _, p := range plans {
		created := p.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO training_plans (id, name, description, category, sets, reps, scheduled_days, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, p.Category, p.Sets, p.Reps, p.Schedule.String(), created.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("restoring plan #%d: %w", p.ID, err)
		}
	}
	for _, l := range logs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO daily_logs (plan_id, day, completed, duration_sec) VALUES (?, ?, ?, ?)`,
			l.PlanID, l.Day.Normalize().Millis(), boolInt(l.Completed), l.DurationSec,
		)
		if err != nil {
			return fmt.Errorf("restoring log for plan #%d on %s: %w", l.PlanID, l.Day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing restore: %w", err)
	}
	logrus.WithFields(logrus.Fields{"plans": len(plans), "logs": len(logs)}).Info("diary restored")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*Plan, error) {
	var (
		p          Plan
		desc, cat  sql.NullString
		schedule   sql.NullString
		createdStr string
	)
	if err := row.Scan(&p.ID, &p.Name, &desc, &cat, &p.Sets, &p.Reps, &schedule, &createdStr); err != nil {
		return nil, err
	}
	p.Description = desc.String
	p.Category = cat.String
	// Stored tokens are parsed once here; malformed ones are skipped.
	p.Schedule = attendance.ParseSchedule(schedule.String)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return &p, nil
}

func scanLogRows(rows *sql.Rows) ([]Log, error) {
	var logs []Log
	for rows.Next() {
		var (
			l            Log
			day          int64
			completedInt int
			duration     sql.NullInt64
		)
		if err := rows.Scan(&l.ID, &l.PlanID, &day, &completedInt, &duration); err != nil {
			return nil, err
		}
		l.Day = attendance.Day(day)
		l.Completed = completedInt == 1
		l.DurationSec = int(duration.Int64)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
