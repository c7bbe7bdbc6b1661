package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/fitdiary/internal/config"
	"github.com/rnwolfe/fitdiary/internal/diary"
)

func resetPlanFlags(t *testing.T) {
	t.Helper()
	for _, c := range []*cobra.Command{planAddCmd, planListCmd, planEditCmd, planPruneCmd} {
		resetFlags(t, c)
	}
}

func addPlan(t *testing.T, name, days string) int64 {
	t.Helper()
	planAddDays = days
	captureStdout(t, func() {
		if err := runPlanAdd(planAddCmd, strings.Fields(name)); err != nil {
			t.Fatalf("runPlanAdd(%q): %v", name, err)
		}
	})
	db, d, err := openDiary()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	plans, err := d.ListPlans(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var newest int64
	for _, p := range plans {
		newest = max(newest, p.ID)
	}
	return newest
}

func getPlan(t *testing.T, id int64) *diary.Plan {
	t.Helper()
	db, d, err := openDiary()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	p, err := d.GetPlan(id)
	if err != nil {
		t.Fatalf("GetPlan(%d): %v", id, err)
	}
	return p
}

func TestRunPlanAdd(t *testing.T) {
	testEnv(t)
	resetPlanFlags(t)

	planAddDays = "1,3,5"
	planAddCategory = "chest"
	planAddSets, planAddReps = 3, 15
	out := captureStdout(t, func() {
		if err := runPlanAdd(planAddCmd, []string{"Push-ups"}); err != nil {
			t.Fatalf("runPlanAdd: %v", err)
		}
	})
	if !strings.Contains(out, "Push-ups") || !strings.Contains(out, "Mo We Fr") || !strings.Contains(out, "3×15") {
		t.Errorf("unexpected output: %q", out)
	}

	p := getPlan(t, 1)
	if p.Category != "chest" || p.Schedule.String() != "1,3,5" {
		t.Errorf("stored plan = %+v", p)
	}
}

func TestRunPlanAdd_DefaultsFromConfig(t *testing.T) {
	testEnv(t)
	resetPlanFlags(t)

	cfg, _ := config.Load()
	cfg.Diary.DefaultCategory = "mobility"
	if err := config.Save(cfg); err != nil {
		t.Fatal(err)
	}

	id := addPlan(t, "Hip openers", "")
	p := getPlan(t, id)
	if p.Category != "mobility" {
		t.Errorf("category = %q, want default from config", p.Category)
	}
	if !p.Schedule.IsEveryDay() {
		t.Errorf("schedule = %q, want every day", p.Schedule)
	}
}

func TestRunPlanAdd_RejectsBadDays(t *testing.T) {
	testEnv(t)
	resetPlanFlags(t)

	for _, days := range []string{"1,8", "mon", "10"} {
		planAddDays = days
		err := runPlanAdd(planAddCmd, []string{"Run"})
		if err == nil || !strings.Contains(err.Error(), "invalid weekday") {
			t.Errorf("--days %q: expected invalid weekday error, got %v", days, err)
		}
	}
}

func TestRunPlanList(t *testing.T) {
	testEnv(t)
	resetPlanFlags(t)

	out := captureStdout(t, func() {
		if err := runPlanList(planListCmd, nil); err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(out, "No plans yet") {
		t.Errorf("expected empty state, got %q", out)
	}

	addPlan(t, "Squats", "2,4") // Thursday is due
	addPlan(t, "Swim", "6")

	out = captureStdout(t, func() {
		if err := runPlanList(planListCmd, nil); err != nil {
			t.Fatal(err)
		}
	})
	if strings.Index(out, "Squats") > strings.Index(out, "Swim") {
		t.Errorf("plans should be listed by id:\n%s", out)
	}
	if !strings.Contains(out, "2 plans · 1 due today") {
		t.Errorf("expected due summary:\n%s", out)
	}
}

func TestRunPlanEdit(t *testing.T) {
	testEnv(t)
	resetPlanFlags(t)
	id := addPlan(t, "Row", "")

	if err := planEditCmd.ParseFlags([]string{"--days", "6,7", "--reps", "20"}); err != nil {
		t.Fatal(err)
	}
	captureStdout(t, func() {
		if err := runPlanEdit(planEditCmd, []string{"1"}); err != nil {
			t.Fatalf("runPlanEdit: %v", err)
		}
	})

	p := getPlan(t, id)
	if p.Schedule.String() != "6,7" || p.Reps != 20 || p.Name != "Row" {
		t.Errorf("edit not applied as expected: %+v", p)
	}

	resetFlags(t, planEditCmd)
	if err := runPlanEdit(planEditCmd, []string{"1"}); err == nil {
		t.Error("expected error when no flags are given")
	}

	resetFlags(t, planEditCmd)
	_ = planEditCmd.ParseFlags([]string{"--name", "Erg"})
	if err := runPlanEdit(planEditCmd, []string{"99"}); !errors.Is(err, diary.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestRunPlanRm(t *testing.T) {
	testEnv(t)
	resetPlanFlags(t)
	addPlan(t, "Plank", "")

	out := captureStdout(t, func() {
		if err := runPlanRm(nil, []string{"#1"}); err != nil {
			t.Fatalf("runPlanRm: %v", err)
		}
	})
	if !strings.Contains(out, "Removed plan #1 Plank") {
		t.Errorf("unexpected output: %q", out)
	}
	if err := runPlanRm(nil, []string{"1"}); !errors.Is(err, diary.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestRunPlanCategoryRename(t *testing.T) {
	testEnv(t)
	resetPlanFlags(t)
	planAddCategory = "legs"
	addPlan(t, "Squats", "")

	out := captureStdout(t, func() {
		if err := runPlanCategoryRename(nil, []string{"legs", "lower"}); err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(out, "Moved 1 plans") {
		t.Errorf("unexpected output: %q", out)
	}
	if p := getPlan(t, 1); p.Category != "lower" {
		t.Errorf("category = %q, want lower", p.Category)
	}
}

func TestRunPlanPrune(t *testing.T) {
	testEnv(t)
	resetPlanFlags(t)
	id := addPlan(t, "Walk", "")

	db, d, _ := openDiary()
	for _, day := range []string{"2026-02-20", "2026-02-21", "2026-02-25"} {
		if err := d.CheckIn(id, testDay(t, day), true, 0); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	planPruneBefore = "2026-02-22"
	out := captureStdout(t, func() {
		if err := runPlanPrune(nil, nil); err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(out, "Pruned 2 check-ins before 2026-02-22") {
		t.Errorf("unexpected output: %q", out)
	}

	planPruneBefore = "2026-03-01"
	if err := runPlanPrune(nil, nil); err == nil {
		t.Error("pruning into the future should fail")
	}
}
