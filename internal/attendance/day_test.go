package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) Day {
	t.Helper()
	d, err := ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestDayKey_TruncatesToLocalMidnight(t *testing.T) {
	ts := time.Date(2026, 2, 26, 17, 45, 12, 999, time.Local)
	d := DayKey(ts.UnixMilli())

	got := d.Time()
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, "2026-02-26", d.String())
}

func TestDayKey_Idempotent(t *testing.T) {
	for _, ts := range []int64{
		time.Date(2026, 2, 26, 23, 59, 59, 0, time.Local).UnixMilli(),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local).UnixMilli(),
		0,
		-86_400_000 * 400,
	} {
		once := DayKey(ts)
		assert.Equal(t, once, DayKey(once.Millis()), "ts=%d", ts)
	}
}

func TestDayKey_PreEpoch(t *testing.T) {
	ts := time.Date(1969, 12, 31, 13, 0, 0, 0, time.Local).UnixMilli()
	d := DayKey(ts)
	assert.Equal(t, "1969-12-31", d.String())
	assert.Equal(t, Wednesday, WeekdayOf(d))
}

func TestWeekdayIndex_MondayFirst(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2026-02-23", 1},
		{"2026-02-24", 2},
		{"2026-02-26", 4},
		{"2026-02-28", 6},
		{"2026-03-01", 7},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekdayIndex(mustDay(t, tt.date)))
		})
	}
}

func TestParseDay_Invalid(t *testing.T) {
	_, err := ParseDay("26/02/2026")
	assert.Error(t, err)
}

func TestAddDaysAndDaysUntil(t *testing.T) {
	d := mustDay(t, "2026-02-26")
	assert.Equal(t, "2026-03-01", d.AddDays(3).String())
	assert.Equal(t, "2026-02-23", d.AddDays(-3).String())
	assert.Equal(t, 3, d.DaysUntil(d.AddDays(3)))
	assert.Equal(t, -10, d.DaysUntil(d.AddDays(-10)))
}

func TestWeekOf(t *testing.T) {
	week := WeekOf(mustDay(t, "2026-02-26"))
	require.Len(t, week, 7)
	assert.Equal(t, "2026-02-23", week[0].String())
	assert.Equal(t, "2026-03-01", week[6].String())

	sunday := WeekOf(mustDay(t, "2026-03-01"))
	assert.Equal(t, "2026-02-23", sunday[0].String())
}

func TestMonthOf(t *testing.T) {
	feb := MonthOf(mustDay(t, "2024-02-10"))
	require.Len(t, feb, 29)
	assert.Equal(t, "2024-02-01", feb[0].String())
	assert.Equal(t, "2024-02-29", feb[28].String())
}
