package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty is every day", "", "0"},
		{"sentinel", "0", "0"},
		{"sentinel mixed with days", "1,0,3", "0"},
		{"weekdays", "1,3,5", "1,3,5"},
		{"unordered with spaces", " 5, 1 ,3", "1,3,5"},
		{"duplicates", "2,2,2", "2"},
		{"malformed token skipped", "1,x,5", "1,5"},
		{"out of range skipped", "1,8,-2,5", "1,5"},
		{"overflowing number skipped", "257,3", "3"},
		{"all invalid is every day", "x,9,foo", "0"},
		{"trailing comma", "6,7,", "6,7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSchedule(tt.raw).String())
		})
	}
}

func TestParseScheduleStrict(t *testing.T) {
	s, err := ParseScheduleStrict("1,3,5")
	require.NoError(t, err)
	assert.Equal(t, []Weekday{Monday, Wednesday, Friday}, s.Weekdays())

	_, err = ParseScheduleStrict("1,mon")
	assert.ErrorContains(t, err, `"mon"`)
}

func TestSchedule_Includes(t *testing.T) {
	mwf := NewSchedule(Monday, Wednesday, Friday)
	assert.True(t, mwf.Includes(Monday))
	assert.False(t, mwf.Includes(Tuesday))
	assert.False(t, mwf.Includes(Weekday(0)))

	for w := Monday; w <= Sunday; w++ {
		assert.True(t, EveryDay.Includes(w))
	}
	assert.False(t, EveryDay.Includes(Weekday(8)))
}

func TestSchedule_Label(t *testing.T) {
	assert.Equal(t, "every day", EveryDay.Label())
	assert.Equal(t, "Mo We Fr", NewSchedule(Friday, Monday, Wednesday).Label())
}

func TestSchedule_TextRoundTrip(t *testing.T) {
	var s Schedule
	require.NoError(t, s.UnmarshalText([]byte("2,4")))
	b, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2,4", string(b))
}

func TestResolver_MatchesDuePlanIDs(t *testing.T) {
	plans := []TrainingPlan{
		{ID: 1, Schedule: ParseSchedule("1,3,5")},
		{ID: 2, Schedule: ParseSchedule("0")},
		{ID: 3, Schedule: ParseSchedule("7")},
	}
	r := NewResolver(plans)
	start := mustDay(t, "2026-02-23")
	for i := 0; i < 14; i++ {
		d := start.AddDays(i)
		assert.Equal(t, DuePlanIDs(d, plans), r.Due(d), "day %s", d)
	}
	assert.True(t, r.Due(mustDay(t, "2026-03-01")).Has(3))
	assert.False(t, r.Due(mustDay(t, "2026-02-24")).Has(1))
}
