package billingperiod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestResolve_BeforeCutoffKeepsCurrentMonth(t *testing.T) {
	period, err := Resolve(date(2024, time.June, 10), 19)
	require.NoError(t, err)
	assert.Equal(t, "Junio 2024", period.Label())
}

func TestResolve_OnOrAfterCutoffRollsToNextMonth(t *testing.T) {
	period, err := Resolve(date(2024, time.June, 25), 19)
	require.NoError(t, err)
	assert.Equal(t, "Julio 2024", period.Label())

	period, err = Resolve(date(2024, time.June, 19), 19)
	require.NoError(t, err)
	assert.Equal(t, "Julio 2024", period.Label())
}

func TestResolve_DecemberRollsIntoNextYear(t *testing.T) {
	period, err := Resolve(date(2024, time.December, 20), 19)
	require.NoError(t, err)
	assert.Equal(t, "Enero 2025", period.Label())
	assert.Equal(t, 2025, period.Year)
}

func TestResolve_CutoffDayBounds(t *testing.T) {
	for _, day := range []int{0, -1, 29, 31, 100} {
		_, err := Resolve(date(2024, time.June, 10), day)
		assert.ErrorIs(t, err, ErrInvalidCutoffDay, "cutoff day %d", day)
	}

	for day := MinCutoffDay; day <= MaxCutoffDay; day++ {
		_, err := Resolve(date(2024, time.June, 10), day)
		assert.NoError(t, err, "cutoff day %d", day)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	for day := MinCutoffDay; day <= MaxCutoffDay; day++ {
		for _, today := range []time.Time{
			date(2024, time.January, 1),
			date(2024, time.June, 15),
			date(2024, time.December, 28),
			date(2025, time.February, 28),
		} {
			first, err := Resolve(today, day)
			require.NoError(t, err)
			second, err := Resolve(today, day)
			require.NoError(t, err)
			assert.Equal(t, first.Label(), second.Label())
		}
	}
}

func TestResolve_MonthArithmetic(t *testing.T) {
	cutoff := 15
	for month := time.January; month <= time.December; month++ {
		before, err := Resolve(date(2024, month, 14), cutoff)
		require.NoError(t, err)
		assert.Equal(t, month, before.Month)
		assert.Equal(t, 2024, before.Year)

		after, err := Resolve(date(2024, month, 15), cutoff)
		require.NoError(t, err)
		if month == time.December {
			assert.Equal(t, time.January, after.Month)
			assert.Equal(t, 2025, after.Year)
		} else {
			assert.Equal(t, month+1, after.Month)
			assert.Equal(t, 2024, after.Year)
		}
	}
}

func TestParseLabel_RoundTrip(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		period := Period{Month: month, Year: 2024}
		parsed, ok := ParseLabel(period.Label())
		require.True(t, ok, period.Label())
		assert.Equal(t, period, parsed)
	}

	_, ok := ParseLabel("Junio")
	assert.False(t, ok)
	_, ok = ParseLabel("Smarch 2024")
	assert.False(t, ok)
	_, ok = ParseLabel("")
	assert.False(t, ok)
}
