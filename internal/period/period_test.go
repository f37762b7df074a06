package period

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	now := time.Date(2024, time.May, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token Token
		start time.Time
		end   time.Time
	}{
		{"current month", CurrentMonth, day(2024, time.May, 1), now},
		{"last month", LastMonth, day(2024, time.April, 1), day(2024, time.April, 30)},
		{"current quarter", CurrentQuarter, day(2024, time.April, 1), now},
		{"current year", CurrentYear, day(2024, time.January, 1), now},
		{"last year", LastYear, day(2023, time.January, 1), day(2023, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := Resolve(tt.token, now, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.start, iv.Start)
			assert.Equal(t, tt.end, iv.End)
		})
	}
}

func TestResolveLastMonthAcrossYearBoundary(t *testing.T) {
	now := time.Date(2024, time.January, 9, 8, 0, 0, 0, time.UTC)

	iv, err := Resolve(LastMonth, now, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2023, time.December, 1), iv.Start)
	assert.Equal(t, day(2023, time.December, 31), iv.End)
}

func TestResolveQuarterBoundaries(t *testing.T) {
	for month, want := range map[time.Month]time.Month{
		time.January: time.January, time.March: time.January,
		time.April: time.April, time.September: time.July,
		time.October: time.October, time.December: time.October,
	} {
		now := time.Date(2024, month, 10, 0, 0, 0, 0, time.UTC)
		iv, err := Resolve(CurrentQuarter, now, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, day(2024, want, 1), iv.Start, "month %s", month)
	}
}

func TestResolveKeepsWallClock(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2024, time.March, 1, 1, 0, 0, 0, nairobi)

	iv, err := Resolve(CurrentMonth, now, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.March, 1), iv.Start)
	assert.True(t, iv.Contains(day(2024, time.March, 1)))
}

func TestResolveCustom(t *testing.T) {
	start, end := day(2024, time.January, 1), day(2024, time.January, 31)

	iv, err := Resolve(Custom, time.Now(), &start, &end)
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: start, End: end}, iv)

	_, err = Resolve(Custom, time.Now(), &start, nil)
	assert.ErrorIs(t, err, ErrCustomRange)
}

func TestResolveUnknownToken(t *testing.T) {
	_, err := Resolve(Token("fortnight"), time.Now(), nil, nil)
	assert.True(t, errors.Is(err, ErrUnknownToken))
}

func TestContainsIsInclusive(t *testing.T) {
	iv := Interval{Start: day(2024, time.January, 1), End: day(2024, time.January, 31)}

	assert.True(t, iv.Contains(iv.Start))
	assert.True(t, iv.Contains(iv.End))
	assert.False(t, iv.Contains(day(2023, time.December, 31)))
	assert.False(t, iv.Contains(day(2024, time.February, 1)))
}

func TestReversedCustomRangeContainsNothing(t *testing.T) {
	start, end := day(2024, time.February, 1), day(2024, time.January, 1)

	iv, err := Resolve(Custom, time.Now(), &start, &end)
	require.NoError(t, err)
	assert.False(t, iv.Contains(day(2024, time.January, 15)))

	_, ok := Previous(iv)
	assert.False(t, ok)
}

func TestPrevious(t *testing.T) {
	iv := Interval{Start: day(2024, time.February, 1), End: day(2024, time.February, 11)}

	prev, ok := Previous(iv)
	require.True(t, ok)
	assert.Equal(t, day(2024, time.January, 21), prev.Start)
	assert.True(t, prev.End.Before(iv.Start))
	assert.False(t, prev.Contains(iv.Start))
	assert.True(t, prev.Contains(day(2024, time.January, 21)))
	assert.True(t, prev.Contains(day(2024, time.January, 31)))
	assert.False(t, prev.Contains(day(2024, time.January, 20)))
}

func TestPreviousCoversSameCalendarDays(t *testing.T) {
	tests := []struct {
		name      string
		iv        Interval
		wantStart time.Time
		wantLast  time.Time
	}{
		{
			name:      "whole month",
			iv:        Interval{Start: day(2024, time.January, 1), End: day(2024, time.January, 31)},
			wantStart: day(2023, time.December, 1),
			wantLast:  day(2023, time.December, 31),
		},
		{
			name:      "leap february",
			iv:        Interval{Start: day(2024, time.February, 1), End: day(2024, time.February, 29)},
			wantStart: day(2024, time.January, 3),
			wantLast:  day(2024, time.January, 31),
		},
		{
			name:      "month to date",
			iv:        Interval{Start: day(2024, time.January, 1), End: time.Date(2024, time.January, 25, 14, 0, 0, 0, time.UTC)},
			wantStart: day(2023, time.December, 7),
			wantLast:  day(2023, time.December, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, ok := Previous(tt.iv)
			require.True(t, ok)
			assert.Equal(t, tt.wantStart, prev.Start)
			assert.True(t, prev.Contains(tt.wantStart))
			assert.True(t, prev.Contains(tt.wantLast))
			assert.False(t, prev.Contains(tt.wantStart.AddDate(0, 0, -1)))
			assert.False(t, prev.Contains(tt.iv.Start))
		})
	}
}

func TestLabel(t *testing.T) {
	iv := Interval{Start: day(2024, time.January, 1), End: day(2024, time.January, 31)}

	assert.Equal(t, "Current Quarter", Label(CurrentQuarter, iv))
	assert.Equal(t, "2024-01-01 to 2024-01-31", Label(Custom, iv))
}
