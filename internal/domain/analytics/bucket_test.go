package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTruncate_SemanaEmpiezaLunes(t *testing.T) {
	// 2024-03-10 es domingo → lunes 2024-03-04
	assert.Equal(t, date(2024, 3, 4), Truncate(time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC), Week))
	assert.Equal(t, date(2024, 3, 4), Truncate(date(2024, 3, 4), Week))
	assert.Equal(t, date(2024, 3, 1), Truncate(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), Month))
}

func TestTruncate_UsaUTC(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	// 02:00 MSK del 2 de marzo = 23:00 UTC del 1 de marzo
	got := Truncate(time.Date(2024, 3, 2, 2, 0, 0, 0, msk), Day)
	assert.Equal(t, date(2024, 3, 1), got)
}

func TestStarts_DiasContinuos(t *testing.T) {
	r, err := ParseRange("2024-03-01", "2024-03-10", time.Now())
	require.NoError(t, err)
	starts := Starts(r.From, r.To, Day)
	require.Len(t, starts, 10)
	assert.Equal(t, date(2024, 3, 1), starts[0])
	assert.Equal(t, date(2024, 3, 10), starts[9])
}

func TestStarts_SemanasYMeses(t *testing.T) {
	weeks := Starts(date(2024, 3, 1), EndOfDay(date(2024, 3, 20)), Week)
	assert.Equal(t, []time.Time{date(2024, 2, 26), date(2024, 3, 4), date(2024, 3, 11), date(2024, 3, 18)}, weeks)

	months := Starts(date(2024, 1, 15), EndOfDay(date(2024, 4, 2)), Month)
	assert.Len(t, months, 4)
	assert.Equal(t, date(2024, 4, 1), months[3])
}

func TestParseRange(t *testing.T) {
	now := time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC)

	r, err := ParseRange("", "", now)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 5, 1), r.From)
	assert.Equal(t, EndOfDay(date(2024, 5, 17)), r.To)
	assert.True(t, r.Contains(time.Date(2024, 5, 17, 23, 59, 59, 0, time.UTC)), "to es inclusivo")

	_, err = ParseRange("2024-05-10", "2024-05-01", now)
	assert.Error(t, err)

	_, err = ParseRange("10/05/2024", "", now)
	assert.Error(t, err)
}

func TestParseBucket(t *testing.T) {
	b, err := ParseBucket("", Month)
	require.NoError(t, err)
	assert.Equal(t, Month, b)

	_, err = ParseBucket("year", Day)
	assert.Error(t, err)
}
