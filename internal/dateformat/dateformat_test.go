package dateformat

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/timeseries-chart/internal/types"
)

func TestDetect_SelectsFirstMatchingKind(t *testing.T) {
	tests := []struct {
		name    string
		samples []string
		want    Kind
		isDate  bool
	}{
		{name: "full date", samples: []string{"2020-01-01", "2020-02-01"}, want: KindDate, isDate: true},
		{name: "year month", samples: []string{"2020-01", "2020-02"}, want: KindYearMonth, isDate: true},
		{name: "year wins over number", samples: []string{"1999", "2000"}, want: KindYear, isDate: true},
		{name: "clock", samples: []string{"10:00:00", "10:00:30"}, want: KindClock, isDate: true},
		{name: "hour minute", samples: []string{"09:15", "09:30"}, want: KindHourMinute, isDate: true},
		{name: "hour wins over number", samples: []string{"10", "20"}, want: KindHour, isDate: true},
		{name: "unix seconds", samples: []string{"1600000000", "1600000060"}, want: KindUnixSeconds, isDate: true},
		{name: "unix millis", samples: []string{"1600000000000", "1600000000500"}, want: KindUnixMillis, isDate: true},
		{name: "unix micros", samples: []string{"1600000000000000", "1600000000000001"}, want: KindUnixMicros, isDate: true},
		{name: "integers", samples: []string{"1", "2", "3"}, want: KindNumber, isDate: false},
		{name: "mixed width integers", samples: []string{"10", "200", "-3"}, want: KindNumber, isDate: false},
		{name: "iso date-time", samples: []string{"2020-01-01T10:00:00Z", "2020-01-01T11:00:00Z"}, want: KindISO, isDate: true},
		{name: "iso mixed with date", samples: []string{"2020-01-01", "2020-01-01T11:00:00Z"}, want: KindISO, isDate: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Detect(tc.samples)
			require.True(t, ok)
			assert.Equal(t, tc.want, got, "detected %s", got)
			assert.Equal(t, tc.isDate, got.IsDate())
		})
	}
}

func TestDetect_ReturnsNoMatch_When_SamplesAreMixedOrEmpty(t *testing.T) {
	for _, samples := range [][]string{
		nil,
		{},
		{"2020-01-01", "abc"},
		{"1.5", "2.5"},
		{"2020-01-01", "10:00"},
	} {
		_, ok := Detect(samples)
		assert.False(t, ok, "samples %v", samples)
	}
}

func TestCandidates_PriorityOrder(t *testing.T) {
	got := Candidates()
	require.Len(t, got, 11)
	assert.Equal(t, KindDate, got[0])
	assert.Equal(t, KindNumber, got[9])
	assert.Equal(t, KindISO, got[10])

	got[0] = KindISO
	assert.Equal(t, KindDate, Candidates()[0], "Candidates must return a copy")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "YYYY-MM-DD", KindDate.String())
	assert.Equal(t, "unix-seconds", KindUnixSeconds.String())
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "iso", KindISO.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestNumber_RoundTrip(t *testing.T) {
	for _, n := range []float64{0, 1, -1, 42, -987654321, 1 << 52, -(1 << 53), 1e21} {
		s := KindNumber.Format(types.NumberValue(n))
		v, err := KindNumber.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, n, v.Number(), "round trip of %s", s)
	}
}

func TestUnix_RoundTrip(t *testing.T) {
	tests := []struct {
		kind    Kind
		samples []string
	}{
		{KindUnixSeconds, []string{"1600000000", "0000000001", "9999999999"}},
		{KindUnixMillis, []string{"1600000000123", "0000000000000"}},
		{KindUnixMicros, []string{"1600000000123456", "0000000000000007"}},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			for _, s := range tc.samples {
				require.True(t, tc.kind.Matches(s))
				v, err := tc.kind.Parse(s)
				require.NoError(t, err)
				assert.Equal(t, s, tc.kind.Format(v))
			}
		})
	}
}

func TestFormat_MirrorsDetectedGranularity(t *testing.T) {
	v := types.TimeValue(time.Date(2021, 3, 4, 5, 6, 7, 8000000, time.UTC))

	assert.Equal(t, "2021-03-04", KindDate.Format(v))
	assert.Equal(t, "2021-03", KindYearMonth.Format(v))
	assert.Equal(t, "2021", KindYear.Format(v))
	assert.Equal(t, "05:06:07", KindClock.Format(v))
	assert.Equal(t, "05:06", KindHourMinute.Format(v))
	assert.Equal(t, "05", KindHour.Format(v))
	assert.Equal(t, "2021-03-04T05:06:07.008Z", KindISO.Format(v))
}

func TestParse_ClockValuesAnchoredOnEpochDay(t *testing.T) {
	v, err := KindClock.Parse("13:45:10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1900, 1, 1, 13, 45, 10, 0, time.UTC), v.Time())

	v, err = KindHour.Parse("07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1900, 1, 1, 7, 0, 0, 0, time.UTC), v.Time())
}

func TestParse_RejectsOutOfRangeFields(t *testing.T) {
	tests := []struct {
		kind   Kind
		sample string
	}{
		{KindDate, "2020-02-30"},
		{KindDate, "2020-13-01"},
		{KindYearMonth, "2020-00"},
		{KindHour, "25"},
		{KindHourMinute, "12:60"},
		{KindClock, "23:59:61"},
		{KindISO, "2020-01-01T25:00:00Z"},
	}

	for _, tc := range tests {
		_, err := tc.kind.Parse(tc.sample)
		assert.Error(t, err, "%s %q", tc.kind, tc.sample)
	}
}

func TestISO_Grammar(t *testing.T) {
	accepted := map[string]time.Time{
		"2020-01-02T03:04:05Z":           time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
		"2020-01-02T03:04:05.250Z":       time.Date(2020, 1, 2, 3, 4, 5, 250000000, time.UTC),
		"2020-01-02T03:04:05+02:00":      time.Date(2020, 1, 2, 1, 4, 5, 0, time.UTC),
		"2020-01-02T03:04":               time.Date(2020, 1, 2, 3, 4, 0, 0, time.UTC),
		"2020-01-02 03:04:05":            time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
		"2020-01-02":                     time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		"2020-01-02T03:04:05.123456789Z": time.Date(2020, 1, 2, 3, 4, 5, 123456789, time.UTC),
	}
	for s, want := range accepted {
		assert.True(t, KindISO.Matches(s), s)
		v, err := KindISO.Parse(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(v.Time()), "%s parsed as %s", s, v.Time())
	}

	for _, s := range []string{"", "Jan 2 2020", "2020/01/02", "2020-01-02T", "20200102", "2020-01-02T03"} {
		assert.False(t, KindISO.Matches(s), s)
	}
}

func TestParse_NumberAcceptsNegatives(t *testing.T) {
	v, err := KindNumber.Parse("-17")
	require.NoError(t, err)
	assert.False(t, v.IsTime())
	assert.Equal(t, -17.0, v.Number())
	assert.False(t, math.IsNaN(v.Float()))
}
