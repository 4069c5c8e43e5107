package timemap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testStart = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	testEnd   = testStart.Add(time.Hour)
)

func TestPixelToPercent(t *testing.T) {
	require.InDelta(t, 25.0, PixelToPercent(50, 200), 1e-9)
	require.InDelta(t, -10.0, PixelToPercent(-20, 200), 1e-9)
	require.Zero(t, PixelToPercent(10, 0))
}

func TestPercentToDateRange(t *testing.T) {
	d, ok := PercentToDate(50, testStart, testEnd)
	require.True(t, ok)
	require.Equal(t, testStart.Add(30*time.Minute), d)

	d, ok = PercentToDate(0, testStart, testEnd)
	require.True(t, ok)
	require.Equal(t, testStart, d)

	d, ok = PercentToDate(100, testStart, testEnd)
	require.True(t, ok)
	require.Equal(t, testEnd, d)
}

func TestPercentToDateOutOfRange(t *testing.T) {
	// 超出范围不截断
	_, ok := PercentToDate(-0.01, testStart, testEnd)
	require.False(t, ok)
	_, ok = PercentToDate(100.5, testStart, testEnd)
	require.False(t, ok)
	_, ok = PercentToDate(50, testEnd, testStart)
	require.False(t, ok)
}

func TestPercentDateRoundTrip(t *testing.T) {
	for _, offset := range []time.Duration{0, time.Second, 17 * time.Minute, 59*time.Minute + 59*time.Second, time.Hour} {
		date := testStart.Add(offset)
		got, ok := PercentToDate(DateToPercent(date, testStart, testEnd), testStart, testEnd)
		require.True(t, ok)
		require.WithinDuration(t, date, got, time.Microsecond)
	}
}

func TestDateToPixelRoundsUp(t *testing.T) {
	// 10:20 为 33.33%，200宽度对应66.67像素
	px := DateToPixel(testStart.Add(20*time.Minute), testStart, testEnd, 10, 200)
	require.Equal(t, 77, px)
	require.Equal(t, 10, DateToPixel(testStart, testStart, testEnd, 10, 200))
	require.Equal(t, 210, DateToPixel(testEnd, testStart, testEnd, 10, 200))
}

func TestDisplayTimeFormat(t *testing.T) {
	s := FormatDisplayTime(testStart.Add(123 * time.Millisecond))
	got, ok := ParseDisplayTime(s)
	require.True(t, ok)
	require.True(t, got.Equal(testStart.Add(123*time.Millisecond)))

	_, ok = ParseDisplayTime("")
	require.False(t, ok)
	_, ok = ParseDisplayTime("yesterday")
	require.False(t, ok)
}

func TestRelativeDate(t *testing.T) {
	require.Equal(t, testStart.Add(90*time.Second), RelativeDate(testStart, 90*time.Second))
}
