// Package timemap 绘图区像素、宽度百分比与时间戳之间的换算
package timemap

import (
	"math"
	"time"
)

// PixelToPercent 将像素偏移换算为绘图区宽度的百分比
func PixelToPercent(dx, plotWidth float64) float64 {
	if plotWidth <= 0 {
		return 0
	}
	return dx / plotWidth * 100
}

// PercentToDate 将宽度百分比换算为时间
// 百分比超出 [0, 100] 时返回 false，不做截断
func PercentToDate(percent float64, start, end time.Time) (time.Time, bool) {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return time.Time{}, false
	}
	if !end.After(start) {
		return time.Time{}, false
	}
	span := end.Sub(start)
	offset := time.Duration(math.Round(float64(span) * percent / 100))
	return start.Add(offset), true
}

// DateToPercent 将时间换算为时间范围内的百分比
func DateToPercent(date, start, end time.Time) float64 {
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}
	return float64(date.Sub(start)) / float64(span) * 100
}

// DateToPixel 将时间换算为屏幕x坐标，向上取整
func DateToPixel(date, start, end time.Time, plotLeft, plotWidth float64) int {
	percent := DateToPercent(date, start, end)
	return int(math.Ceil(plotLeft + percent/100*plotWidth))
}

// RelativeDate 相对时间模式下，以基准时间加偏移表示的时间
func RelativeDate(zero time.Time, offset time.Duration) time.Time {
	return zero.Add(offset)
}

// ParseDisplayTime 解析时间范围提供者返回的RFC3339时间
func ParseDisplayTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDisplayTime 与 ParseDisplayTime 对应的格式化
func FormatDisplayTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
