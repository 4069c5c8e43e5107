// Package tui 时间管理模块
package tui

import (
	"time"
)

// liveWindow 实时跟随时的时间窗口，结束于当前时间
func liveWindow(now time.Time, span time.Duration) (start, end time.Time) {
	return now.Add(-span), now
}

// timestampToX 将时间戳转换为X坐标，窗口外的时间返回画布外的坐标
func timestampToX(timestamp time.Time, windowStart, windowEnd time.Time, chartWidth int) int {
	windowDuration := windowEnd.Sub(windowStart)
	if windowDuration <= 0 {
		return 0
	}

	// 将时间偏移转换为X坐标
	offset := timestamp.Sub(windowStart)
	x := float64(offset) / float64(windowDuration) * float64(chartWidth)
	if x < 0 {
		return int(x) - 1
	}
	return int(x)
}
