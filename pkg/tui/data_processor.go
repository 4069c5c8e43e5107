// Package tui 数据处理模块
package tui

import (
	"math"
	"sync"
	"time"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
)

// history 按曲线保存的历史采样，数据goroutine写入，事件循环读取
type history struct {
	mu      sync.RWMutex
	traces  map[string][]core.DataPoint
	maxSize int
}

func newHistory(maxSize int) *history {
	return &history{
		traces:  make(map[string][]core.DataPoint),
		maxSize: maxSize,
	}
}

// add 按时间戳插入采样
func (h *history) add(sample core.Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	point := core.DataPoint{Timestamp: sample.Time, Value: sample.Value}
	points := insertDataPointByTime(h.traces[sample.Trace], point)

	// 维护历史缓冲区大小
	if len(points) > h.maxSize {
		points = points[len(points)-h.maxSize:]
	}
	h.traces[sample.Trace] = points
}

// insertDataPointByTime 按时间戳插入数据点
func insertDataPointByTime(points []core.DataPoint, newPoint core.DataPoint) []core.DataPoint {
	// 检查是否需要在最后插入（常见情况）
	if len(points) == 0 || !newPoint.Timestamp.Before(points[len(points)-1].Timestamp) {
		return append(points, newPoint)
	}

	// 需要在中间插入，使用二分查找找到插入位置
	left := searchTime(points, newPoint.Timestamp)
	points = append(points, core.DataPoint{})
	copy(points[left+1:], points[left:])
	points[left] = newPoint
	return points
}

// window 返回 [start, end] 内的数据点副本，并各带上窗口两侧的一个点以便连线到边界
func (h *history) window(trace string, start, end time.Time) []core.DataPoint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	points := h.traces[trace]
	if len(points) == 0 {
		return nil
	}

	first := searchTime(points, start)
	if first > 0 {
		first--
	}
	last := searchTime(points, end)
	if last < len(points) {
		last++
	}

	out := make([]core.DataPoint, last-first)
	copy(out, points[first:last])
	return out
}

// valueAt 时间 t 处（含）之前最近的一个采样值
func (h *history) valueAt(trace string, t time.Time) (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	points := h.traces[trace]
	i := searchTime(points, t.Add(time.Nanosecond))
	if i == 0 {
		return math.NaN(), false
	}
	return points[i-1].Value, true
}

// span 所有曲线中最早与最晚的采样时间
func (h *history) span() (time.Time, time.Time, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var first, last time.Time
	found := false
	for _, points := range h.traces {
		if len(points) == 0 {
			continue
		}
		if !found || points[0].Timestamp.Before(first) {
			first = points[0].Timestamp
		}
		if !found || points[len(points)-1].Timestamp.After(last) {
			last = points[len(points)-1].Timestamp
		}
		found = true
	}
	return first, last, found
}

// searchTime 第一个不早于 t 的数据点下标
func searchTime(points []core.DataPoint, t time.Time) int {
	left, right := 0, len(points)
	for left < right {
		mid := (left + right) / 2
		if points[mid].Timestamp.Before(t) {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return left
}
