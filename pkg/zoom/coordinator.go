// Package zoom 同一显示界面上多个趋势图共享的缩放协调器
// 记录当前正在画橡皮筋选框的图表实例，并负责橡皮筋缩放的最终提交
package zoom

import (
	"maps"
	"slices"
	"time"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
)

// Coordinator 橡皮筋选框的所有权与游标同步
// 非并发安全，只能在事件循环上使用
type Coordinator struct {
	currentTrend string // 当前拥有橡皮筋选框的实例，空表示无
	origin       core.Point
	band         core.RubberBand
	plotWidth    float64
	plotHeight   float64

	nextID     int
	cursorSubs map[int]cursorSub
}

type cursorSub struct {
	owner string
	fn    func(from string, t *time.Time)
}

// NewCoordinator 创建协调器
func NewCoordinator() *Coordinator {
	return &Coordinator{cursorSubs: make(map[int]cursorSub)}
}

// Owner 当前拥有橡皮筋选框的实例
func (c *Coordinator) Owner() string {
	return c.currentTrend
}

// Owns 实例是否拥有橡皮筋选框
func (c *Coordinator) Owns(id string) bool {
	return id != "" && c.currentTrend == id
}

// BusyElsewhere 其他实例是否正在画橡皮筋选框
func (c *Coordinator) BusyElsewhere(id string) bool {
	return c.currentTrend != "" && c.currentTrend != id
}

// StartRubberBand 以绘图区局部坐标 origin 开始橡皮筋选框
// 其他实例已拥有选框时拒绝
func (c *Coordinator) StartRubberBand(id string, origin core.Point, plotWidth, plotHeight float64) bool {
	if id == "" || c.BusyElsewhere(id) {
		return false
	}
	c.currentTrend = id
	c.plotWidth = plotWidth
	c.plotHeight = plotHeight
	c.origin = clampPoint(origin, plotWidth, plotHeight)
	c.band = core.RubberBand{Left: c.origin.X, Top: c.origin.Y}
	return true
}

// ExtendRubberBand 将选框延伸到局部坐标 p，只有拥有者可以调用
func (c *Coordinator) ExtendRubberBand(id string, p core.Point) bool {
	if !c.Owns(id) {
		return false
	}
	p = clampPoint(p, c.plotWidth, c.plotHeight)
	c.band = core.RubberBand{
		Left:   min(c.origin.X, p.X),
		Top:    min(c.origin.Y, p.Y),
		Width:  abs(p.X - c.origin.X),
		Height: abs(p.Y - c.origin.Y),
	}
	return true
}

// RubberBand 返回实例拥有的选框
func (c *Coordinator) RubberBand(id string) (core.RubberBand, bool) {
	if !c.Owns(id) {
		return core.RubberBand{}, false
	}
	return c.band, true
}

// CancelRubberBand 放弃选框，只有拥有者可以调用
func (c *Coordinator) CancelRubberBand(id string) bool {
	if !c.Owns(id) {
		return false
	}
	c.clear()
	return true
}

func (c *Coordinator) clear() {
	c.currentTrend = ""
	c.band = core.RubberBand{}
	c.origin = core.Point{}
}

// OnCursor 订阅跨实例游标同步，owner 自己发出的广播不会回传
func (c *Coordinator) OnCursor(owner string, fn func(from string, t *time.Time)) func() {
	c.nextID++
	id := c.nextID
	c.cursorSubs[id] = cursorSub{owner: owner, fn: fn}
	return func() { delete(c.cursorSubs, id) }
}

// BroadcastCursor 向其他实例广播游标时间，t 为nil表示清除游标
func (c *Coordinator) BroadcastCursor(from string, t *time.Time) {
	for _, id := range slices.Sorted(maps.Keys(c.cursorSubs)) {
		sub, ok := c.cursorSubs[id]
		if !ok || sub.owner == from {
			continue
		}
		sub.fn(from, t)
	}
}

// Subscribers 当前游标订阅数
func (c *Coordinator) Subscribers() int {
	return len(c.cursorSubs)
}

func clampPoint(p core.Point, w, h float64) core.Point {
	return core.Point{X: clamp(p.X, 0, w), Y: clamp(p.Y, 0, h)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
