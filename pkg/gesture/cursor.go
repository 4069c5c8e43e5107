package gesture

import (
	"time"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/timemap"
	"github.com/Kevin-Rudy/gotrend/pkg/zoom"
)

// Cursor 游标的位置、时间与拖动状态
type Cursor struct {
	owner    string
	chart    core.ChartModel
	provider core.TimeRangeProvider
	coord    *zoom.Coordinator
	host     core.Host
	now      func() time.Time

	enabled      bool
	relative     bool
	relativeZero time.Time

	state       core.CursorState
	dragTime    *time.Time // 拖动开始前的时间，取消时恢复
	syncPending bool       // 已提交游标更新，宿主尚未完成刷新
	hidden      bool       // 时间范围手势期间不绘制，时间保留
}

func newCursor(owner string, chart core.ChartModel, provider core.TimeRangeProvider, coord *zoom.Coordinator, host core.Host, now func() time.Time) *Cursor {
	return &Cursor{
		owner:    owner,
		chart:    chart,
		provider: provider,
		coord:    coord,
		host:     host,
		now:      now,
		enabled:  true,
	}
}

// State 游标状态的副本
func (c *Cursor) State() core.CursorState {
	s := c.state
	if s.Time != nil {
		t := *s.Time
		s.Time = &t
	}
	if s.Drag != nil {
		d := *s.Drag
		s.Drag = &d
	}
	return s
}

// Dragging 是否正在拖动
func (c *Cursor) Dragging() bool {
	return c.state.Drag != nil
}

// Start 记录拖动起点，不产生其他副作用
// 显示窗口可能在上次设置之后移动过，起点位置按游标时间重新计算
func (c *Cursor) Start(x float64) {
	if c.state.Time != nil {
		c.state.Pos = c.positionOf(*c.state.Time)
	}
	c.state.Drag = &core.DragStart{StartX: x, Pos: c.state.Pos}
	c.dragTime = c.state.Time
}

// Move 拖动到x，返回新的游标时间
// 没有在拖动或位置超出时间范围时返回false，状态不变
func (c *Cursor) Move(x float64) (time.Time, bool) {
	if c.state.Drag == nil {
		return time.Time{}, false
	}
	pos := c.state.Drag.Pos + (x - c.state.Drag.StartX)
	date, ok := c.dateAt(pos)
	if !ok {
		return time.Time{}, false
	}
	c.state.Pos = pos
	c.state.Time = &date
	c.coord.BroadcastCursor(c.owner, &date)
	c.chart.Refresh()
	return date, true
}

// Stop 结束拖动，只有落在有效时间范围内才提交
// 否则保留拖动状态，等待后续移动到有效位置或外部重置
func (c *Cursor) Stop(x float64) bool {
	date, ok := c.Move(x)
	if !ok {
		return false
	}
	c.state.Drag = nil
	c.dragTime = nil
	c.syncPending = true
	c.host.Notify(core.Notification{Source: c.owner, Kind: core.NotifyCursorUpdated, Cursor: date})
	return true
}

// Reset 取消拖动，恢复拖动前的位置
func (c *Cursor) Reset() {
	if c.state.Drag == nil {
		return
	}
	c.state.Pos = c.state.Drag.Pos
	c.state.Time = c.dragTime
	c.state.Drag = nil
	c.dragTime = nil
	c.coord.BroadcastCursor(c.owner, c.state.Time)
	c.chart.Refresh()
}

// PlaceAt 将游标直接放到x处并提交
func (c *Cursor) PlaceAt(x float64) bool {
	if !c.enabled {
		return false
	}
	date, ok := c.dateAt(x)
	if !ok {
		return false
	}
	c.SetCursor(&date)
	c.coord.BroadcastCursor(c.owner, &date)
	c.syncPending = true
	c.host.Notify(core.Notification{Source: c.owner, Kind: core.NotifyCursorUpdated, Cursor: date})
	return true
}

// SetCursor 设置游标时间，nil表示清除；可重复调用
func (c *Cursor) SetCursor(t *time.Time) {
	if t == nil {
		c.clear()
		c.chart.Refresh()
		return
	}
	date := *t
	c.state.Time = &date
	c.state.Pos = c.positionOf(date)
	c.hidden = false
	c.chart.Refresh()
}

// clear 清除时间和位置，同时结束进行中的拖动
func (c *Cursor) clear() {
	c.state.Time = nil
	c.state.Pos = 0
	c.hidden = false
	if c.state.Drag == nil {
		return
	}
	// 实时趋势在拖动游标期间结束时间仍在前进，需要重新请求时间窗口
	if !c.relative && c.syncPending && c.endInFuture() {
		c.syncPending = false
		c.host.Notify(core.Notification{Source: c.owner, Kind: core.NotifyRefreshAll})
	}
	c.state.Drag = nil
	c.dragTime = nil
}

// hide 手势期间移除已绘制的游标
func (c *Cursor) hide() bool {
	if c.hidden || c.state.Time == nil || c.state.Drag != nil {
		return false
	}
	c.hidden = true
	return true
}

// show 手势结束后按游标时间重新绘制
func (c *Cursor) show() bool {
	if !c.hidden {
		return false
	}
	c.hidden = false
	if c.state.Time != nil {
		c.state.Pos = c.positionOf(*c.state.Time)
	}
	return true
}

// Visible 游标是否应当绘制
func (c *Cursor) Visible() bool {
	return c.enabled && c.state.Time != nil && !c.hidden
}

// SyncCompleted 宿主完成游标刷新后调用
func (c *Cursor) SyncCompleted() {
	c.syncPending = false
}

func (c *Cursor) endInFuture() bool {
	end, ok := timemap.ParseDisplayTime(c.provider.ServerEndTime())
	return ok && end.After(c.now())
}

func (c *Cursor) window() (time.Time, time.Time, bool) {
	start, okStart := timemap.ParseDisplayTime(c.provider.ServerStartTime())
	end, okEnd := timemap.ParseDisplayTime(c.provider.ServerEndTime())
	return start, end, okStart && okEnd
}

// dateAt 屏幕x坐标对应的游标时间，超出时间范围返回false
func (c *Cursor) dateAt(x float64) (time.Time, bool) {
	start, end, ok := c.window()
	if !ok {
		return time.Time{}, false
	}
	date, ok := timemap.PercentToDate(c.chart.CalcXOffsetPercent(x), start, end)
	if !ok {
		return time.Time{}, false
	}
	if c.relative {
		return timemap.RelativeDate(c.relativeZero, c.chart.CalcRelativeOffset(x)), true
	}
	return date, true
}

func (c *Cursor) positionOf(date time.Time) float64 {
	if c.relative {
		start, _, ok := c.window()
		if !ok {
			return c.state.Pos
		}
		date = start.Add(date.Sub(c.relativeZero))
	}
	return c.chart.CalcXPosition(date)
}
