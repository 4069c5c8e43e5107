package gesture

import (
	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/timemap"
	"github.com/Kevin-Rudy/gotrend/pkg/zoom"
)

// HandlePan 处理拖动手势
func (c *Controller) HandlePan(ev core.PanEvent) {
	switch ev.Phase {
	case core.PhaseStart:
		c.panStart(ev)
	case core.PhaseMove:
		c.panMove(ev)
	case core.PhaseEnd:
		c.panEnd(ev)
	case core.PhaseCancel:
		c.panCancel()
	}
}

// HandlePinch 处理捏合手势
func (c *Controller) HandlePinch(ev core.PinchEvent) {
	switch ev.Phase {
	case core.PhaseStart:
		c.pinchStart()
	case core.PhaseMove:
		c.pinchMove(ev)
	case core.PhaseEnd:
		c.pinchEnd()
	case core.PhaseCancel:
		c.pinchCancel()
	}
}

// panStart 以手势起点而不是当前位置判定区域
func (c *Controller) panStart(ev core.PanEvent) {
	if c.mode != ModeNone || c.cfg.Sparkline || !c.canStart() {
		return
	}

	origin := ev.Origin()
	area := c.chart.TargetArea(origin)
	switch area {
	case core.AreaCursor:
		c.cursor.Start(origin.X)
		c.mode = ModeMovingCursor
		c.cursor.Move(ev.Center.X)
	case core.AreaPan, core.AreaPlot:
		if c.cfg.PanEnabled && (area == core.AreaPan || ev.Pointer == core.PointerTouch) {
			c.mode = ModePanning
			c.panBy(ev.DeltaX)
			return
		}
		if !c.coord.StartRubberBand(c.id, c.toLocal(origin), c.chart.PlotWidth(), c.chart.PlotHeight()) {
			return
		}
		c.mode = ModeRubberBandZooming
		c.coord.ExtendRubberBand(c.id, c.toLocal(ev.Center))
		c.chart.Refresh()
	}
}

func (c *Controller) panMove(ev core.PanEvent) {
	switch c.mode {
	case ModeMovingCursor:
		c.cursor.Move(ev.Center.X)
	case ModePanning:
		c.panBy(ev.DeltaX)
	case ModeRubberBandZooming:
		if !c.coord.ExtendRubberBand(c.id, c.toLocal(ev.Center)) {
			c.mode = ModeNone
		}
		c.chart.Refresh()
	case ModePinching, ModeNone:
	}
}

func (c *Controller) panEnd(ev core.PanEvent) {
	switch c.mode {
	case ModePanning, ModePinching:
		c.finalize()
	case ModeRubberBandZooming:
		c.mode = ModeNone
		if c.coord.Owns(c.id) {
			c.coord.CommitZoom(c.id, c.toLocal(ev.Center), zoom.Commit{
				Chart:    c.chart,
				Provider: c.provider,
				Target:   zoomTarget{c: c},
			})
		}
		c.chart.Refresh()
	case ModeMovingCursor:
		c.mode = ModeNone
		c.cursor.Stop(ev.Center.X)
	case ModeNone:
	}
}

// panCancel 恢复手势开始前的共享状态
func (c *Controller) panCancel() {
	switch c.mode {
	case ModePanning:
		c.provider.PanTimeRange(0)
		c.finalize()
	case ModePinching:
		c.finalize()
	case ModeRubberBandZooming:
		c.coord.CancelRubberBand(c.id)
		c.mode = ModeNone
		c.chart.Refresh()
	case ModeMovingCursor:
		c.cursor.Reset()
		c.mode = ModeNone
	case ModeNone:
	}
}

// panBy 将水平位移换算为绘图区宽度百分比并平移
func (c *Controller) panBy(dx float64) {
	level := c.cfg.ZoomLevel
	if level <= 0 {
		level = 1
	}
	c.provider.PanTimeRange(timemap.PixelToPercent(dx/level, c.chart.PlotWidth()))
}

func (c *Controller) pinchStart() {
	if !c.canStart() {
		return
	}
	c.pinchActive = true
	c.lastGoodPinch = nil
}

func (c *Controller) pinchMove(ev core.PinchEvent) {
	if !c.pinchActive || c.blocked() {
		return
	}

	switch c.mode {
	case ModeRubberBandZooming:
		c.coord.CancelRubberBand(c.id)
		c.chart.Refresh()
	case ModeMovingCursor:
		c.cursor.Reset()
	case ModePanning:
		// 平移结果并入基准后再缩放
		c.provider.GestureComplete(false)
	case ModePinching, ModeNone:
	}

	if ev.Scale != 1 {
		good := ev
		c.lastGoodPinch = &good
	}
	c.mode = ModePinching
	anchor := c.chart.CalcXOffsetPercent(ev.Center.X)
	c.provider.ScaleTimeRange(ev.Scale, anchor)
}

func (c *Controller) pinchEnd() {
	if !c.pinchActive {
		return
	}
	c.pinchActive = false
	c.lastGoodPinch = nil
	if c.mode == ModePinching {
		c.finalize()
	}
}

// pinchCancel 某些平台的取消事件会把缩放比例报告为1，重放最后一次有效事件
// 没有有效事件时不重放
func (c *Controller) pinchCancel() {
	if !c.pinchActive {
		return
	}
	if c.lastGoodPinch != nil {
		replay := *c.lastGoodPinch
		replay.Phase = core.PhaseMove
		c.pinchMove(replay)
	}
	c.pinchActive = false
	c.lastGoodPinch = nil
	if c.mode == ModePinching {
		c.finalize()
	}
}

// toLocal 屏幕坐标转换为绘图区局部坐标
func (c *Controller) toLocal(p core.Point) core.Point {
	return core.Point{X: p.X - c.chart.PlotLeft(), Y: p.Y - c.chart.PlotTop()}
}
