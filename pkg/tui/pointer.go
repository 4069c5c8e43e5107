// Package tui 鼠标事件到手势的转换
package tui

import (
	"github.com/rivo/tview"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
)

// gestureSink 接收解析后的手势，由 gesture.Controller 实现
type gestureSink interface {
	HandleTap(ev core.TapEvent)
	HandlePan(ev core.PanEvent)
	HandlePinch(ev core.PinchEvent)
}

// pointerTracker 将终端鼠标动作转换为单击、拖动和捏合手势
// 左键按下后未移动即抬起视为单击，移动视为拖动，滚轮视为一步捏合
type pointerTracker struct {
	sink      gestureSink
	wheelStep float64

	down    bool
	dragged bool
	origin  core.Point
	last    core.Point
}

func newPointerTracker(sink gestureSink, wheelStep float64) *pointerTracker {
	return &pointerTracker{sink: sink, wheelStep: wheelStep}
}

// handle 处理一个鼠标动作，返回是否需要继续捕获鼠标
func (p *pointerTracker) handle(action tview.MouseAction, x, y int) (capture bool) {
	pos := core.Point{X: float64(x), Y: float64(y)}

	switch action {
	case tview.MouseLeftDown:
		p.down = true
		p.dragged = false
		p.origin = pos
		p.last = pos
		return true

	case tview.MouseMove:
		if !p.down {
			return false
		}
		if pos == p.last {
			return true
		}
		p.last = pos
		phase := core.PhaseMove
		if !p.dragged {
			p.dragged = true
			phase = core.PhaseStart
		}
		p.sink.HandlePan(p.panEvent(phase, pos))
		return true

	case tview.MouseLeftUp:
		if !p.down {
			return false
		}
		p.down = false
		if p.dragged {
			p.dragged = false
			p.sink.HandlePan(p.panEvent(core.PhaseEnd, pos))
			return false
		}
		p.sink.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: p.origin})
		return false

	case tview.MouseScrollUp:
		p.pinch(pos, p.wheelStep)
	case tview.MouseScrollDown:
		p.pinch(pos, 1/p.wheelStep)
	}
	return p.down
}

// cancel 取消进行中的拖动
func (p *pointerTracker) cancel() bool {
	if !p.down {
		return false
	}
	p.down = false
	if !p.dragged {
		return false
	}
	p.dragged = false
	p.sink.HandlePan(p.panEvent(core.PhaseCancel, p.last))
	return true
}

// active 是否有按下的左键
func (p *pointerTracker) active() bool {
	return p.down
}

func (p *pointerTracker) panEvent(phase core.Phase, pos core.Point) core.PanEvent {
	return core.PanEvent{
		Phase:   phase,
		Pointer: core.PointerMouse,
		Center:  pos,
		DeltaX:  pos.X - p.origin.X,
		DeltaY:  pos.Y - p.origin.Y,
	}
}

// pinch 滚轮没有连续的缩放过程，每格发出一次完整的捏合
func (p *pointerTracker) pinch(center core.Point, scale float64) {
	p.sink.HandlePinch(core.PinchEvent{Phase: core.PhaseStart, Pointer: core.PointerMouse, Center: center, Scale: 1})
	p.sink.HandlePinch(core.PinchEvent{Phase: core.PhaseMove, Pointer: core.PointerMouse, Center: center, Scale: scale})
	p.sink.HandlePinch(core.PinchEvent{Phase: core.PhaseEnd, Pointer: core.PointerMouse, Center: center, Scale: scale})
}
