// Package timerange 一个显示界面上所有趋势图共享的时间范围
package timerange

import (
	"log"
	"maps"
	"slices"
	"time"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/timemap"
)

// LabelLayout 手势广播中时间标签的格式
const LabelLayout = "15:04:05"

// Window 时间窗口
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration 窗口长度
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Provider 实现 core.TimeRangeProvider
// 非并发安全，只能在事件循环上使用
type Provider struct {
	display   Window
	base      Window // 当前手势的基准窗口
	gesturing bool

	nextID      int
	gestureSubs map[int]func(core.GestureEvent)
	changeSubs  map[int]func()
}

// New 创建时间范围提供者
func New(start, end time.Time) *Provider {
	w := Window{Start: start, End: end}
	return &Provider{
		display:     w,
		base:        w,
		gestureSubs: make(map[int]func(core.GestureEvent)),
		changeSubs:  make(map[int]func()),
	}
}

// Window 当前显示窗口
func (p *Provider) Window() Window {
	return p.display
}

// Gesturing 是否有手势尚未最终提交
func (p *Provider) Gesturing() bool {
	return p.gesturing
}

// Reset 外部设置显示窗口，结束进行中的手势
func (p *Provider) Reset(start, end time.Time) {
	if !end.After(start) {
		return
	}
	p.display = Window{Start: start, End: end}
	p.base = p.display
	if p.gesturing {
		p.gesturing = false
		p.broadcast(core.Gesture{Cancel: true})
	}
	p.fireChanged()
}

func (p *Provider) beginStep() {
	if !p.gesturing {
		p.gesturing = true
		p.base = p.display
	}
}

// PanTimeRange 以手势基准窗口为起点平移 percent% 的窗口长度
// 正值表示内容跟随指针向右移动，即窗口移向更早的时间
func (p *Provider) PanTimeRange(percent float64) {
	p.beginStep()
	shift := time.Duration(float64(p.base.Duration()) * percent / 100)
	p.display = Window{Start: p.base.Start.Add(-shift), End: p.base.End.Add(-shift)}
	p.broadcast(core.Gesture{Kind: core.GesturePan, Percent: percent})
}

// ScaleTimeRange 以 anchorPercent 处的时间为不动点，将基准窗口缩小 factor 倍
func (p *Provider) ScaleTimeRange(factor, anchorPercent float64) {
	if factor <= 0 {
		return
	}
	p.beginStep()
	dur := float64(p.base.Duration())
	anchor := p.base.Start.Add(time.Duration(dur * anchorPercent / 100))
	newDur := dur / factor
	if newDur < float64(time.Millisecond) {
		newDur = float64(time.Millisecond)
	}
	start := anchor.Add(-time.Duration(newDur * anchorPercent / 100))
	p.display = Window{Start: start, End: start.Add(time.Duration(newDur))}
	p.broadcast(core.Gesture{Kind: core.GestureScale, Factor: factor, Anchor: anchorPercent})
}

// SetZoomedTimeRange 将显示窗口设置为当前窗口中 [startPercent, endPercent] 的部分
func (p *Provider) SetZoomedTimeRange(startPercent, endPercent float64) {
	if endPercent < startPercent {
		startPercent, endPercent = endPercent, startPercent
	}
	start, okStart := percentOf(p.display, startPercent)
	end, okEnd := percentOf(p.display, endPercent)
	if !okStart || !okEnd || !end.After(start) {
		log.Printf("timerange: 忽略无效缩放范围 %.2f%%-%.2f%%", startPercent, endPercent)
		return
	}
	p.display = Window{Start: start, End: end}
	p.base = p.display
	p.fireChanged()
}

// percentOf 与 timemap.PercentToDate 不同，这里允许窗口外的百分比
func percentOf(w Window, percent float64) (time.Time, bool) {
	if t, ok := timemap.PercentToDate(percent, w.Start, w.End); ok {
		return t, true
	}
	if w.Duration() <= 0 {
		return time.Time{}, false
	}
	return w.Start.Add(time.Duration(float64(w.Duration()) * percent / 100)), true
}

// GestureComplete 手势步骤结束；final 为true时最终提交
func (p *Provider) GestureComplete(final bool) {
	if !final {
		p.base = p.display
		return
	}
	if !p.gesturing {
		return
	}
	p.gesturing = false
	p.base = p.display
	p.broadcast(core.Gesture{Cancel: true})
	p.fireChanged()
}

// ServerStartTime 实现 core.TimeRangeProvider
func (p *Provider) ServerStartTime() string {
	return timemap.FormatDisplayTime(p.display.Start)
}

// ServerEndTime 实现 core.TimeRangeProvider
func (p *Provider) ServerEndTime() string {
	return timemap.FormatDisplayTime(p.display.End)
}

// OnGesture 实现 core.TimeRangeProvider
func (p *Provider) OnGesture(fn func(core.GestureEvent)) func() {
	p.nextID++
	id := p.nextID
	p.gestureSubs[id] = fn
	return func() { delete(p.gestureSubs, id) }
}

// OnDisplayTimeChanged 实现 core.TimeRangeProvider
func (p *Provider) OnDisplayTimeChanged(fn func()) func() {
	p.nextID++
	id := p.nextID
	p.changeSubs[id] = fn
	return func() { delete(p.changeSubs, id) }
}

// Subscribers 当前订阅数，用于检查实例销毁后是否泄漏
func (p *Provider) Subscribers() int {
	return len(p.gestureSubs) + len(p.changeSubs)
}

func (p *Provider) broadcast(g core.Gesture) {
	ev := core.GestureEvent{
		StartLabel: p.display.Start.Format(LabelLayout),
		EndLabel:   p.display.End.Format(LabelLayout),
		Gesture:    g,
	}
	for _, id := range slices.Sorted(maps.Keys(p.gestureSubs)) {
		if fn, ok := p.gestureSubs[id]; ok {
			fn(ev)
		}
	}
}

func (p *Provider) fireChanged() {
	for _, id := range slices.Sorted(maps.Keys(p.changeSubs)) {
		if fn, ok := p.changeSubs[id]; ok {
			fn()
		}
	}
}
