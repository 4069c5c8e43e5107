package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/sched"
	"github.com/Kevin-Rudy/gotrend/pkg/timemap"
	"github.com/Kevin-Rudy/gotrend/pkg/timerange"
	"github.com/Kevin-Rudy/gotrend/pkg/zoom"
)

var (
	t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(100 * time.Minute)
)

// fakeChart 左上角(10,2)、200x100的绘图区，时间轴跟随 provider
type fakeChart struct {
	provider *timerange.Provider
	area     core.GestureTargetArea
	limits   *core.ValueLimits
	refresh  int
}

func (f *fakeChart) PlotLeft() float64   { return 10 }
func (f *fakeChart) PlotTop() float64    { return 2 }
func (f *fakeChart) PlotWidth() float64  { return 200 }
func (f *fakeChart) PlotHeight() float64 { return 100 }

func (f *fakeChart) CalcXOffsetPercent(x float64) float64 {
	return timemap.PixelToPercent(x-f.PlotLeft(), f.PlotWidth())
}

func (f *fakeChart) CalcXPosition(t time.Time) float64 {
	w := f.provider.Window()
	return f.PlotLeft() + timemap.DateToPercent(t, w.Start, w.End)*f.PlotWidth()/100
}

func (f *fakeChart) CalcRelativeOffset(x float64) time.Duration {
	w := f.provider.Window()
	return time.Duration(float64(w.Duration()) * f.CalcXOffsetPercent(x) / 100)
}

func (f *fakeChart) ValueScaleLimits() *core.ValueLimits          { return f.limits }
func (f *fakeChart) MultipleScales() bool                         { return false }
func (f *fakeChart) TargetArea(core.Point) core.GestureTargetArea { return f.area }
func (f *fakeChart) Refresh()                                     { f.refresh++ }

type fakeHost struct {
	notes    []core.Notification
	zooms    []core.ZoomSpec
	done     []func()
	previews []core.GestureEvent
}

func (h *fakeHost) Notify(n core.Notification) {
	h.notes = append(h.notes, n)
}

func (h *fakeHost) RequestZoom(_ string, spec core.ZoomSpec, done func()) {
	h.zooms = append(h.zooms, spec)
	h.done = append(h.done, done)
}

func (h *fakeHost) PreviewGesture(_ string, ev core.GestureEvent) {
	h.previews = append(h.previews, ev)
}

func (h *fakeHost) count(source string, kind core.NotificationKind) int {
	n := 0
	for _, note := range h.notes {
		if note.Source == source && note.Kind == kind {
			n++
		}
	}
	return n
}

// rig 共享同一时间范围与协调器的多个图表实例
type rig struct {
	sched    *sched.Manual
	provider *timerange.Provider
	coord    *zoom.Coordinator
	host     *fakeHost
	charts   map[string]*fakeChart
	ctrls    map[string]*Controller
}

func newRig(t *testing.T, now time.Time, ids ...string) *rig {
	t.Helper()
	r := &rig{
		sched:    sched.NewManual(now),
		provider: timerange.New(t0, t1),
		coord:    zoom.NewCoordinator(),
		host:     &fakeHost{},
		charts:   map[string]*fakeChart{},
		ctrls:    map[string]*Controller{},
	}
	for _, id := range ids {
		chart := &fakeChart{
			provider: r.provider,
			area:     core.AreaPlot,
			limits:   &core.ValueLimits{Min: 0, Max: 1000},
		}
		r.charts[id] = chart
		r.ctrls[id] = New(id, Deps{
			Chart:       chart,
			Provider:    r.provider,
			Coordinator: r.coord,
			Host:        r.host,
			Scheduler:   r.sched,
			Now:         r.sched.Now,
		}, nil)
	}
	return r
}

func pan(phase core.Phase, pointer core.PointerType, origin core.Point, dx, dy float64) core.PanEvent {
	return core.PanEvent{
		Phase:   phase,
		Pointer: pointer,
		Center:  core.Point{X: origin.X + dx, Y: origin.Y + dy},
		DeltaX:  dx,
		DeltaY:  dy,
	}
}

func TestDuplicateTapFromSecondPointerCollapses(t *testing.T) {
	r := newRig(t, t0, "a")
	c := r.ctrls["a"]
	p := core.Point{X: 60, Y: 40}

	c.HandleTap(core.TapEvent{Pointer: core.PointerTouch, Point: p})
	r.sched.Advance(100 * time.Millisecond)
	c.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: p})

	require.Zero(t, r.host.count("a", core.NotifyToggleFullView))
	r.sched.Advance(300 * time.Millisecond)

	require.Equal(t, 1, r.host.count("a", core.NotifyCursorUpdated))
	cur := c.Cursor()
	require.NotNil(t, cur.Time)
	require.Equal(t, t0.Add(25*time.Minute), *cur.Time)
	require.False(t, c.TapPending())
}

func TestTapsOutsideDuplicateWindowAreDistinct(t *testing.T) {
	r := newRig(t, t0, "a")
	c := r.ctrls["a"]
	p := core.Point{X: 60, Y: 40}

	c.HandleTap(core.TapEvent{Pointer: core.PointerTouch, Point: p})
	r.sched.Advance(1100 * time.Millisecond)
	c.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: p})
	r.sched.Advance(time.Second)

	require.Equal(t, 2, r.host.count("a", core.NotifyCursorUpdated))
}

func TestDoubleTapTogglesFullView(t *testing.T) {
	r := newRig(t, t0, "a")
	c := r.ctrls["a"]
	p := core.Point{X: 60, Y: 40}

	c.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: p})
	r.sched.Advance(100 * time.Millisecond)
	c.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: p})

	require.Equal(t, 1, r.host.count("a", core.NotifyToggleFullView))
	require.False(t, c.TapPending())

	r.sched.Advance(time.Second)
	require.Zero(t, r.host.count("a", core.NotifyCursorUpdated))
	require.Nil(t, c.Cursor().Time)
}

func TestTapWhileGesturing(t *testing.T) {
	r := newRig(t, t0, "a", "b")
	a, b := r.ctrls["a"], r.ctrls["b"]
	r.charts["a"].area = core.AreaPan
	origin := core.Point{X: 110, Y: 50}
	p := core.Point{X: 60, Y: 40}

	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 20, 0))
	require.True(t, b.Gesturing())

	b.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: p})
	require.False(t, b.TapPending(), "时间范围手势进行中不放置游标")

	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 20, 0))
	r.sched.Advance(time.Second)
	require.False(t, b.Gesturing())

	b.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: p})
	require.True(t, b.TapPending())

	// 忙碌期间仍然响应双击
	b.SetBusy(true)
	b.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: p})
	require.False(t, b.TapPending())
	require.Equal(t, 1, r.host.count("b", core.NotifyToggleFullView))
	require.Nil(t, b.Cursor().Time)
}

func TestPinchCancelReplaysLastScaleOnce(t *testing.T) {
	r := newRig(t, t0, "a")
	c := r.ctrls["a"]
	center := core.Point{X: 110, Y: 50}

	c.HandlePinch(core.PinchEvent{Phase: core.PhaseStart, Pointer: core.PointerTouch, Center: center, Scale: 1})
	c.HandlePinch(core.PinchEvent{Phase: core.PhaseMove, Pointer: core.PointerTouch, Center: center, Scale: 1.4})
	require.Equal(t, ModePinching, c.Mode())
	c.HandlePinch(core.PinchEvent{Phase: core.PhaseCancel, Pointer: core.PointerTouch, Center: center, Scale: 1})

	want := timerange.New(t0, t1)
	want.ScaleTimeRange(1.4, 50)
	require.Equal(t, want.Window(), r.provider.Window())
	require.Equal(t, ModeNone, c.Mode())
	require.True(t, c.InactivityPending())

	r.sched.Advance(750 * time.Millisecond)
	require.False(t, r.provider.Gesturing())
	require.Equal(t, want.Window(), r.provider.Window())
}

func TestPinchCancelWithoutScaleIsNoop(t *testing.T) {
	r := newRig(t, t0, "a")
	c := r.ctrls["a"]
	center := core.Point{X: 110, Y: 50}

	c.HandlePinch(core.PinchEvent{Phase: core.PhaseStart, Pointer: core.PointerTouch, Center: center, Scale: 1})
	c.HandlePinch(core.PinchEvent{Phase: core.PhaseCancel, Pointer: core.PointerTouch, Center: center, Scale: 1})

	require.Equal(t, timerange.Window{Start: t0, End: t1}, r.provider.Window())
	require.False(t, c.InactivityPending())
	require.Equal(t, ModeNone, c.Mode())
}

func TestRubberBandRejectedWhileOtherInstanceZooming(t *testing.T) {
	r := newRig(t, t0, "a", "b")
	a, b := r.ctrls["a"], r.ctrls["b"]

	b.HandlePan(pan(core.PhaseStart, core.PointerMouse, core.Point{X: 60, Y: 22}, 0, 0))
	require.Equal(t, ModeRubberBandZooming, b.Mode())

	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, core.Point{X: 40, Y: 30}, 0, 0))
	require.Equal(t, ModeNone, a.Mode())
	require.Equal(t, "b", r.coord.Owner())

	a.HandlePinch(core.PinchEvent{Phase: core.PhaseStart, Pointer: core.PointerTouch, Center: core.Point{X: 110, Y: 50}, Scale: 1})
	a.HandlePinch(core.PinchEvent{Phase: core.PhaseMove, Pointer: core.PointerTouch, Center: core.Point{X: 110, Y: 50}, Scale: 2})
	require.Equal(t, timerange.Window{Start: t0, End: t1}, r.provider.Window())

	_, ok := a.RubberBand()
	require.False(t, ok)
	_, ok = b.RubberBand()
	require.True(t, ok)
}

func TestRubberBandZoom(t *testing.T) {
	r := newRig(t, t0, "a", "b")
	a := r.ctrls["a"]
	origin := core.Point{X: 60, Y: 22}

	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 50, 20))
	band, ok := a.RubberBand()
	require.True(t, ok)
	require.Equal(t, core.RubberBand{Left: 50, Top: 20, Width: 50, Height: 20}, band)

	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 100, 50))
	require.Equal(t, ModeNone, a.Mode())
	require.True(t, a.Busy())
	require.Len(t, r.host.zooms, 1)
	require.Equal(t, timerange.Window{Start: t0.Add(25 * time.Minute), End: t0.Add(75 * time.Minute)}, r.provider.Window())
	require.NotNil(t, a.Zoom())
	require.Equal(t, 300.0, a.Zoom().ValueScaleSetting.MinValue)
	require.Equal(t, 800.0, a.Zoom().ValueScaleSetting.MaxValue)

	// 等待数据期间不接受新手势
	a.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: origin})
	require.False(t, a.TapPending())

	r.host.done[0]()
	require.False(t, a.Busy())
	require.NotNil(t, a.Zoom())
	require.Empty(t, r.coord.Owner())

	// 外部修改显示时间后缩放设置失效
	r.provider.Reset(t0, t1)
	require.Nil(t, a.Zoom())
	require.Equal(t, 1, r.host.count("a", core.NotifyRefreshChangedSymbols))
}

func TestThinRubberBandKeepsZoom(t *testing.T) {
	r := newRig(t, t0, "a")
	a := r.ctrls["a"]
	prev := &core.ZoomSpec{ValueScaleSetting: core.ScaleSetting{MinType: core.ScaleAbsolute, MinValue: 1, MaxType: core.ScaleAbsolute, MaxValue: 2}}
	a.RestoreZoom(prev)

	origin := core.Point{X: 60, Y: 22}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 1, 50))

	require.Same(t, prev, a.Zoom())
	require.False(t, a.Busy())
	require.Empty(t, r.host.zooms)
	require.Empty(t, r.coord.Owner())
	require.Equal(t, timerange.Window{Start: t0, End: t1}, r.provider.Window())
}

func TestCursorStopOutsideRangeKeepsDrag(t *testing.T) {
	r := newRig(t, t0, "a", "b")
	a, b := r.ctrls["a"], r.ctrls["b"]
	r.charts["a"].area = core.AreaCursor

	at := t0.Add(50 * time.Minute)
	a.SetCursor(&at)
	require.Equal(t, 110.0, a.Cursor().Pos)

	origin := core.Point{X: 110, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	require.Equal(t, ModeMovingCursor, a.Mode())

	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 140, 0))
	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 140, 0))

	cur := a.Cursor()
	require.NotNil(t, cur.Drag)
	require.Equal(t, at, *cur.Time)
	require.Zero(t, r.host.count("a", core.NotifyCursorUpdated))
	require.Equal(t, ModeNone, a.Mode())

	// 重新拖到有效位置后提交，并同步到其他实例
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 50, 0))
	cur = a.Cursor()
	require.Nil(t, cur.Drag)
	require.Equal(t, t0.Add(75*time.Minute), *cur.Time)
	require.Equal(t, 1, r.host.count("a", core.NotifyCursorUpdated))
	require.Equal(t, t0.Add(75*time.Minute), *b.Cursor().Time)
	require.Positive(t, r.host.count("b", core.NotifyRefreshWithCursor))
}

func TestCursorDragCancelRestores(t *testing.T) {
	r := newRig(t, t0, "a")
	a := r.ctrls["a"]
	r.charts["a"].area = core.AreaCursor

	at := t0.Add(50 * time.Minute)
	a.SetCursor(&at)
	origin := core.Point{X: 110, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 20, 0))
	require.Equal(t, t0.Add(60*time.Minute), *a.Cursor().Time)

	a.HandlePan(pan(core.PhaseCancel, core.PointerMouse, origin, 20, 0))
	cur := a.Cursor()
	require.Nil(t, cur.Drag)
	require.Equal(t, 110.0, cur.Pos)
	require.Equal(t, at, *cur.Time)
}

func TestClearCursorDuringDragRequestsRefresh(t *testing.T) {
	// 显示窗口的结束时间在当前时间之后
	r := newRig(t, t0.Add(50*time.Minute), "a")
	a := r.ctrls["a"]
	r.charts["a"].area = core.AreaCursor

	a.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: core.Point{X: 60, Y: 50}})
	r.sched.Advance(300 * time.Millisecond)
	require.Equal(t, 1, r.host.count("a", core.NotifyCursorUpdated))

	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, core.Point{X: 60, Y: 50}, 0, 0))
	require.NotNil(t, a.Cursor().Drag)

	a.SetCursor(nil)
	require.Equal(t, 1, r.host.count("a", core.NotifyRefreshAll))
	require.Nil(t, a.Cursor().Time)

	a.SetCursor(nil)
	require.Equal(t, 1, r.host.count("a", core.NotifyRefreshAll))
}

func TestClearCursorAfterSyncDoesNotRefresh(t *testing.T) {
	r := newRig(t, t0.Add(50*time.Minute), "a")
	a := r.ctrls["a"]
	r.charts["a"].area = core.AreaCursor

	a.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: core.Point{X: 60, Y: 50}})
	r.sched.Advance(300 * time.Millisecond)
	a.CursorSynced()

	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, core.Point{X: 60, Y: 50}, 0, 0))
	a.SetCursor(nil)
	require.Zero(t, r.host.count("a", core.NotifyRefreshAll))
}

func TestClearCursorEndsDrag(t *testing.T) {
	r := newRig(t, t0, "a")
	a := r.ctrls["a"]
	r.charts["a"].area = core.AreaCursor

	at := t0.Add(50 * time.Minute)
	a.SetCursor(&at)
	origin := core.Point{X: 110, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	require.Equal(t, ModeMovingCursor, a.Mode())

	a.SetCursor(nil)
	cur := a.Cursor()
	require.Nil(t, cur.Drag)
	require.Nil(t, cur.Time)
	require.Zero(t, cur.Pos)
	require.Equal(t, ModeNone, a.Mode())

	// 后续移动不能把游标带回来
	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 20, 0))
	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 20, 0))
	require.Nil(t, a.Cursor().Time)
	require.Zero(t, r.host.count("a", core.NotifyCursorUpdated))
}

func TestGrabCursorAfterWindowMoves(t *testing.T) {
	r := newRig(t, t0, "a")
	a := r.ctrls["a"]
	chart := r.charts["a"]

	at := t0.Add(50 * time.Minute)
	a.SetCursor(&at)
	require.Equal(t, 110.0, a.Cursor().Pos)

	// 平移50像素，游标跟随时间绘制在160处
	chart.area = core.AreaPan
	origin := core.Point{X: 110, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 50, 0))
	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 50, 0))
	r.sched.Advance(time.Second)
	require.False(t, r.provider.Gesturing())
	require.Equal(t, 160.0, chart.CalcXPosition(at))

	chart.area = core.AreaCursor
	grab := core.Point{X: 160, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, grab, 0, 0))
	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, grab, 0, 0))
	require.Equal(t, at, *a.Cursor().Time)
	require.Equal(t, 160.0, a.Cursor().Pos)

	// 外部修改显示窗口不经过手势广播
	r.provider.Reset(t0.Add(25*time.Minute), t1.Add(25*time.Minute))
	require.Equal(t, 60.0, chart.CalcXPosition(at))
	grab = core.Point{X: 60, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, grab, 0, 0))
	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, grab, 0, 0))
	require.Equal(t, at, *a.Cursor().Time)
}

func TestInactivityGateDebounces(t *testing.T) {
	r := newRig(t, t0, "a", "b")
	a, b := r.ctrls["a"], r.ctrls["b"]
	r.charts["a"].area = core.AreaPan

	changes := 0
	r.provider.OnDisplayTimeChanged(func() { changes++ })
	at := t0.Add(50 * time.Minute)
	b.SetCursor(&at)
	require.True(t, b.CursorVisible())

	origin := core.Point{X: 110, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	require.Equal(t, ModePanning, a.Mode())
	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 20, 0))
	require.Equal(t, t0.Add(-10*time.Minute), r.provider.Window().Start)
	require.True(t, b.Gesturing())
	require.Equal(t, 1, r.host.count("b", core.NotifyClearCursorArtifact))
	require.False(t, b.CursorVisible(), "手势期间移除已绘制的游标")
	require.Equal(t, at, *b.Cursor().Time)

	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 20, 0))
	require.True(t, a.InactivityPending())

	r.sched.Advance(500 * time.Millisecond)
	require.True(t, r.provider.Gesturing())

	// 第二段平移从上一段的结果继续
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	require.False(t, a.InactivityPending())
	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 20, 0))
	a.HandlePan(pan(core.PhaseEnd, core.PointerMouse, origin, 20, 0))
	require.Equal(t, t0.Add(-20*time.Minute), r.provider.Window().Start)

	r.sched.Advance(500 * time.Millisecond)
	require.True(t, r.provider.Gesturing())
	require.Zero(t, changes)

	r.sched.Advance(300 * time.Millisecond)
	require.False(t, r.provider.Gesturing())
	require.False(t, b.Gesturing())
	require.Equal(t, 1, changes)
	require.True(t, b.CursorVisible())
	require.Equal(t, 1, r.host.count("b", core.NotifyClearCursorArtifact))
}

func TestPanCancelRestoresWindow(t *testing.T) {
	r := newRig(t, t0, "a")
	a := r.ctrls["a"]
	r.charts["a"].area = core.AreaPan

	origin := core.Point{X: 110, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	a.HandlePan(pan(core.PhaseMove, core.PointerMouse, origin, 40, 0))
	require.Equal(t, t0.Add(-20*time.Minute), r.provider.Window().Start)

	a.HandlePan(pan(core.PhaseCancel, core.PointerMouse, origin, 40, 0))
	require.Equal(t, timerange.Window{Start: t0, End: t1}, r.provider.Window())
	require.Equal(t, ModeNone, a.Mode())
}

func TestTouchPansInPlotArea(t *testing.T) {
	r := newRig(t, t0, "a")
	a := r.ctrls["a"]

	origin := core.Point{X: 110, Y: 50}
	a.HandlePan(pan(core.PhaseStart, core.PointerTouch, origin, 0, 0))
	require.Equal(t, ModePanning, a.Mode())

	a.SetPanEnabled(false)
	a.HandlePan(pan(core.PhaseEnd, core.PointerTouch, origin, 0, 0))
	a.HandlePan(pan(core.PhaseStart, core.PointerTouch, origin, 0, 0))
	require.Equal(t, ModeRubberBandZooming, a.Mode())
}

func TestGestureGating(t *testing.T) {
	r := newRig(t, t0, "a")
	a := r.ctrls["a"]
	r.charts["a"].area = core.AreaPan
	origin := core.Point{X: 110, Y: 50}

	a.SetBusy(true)
	a.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: origin})
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	require.False(t, a.TapPending())
	require.Equal(t, ModeNone, a.Mode())
	a.SetBusy(false)

	a.SetEditMode(true)
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	a.HandlePinch(core.PinchEvent{Phase: core.PhaseStart, Center: origin, Scale: 1})
	a.HandlePinch(core.PinchEvent{Phase: core.PhaseMove, Center: origin, Scale: 2})
	require.Equal(t, ModeNone, a.Mode())
	require.Equal(t, timerange.Window{Start: t0, End: t1}, r.provider.Window())
	a.SetEditMode(false)

	s := newRig(t, t0, "s")
	s.ctrls["s"].cfg.Sparkline = true
	s.charts["s"].area = core.AreaPan
	s.ctrls["s"].HandlePan(pan(core.PhaseStart, core.PointerMouse, origin, 0, 0))
	require.Equal(t, ModeNone, s.ctrls["s"].Mode())
	s.ctrls["s"].HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: origin})
	require.True(t, s.ctrls["s"].TapPending())
}

func TestDisposeUnsubscribes(t *testing.T) {
	r := newRig(t, t0, "a", "b")
	a, b := r.ctrls["a"], r.ctrls["b"]

	a.HandleTap(core.TapEvent{Pointer: core.PointerMouse, Point: core.Point{X: 60, Y: 40}})
	a.HandlePan(pan(core.PhaseStart, core.PointerMouse, core.Point{X: 60, Y: 22}, 0, 0))
	require.Equal(t, "a", r.coord.Owner())

	a.Dispose()
	b.Dispose()
	a.Dispose()

	require.Zero(t, r.provider.Subscribers())
	require.Zero(t, r.coord.Subscribers())
	require.Empty(t, r.coord.Owner())
	require.False(t, a.TapPending())

	r.sched.Advance(time.Second)
	require.Zero(t, r.host.count("a", core.NotifyCursorUpdated))
}

func TestGeneratedID(t *testing.T) {
	r := newRig(t, t0)
	c := New("", Deps{
		Chart:       &fakeChart{provider: r.provider},
		Provider:    r.provider,
		Coordinator: r.coord,
		Host:        r.host,
		Scheduler:   r.sched,
	}, nil)
	require.NotEmpty(t, c.ID())
	c.Dispose()
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.Error(t, NewConfigWithOptions(WithTapDelay(0)).Validate())
	require.Error(t, NewConfigWithOptions(WithInactivityDelay(-time.Second)).Validate())
	require.Error(t, NewConfigWithOptions(WithZoomLevel(0)).Validate())

	cfg := NewConfigWithOptions(WithPanEnabled(false), WithSparkline(true), WithZoomLevel(2))
	require.False(t, cfg.PanEnabled)
	require.True(t, cfg.Sparkline)
	require.Equal(t, 2.0, cfg.ZoomLevel)
}
