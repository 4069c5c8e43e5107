// Package gesture 趋势图的手势引擎
// 将单击、拖动、捏合等低层手势解析为时间范围导航命令和游标操作
package gesture

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/sched"
	"github.com/Kevin-Rudy/gotrend/pkg/zoom"
)

// Deps 图表实例依赖的协作者
type Deps struct {
	Chart       core.ChartModel
	Provider    core.TimeRangeProvider
	Coordinator *zoom.Coordinator
	Host        core.Host
	Scheduler   sched.Scheduler
	Now         func() time.Time // 为空时使用 time.Now
}

// Controller 单个图表实例的手势控制器
// 所有方法都必须在事件循环上调用
type Controller struct {
	id       string
	cfg      Config
	chart    core.ChartModel
	provider core.TimeRangeProvider
	coord    *zoom.Coordinator
	host     core.Host
	sched    sched.Scheduler
	now      func() time.Time

	// 交互状态
	mode          Mode
	pinchActive   bool
	lastGoodPinch *core.PinchEvent // 最近一次缩放比例不为1的捏合事件
	cursor        *Cursor
	gate          *InactivityGate
	taps          tapState

	// 实例状态
	busy       bool
	editMode   bool
	gesturing  bool
	zoom       *core.ZoomSpec
	lastZoomed string

	unsubs   []func()
	disposed bool
}

// New 创建图表实例的手势控制器，id 为空时自动生成
func New(id string, deps Deps, cfg *Config) *Controller {
	if id == "" {
		id = uuid.NewString()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	c := &Controller{
		id:       id,
		cfg:      *cfg,
		chart:    deps.Chart,
		provider: deps.Provider,
		coord:    deps.Coordinator,
		host:     deps.Host,
		sched:    deps.Scheduler,
		now:      now,
	}
	c.cursor = newCursor(id, deps.Chart, deps.Provider, deps.Coordinator, deps.Host, now)
	c.cursor.enabled = cfg.CursorEnabled
	c.gate = NewInactivityGate(deps.Scheduler, cfg.InactivityDelay, deps.Provider)

	c.unsubs = append(c.unsubs,
		deps.Provider.OnGesture(c.onGesture),
		deps.Provider.OnDisplayTimeChanged(c.onDisplayTimeChanged),
		deps.Coordinator.OnCursor(id, c.onCursorSync),
	)
	return c
}

// ID 实例标识
func (c *Controller) ID() string { return c.id }

// Mode 当前交互模式
func (c *Controller) Mode() Mode { return c.mode }

// Busy 是否在等待数据
func (c *Controller) Busy() bool { return c.busy }

// SetBusy 标记是否在等待数据，忙碌时不接受新手势
func (c *Controller) SetBusy(busy bool) { c.busy = busy }

// SetEditMode 布局编辑模式下不接受手势
func (c *Controller) SetEditMode(edit bool) { c.editMode = edit }

// EditMode 是否处于布局编辑模式
func (c *Controller) EditMode() bool { return c.editMode }

// SetPanEnabled 设置是否允许拖动平移
func (c *Controller) SetPanEnabled(enabled bool) { c.cfg.PanEnabled = enabled }

// PanEnabled 是否允许拖动平移
func (c *Controller) PanEnabled() bool { return c.cfg.PanEnabled }

// SetZoomLevel 设置全局缩放比例
func (c *Controller) SetZoomLevel(level float64) {
	if level > 0 {
		c.cfg.ZoomLevel = level
	}
}

// SetCursorEnabled 开关游标
func (c *Controller) SetCursorEnabled(enabled bool) {
	c.cfg.CursorEnabled = enabled
	c.cursor.enabled = enabled
	if !enabled {
		c.setCursor(nil)
	}
}

// CursorEnabled 游标是否开启
func (c *Controller) CursorEnabled() bool { return c.cfg.CursorEnabled }

// SetRelative 开关相对时间模式，zero 为相对时间的基准
func (c *Controller) SetRelative(relative bool, zero time.Time) {
	c.cursor.relative = relative
	c.cursor.relativeZero = zero
}

// Cursor 游标状态
func (c *Controller) Cursor() core.CursorState { return c.cursor.State() }

// SetCursor 设置游标时间，nil 清除游标，用于外部同步
func (c *Controller) SetCursor(t *time.Time) { c.setCursor(t) }

// CursorVisible 游标是否需要绘制，时间范围手势期间隐藏
func (c *Controller) CursorVisible() bool { return c.cursor.Visible() }

// setCursor 外部清除游标会结束拖动，交互模式随之复位
func (c *Controller) setCursor(t *time.Time) {
	c.cursor.SetCursor(t)
	if c.mode == ModeMovingCursor && !c.cursor.Dragging() {
		c.mode = ModeNone
	}
}

// CursorSynced 宿主完成游标刷新后调用
func (c *Controller) CursorSynced() { c.cursor.SyncCompleted() }

// Zoom 当前数值轴缩放设置
func (c *Controller) Zoom() *core.ZoomSpec { return c.zoom }

// RestoreZoom 恢复持久化的缩放设置，对应当前的显示时间
func (c *Controller) RestoreZoom(spec *core.ZoomSpec) {
	c.zoom = spec
	if spec != nil {
		c.lastZoomed = zoom.DisplayKey(c.provider)
	}
}

// Gesturing 是否有任意实例的时间范围手势尚未最终提交
func (c *Controller) Gesturing() bool { return c.gesturing }

// RubberBand 本实例拥有的橡皮筋选框
func (c *Controller) RubberBand() (core.RubberBand, bool) { return c.coord.RubberBand(c.id) }

// InactivityPending 是否有待触发的静止提交
func (c *Controller) InactivityPending() bool { return c.gate.Pending() }

// Dispose 取消所有订阅和计时，释放拥有的共享状态；可重复调用
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for _, unsubscribe := range c.unsubs {
		unsubscribe()
	}
	c.unsubs = nil
	c.gate.Cancel()
	c.taps.cancel()
	c.coord.CancelRubberBand(c.id)
	c.mode = ModeNone
	c.pinchActive = false
	c.lastGoodPinch = nil
	log.Printf("gesture: %s 已销毁", c.id)
}

// blocked 忙碌、编辑模式或已销毁时不接受新手势
func (c *Controller) blocked() bool {
	return c.disposed || c.busy || c.editMode
}

// canStart 是否可以开始新手势
func (c *Controller) canStart() bool {
	return !c.blocked() && !c.coord.BusyElsewhere(c.id)
}

// onGesture 所有实例都会收到手势广播，但不获得手势所有权
func (c *Controller) onGesture(ev core.GestureEvent) {
	if ev.Gesture.Cancel {
		c.gesturing = false
		if c.cursor.show() {
			c.chart.Refresh()
		}
	} else {
		c.gesturing = true
		if c.cursor.hide() {
			c.host.Notify(core.Notification{Source: c.id, Kind: core.NotifyClearCursorArtifact})
		}
		// 由发出手势的实例负责最终提交
		c.gate.Cancel()
	}
	c.host.PreviewGesture(c.id, ev)
}

// onDisplayTimeChanged 显示时间被外部修改时清除缩放设置
func (c *Controller) onDisplayTimeChanged() {
	if c.zoom == nil {
		return
	}
	if zoom.DisplayKey(c.provider) == c.lastZoomed {
		return
	}
	c.zoom = nil
	c.host.Notify(core.Notification{Source: c.id, Kind: core.NotifyRefreshChangedSymbols})
}

func (c *Controller) onCursorSync(_ string, t *time.Time) {
	c.setCursor(t)
	c.host.Notify(core.Notification{Source: c.id, Kind: core.NotifyRefreshWithCursor})
}

// finalize 一个手势步骤结束，重新开始静止计时
func (c *Controller) finalize() {
	c.provider.GestureComplete(false)
	c.gate.Touch()
	c.mode = ModeNone
}

// zoomTarget 将控制器适配为 zoom.Target
type zoomTarget struct {
	c *Controller
}

func (t zoomTarget) SetBusy(busy bool) {
	t.c.busy = busy
}

func (t zoomTarget) ApplyZoom(spec core.ZoomSpec, done func()) {
	t.c.zoom = &spec
	t.c.host.RequestZoom(t.c.id, spec, done)
}

func (t zoomTarget) MarkZoomed(display string) {
	t.c.lastZoomed = display
}
