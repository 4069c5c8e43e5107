// Package tui 提供趋势图的终端用户界面
// 多个趋势图共享同一个时间范围，支持拖动平移、滚轮缩放、橡皮筋缩放和游标
package tui

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/tview"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/gesture"
	"github.com/Kevin-Rudy/gotrend/pkg/sched"
	"github.com/Kevin-Rudy/gotrend/pkg/timerange"
	"github.com/Kevin-Rudy/gotrend/pkg/widget"
	"github.com/Kevin-Rudy/gotrend/pkg/zoom"
)

// ChartSpec 一个趋势图显示哪些曲线
type ChartSpec struct {
	Name   string
	Traces []string
}

// TUI 主界面结构
type TUI struct {
	app        *tview.Application
	flex       *tview.Flex
	status     *tview.TextView
	dataSource core.DataSource

	// 配置信息
	tuiConfig     *Config
	gestureConfig *gesture.Config

	// 共享状态
	hist     *history
	provider *timerange.Provider
	coord    *zoom.Coordinator
	sched    sched.Scheduler
	now      func() time.Time

	// 图表
	views    []*ChartView
	byID     map[string]*ChartView
	selected int    // 键盘选中的图表，-1 表示无
	fullView string // 全屏显示的图表实例，空表示全部显示
	nav      *navLimiter

	// 界面状态
	live      atomic.Bool // 时间窗口是否跟随当前时间
	cursorOn  bool
	panOn     bool
	editMode  bool
	dirty     atomic.Bool
	state     widget.State
	statusMsg string
	lastError string

	// 控制
	stopChan chan struct{}
	doneChan chan struct{}

	// 测试模式标志
	testMode bool
}

// NewTUI 创建新的TUI实例
func NewTUI(dataSource core.DataSource, charts []ChartSpec, tuiConfig *Config, gestureConfig *gesture.Config) (*TUI, error) {
	t, err := newTUI(dataSource, charts, tuiConfig, gestureConfig, false)
	if err != nil {
		return nil, err
	}
	t.sched = sched.NewTimer(t.safeUIUpdate)
	t.attachCharts(charts)

	t.setupUI()
	t.setupKeyBindings()
	return t, nil
}

// NewTUIForTest 创建用于测试的TUI实例（不初始化图形组件）
// 计时由手动调度器驱动
func NewTUIForTest(dataSource core.DataSource, charts []ChartSpec, tuiConfig *Config, gestureConfig *gesture.Config, scheduler *sched.Manual) (*TUI, error) {
	t, err := newTUI(dataSource, charts, tuiConfig, gestureConfig, true)
	if err != nil {
		return nil, err
	}
	t.sched = scheduler
	t.now = scheduler.Now
	t.attachCharts(charts)
	return t, nil
}

func newTUI(dataSource core.DataSource, charts []ChartSpec, tuiConfig *Config, gestureConfig *gesture.Config, testMode bool) (*TUI, error) {
	if len(charts) == 0 {
		return nil, errors.New("必须指定至少一个图表")
	}
	if tuiConfig == nil {
		tuiConfig = DefaultConfig()
	}
	if gestureConfig == nil {
		gestureConfig = gesture.DefaultConfig()
	}
	if err := tuiConfig.Validate(); err != nil {
		return nil, err
	}
	if err := gestureConfig.Validate(); err != nil {
		return nil, err
	}

	t := &TUI{
		app:           tview.NewApplication(),
		dataSource:    dataSource,
		tuiConfig:     tuiConfig,
		gestureConfig: gestureConfig,
		hist:          newHistory(tuiConfig.MaxHistorySize),
		coord:         zoom.NewCoordinator(),
		now:           time.Now,
		byID:          make(map[string]*ChartView),
		selected:      -1,
		nav:           newNavLimiter(),
		cursorOn:      gestureConfig.CursorEnabled,
		panOn:         gestureConfig.PanEnabled,
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
		testMode:      testMode,
	}
	t.state = widget.State{Version: widget.Version}
	t.live.Store(true)
	return t, nil
}

// attachCharts 创建共享的时间范围和每个图表的手势控制器
// 有持久化状态时恢复其中的显示时间与缩放设置
func (t *TUI) attachCharts(charts []ChartSpec) {
	start, end := liveWindow(t.now(), t.tuiConfig.WindowSpan)
	t.loadState()
	if d := t.state.Display; !d.Start.IsZero() {
		start, end = d.Start, d.End
		t.live.Store(false)
	}
	t.provider = timerange.New(start, end)

	for _, spec := range charts {
		view := newChartView(spec.Name, spec.Traces, t.tuiConfig, t.hist, t.provider)
		view.onDirty = t.markDirty

		saved := t.state.Chart(spec.Name)
		if saved != nil && saved.PerTraceScales {
			view.perTrace = true
		}

		ctrl := gesture.New(uuid.NewString(), gesture.Deps{
			Chart:       view,
			Provider:    t.provider,
			Coordinator: t.coord,
			Host:        t,
			Scheduler:   t.sched,
			Now:         t.now,
		}, t.gestureConfig)
		view.bind(ctrl)
		if saved != nil && saved.Zoom != nil && !t.live.Load() {
			ctrl.RestoreZoom(saved.Zoom)
		}

		t.views = append(t.views, view)
		t.byID[ctrl.ID()] = view
	}
}

// Run 启动TUI界面
func (t *TUI) Run() error {
	// 启动数据源
	t.dataSource.Start()

	// 启动数据处理goroutine
	go t.processData()

	// 运行应用
	err := t.app.Run()

	// 确保清理工作完成
	<-t.doneChan

	return err
}

// Stop 停止TUI界面，必须在事件循环上调用
func (t *TUI) Stop() {
	// 先发送停止信号，让processData退出
	select {
	case <-t.stopChan:
		// stopChan已经关闭，避免重复关闭
		return
	default:
		close(t.stopChan)
	}

	t.saveState()
	for _, v := range t.views {
		v.ctrl.Dispose()
	}
	// 事件循环即将停止，取消尚未触发的延迟任务
	if timer, ok := t.sched.(*sched.Timer); ok {
		timer.Close()
	}

	// 停止数据源
	t.dataSource.Stop()

	// 停止应用
	if !t.testMode {
		t.app.Stop()
	}
}

// processData 处理来自数据源的数据，按固定间隔驱动渲染
func (t *TUI) processData() {
	defer close(t.doneChan)

	dataChan := t.dataSource.DataStream()
	uiTicker := time.NewTicker(t.tuiConfig.RefreshInterval)
	defer uiTicker.Stop()

	for {
		select {
		case sample, ok := <-dataChan:
			if !ok {
				return
			}
			t.handleDataUpdate(sample)

		case <-uiTicker.C:
			t.handleUIRefresh()

		case <-t.stopChan:
			return
		}
	}
}

// handleDataUpdate 处理数据更新
func (t *TUI) handleDataUpdate(sample core.Sample) {
	t.hist.add(sample)
	t.markDirty()
}

// handleUIRefresh 处理UI刷新
func (t *TUI) handleUIRefresh() {
	if t.testMode {
		return
	}
	if !t.dirty.Swap(false) && !t.live.Load() {
		return
	}
	t.safeUIUpdate(func() {
		t.followLive()
		t.updateStatus()
	})
}

// followLive 实时模式下将时间窗口移到当前时间
// 有手势进行中或有橡皮筋选框时不移动
func (t *TUI) followLive() {
	if !t.live.Load() || t.provider.Gesturing() || t.coord.Owner() != "" {
		return
	}
	start, end := liveWindow(t.now(), t.tuiConfig.WindowSpan)
	t.provider.Reset(start, end)
}

// resetLive 回到实时跟随
func (t *TUI) resetLive() {
	t.live.Store(true)
	t.followLive()
	log.Printf("tui: 恢复实时跟随")
}

func (t *TUI) markDirty() {
	t.dirty.Store(true)
}

// safeUIUpdate 安全地执行UI更新操作
func (t *TUI) safeUIUpdate(updateFunc func()) {
	if t.testMode {
		updateFunc()
		return
	}
	select {
	case <-t.stopChan:
		return
	default:
	}
	defer func() {
		if r := recover(); r != nil {
			// 如果应用已经停止，忽略panic
			log.Printf("tui: 忽略UI更新: %v", r)
		}
	}()
	t.app.QueueUpdateDraw(updateFunc)
}

// loadState 读取持久化状态，失败时记录日志并使用空状态
func (t *TUI) loadState() {
	if t.tuiConfig.StatePath == "" {
		return
	}
	state, ok, err := widget.Load(t.tuiConfig.StatePath)
	if err != nil {
		t.lastError = err.Error()
		log.Printf("tui: %v", err)
		return
	}
	if ok {
		t.state = state
	}
}

// saveState 保存显示时间与各图表的缩放设置
func (t *TUI) saveState() {
	if t.tuiConfig.StatePath == "" {
		return
	}
	w := t.provider.Window()
	t.state.Display = widget.Display{Start: w.Start, End: w.End}
	for _, v := range t.views {
		t.state.SetChart(widget.Chart{
			Name:           v.name,
			Traces:         v.traces,
			PerTraceScales: v.MultipleScales(),
			Zoom:           v.ctrl.Zoom(),
		})
	}
	if err := widget.Save(t.tuiConfig.StatePath, t.state); err != nil {
		t.lastError = err.Error()
		log.Printf("tui: %v", err)
	}
}

// Views 所有图表视图
func (t *TUI) Views() []*ChartView {
	return t.views
}

// Live 时间窗口是否跟随当前时间
func (t *TUI) Live() bool {
	return t.live.Load()
}

// Provider 共享的时间范围
func (t *TUI) Provider() *timerange.Provider {
	return t.provider
}

// String 用于日志
func (t *TUI) String() string {
	return fmt.Sprintf("tui(%d charts, live=%v)", len(t.views), t.live.Load())
}
