// Package tui 趋势图视图
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/gesture"
	"github.com/Kevin-Rudy/gotrend/pkg/timemap"
	"github.com/Kevin-Rudy/gotrend/pkg/timerange"
)

// 时间标签格式
const timeLabelLayout = "15:04:05"

var (
	axisStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	cursorStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	bandColor   = tcell.ColorDarkBlue
)

// ChartView 单个趋势图，实现 core.ChartModel
// 布局：左侧Y轴标签，右侧绘图区，底部两行为X轴和时间标签（平移区）
type ChartView struct {
	*tview.Box

	name     string
	traces   []string
	perTrace bool
	cfg      *Config
	hist     *history
	provider *timerange.Provider
	ctrl     *gesture.Controller
	tracker  *pointerTracker
	onDirty  func()

	limits  *core.ValueLimits // 最近一次绘制使用的数值范围
	preview string            // 进行中的时间范围手势
}

func newChartView(name string, traces []string, cfg *Config, hist *history, provider *timerange.Provider) *ChartView {
	v := &ChartView{
		Box:      tview.NewBox(),
		name:     name,
		traces:   traces,
		perTrace: cfg.PerTraceScales,
		cfg:      cfg,
		hist:     hist,
		provider: provider,
	}
	v.SetBorder(true)
	v.SetTitleAlign(tview.AlignLeft)
	return v
}

// bind 绑定手势控制器，控制器创建时需要视图本身
func (v *ChartView) bind(ctrl *gesture.Controller) {
	v.ctrl = ctrl
	v.tracker = newPointerTracker(ctrl, v.cfg.WheelZoomStep)
}

// Name 图表名称
func (v *ChartView) Name() string { return v.name }

// Controller 图表的手势控制器
func (v *ChartView) Controller() *gesture.Controller { return v.ctrl }

// PlotLeft 实现 core.ChartModel
func (v *ChartView) PlotLeft() float64 {
	x, _, _, _ := v.GetInnerRect()
	return float64(x + v.cfg.AxisWidth)
}

// PlotTop 实现 core.ChartModel
func (v *ChartView) PlotTop() float64 {
	_, y, _, _ := v.GetInnerRect()
	return float64(y)
}

// PlotWidth 实现 core.ChartModel
func (v *ChartView) PlotWidth() float64 {
	_, _, w, _ := v.GetInnerRect()
	return float64(max(w-v.cfg.AxisWidth, 0))
}

// PlotHeight 实现 core.ChartModel
func (v *ChartView) PlotHeight() float64 {
	_, _, _, h := v.GetInnerRect()
	return float64(max(h-2, 0))
}

// CalcXOffsetPercent 实现 core.ChartModel
func (v *ChartView) CalcXOffsetPercent(x float64) float64 {
	return timemap.PixelToPercent(x-v.PlotLeft(), v.PlotWidth())
}

// CalcXPosition 实现 core.ChartModel
func (v *ChartView) CalcXPosition(t time.Time) float64 {
	w := v.provider.Window()
	return v.PlotLeft() + timemap.DateToPercent(t, w.Start, w.End)*v.PlotWidth()/100
}

// CalcRelativeOffset 实现 core.ChartModel
func (v *ChartView) CalcRelativeOffset(x float64) time.Duration {
	w := v.provider.Window()
	return time.Duration(float64(w.Duration()) * v.CalcXOffsetPercent(x) / 100)
}

// ValueScaleLimits 实现 core.ChartModel
func (v *ChartView) ValueScaleLimits() *core.ValueLimits {
	return v.limits
}

// MultipleScales 实现 core.ChartModel
func (v *ChartView) MultipleScales() bool {
	return v.perTrace && len(v.traces) > 1
}

// TargetArea 实现 core.ChartModel
func (v *ChartView) TargetArea(p core.Point) core.GestureTargetArea {
	if p.Y >= v.PlotTop()+v.PlotHeight() {
		return core.AreaPan
	}
	if cx, ok := v.cursorX(); ok && math.Abs(p.X-float64(cx)) < 1 {
		return core.AreaCursor
	}
	return core.AreaPlot
}

// Refresh 实现 core.ChartModel
func (v *ChartView) Refresh() {
	if v.onDirty != nil {
		v.onDirty()
	}
}

// cursorX 游标所在的列，时间范围手势期间不绘制
func (v *ChartView) cursorX() (int, bool) {
	if v.ctrl == nil || !v.ctrl.CursorVisible() {
		return 0, false
	}
	cur := v.ctrl.Cursor()
	x := int(math.Round(v.CalcXPosition(*cur.Time)))
	left := int(v.PlotLeft())
	if x < left || x >= left+int(v.PlotWidth()) {
		return 0, false
	}
	return x, true
}

// collect 收集窗口内的曲线数据并确定每条曲线的数值范围
// 有缩放设置时使用其中的绝对值，否则按数据自动计算
func (v *ChartView) collect(win timerange.Window) []traceSeries {
	series := make([]traceSeries, len(v.traces))
	dataLimits := make([]core.Limits, len(v.traces))
	valid := make([]bool, len(v.traces))

	var withData []traceSeries
	for i, trace := range v.traces {
		points := v.hist.window(trace, win.Start, win.End)
		series[i] = traceSeries{name: trace, color: traceColor(i), points: points}
		dataLimits[i], valid[i] = calculateValueRange(points, win.Start, win.End, v.cfg.ValueBufferRatio)
		if valid[i] {
			withData = append(withData, traceSeries{limits: dataLimits[i]})
		}
	}

	var zoom *core.ZoomSpec
	if v.ctrl != nil {
		zoom = v.ctrl.Zoom()
	}
	if len(withData) == 0 && zoom == nil {
		v.limits = nil
		return nil
	}

	overall := core.Limits{Min: 0, Max: 1}
	if len(withData) > 0 {
		overall = mergeLimits(withData)
	}
	// 每条曲线独立缩放时，整体设置只是占位
	perTraceZoom := zoom != nil && v.MultipleScales() && len(zoom.TraceSettings) == len(v.traces)
	if zoom != nil && !perTraceZoom {
		overall = applySetting(zoom.ValueScaleSetting, overall)
	}

	traceLimits := make([]core.Limits, len(v.traces))
	for i := range v.traces {
		l := overall
		if v.MultipleScales() {
			if valid[i] {
				l = dataLimits[i]
			}
			if perTraceZoom {
				l = applySetting(zoom.TraceSettings[i], l)
			}
		}
		traceLimits[i] = l
		series[i].limits = l
	}

	v.limits = &core.ValueLimits{Min: overall.Min, Max: overall.Max, Traces: traceLimits}
	return series
}

// applySetting 绝对值设置覆盖数据范围，其他设置沿用数据范围
func applySetting(s core.ScaleSetting, data core.Limits) core.Limits {
	out := data
	if s.MinType == core.ScaleAbsolute {
		out.Min = s.MinValue
	}
	if s.MaxType == core.ScaleAbsolute {
		out.Max = s.MaxValue
	}
	return out
}

// title 图表标题，附带忙碌与手势预览标记
func (v *ChartView) title() string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s ", v.name)
	if v.ctrl == nil {
		return b.String()
	}
	if v.ctrl.Zoom() != nil {
		b.WriteString("(zoom) ")
	}
	if v.ctrl.Busy() {
		b.WriteString("(loading) ")
	}
	if v.preview != "" {
		fmt.Fprintf(&b, "%s ", v.preview)
	}
	return b.String()
}

// Draw 实现 tview.Primitive
func (v *ChartView) Draw(screen tcell.Screen) {
	v.SetTitle(v.title())
	v.Box.DrawForSubclass(screen, v)

	x, y, width, height := v.GetInnerRect()
	if msg := validateChartSize(v.cfg, width, height); msg != "" {
		tview.Print(screen, msg, x, y, width, tview.AlignCenter, tcell.ColorYellow)
		return
	}

	win := v.provider.Window()
	series := v.collect(win)
	if v.limits == nil {
		tview.Print(screen, "没有数据", x, y+height/2, width, tview.AlignCenter, tcell.ColorYellow)
		return
	}

	plotLeft, plotWidth, plotHeight := x+v.cfg.AxisWidth, width-v.cfg.AxisWidth, height-2
	canvas := drawCanvas(series, win.Start, win.End, plotWidth, plotHeight)

	v.drawYAxis(screen, x, y, plotHeight)
	band, hasBand := v.ctrl.RubberBand()
	for row := 0; row < plotHeight; row++ {
		for col := 0; col < plotWidth; col++ {
			cell := canvas[col][row]
			style := tcell.StyleDefault.Foreground(cell.color)
			ch := ' '
			if cell.char != 0 {
				ch = brailleRune(cell.char)
			}
			if hasBand && inBand(band, float64(col), float64(row)) {
				style = style.Background(bandColor)
			}
			screen.SetContent(plotLeft+col, y+row, ch, nil, style)
		}
	}

	cursorLabel := ""
	if cx, ok := v.cursorX(); ok {
		for row := 0; row < plotHeight; row++ {
			ch, _, _, _ := screen.GetContent(cx, y+row)
			if ch == ' ' {
				ch = '│'
			}
			screen.SetContent(cx, y+row, ch, nil, cursorStyle)
		}
		cursorLabel = v.ctrl.Cursor().Time.Format(timeLabelLayout)
	}

	// X轴与时间刻度
	axisY := y + plotHeight
	screen.SetContent(plotLeft-1, axisY, '└', nil, axisStyle)
	for col := 0; col < plotWidth; col++ {
		screen.SetContent(plotLeft+col, axisY, '─', nil, axisStyle)
	}
	tview.Print(screen, win.Start.Format(timeLabelLayout), plotLeft, axisY+1, plotWidth, tview.AlignLeft, tcell.ColorGray)
	tview.Print(screen, win.End.Format(timeLabelLayout), plotLeft, axisY+1, plotWidth, tview.AlignRight, tcell.ColorGray)
	if cursorLabel != "" {
		tview.Print(screen, cursorLabel, plotLeft, axisY+1, plotWidth, tview.AlignCenter, tcell.ColorYellow)
	}
}

// drawYAxis 在数值上均匀分布的Y轴标签
func (v *ChartView) drawYAxis(screen tcell.Screen, x, y, plotHeight int) {
	labelWidth := v.cfg.AxisWidth - 1
	for row := 0; row < plotHeight; row++ {
		screen.SetContent(x+labelWidth, y+row, '│', nil, axisStyle)
	}

	labelCount := min(5, plotHeight)
	if labelCount < 2 {
		return
	}
	valueRange := v.limits.Max - v.limits.Min
	for i := 0; i < labelCount; i++ {
		normalized := float64(i) / float64(labelCount-1) // 0.0 到 1.0
		value := v.limits.Max - normalized*valueRange    // 从最大值到最小值
		row := int(normalized * float64(plotHeight-1))
		tview.Print(screen, formatValue(value), x, y+row, labelWidth-1, tview.AlignRight, tcell.ColorGray)
	}
}

func inBand(band core.RubberBand, x, y float64) bool {
	return x >= band.Left && x < band.Left+band.Width && y >= band.Top && y < band.Top+band.Height
}

// MouseHandler 实现 tview.Primitive
func (v *ChartView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !v.tracker.active() && !v.InRect(x, y) {
			return false, nil
		}
		if action == tview.MouseLeftDown {
			setFocus(v)
		}
		if v.tracker.handle(action, x, y) {
			return true, v
		}
		return true, nil
	})
}
