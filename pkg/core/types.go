// Package core 定义了趋势图交互引擎的核心数据结构和协作接口
// 这些接口保证了手势引擎与具体的渲染宿主、时间范围提供者完全解耦
package core

import (
	"time"
)

// Sample 表示数据源产生的单个采样点
type Sample struct {
	Trace string    // 所属曲线名称
	Value float64   // 采样值
	Time  time.Time // 采样时间
}

// DataPoint 表示历史缓冲区中的一个数据点
type DataPoint struct {
	Timestamp time.Time
	Value     float64
}

// DataSource 定义了数据源的标准接口
type DataSource interface {
	// DataStream 返回只读采样通道
	DataStream() <-chan Sample

	// Start 非阻塞地启动数据采集
	Start()

	// Stop 停止采集，之后 DataStream 返回的通道会被关闭
	Stop()
}

// Point 表示屏幕坐标系中的一个点
type Point struct {
	X float64
	Y float64
}

// GestureTargetArea 手势起点所在的区域
type GestureTargetArea int

const (
	AreaPlot   GestureTargetArea = iota // 绘图区
	AreaCursor                          // 游标
	AreaPan                             // 时间轴（平移区）
)

func (a GestureTargetArea) String() string {
	switch a {
	case AreaPlot:
		return "plot"
	case AreaCursor:
		return "cursor"
	case AreaPan:
		return "pan"
	}
	return "unknown"
}

// PointerType 输入设备类型
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// Phase 手势阶段
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

// TapEvent 单击事件
type TapEvent struct {
	Pointer PointerType
	Point   Point
}

// PanEvent 拖动事件，Center 为当前位置，Delta 为相对手势起点的累计位移
type PanEvent struct {
	Phase   Phase
	Pointer PointerType
	Center  Point
	DeltaX  float64
	DeltaY  float64
}

// Origin 返回手势起点（当前位置减去累计位移）
func (e PanEvent) Origin() Point {
	return Point{X: e.Center.X - e.DeltaX, Y: e.Center.Y - e.DeltaY}
}

// PinchEvent 捏合事件，Scale 为相对手势起点的累计缩放比例
type PinchEvent struct {
	Phase   Phase
	Pointer PointerType
	Center  Point
	Scale   float64
}

// RubberBand 橡皮筋选框，坐标为绘图区内的局部坐标
type RubberBand struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// DragStart 游标拖动的起始状态
type DragStart struct {
	StartX float64
	Pos    float64
}

// CursorState 游标状态，Drag 非空表示正在拖动
type CursorState struct {
	Pos  float64
	Time *time.Time
	Drag *DragStart
}

// ValueScaleType 数值轴上下限的取值方式
type ValueScaleType int

const (
	ScaleAutorange ValueScaleType = iota
	ScaleDatabase
	ScaleAbsolute
)

func (t ValueScaleType) String() string {
	switch t {
	case ScaleAutorange:
		return "Autorange"
	case ScaleDatabase:
		return "Database"
	case ScaleAbsolute:
		return "Absolute"
	}
	return "Unknown"
}

// ScaleSetting 一个数值轴的上下限设置
type ScaleSetting struct {
	MinType  ValueScaleType `toml:"min_type"`
	MinValue float64        `toml:"min_value"`
	MaxType  ValueScaleType `toml:"max_type"`
	MaxValue float64        `toml:"max_value"`
}

// ZoomSpec 一次橡皮筋缩放的持久化结果
type ZoomSpec struct {
	ValueScaleSetting ScaleSetting   `toml:"value_scale"`
	TraceSettings     []ScaleSetting `toml:"traces,omitempty"`
}

// Limits 数值范围
type Limits struct {
	Min float64
	Max float64
}

// ValueLimits 图表当前的数值轴范围，Traces 与曲线顺序一致
type ValueLimits struct {
	Min    float64
	Max    float64
	Traces []Limits
}

// GestureKind 时间范围手势类型
type GestureKind int

const (
	GesturePan GestureKind = iota
	GestureScale
)

// Gesture 时间范围手势的描述
type Gesture struct {
	Kind    GestureKind
	Percent float64 // 平移百分比
	Factor  float64 // 缩放比例
	Anchor  float64 // 缩放锚点百分比
	Cancel  bool    // 手势结束，所有实例清除"手势中"标记
}

// GestureEvent 时间范围提供者广播的手势事件
type GestureEvent struct {
	StartLabel string
	EndLabel   string
	Gesture    Gesture
}

// TimeRangeProvider 一个显示界面上所有图表共享的时间范围提供者
type TimeRangeProvider interface {
	PanTimeRange(percent float64)
	ScaleTimeRange(factor, anchorPercent float64)
	SetZoomedTimeRange(startPercent, endPercent float64)
	GestureComplete(final bool)

	// ServerStartTime/ServerEndTime 返回RFC3339格式的显示时间范围
	ServerStartTime() string
	ServerEndTime() string

	// OnGesture 订阅手势广播，返回取消订阅函数
	OnGesture(fn func(GestureEvent)) (unsubscribe func())

	// OnDisplayTimeChanged 订阅显示时间变化，返回取消订阅函数
	OnDisplayTimeChanged(fn func()) (unsubscribe func())
}

// ChartModel 图表几何与数值模型
type ChartModel interface {
	PlotLeft() float64
	PlotTop() float64
	PlotWidth() float64
	PlotHeight() float64

	// CalcXOffsetPercent 屏幕x坐标相对绘图区宽度的百分比
	CalcXOffsetPercent(x float64) float64
	// CalcXPosition 时间对应的屏幕x坐标
	CalcXPosition(t time.Time) float64
	// CalcRelativeOffset 相对时间模式下屏幕x坐标对应的偏移
	CalcRelativeOffset(x float64) time.Duration

	// ValueScaleLimits 当前数值范围，没有数据时返回nil
	ValueScaleLimits() *ValueLimits
	// MultipleScales 是否每条曲线使用独立数值轴
	MultipleScales() bool

	// TargetArea 屏幕坐标所在的手势区域
	TargetArea(p Point) GestureTargetArea

	Refresh()
}

// NotificationKind 引擎发往宿主的通知类型
type NotificationKind int

const (
	NotifyRefreshChangedSymbols NotificationKind = iota
	NotifyRefreshWithCursor
	NotifyRefreshAll
	NotifyCursorUpdated
	NotifyToggleFullView
	NotifyClearCursorArtifact
)

func (k NotificationKind) String() string {
	switch k {
	case NotifyRefreshChangedSymbols:
		return "refresh-changed-symbols"
	case NotifyRefreshWithCursor:
		return "refresh-with-cursor"
	case NotifyRefreshAll:
		return "refresh-all"
	case NotifyCursorUpdated:
		return "cursor-updated"
	case NotifyToggleFullView:
		return "toggle-full-view"
	case NotifyClearCursorArtifact:
		return "clear-cursor-artifact"
	}
	return "unknown"
}

// Notification 引擎发往宿主的通知
type Notification struct {
	Source string // 发出通知的图表实例
	Kind   NotificationKind
	Cursor time.Time // 仅 NotifyCursorUpdated 有效
}

// Host 渲染宿主，决定何时以及如何真正取数和重绘
type Host interface {
	Notify(n Notification)

	// RequestZoom 请求按缩放结果刷新数据，完成后必须调用done
	RequestZoom(source string, spec ZoomSpec, done func())

	// PreviewGesture 将进行中的平移/缩放应用到实例自身的渲染上
	PreviewGesture(source string, ev GestureEvent)
}
