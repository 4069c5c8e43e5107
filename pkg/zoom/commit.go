package zoom

import (
	"log"
	"sync"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/scale"
)

// MinBandSize 选框宽或高不超过该值时视为误操作
const MinBandSize = 1.0

// Target 提交缩放时由图表实例提供的回调
type Target interface {
	SetBusy(busy bool)
	// ApplyZoom 写入配置中的Zoom并请求刷新，刷新完成后调用done
	ApplyZoom(spec core.ZoomSpec, done func())
	// MarkZoomed 记录缩放后的显示时间，用于识别外部时间变化
	MarkZoomed(display string)
}

// Commit 提交橡皮筋缩放所需的协作者
type Commit struct {
	Chart    core.ChartModel
	Provider core.TimeRangeProvider
	Target   Target
}

// DisplayKey 显示时间范围的标识
func DisplayKey(p core.TimeRangeProvider) string {
	return p.ServerStartTime() + "/" + p.ServerEndTime()
}

// CommitZoom 以局部坐标 release 结束选框并执行缩放
// 选框过小或没有数值范围时放弃，不修改配置，也不会标记忙碌
func (c *Coordinator) CommitZoom(id string, release core.Point, req Commit) bool {
	if !c.ExtendRubberBand(id, release) {
		return false
	}
	band := c.band
	plotHeight := c.plotHeight

	limits := req.Chart.ValueScaleLimits()
	if band.Width <= MinBandSize || band.Height <= MinBandSize || limits == nil {
		log.Printf("zoom: %s 放弃缩放 (%.0fx%.0f)", id, band.Width, band.Height)
		c.clear()
		return false
	}

	spec := ComputeZoomSpec(band, plotHeight, limits, req.Chart.MultipleScales())

	left := req.Chart.PlotLeft()
	startPercent := req.Chart.CalcXOffsetPercent(left + band.Left)
	endPercent := req.Chart.CalcXOffsetPercent(left + band.Left + band.Width)

	req.Target.SetBusy(true)
	req.Provider.SetZoomedTimeRange(startPercent, endPercent)
	req.Target.MarkZoomed(DisplayKey(req.Provider))

	var once sync.Once
	req.Target.ApplyZoom(spec, func() {
		once.Do(func() {
			req.Target.SetBusy(false)
			if c.Owns(id) {
				c.clear()
			}
			req.Target.MarkZoomed(DisplayKey(req.Provider))
			log.Printf("zoom: %s 缩放完成", id)
		})
	})
	return true
}

// ComputeZoomSpec 根据选框的纵向位置计算新的数值轴设置
// 屏幕y向下增长而数值向上增长，选框顶部对应较大的值
func ComputeZoomSpec(band core.RubberBand, plotHeight float64, limits *core.ValueLimits, multiple bool) core.ZoomSpec {
	if !multiple || len(limits.Traces) == 0 {
		return core.ZoomSpec{ValueScaleSetting: bandSetting(band, plotHeight, limits.Min, limits.Max)}
	}

	traces := make([]core.ScaleSetting, len(limits.Traces))
	for i, l := range limits.Traces {
		traces[i] = bandSetting(band, plotHeight, l.Min, l.Max)
	}
	// 整体设置只作占位，数值由每条曲线的设置决定
	placeholder := core.ScaleSetting{MinType: core.ScaleAbsolute, MaxType: core.ScaleAbsolute}
	return core.ZoomSpec{ValueScaleSetting: placeholder, TraceSettings: traces}
}

func bandSetting(band core.RubberBand, plotHeight, min, max float64) core.ScaleSetting {
	valueAt := func(y float64) float64 {
		if plotHeight <= 0 {
			return max
		}
		return max - y/plotHeight*(max-min)
	}
	lo, hi := valueAt(band.Top+band.Height), valueAt(band.Top)
	if lo < hi {
		lo, hi = scale.Adjust(lo, hi)
	}
	return core.ScaleSetting{
		MinType:  core.ScaleAbsolute,
		MinValue: lo,
		MaxType:  core.ScaleAbsolute,
		MaxValue: hi,
	}
}
