// Package tui 图表渲染模块
package tui

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/scale"
)

// brailleCell 定义盲文字符的cell结构
type brailleCell struct {
	char  int
	color tcell.Color
}

// 盲文点阵的映射关系 (2x4 grid)
var brailleDotMap = [4][2]int{
	{0b00000001, 0b00001000}, // (y:0, x:0), (y:0, x:1)
	{0b00000010, 0b00010000}, // (y:1, x:0), (y:1, x:1)
	{0b00000100, 0b00100000}, // (y:2, x:0), (y:2, x:1)
	{0b01000000, 0b10000000}, // (y:3, x:0), (y:3, x:1)
}

// traceSeries 一条曲线在当前窗口内的数据与数值范围
type traceSeries struct {
	name   string
	color  tcell.Color
	points []core.DataPoint
	limits core.Limits
}

// validateChartSize 验证图表尺寸是否合理
func validateChartSize(cfg *Config, width, height int) string {
	if height < cfg.MinChartHeight || width < cfg.MinChartWidth {
		return "终端尺寸过小"
	}
	if width > cfg.MaxChartSize || height > cfg.MaxChartSize {
		return "终端尺寸过大"
	}
	return ""
}

// calculateValueRange 计算窗口内数据的值范围，两端各留 bufferRatio 的余量
func calculateValueRange(points []core.DataPoint, windowStart, windowEnd time.Time, bufferRatio float64) (core.Limits, bool) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, point := range points {
		if point.Timestamp.Before(windowStart) || point.Timestamp.After(windowEnd) {
			continue
		}
		if math.IsNaN(point.Value) || math.IsInf(point.Value, 0) {
			continue
		}
		minVal = math.Min(minVal, point.Value)
		maxVal = math.Max(maxVal, point.Value)
	}

	if math.IsInf(minVal, 1) {
		return core.Limits{}, false
	}

	// 如果所有值都一样，特殊处理
	if maxVal == minVal {
		maxVal++
		minVal--
	}

	pad := (maxVal - minVal) * bufferRatio
	minVal, maxVal = scale.Adjust(minVal-pad, maxVal+pad)
	return core.Limits{Min: minVal, Max: maxVal}, true
}

// mergeLimits 所有曲线数值范围的并集
func mergeLimits(series []traceSeries) core.Limits {
	merged := core.Limits{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, s := range series {
		merged.Min = math.Min(merged.Min, s.limits.Min)
		merged.Max = math.Max(merged.Max, s.limits.Max)
	}
	return merged
}

// drawCanvas 在 width x height 个字符的盲文画布上绘制所有曲线
func drawCanvas(series []traceSeries, windowStart, windowEnd time.Time, width, height int) [][]brailleCell {
	canvas := make([][]brailleCell, width)
	for i := range canvas {
		canvas[i] = make([]brailleCell, height)
	}

	subWidth, subHeight := width*2, height*4
	for _, s := range series {
		valueRange := s.limits.Max - s.limits.Min
		if valueRange <= 0 {
			continue
		}

		lastValidX, lastValidY := -1, -1
		for _, point := range s.points {
			if math.IsNaN(point.Value) || math.IsInf(point.Value, 0) {
				// 缺失数据断开线条
				lastValidX, lastValidY = -1, -1
				continue
			}

			// 窗口外的点仍参与连线，由画布边界裁剪
			currX := timestampToX(point.Timestamp, windowStart, windowEnd, subWidth)
			normalized := (point.Value - s.limits.Min) / valueRange
			currY := int(math.Round((1.0 - normalized) * float64(subHeight-1)))

			if lastValidX != -1 {
				drawBrailleLine(canvas, lastValidX, lastValidY, currX, currY, s.color)
			} else {
				setDot(canvas, currX, currY, s.color)
			}
			lastValidX, lastValidY = currX, currY
		}
	}
	return canvas
}

// setDot 点亮高分辨率坐标 (x, y) 处的盲文点，越界时忽略
func setDot(canvas [][]brailleCell, x, y int, color tcell.Color) {
	if x < 0 || y < 0 || len(canvas) == 0 {
		return
	}
	canvasX, canvasY := x/2, y/4
	if canvasX >= len(canvas) || canvasY >= len(canvas[0]) {
		return
	}
	canvas[canvasX][canvasY].char |= brailleDotMap[y%4][x%2]
	canvas[canvasX][canvasY].color = color
}

// drawBrailleLine 使用布雷森汉姆算法在盲文画布上绘制线段
func drawBrailleLine(canvas [][]brailleCell, x1, y1, x2, y2 int, color tcell.Color) {
	if len(canvas) == 0 {
		return
	}
	// 先裁剪到画布附近，避免缩放后远离画布的点产生超长线段
	x1, y1, x2, y2, ok := clipLine(x1, y1, x2, y2, len(canvas)*2, len(canvas[0])*4)
	if !ok {
		return
	}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		setDot(canvas, x, y, color)

		// 检查是否到达终点
		if x == x2 && y == y2 {
			break
		}

		// 计算下一个位置
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// clipLine 将线段裁剪到 [-1, width] x [-1, height] 内（Liang-Barsky）
func clipLine(x1, y1, x2, y2, width, height int) (int, int, int, int, bool) {
	fx1, fy1 := float64(x1), float64(y1)
	dx, dy := float64(x2-x1), float64(y2-y1)
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, fx1 + 1},
		{dx, float64(width) - fx1},
		{-dy, fy1 + 1},
		{dy, float64(height) - fy1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}

	return int(math.Round(fx1 + t0*dx)), int(math.Round(fy1 + t0*dy)),
		int(math.Round(fx1 + t1*dx)), int(math.Round(fy1 + t1*dy)), true
}

// brailleRune 盲文点阵对应的字符
func brailleRune(char int) rune {
	return rune(0x2800 + char)
}
