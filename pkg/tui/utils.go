// Package tui 工具函数和辅助类型
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
)

// 曲线颜色序列
var traceColors = []tcell.Color{
	tcell.ColorGreen, tcell.ColorYellow, tcell.ColorBlue, tcell.ColorFuchsia, tcell.ColorAqua, tcell.ColorRed,
	tcell.ColorOrange, tcell.ColorPurple, tcell.ColorLime, tcell.ColorPink,
	tcell.ColorDarkCyan, tcell.ColorDarkGreen, tcell.ColorDarkBlue, tcell.ColorDarkMagenta,
}

// traceColor 按曲线在图表中的顺序分配颜色，确保颜色稳定
func traceColor(index int) tcell.Color {
	return traceColors[index%len(traceColors)]
}

// formatValue 提供自适应的数值格式化
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}

	mag := math.Abs(v)
	switch {
	case mag >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case mag >= 1e4:
		return fmt.Sprintf("%.1fk", v/1e3)
	case mag >= 100 || v == 0:
		return fmt.Sprintf("%.0f", v)
	case mag >= 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.3g", v)
	}
}

// abs 返回整数的绝对值
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
