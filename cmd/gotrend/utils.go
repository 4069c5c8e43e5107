package main

import (
	"fmt"
	"strings"

	"github.com/Kevin-Rudy/gotrend/pkg/tui"
)

// 程序信息常量
const (
	AppName    = "gotrend"
	AppVersion = "0.1.0"
	AppDesc    = "支持拖动平移、滚轮缩放和橡皮筋缩放的终端趋势图"
)

// printUsageInstructions 显示TUI操作说明
func printUsageInstructions() {
	fmt.Println("操作说明:")
	fmt.Println("  单击        - 放置游标（所有图表同步）")
	fmt.Println("  双击        - 切换全屏显示")
	fmt.Println("  拖动时间轴  - 平移时间范围")
	fmt.Println("  在图中拖动  - 橡皮筋缩放")
	fmt.Println("  拖动游标    - 移动游标")
	fmt.Println("  滚轮        - 以指针为中心缩放时间范围")
	fmt.Println("  Esc         - 取消拖动")
	fmt.Println("  r / a       - 实时跟随 / 显示全部历史")
	fmt.Println("  c / p / e   - 开关游标 / 平移模式 / 编辑模式")
	fmt.Println("  q 或 Ctrl+C - 退出程序")
	fmt.Println("========================================")
}

// describeCharts 图表布局的简短描述
func describeCharts(charts []tui.ChartSpec) string {
	parts := make([]string, len(charts))
	for i, c := range charts {
		parts[i] = fmt.Sprintf("%s[%s]", c.Name, strings.Join(c.Traces, " "))
	}
	return strings.Join(parts, " ")
}
