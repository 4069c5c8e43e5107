// Package tui 布局管理模块
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// 状态栏的按键提示
const keyHelp = "[yellow]q[white] 退出  [yellow]r[white] 实时  [yellow]a[white] 全部  [yellow]c[white] 游标  [yellow]p[white] 平移  [yellow]e[white] 编辑  [yellow]↑↓[white] 选择  [yellow]Enter[white] 全屏"

// setupUI 设置用户界面布局
func (t *TUI) setupUI() {
	// 创建主垂直布局
	t.flex = tview.NewFlex()
	t.flex.SetDirection(tview.FlexRow)

	// 状态栏
	t.status = tview.NewTextView()
	t.status.SetDynamicColors(true)
	t.status.SetWordWrap(false)

	t.rebuildLayout()
	t.updateStatus()

	t.app.EnableMouse(true)
	t.app.SetRoot(t.flex, true)
}

// rebuildLayout 重建图表布局，全屏时只显示一个图表
func (t *TUI) rebuildLayout() {
	if t.testMode || t.flex == nil {
		return
	}

	t.flex.Clear()
	for _, v := range t.visibleViews() {
		t.flex.AddItem(v, 0, 1, false)
	}
	t.flex.AddItem(t.status, 1, 0, false)
	t.updateSelection()
}

// visibleViews 当前布局中显示的图表
func (t *TUI) visibleViews() []*ChartView {
	if t.fullView == "" {
		return t.views
	}
	if v, ok := t.byID[t.fullView]; ok {
		return []*ChartView{v}
	}
	return t.views
}

// updateSelection 高亮键盘选中的图表边框
func (t *TUI) updateSelection() {
	for i, v := range t.views {
		if i == t.selected {
			v.SetBorderColor(tcell.ColorDarkCyan)
		} else {
			v.SetBorderColor(tcell.ColorWhite)
		}
	}
}

// setStatus 在状态栏显示一条消息，下次刷新时与模式信息一起显示
func (t *TUI) setStatus(msg string) {
	t.statusMsg = msg
}

// updateStatus 更新状态栏
func (t *TUI) updateStatus() {
	if t.status == nil {
		return
	}

	var modes []string
	if t.live.Load() {
		modes = append(modes, "[green]实时[white]")
	} else {
		modes = append(modes, "[yellow]历史[white]")
	}
	if t.cursorOn {
		modes = append(modes, "游标")
	}
	if t.panOn {
		modes = append(modes, "平移")
	}
	if t.editMode {
		modes = append(modes, "[red]编辑[white]")
	}

	w := t.provider.Window()
	line := fmt.Sprintf("%s  %s ~ %s  %s", strings.Join(modes, " "),
		w.Start.Format(timeLabelLayout), w.End.Format(timeLabelLayout), keyHelp)
	if t.statusMsg != "" {
		line = fmt.Sprintf("%s  %s", t.statusMsg, line)
	}
	if t.lastError != "" {
		line = fmt.Sprintf("[red]%s[white]  %s", tview.Escape(t.lastError), line)
	}
	t.status.SetText(line)
}
