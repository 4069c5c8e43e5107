// Package tui 交互控制模块
package tui

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
)

// navLimiter 导航事件频率控制，连续事件达到阈值后休息一段时间
type navLimiter struct {
	counter   int           // 事件计数器
	threshold int           // 达到次数后休息
	rest      time.Duration // 休息时长
	resting   bool          // 是否在休息状态
	last      time.Time     // 最后一次事件时间
}

func newNavLimiter() *navLimiter {
	return &navLimiter{threshold: 5, rest: 100 * time.Millisecond}
}

// allow 判断是否应该处理导航事件
func (l *navLimiter) allow(now time.Time) bool {
	// 如果正在休息中，检查是否休息够了
	if l.resting {
		if now.Sub(l.last) >= l.rest {
			// 休息够了，重置状态
			l.resting = false
			l.counter = 0
			return true
		}
		// 还在休息，忽略事件
		return false
	}
	return true
}

// record 记录导航事件
func (l *navLimiter) record(now time.Time) {
	l.counter++
	l.last = now
	if l.counter >= l.threshold {
		l.resting = true
	}
}

// setupKeyBindings 设置键盘绑定
func (t *TUI) setupKeyBindings() {
	t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if t.handleKey(event) {
			t.markDirty()
			return nil
		}
		return event
	})
}

// handleKey 处理按键，返回是否已处理
func (t *TUI) handleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyCtrlC:
		t.Stop()
		return true
	case tcell.KeyEscape:
		t.cancelGestures()
		return true
	case tcell.KeyEnter:
		if t.selected >= 0 {
			t.toggleFullView(t.views[t.selected].ctrl.ID())
		} else if t.fullView != "" {
			t.toggleFullView(t.fullView)
		}
		return true
	case tcell.KeyUp, tcell.KeyDown:
		// 添加频率控制检查
		now := t.now()
		if t.nav.allow(now) {
			if event.Key() == tcell.KeyUp {
				t.navigateUp()
			} else {
				t.navigateDown()
			}
			t.nav.record(now)
		}
		return true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q', 'Q':
			t.Stop()
		case 'r', 'R':
			t.resetLive()
		case 'a', 'A':
			t.showAll()
		case 'c', 'C':
			t.toggleCursor()
		case 'p', 'P':
			t.togglePan()
		case 'e', 'E':
			t.toggleEdit()
		default:
			return false
		}
		t.updateStatus()
		return true
	}
	return false
}

// showAll 将时间窗口设为全部历史数据
func (t *TUI) showAll() {
	first, last, ok := t.hist.span()
	if !ok || !last.After(first) {
		return
	}
	t.live.Store(false)
	t.provider.Reset(first, last)
}

// cancelGestures 取消所有图表上进行中的鼠标手势
func (t *TUI) cancelGestures() {
	for _, v := range t.views {
		if v.tracker != nil {
			v.tracker.cancel()
		}
	}
}

func (t *TUI) toggleCursor() {
	t.cursorOn = !t.cursorOn
	for _, v := range t.views {
		v.ctrl.SetCursorEnabled(t.cursorOn)
	}
	log.Printf("tui: 游标 %v", t.cursorOn)
}

func (t *TUI) togglePan() {
	t.panOn = !t.panOn
	for _, v := range t.views {
		v.ctrl.SetPanEnabled(t.panOn)
	}
}

// toggleEdit 布局编辑模式下所有图表都不接受手势
func (t *TUI) toggleEdit() {
	t.editMode = !t.editMode
	if t.editMode {
		t.cancelGestures()
	}
	for _, v := range t.views {
		v.ctrl.SetEditMode(t.editMode)
	}
}

// navigateUp 向上导航
func (t *TUI) navigateUp() {
	if len(t.views) == 0 {
		return
	}

	if t.selected == -1 {
		// 从无选中状态按上键，选择最后一个图表
		t.selected = len(t.views) - 1
	} else if t.selected > 0 {
		t.selected--
	} else {
		// 在第一个图表时按上键，返回无选中状态
		t.selected = -1
	}

	if !t.testMode {
		t.updateSelection()
	}
}

// navigateDown 向下导航
func (t *TUI) navigateDown() {
	if len(t.views) == 0 {
		return
	}

	if t.selected == -1 {
		t.selected = 0
	} else if t.selected < len(t.views)-1 {
		t.selected++
	} else {
		t.selected = -1
	}

	if !t.testMode {
		t.updateSelection()
	}
}
