package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
)

// Notify 实现 core.Host
func (t *TUI) Notify(n core.Notification) {
	switch n.Kind {
	case core.NotifyRefreshChangedSymbols, core.NotifyRefreshWithCursor, core.NotifyClearCursorArtifact:
		t.markDirty()
	case core.NotifyRefreshAll:
		t.followLive()
		t.markDirty()
		for _, v := range t.views {
			v.ctrl.CursorSynced()
		}
	case core.NotifyCursorUpdated:
		t.setStatus(t.cursorReadout(n.Source, n.Cursor))
		// 所有图表重绘完成后再允许下一次同步
		t.sched.AfterFunc(t.tuiConfig.RefreshDelay, func() {
			for _, v := range t.views {
				v.ctrl.CursorSynced()
			}
		})
		t.markDirty()
	case core.NotifyToggleFullView:
		t.toggleFullView(n.Source)
	}
}

// RequestZoom 实现 core.Host
// 历史数据已在内存中，延迟一个刷新周期模拟取数后通知完成
func (t *TUI) RequestZoom(source string, spec core.ZoomSpec, done func()) {
	t.live.Store(false)
	log.Printf("tui: %s 缩放 %s=%v %s=%v", source,
		spec.ValueScaleSetting.MinType, spec.ValueScaleSetting.MinValue,
		spec.ValueScaleSetting.MaxType, spec.ValueScaleSetting.MaxValue)
	t.markDirty()
	t.sched.AfterFunc(t.tuiConfig.RefreshDelay, func() {
		done()
		t.saveState()
		t.markDirty()
	})
}

// PreviewGesture 实现 core.Host
func (t *TUI) PreviewGesture(source string, ev core.GestureEvent) {
	view, ok := t.byID[source]
	if !ok {
		return
	}
	if ev.Gesture.Cancel {
		view.preview = ""
	} else {
		t.live.Store(false)
		view.preview = fmt.Sprintf("%s ~ %s", ev.StartLabel, ev.EndLabel)
	}
	t.markDirty()
}

// cursorReadout 游标时间及发出通知的图表中各曲线在该时间的值
func (t *TUI) cursorReadout(source string, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "游标 %s", at.Format(timeLabelLayout))
	view, ok := t.byID[source]
	if !ok {
		return b.String()
	}
	for _, trace := range view.traces {
		if v, ok := t.hist.valueAt(trace, at); ok {
			fmt.Fprintf(&b, "  %s=%s", trace, formatValue(v))
		} else {
			fmt.Fprintf(&b, "  %s=-", trace)
		}
	}
	return b.String()
}

// toggleFullView 在单个图表全屏和全部显示之间切换
func (t *TUI) toggleFullView(source string) {
	if t.fullView == source {
		t.fullView = ""
	} else if _, ok := t.byID[source]; ok {
		t.fullView = source
	}
	t.rebuildLayout()
	t.markDirty()
}

// FullView 全屏显示的图表实例，空表示全部显示
func (t *TUI) FullView() string {
	return t.fullView
}
