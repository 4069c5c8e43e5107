package gesture

import (
	"time"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/sched"
)

// tapState 单击/双击判定状态
type tapState struct {
	pending sched.Task // 延迟执行的游标放置

	last    core.TapEvent
	lastAt  time.Time
	hasLast bool
}

func (s *tapState) cancel() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// duplicate 某些触屏设备会在触摸事件之后合成一次鼠标点击
func (s *tapState) duplicate(ev core.TapEvent, now time.Time, window time.Duration) bool {
	if !s.hasLast {
		return false
	}
	return s.last.Pointer != ev.Pointer &&
		s.last.Point == ev.Point &&
		now.Sub(s.lastAt) <= window
}

// HandleTap 处理单击
// 第一次点击延迟放置游标，延迟期间的第二次点击切换全屏并取消游标放置
// 忙碌、编辑模式或时间范围手势进行中不放置游标，但仍然记录点击并响应双击
func (c *Controller) HandleTap(ev core.TapEvent) {
	if c.disposed {
		return
	}
	now := c.now()
	if c.taps.duplicate(ev, now, c.cfg.DuplicateTapWindow) {
		return
	}
	c.taps.last = ev
	c.taps.lastAt = now
	c.taps.hasLast = true

	if c.taps.pending != nil {
		c.taps.cancel()
		c.host.Notify(core.Notification{Source: c.id, Kind: core.NotifyToggleFullView})
		return
	}
	if c.blocked() || c.gesturing {
		return
	}

	var task sched.Task
	task = c.sched.AfterFunc(c.cfg.TapDelay, func() {
		if c.taps.pending != task {
			return
		}
		c.taps.pending = nil
		if c.blocked() {
			return
		}
		c.cursor.PlaceAt(ev.Point.X)
	})
	c.taps.pending = task
}

// TapPending 是否有尚未执行的单击
func (c *Controller) TapPending() bool {
	return c.taps.pending != nil
}
