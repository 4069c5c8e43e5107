package gesture

import (
	"time"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
	"github.com/Kevin-Rudy/gotrend/pkg/sched"
)

// InactivityGate 手势静止一段时间后才最终提交数据刷新
// 连续的平移/缩放步骤只触发一次取数
type InactivityGate struct {
	sched    sched.Scheduler
	delay    time.Duration
	provider core.TimeRangeProvider
	task     sched.Task
}

// NewInactivityGate 创建静止提交门
func NewInactivityGate(s sched.Scheduler, delay time.Duration, provider core.TimeRangeProvider) *InactivityGate {
	return &InactivityGate{sched: s, delay: delay, provider: provider}
}

// Touch 取消尚未触发的计时并重新开始
func (g *InactivityGate) Touch() {
	g.Cancel()
	var task sched.Task
	task = g.sched.AfterFunc(g.delay, func() {
		if g.task != task {
			return
		}
		g.task = nil
		g.provider.GestureComplete(true)
	})
	g.task = task
}

// Cancel 取消计时，可重复调用
func (g *InactivityGate) Cancel() {
	if g.task == nil {
		return
	}
	g.task.Stop()
	g.task = nil
}

// Pending 是否有计时尚未触发
func (g *InactivityGate) Pending() bool {
	return g.task != nil
}
