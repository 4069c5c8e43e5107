// Package sched 可取消的延迟任务
// 所有回调都回到同一个事件循环上执行
package sched

import (
	"sort"
	"sync"
	"time"
)

// Task 延迟任务的句柄，Stop 可重复调用
type Task interface {
	// Stop 取消任务，任务尚未执行时返回true
	Stop() bool
}

// Scheduler 延迟任务调度器
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// Timer 基于 time.AfterFunc 的调度器
// post 负责把回调投递到事件循环（例如 tview 的 QueueUpdateDraw）
type Timer struct {
	post func(func())

	mu     sync.Mutex
	tasks  map[*timerTask]struct{}
	closed bool
}

// NewTimer 创建调度器，post 为空时回调直接在定时器goroutine上执行
func NewTimer(post func(func())) *Timer {
	return &Timer{post: post, tasks: make(map[*timerTask]struct{})}
}

type timerTask struct {
	owner   *Timer
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// AfterFunc 实现 Scheduler，关闭后返回的任务不会执行
func (s *Timer) AfterFunc(d time.Duration, f func()) Task {
	task := &timerTask{owner: s}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		task.stopped = true
		return task
	}
	s.tasks[task] = struct{}{}

	task.timer = time.AfterFunc(d, func() {
		// 事件循环停止后不再投递，否则投递方可能永远阻塞
		s.mu.Lock()
		delete(s.tasks, task)
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}

		run := func() {
			// 投递期间可能已被取消
			task.mu.Lock()
			if task.stopped {
				task.mu.Unlock()
				return
			}
			task.stopped = true
			task.mu.Unlock()
			f()
		}
		if s.post != nil {
			s.post(run)
			return
		}
		run()
	})
	return task
}

// Close 取消所有尚未执行的任务，之后的 AfterFunc 不再生效；可重复调用
func (s *Timer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for task := range tasks {
		task.Stop()
	}
}

// Pending 尚未触发的任务数
func (s *Timer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (t *timerTask) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.owner.forget(t)
	return true
}

func (s *Timer) forget(t *timerTask) {
	s.mu.Lock()
	delete(s.tasks, t)
	s.mu.Unlock()
}

// Manual 手动推进时间的调度器，用于测试和回放
type Manual struct {
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	s    *Manual
	at   time.Time
	seq  int
	f    func()
	done bool
}

// NewManual 创建从指定时间开始的手动调度器
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now 当前时间，可作为时钟注入
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc 实现 Scheduler
func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	m.seq++
	task := &manualTask{s: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.tasks = append(m.tasks, task)
	return task
}

func (t *manualTask) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Pending 尚未执行的任务数
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance 推进时间并按到期顺序执行任务
// 任务执行中新加入且在推进范围内到期的任务也会被执行
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		next.done = true
		next.f()
	}
	m.now = target
	m.compact()
}

func (m *Manual) nextDue(target time.Time) *manualTask {
	var due []*manualTask
	for _, t := range m.tasks {
		if !t.done && !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (m *Manual) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	m.tasks = live
}
