// Package source 实现了core.DataSource接口
// 为每条曲线生成随机游走采样，用于在没有外部数据时驱动趋势图
package source

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
)

// Walker 按固定间隔产生采样的数据源
type Walker struct {
	traces    []string         // 曲线列表
	config    *Config          // 配置信息
	dataChan  chan core.Sample // 数据输出通道
	stopChan  chan struct{}    // 停止信号通道
	wg        sync.WaitGroup   // 等待组，用于优雅关闭
	running   bool             // 运行状态
	runningMu sync.RWMutex     // 保护running状态的锁
	now       func() time.Time
}

// New 创建新的数据源
func New(traces []string, config *Config) (*Walker, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateTraces(traces); err != nil {
		return nil, err
	}

	return &Walker{
		traces:   traces,
		config:   config,
		dataChan: make(chan core.Sample, config.BufferSize),
		stopChan: make(chan struct{}),
		now:      time.Now,
	}, nil
}

// NewWithOptions 使用选项模式创建数据源
func NewWithOptions(traces []string, opts ...Option) (*Walker, error) {
	return New(traces, NewConfig(opts...))
}

// DataStream 实现core.DataSource接口
func (w *Walker) DataStream() <-chan core.Sample {
	return w.dataChan
}

// Start 实现core.DataSource接口，非阻塞
func (w *Walker) Start() {
	w.runningMu.Lock()
	if w.running {
		w.runningMu.Unlock()
		return
	}
	w.running = true
	w.runningMu.Unlock()

	for i, trace := range w.traces {
		w.wg.Add(1)
		go w.run(trace, newWalk(w.config, uint64(i)))
	}
}

// Stop 实现core.DataSource接口
func (w *Walker) Stop() {
	w.runningMu.Lock()
	if !w.running {
		w.runningMu.Unlock()
		return
	}
	w.running = false
	w.runningMu.Unlock()

	// 发送停止信号
	close(w.stopChan)

	// 等待所有goroutine结束
	w.wg.Wait()

	// 关闭数据通道
	close(w.dataChan)
}

func (w *Walker) isRunning() bool {
	w.runningMu.RLock()
	defer w.runningMu.RUnlock()
	return w.running
}

// run 单条曲线的采样循环
func (w *Walker) run(trace string, walk *walk) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.send(trace, walk.value)
	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.send(trace, walk.next())
		}
	}
}

// send 发送采样到数据通道
func (w *Walker) send(trace string, value float64) {
	if !w.isRunning() {
		return
	}

	sample := core.Sample{
		Trace: trace,
		Value: value,
		Time:  w.now(),
	}

	select {
	case w.dataChan <- sample:
	case <-w.stopChan:
		return
	default:
		// 通道满了，丢弃这个采样点
	}
}

// walk 一条曲线的随机游走状态
type walk struct {
	rng   *rand.Rand
	step  float64
	value float64
}

func newWalk(config *Config, index uint64) *walk {
	return &walk{
		rng:   rand.New(rand.NewPCG(config.Seed, index)),
		step:  config.Step,
		value: config.Initial,
	}
}

func (w *walk) next() float64 {
	w.value += (w.rng.Float64()*2 - 1) * w.step
	return w.value
}
