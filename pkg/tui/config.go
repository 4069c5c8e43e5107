// Package tui 配置定义
package tui

import (
	"errors"
	"time"
)

// Config TUI组件的配置结构
type Config struct {
	RefreshInterval  time.Duration // UI刷新间隔
	RefreshDelay     time.Duration // 模拟缩放/游标取数的耗时
	WindowSpan       time.Duration // 实时跟随时的时间窗口长度
	MinChartWidth    int           // 最小图表宽度
	MinChartHeight   int           // 最小图表高度
	MaxHistorySize   int           // 每条曲线的历史缓冲区大小
	ValueBufferRatio float64       // 值缓冲比例
	MaxChartSize     int           // 最大图表尺寸（防止极端值）
	AxisWidth        int           // Y轴标签宽度
	WheelZoomStep    float64       // 滚轮每格的缩放比例
	PerTraceScales   bool          // 每条曲线使用独立数值轴
	StatePath        string        // 持久化文件，为空时不保存
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval:  200 * time.Millisecond, // 默认200ms刷新
		RefreshDelay:     150 * time.Millisecond,
		WindowSpan:       2 * time.Minute,
		MinChartWidth:    20,   // 最小图表宽度
		MinChartHeight:   5,    // 最小图表高度
		MaxHistorySize:   3000, // 默认3000个历史点
		ValueBufferRatio: 0.1,  // 10%缓冲
		MaxChartSize:     1000, // 最大图表尺寸
		AxisWidth:        9,
		WheelZoomStep:    1.25,
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return errors.New("UI刷新间隔必须大于0")
	}

	if c.RefreshInterval < 10*time.Millisecond {
		return errors.New("UI刷新间隔不能小于10ms")
	}

	if c.RefreshDelay < 0 {
		return errors.New("取数延迟不能为负数")
	}

	if c.WindowSpan < time.Second {
		return errors.New("时间窗口不能小于1s")
	}

	if c.MinChartWidth <= 0 {
		return errors.New("最小图表宽度必须大于0")
	}

	if c.MinChartHeight <= 0 {
		return errors.New("最小图表高度必须大于0")
	}

	if c.MaxHistorySize < 10 {
		return errors.New("历史缓冲区大小不能小于10")
	}

	if c.MaxHistorySize > 100000 {
		return errors.New("历史缓冲区大小不能超过100000")
	}

	if c.ValueBufferRatio < 0 {
		return errors.New("值缓冲比例不能为负数")
	}

	if c.MaxChartSize <= 0 {
		return errors.New("最大图表尺寸必须大于0")
	}

	if c.AxisWidth < 4 {
		return errors.New("Y轴标签宽度不能小于4")
	}

	if c.WheelZoomStep <= 1 {
		return errors.New("滚轮缩放比例必须大于1")
	}

	return nil
}
