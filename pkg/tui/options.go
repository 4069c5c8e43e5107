// Package tui 选项模式支持
package tui

import (
	"time"
)

// Option TUI配置选项函数类型
type Option func(*Config)

// WithRefreshInterval 设置UI刷新间隔
func WithRefreshInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.RefreshInterval = interval
	}
}

// WithRefreshDelay 设置取数延迟
func WithRefreshDelay(delay time.Duration) Option {
	return func(c *Config) {
		c.RefreshDelay = delay
	}
}

// WithWindowSpan 设置实时时间窗口长度
func WithWindowSpan(span time.Duration) Option {
	return func(c *Config) {
		c.WindowSpan = span
	}
}

// WithChartSize 设置图表尺寸
func WithChartSize(width, height int) Option {
	return func(c *Config) {
		c.MinChartWidth = width
		c.MinChartHeight = height
	}
}

// WithHistorySize 设置历史缓冲区大小
func WithHistorySize(size int) Option {
	return func(c *Config) {
		c.MaxHistorySize = size
	}
}

// WithValueBufferRatio 设置值缓冲比例
func WithValueBufferRatio(ratio float64) Option {
	return func(c *Config) {
		c.ValueBufferRatio = ratio
	}
}

// WithPerTraceScales 设置每条曲线使用独立数值轴
func WithPerTraceScales(enabled bool) Option {
	return func(c *Config) {
		c.PerTraceScales = enabled
	}
}

// WithStatePath 设置持久化文件
func WithStatePath(path string) Option {
	return func(c *Config) {
		c.StatePath = path
	}
}

// NewConfigWithOptions 使用选项模式创建TUI配置
func NewConfigWithOptions(opts ...Option) *Config {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	return config
}
