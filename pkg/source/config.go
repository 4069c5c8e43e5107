// Package source 配置定义
package source

import (
	"errors"
	"time"
)

// Config 采样源的配置结构
type Config struct {
	Interval   time.Duration // 采样间隔
	BufferSize int           // 数据通道缓冲区大小
	Seed       uint64        // 随机游走种子，相同种子产生相同序列
	Step       float64       // 每次采样的最大变化量
	Initial    float64       // 初始值
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Interval:   200 * time.Millisecond, // 默认200ms间隔
		BufferSize: 100,                    // 默认100缓冲区大小
		Seed:       1,
		Step:       5,
		Initial:    50,
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return errors.New("采样间隔必须大于0")
	}

	if c.Interval < 10*time.Millisecond {
		return errors.New("采样间隔不能小于10ms")
	}

	if c.BufferSize <= 0 {
		return errors.New("缓冲区大小必须大于0")
	}

	if c.Step <= 0 {
		return errors.New("游走步长必须大于0")
	}

	return nil
}

// ValidateTraces 验证曲线名称
func ValidateTraces(traces []string) error {
	if len(traces) == 0 {
		return errors.New("必须指定至少一条曲线")
	}

	seen := make(map[string]bool, len(traces))
	for _, trace := range traces {
		if trace == "" {
			return errors.New("曲线名称不能为空")
		}
		if seen[trace] {
			return errors.New("曲线名称重复: " + trace)
		}
		seen[trace] = true
	}
	return nil
}

// Option 配置选项函数类型
type Option func(*Config)

// WithInterval 设置采样间隔
func WithInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.Interval = interval
	}
}

// WithBufferSize 设置缓冲区大小
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// WithSeed 设置随机种子
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithStep 设置游走步长
func WithStep(step float64) Option {
	return func(c *Config) {
		c.Step = step
	}
}

// NewConfig 使用选项模式创建配置
func NewConfig(opts ...Option) *Config {
	config := DefaultConfig()

	for _, opt := range opts {
		opt(config)
	}

	return config
}
