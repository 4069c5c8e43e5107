// Package gesture 配置定义
package gesture

import (
	"errors"
	"time"
)

// Config 手势引擎的配置结构
type Config struct {
	TapDelay           time.Duration // 单击延迟，期间的第二次点击视为双击
	DuplicateTapWindow time.Duration // 不同输入设备在同一坐标重复点击的判定窗口
	InactivityDelay    time.Duration // 手势静止多久后最终提交
	PanEnabled         bool          // 是否允许拖动平移时间范围
	CursorEnabled      bool          // 是否显示游标
	Sparkline          bool          // 迷你图变体，不响应拖动
	ZoomLevel          float64       // 应用全局缩放比例，换算像素位移时使用
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		TapDelay:           300 * time.Millisecond,
		DuplicateTapWindow: 1000 * time.Millisecond,
		InactivityDelay:    750 * time.Millisecond,
		PanEnabled:         true,
		CursorEnabled:      true,
		Sparkline:          false,
		ZoomLevel:          1.0,
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.TapDelay <= 0 {
		return errors.New("单击延迟必须大于0")
	}

	if c.DuplicateTapWindow < 0 {
		return errors.New("重复点击窗口不能为负数")
	}

	if c.InactivityDelay <= 0 {
		return errors.New("静止提交延迟必须大于0")
	}

	if c.ZoomLevel <= 0 {
		return errors.New("全局缩放比例必须大于0")
	}

	return nil
}

// Option 手势配置选项函数类型
type Option func(*Config)

// WithTapDelay 设置单击延迟
func WithTapDelay(d time.Duration) Option {
	return func(c *Config) {
		c.TapDelay = d
	}
}

// WithInactivityDelay 设置静止提交延迟
func WithInactivityDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InactivityDelay = d
	}
}

// WithPanEnabled 设置是否允许拖动平移
func WithPanEnabled(enabled bool) Option {
	return func(c *Config) {
		c.PanEnabled = enabled
	}
}

// WithSparkline 设置迷你图变体
func WithSparkline(sparkline bool) Option {
	return func(c *Config) {
		c.Sparkline = sparkline
	}
}

// WithZoomLevel 设置全局缩放比例
func WithZoomLevel(level float64) Option {
	return func(c *Config) {
		c.ZoomLevel = level
	}
}

// NewConfigWithOptions 使用选项模式创建配置
func NewConfigWithOptions(opts ...Option) *Config {
	config := DefaultConfig()

	for _, opt := range opts {
		opt(config)
	}

	return config
}
