// Package widget 显示界面与图表配置的持久化
package widget

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
)

// Version 当前文件格式版本
const Version = 1

// Display 显示界面的时间窗口
type Display struct {
	Start time.Time `toml:"start"`
	End   time.Time `toml:"end"`
}

// Chart 单个趋势图的配置
type Chart struct {
	Name           string         `toml:"name"`
	Traces         []string       `toml:"traces"`
	PerTraceScales bool           `toml:"per_trace_scales"`
	Zoom           *core.ZoomSpec `toml:"zoom,omitempty"` // 橡皮筋缩放的数值轴设置
}

// State 持久化的完整状态
type State struct {
	Version int     `toml:"version"`
	Display Display `toml:"display"`
	Charts  []Chart `toml:"chart"`
}

// Validate 验证状态的合理性
func (s *State) Validate() error {
	if s.Version != Version {
		return fmt.Errorf("不支持的版本: %d", s.Version)
	}
	if !s.Display.Start.IsZero() && !s.Display.End.After(s.Display.Start) {
		return errors.New("显示窗口的结束时间必须晚于开始时间")
	}

	seen := make(map[string]bool, len(s.Charts))
	for i, c := range s.Charts {
		if c.Name == "" {
			return fmt.Errorf("chart[%d]: 名称不能为空", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("chart[%d]: 名称重复 %q", i, c.Name)
		}
		seen[c.Name] = true
		if c.Zoom != nil && len(c.Zoom.TraceSettings) != 0 && len(c.Zoom.TraceSettings) != len(c.Traces) {
			return fmt.Errorf("chart %q: 曲线缩放设置数量与曲线数量不一致", c.Name)
		}
	}
	return nil
}

// Chart 按名称查找图表配置，找不到时返回nil
func (s *State) Chart(name string) *Chart {
	for i := range s.Charts {
		if s.Charts[i].Name == name {
			return &s.Charts[i]
		}
	}
	return nil
}

// SetChart 新增或替换同名图表配置
func (s *State) SetChart(c Chart) {
	if existing := s.Chart(c.Name); existing != nil {
		*existing = c
		return
	}
	s.Charts = append(s.Charts, c)
}

// Load 读取状态文件，文件不存在时返回 ok=false
func Load(path string) (state State, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return State{Version: Version}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &state); err != nil {
		return State{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := state.Validate(); err != nil {
		return State{}, false, fmt.Errorf("validate %s: %w", path, err)
	}
	return state, true, nil
}

// Save 写入状态文件，先写临时文件再重命名
func Save(path string, state State) error {
	state.Version = Version
	if err := state.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(state); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
