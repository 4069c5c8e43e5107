package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/Kevin-Rudy/gotrend/pkg/gesture"
	"github.com/Kevin-Rudy/gotrend/pkg/source"
	"github.com/Kevin-Rudy/gotrend/pkg/tui"
)

// AppConfig 应用层配置聚合
type AppConfig struct {
	SourceConfig  *source.Config
	TUIConfig     *tui.Config
	GestureConfig *gesture.Config
	Charts        []tui.ChartSpec
	Traces        []string
	LogFile       string
}

// fileConfig 配置文件与 GOTREND_ 环境变量中的设置
type fileConfig struct {
	Source struct {
		Interval time.Duration
		Seed     uint64
		Step     float64
	}
	View struct {
		Span        time.Duration
		RefreshRate time.Duration `mapstructure:"refresh_rate"`
		Buffer      int
		PerTrace    bool `mapstructure:"per_trace"`
		State       string
	}
	Gesture struct {
		TapDelay        time.Duration `mapstructure:"tap_delay"`
		InactivityDelay time.Duration `mapstructure:"inactivity_delay"`
		Pan             bool
	}
	Log struct {
		File string
	}
	Charts []struct {
		Name   string
		Traces []string
	} `mapstructure:"chart"`
}

// loadFileConfig 读取配置文件，环境变量覆盖文件中的值
// path 为空时使用默认位置，默认位置没有配置文件不算错误
func loadFileConfig(path string) (fileConfig, error) {
	v := viper.New()

	// 默认值与各包的默认配置一致
	src, view, gest := source.DefaultConfig(), tui.DefaultConfig(), gesture.DefaultConfig()
	v.SetDefault("source.interval", src.Interval)
	v.SetDefault("source.seed", src.Seed)
	v.SetDefault("source.step", src.Step)
	v.SetDefault("view.span", view.WindowSpan)
	v.SetDefault("view.refresh_rate", view.RefreshInterval)
	v.SetDefault("view.buffer", view.MaxHistorySize)
	v.SetDefault("view.per_trace", view.PerTraceScales)
	v.SetDefault("view.state", "")
	v.SetDefault("gesture.tap_delay", gest.TapDelay)
	v.SetDefault("gesture.inactivity_delay", gest.InactivityDelay)
	v.SetDefault("gesture.pan", gest.PanEnabled)
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gotrend"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GOTREND")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fileConfig{}, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return fileConfig{}, fmt.Errorf("解析配置失败: %w", err)
	}
	return fc, nil
}

// buildConfigFromCLI 从配置文件和命令行参数构建配置，显式设置的参数优先
func buildConfigFromCLI(c *cli.Context, fc fileConfig) (*AppConfig, error) {
	// 构建采样源配置
	sourceConfig := source.NewConfig(
		source.WithInterval(fc.Source.Interval),
		source.WithSeed(fc.Source.Seed),
		source.WithStep(fc.Source.Step),
	)
	if c.IsSet("interval") {
		sourceConfig.Interval = c.Duration("interval")
	}
	if c.IsSet("seed") {
		sourceConfig.Seed = c.Uint64("seed")
	}

	// 构建 TUI 配置
	tuiConfig := tui.NewConfigWithOptions(
		tui.WithWindowSpan(fc.View.Span),
		tui.WithRefreshInterval(fc.View.RefreshRate),
		tui.WithHistorySize(fc.View.Buffer),
		tui.WithPerTraceScales(fc.View.PerTrace),
		tui.WithStatePath(fc.View.State),
	)
	if c.IsSet("span") {
		tuiConfig.WindowSpan = c.Duration("span")
	}
	if c.IsSet("refresh-rate") {
		tuiConfig.RefreshInterval = c.Duration("refresh-rate")
	}
	if c.IsSet("buffer") {
		tuiConfig.MaxHistorySize = c.Int("buffer")
	}
	if c.IsSet("per-trace") {
		tuiConfig.PerTraceScales = c.Bool("per-trace")
	}
	if c.IsSet("state") {
		tuiConfig.StatePath = c.String("state")
	}

	// 构建手势配置
	gestureConfig := gesture.NewConfigWithOptions(
		gesture.WithTapDelay(fc.Gesture.TapDelay),
		gesture.WithInactivityDelay(fc.Gesture.InactivityDelay),
		gesture.WithPanEnabled(fc.Gesture.Pan),
	)
	if c.IsSet("tap-delay") {
		gestureConfig.TapDelay = c.Duration("tap-delay")
	}
	if c.IsSet("inactivity-delay") {
		gestureConfig.InactivityDelay = c.Duration("inactivity-delay")
	}
	if c.Bool("no-pan") {
		gestureConfig.PanEnabled = false
	}

	logFile := fc.Log.File
	if c.IsSet("log") {
		logFile = c.String("log")
	}

	// 图表：配置文件中的定义，然后是 --chart，最后每个参数单独一个图表
	var charts []tui.ChartSpec
	for _, entry := range fc.Charts {
		charts = append(charts, tui.ChartSpec{Name: entry.Name, Traces: entry.Traces})
	}
	for _, def := range c.StringSlice("chart") {
		chart, err := parseChart(def)
		if err != nil {
			return nil, err
		}
		charts = append(charts, chart)
	}
	for _, trace := range c.Args().Slice() {
		charts = append(charts, tui.ChartSpec{Name: trace, Traces: []string{trace}})
	}

	return &AppConfig{
		SourceConfig:  sourceConfig,
		TUIConfig:     tuiConfig,
		GestureConfig: gestureConfig,
		Charts:        charts,
		Traces:        collectTraces(charts),
		LogFile:       logFile,
	}, nil
}

// parseChart 解析 名称=曲线1:曲线2 格式的图表定义，省略名称时以曲线名作为名称
func parseChart(def string) (tui.ChartSpec, error) {
	name, list, found := strings.Cut(def, "=")
	if !found {
		list = def
	}

	var traces []string
	for _, trace := range strings.Split(list, ":") {
		if trace = strings.TrimSpace(trace); trace != "" {
			traces = append(traces, trace)
		}
	}
	if len(traces) == 0 {
		return tui.ChartSpec{}, fmt.Errorf("图表定义 %q 没有曲线", def)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.Join(traces, "+")
	}
	return tui.ChartSpec{Name: name, Traces: traces}, nil
}

// collectTraces 按出现顺序收集所有图表中的曲线，去除重复
func collectTraces(charts []tui.ChartSpec) []string {
	seen := make(map[string]bool)
	var traces []string
	for _, chart := range charts {
		for _, trace := range chart.Traces {
			if !seen[trace] {
				seen[trace] = true
				traces = append(traces, trace)
			}
		}
	}
	return traces
}

// validateConfig 验证配置的合理性
func validateConfig(config *AppConfig) error {
	if len(config.Charts) == 0 {
		return errors.New("必须指定至少一个图表或曲线")
	}

	names := make(map[string]bool, len(config.Charts))
	for _, chart := range config.Charts {
		if names[chart.Name] {
			return fmt.Errorf("图表名称重复: %s", chart.Name)
		}
		names[chart.Name] = true
	}

	// 验证采样源配置
	if err := config.SourceConfig.Validate(); err != nil {
		return fmt.Errorf("采样源配置错误: %w", err)
	}
	if err := source.ValidateTraces(config.Traces); err != nil {
		return fmt.Errorf("采样源配置错误: %w", err)
	}

	// 验证 TUI 配置
	if err := config.TUIConfig.Validate(); err != nil {
		return fmt.Errorf("tui配置错误: %w", err)
	}

	// 验证手势配置
	if err := config.GestureConfig.Validate(); err != nil {
		return fmt.Errorf("手势配置错误: %w", err)
	}

	return nil
}
