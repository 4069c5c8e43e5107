package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Kevin-Rudy/gotrend/pkg/logging"
	"github.com/Kevin-Rudy/gotrend/pkg/source"
	"github.com/Kevin-Rudy/gotrend/pkg/tui"
)

// runApp 主要应用逻辑处理函数
func runApp(c *cli.Context) error {
	fc, err := loadFileConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("错误: %v", err), 1)
	}

	// 构建配置
	appConfig, err := buildConfigFromCLI(c, fc)
	if err != nil {
		return cli.Exit(fmt.Sprintf("错误: %v", err), 1)
	}

	// 验证配置
	if err := validateConfig(appConfig); err != nil {
		return cli.Exit(fmt.Sprintf("配置验证失败: %v\n使用方法: %s [选项] <曲线...>", err, AppName), 1)
	}

	// 终端界面占用标准输出，日志写入文件
	cleanup, err := logging.Setup(appConfig.LogFile)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer cleanup()

	// 显示运行配置
	printRunningConfig(appConfig)

	fmt.Println("\n正在初始化采样源...")

	sourceInstance, err := source.New(appConfig.Traces, appConfig.SourceConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("无法创建采样源: %v", err), 1)
	}

	fmt.Println("\n正在启动TUI界面...")

	// 显示使用说明
	printUsageInstructions()

	tuiInstance, err := tui.NewTUI(sourceInstance, appConfig.Charts, appConfig.TUIConfig, appConfig.GestureConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("无法创建TUI: %v", err), 1)
	}

	// 启动TUI界面 - 这会阻塞直到用户退出
	if err := tuiInstance.Run(); err != nil {
		return cli.Exit(fmt.Sprintf("TUI运行出错: %v", err), 1)
	}

	fmt.Println("\n程序已退出")
	return nil
}

// printRunningConfig 打印运行配置信息
func printRunningConfig(config *AppConfig) {
	fmt.Printf("图表: %s\n", describeCharts(config.Charts))
	fmt.Printf("采样间隔: %v\n", config.SourceConfig.Interval)
	fmt.Printf("时间窗口: %v\n", config.TUIConfig.WindowSpan)
	fmt.Printf("缓冲区大小: %d\n", config.TUIConfig.MaxHistorySize)
	if config.TUIConfig.StatePath != "" {
		fmt.Printf("状态文件: %s\n", config.TUIConfig.StatePath)
	}
}
