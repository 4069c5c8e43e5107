package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"
)

// createCliApp 创建CLI应用实例
func createCliApp() *cli.App {
	app := &cli.App{
		Name:    AppName,
		Version: AppVersion,
		Usage:   AppDesc,
		Flags:   createCliFlags(),
		Action:  runApp,
		Before: func(c *cli.Context) error {
			// 显示启动信息
			fmt.Printf("正在启动 %s v%s...\n", AppName, AppVersion)
			return nil
		},
		ArgsUsage: "<曲线...>",
	}

	// 添加版本子命令
	app.Commands = createCommands()

	return app
}

// createCliFlags 创建CLI参数定义
// 默认值由配置文件和内置默认配置决定，这里只声明显式设置时覆盖的参数
func createCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "TOML配置文件路径（默认 ~/.config/gotrend/config.toml）",
			EnvVars: []string{"GOTREND_CONFIG"},
		},
		&cli.StringSliceFlag{
			Name:    "chart",
			Aliases: []string{"C"},
			Usage:   "图表定义，格式 名称=曲线1:曲线2，可重复",
		},
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"n"},
			Value:   200 * time.Millisecond,
			Usage:   "采样间隔 (例如: 100ms, 1s)",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "随机游走种子",
		},
		&cli.DurationFlag{
			Name:    "span",
			Aliases: []string{"s"},
			Value:   2 * time.Minute,
			Usage:   "实时跟随时的时间窗口长度",
		},
		&cli.IntFlag{
			Name:    "buffer",
			Aliases: []string{"b"},
			Value:   3000,
			Usage:   "每条曲线的历史缓冲区大小",
		},
		&cli.DurationFlag{
			Name:    "refresh-rate",
			Aliases: []string{"r"},
			Value:   200 * time.Millisecond,
			Usage:   "UI刷新频率 (例如: 100ms, 500ms)",
		},
		&cli.DurationFlag{
			Name:  "tap-delay",
			Value: 300 * time.Millisecond,
			Usage: "单击延迟，期间的第二次点击视为双击",
		},
		&cli.DurationFlag{
			Name:  "inactivity-delay",
			Value: 750 * time.Millisecond,
			Usage: "平移/缩放静止多久后最终提交",
		},
		&cli.BoolFlag{
			Name:  "no-pan",
			Usage: "禁用拖动平移，在图中拖动总是橡皮筋缩放",
		},
		&cli.BoolFlag{
			Name:  "per-trace",
			Usage: "每条曲线使用独立数值轴",
		},
		&cli.StringFlag{
			Name:  "state",
			Usage: "保存显示时间与缩放设置的文件",
		},
		&cli.StringFlag{
			Name:  "log",
			Usage: "日志文件，为空时不记录日志",
		},
	}
}

// createCommands 创建子命令
func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "显示详细版本信息",
			Action: func(c *cli.Context) error {
				fmt.Printf("%s v%s\n", AppName, AppVersion)
				fmt.Printf("描述: %s\n", AppDesc)
				fmt.Printf("系统: %s/%s\n", runtime.GOOS, runtime.GOARCH)
				fmt.Printf("运行时: %s\n", runtime.Version())
				return nil
			},
		},
	}
}
