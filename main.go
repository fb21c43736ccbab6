// springbox 是一个弹簧回弹拖拽方块的演示：
// 连续点击方块解锁拖拽，松手后方块按弹簧参数弹回原位。
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"github.com/caaaan/springbox/pkg/app"
	"github.com/caaaan/springbox/pkg/embedded"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg app.Config

	flagSet := pflag.NewFlagSet("springbox", pflag.ContinueOnError)
	flagSet.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose logging")
	flagSet.StringVarP(&cfg.ConfigPath, "config", "c", "", "demo config file (default: embedded data/demo.yaml)")
	flagSet.BoolVar(&cfg.Force, "force", false, "start with Force Draggable on")
	flagSet.BoolVar(&cfg.Mute, "mute", false, "disable sound effects")
	flagSet.BoolVar(&cfg.Ephemeral, "ephemeral", false, "do not load or save settings")
	help := flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if *help {
		printHelp(flagSet)
		return nil
	}

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("初始化失败: %w", err)
	}
	defer gameApp.Shutdown()

	width, height, title := gameApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: springbox [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Keys: R reload, C clear saved layout, M toggle sound, F11 fullscreen\n\n")
	flagSet.PrintDefaults()
}
