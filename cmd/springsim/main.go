// springsim 离线模拟演示配置中每个元素松手后的弹簧回弹
//
// 用法：
//
//	go run ./cmd/springsim --config data/demo.yaml --offset 120
//
// 对每个元素输出角频率、阻尼比、回到静止位置所需的帧数和最大过冲。
package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/caaaan/springbox/pkg/config"
	"github.com/caaaan/springbox/pkg/drag"
	"github.com/caaaan/springbox/pkg/spring"
)

// result 单个元素的模拟结果
type result struct {
	Frames    int     // 到达静止的帧数，未收敛时为 -1
	Overshoot float64 // 越过静止位置的最大距离（像素）
}

// simulate 从 offset 处以零速度出发，按固定步长推进到静止
func simulate(p drag.SpringParams, offset drag.Vec2, dt float64, maxFrames int) result {
	a := spring.NewAnimator()
	a.Set(offset)
	a.AnimateTo(drag.Vec2{}, p)

	res := result{Frames: -1}
	for frame := 1; frame <= maxFrames; frame++ {
		a.Update(dt)
		v := a.Value()
		// 与初始偏移反向的分量即过冲
		if over := -(v.X*sign(offset.X) + v.Y*sign(offset.Y)); over > res.Overshoot {
			res.Overshoot = over
		}
		if a.AtRest() {
			res.Frames = frame
			break
		}
	}
	return res
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "springsim: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("springsim", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", config.DefaultDemoConfigPath, "演示配置文件路径")
	offset := flags.Float64P("offset", "o", 120, "松手时相对静止位置的水平偏移（像素）")
	tps := flags.Int("tps", 60, "每秒帧数")
	maxFrames := flags.Int("max-frames", 600, "最多模拟的帧数")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *tps <= 0 {
		return fmt.Errorf("tps must be positive, got %d", *tps)
	}

	cfg, err := config.LoadDemoConfig(*configPath)
	if err != nil {
		return err
	}

	dt := 1.0 / float64(*tps)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRELEASE\tOMEGA\tZETA\tFRAMES\tSECONDS\tOVERSHOOT")
	for _, el := range cfg.Elements {
		opts := el.DragOptions()
		freq, ratio := spring.Coefficients(opts.Spring)
		start := drag.Vec2{X: *offset * opts.Spring.Elastic}
		res := simulate(opts.Spring, start, dt, *maxFrames)

		frames, seconds := "-", "-"
		if res.Frames >= 0 {
			frames = fmt.Sprint(res.Frames)
			seconds = fmt.Sprintf("%.2f", float64(res.Frames)*dt)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\t%s\t%.1f\n",
			el.ID, el.Release, freq, ratio, frames, seconds, math.Max(res.Overshoot, 0))
	}
	return w.Flush()
}
