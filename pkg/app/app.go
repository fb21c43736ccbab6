// Package app 提供演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/caaaan/springbox/pkg/config"
	"github.com/caaaan/springbox/pkg/game"
	"github.com/caaaan/springbox/pkg/gate"
	"github.com/caaaan/springbox/pkg/scenes"
	"github.com/caaaan/springbox/pkg/utils"
)

// autosaveTicks 移动端没有退出回调，按固定间隔保存设置
const autosaveTicks = 300

// AppName gdata 存储使用的应用名
const AppName = "springbox"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 演示配置文件路径，为空时使用嵌入的 data/demo.yaml
	ConfigPath string
	// Force 启动时打开强制拖拽开关
	Force bool
	// Mute 关闭音效
	Mute bool
	// Ephemeral 不读写持久化设置
	Ephemeral bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.DemoConfig
	session      *game.Session
	sceneManager *game.SceneManager
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	mobile bool
	ticks  int
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	demoConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	settings := openSettings(cfg.Ephemeral)
	if cfg.Force {
		settings.SetForceDraggable(true)
	}
	if cfg.Mute {
		settings.SetSoundEnabled(false)
	}

	session := game.OpenSession(gate.SystemClock{}, demoConfig.GateOptions(), settings)

	// 初始化音频上下文
	audioContext := audio.NewContext(game.SampleRate)
	session.SetAudio(game.NewAudioManager(audioContext, settings))
	log.Printf("[App] AudioManager initialized")

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		if name != scenes.DemoSceneName {
			return nil
		}
		return scenes.NewDemoScene(demoConfig, session)
	})
	if !sceneManager.Load(scenes.DemoSceneName) {
		session.Close()
		return nil, fmt.Errorf("场景创建失败: %s", scenes.DemoSceneName)
	}

	return &App{
		cfg:          demoConfig,
		session:      session,
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
		mobile:       utils.IsMobile(),
	}, nil
}

func loadConfig(path string) (*config.DemoConfig, error) {
	if path == "" {
		cfg, err := config.LoadEmbeddedDemoConfig()
		if err != nil {
			return nil, fmt.Errorf("演示配置加载失败: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadDemoConfig(path)
	if err != nil {
		return nil, fmt.Errorf("演示配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载演示配置: %s (%d elements)", path, len(cfg.Elements))
	return cfg, nil
}

// openSettings 打开 gdata 存储；失败时退回仅内存的设置
func openSettings(ephemeral bool) *game.SettingsManager {
	if ephemeral {
		return game.NewSettingsManager(nil)
	}
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	manager, err := game.OpenStorage(AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (settings will not persist)", err)
		return game.NewSettingsManager(nil)
	}
	return game.NewSettingsManager(manager)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	if a.mobile {
		a.ticks++
		if a.ticks%autosaveTicks == 0 {
			a.sceneManager.SaveCurrent()
		}
		a.sceneManager.Update(deltaTime)
		return nil
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// R 重建页面；C 清除保存的位置和锁存状态后重建
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.sceneManager.Reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.ClearLayout()
	}
	// M 切换音效
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s := a.session.Settings()
		s.SetSoundEnabled(!s.GetSettings().SoundEnabled)
	}

	a.sceneManager.Update(deltaTime)
	return nil
}

// ClearLayout 清除保存的位置和锁存状态并重建页面
func (a *App) ClearLayout() {
	a.session.Settings().ClearLayout()
	a.sceneManager.Reload()
	log.Printf("[App] Layout cleared")
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// WindowSize 返回配置的窗口尺寸和标题
func (a *App) WindowSize() (int, int, string) {
	return a.cfg.Window.Width, a.cfg.Window.Height, a.cfg.Window.Title
}

// Shutdown 保存设置并关闭会话
func (a *App) Shutdown() {
	if !a.sceneManager.SaveCurrent() {
		log.Printf("[App] Warning: failed to save on exit")
	}
	a.sceneManager.SwitchTo(nil)
	a.session.Close()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
