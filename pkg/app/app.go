// Package app 提供编辑器窗口的 ebiten.Game 实现
//
// 每个 tick：处理拖入的文件、指针事件和按键命令；每帧用 ScreenSink 重绘整个网格。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"context"
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/decker502/minegrid/pkg/editor"
	"github.com/decker502/minegrid/pkg/input"
	"github.com/decker502/minegrid/pkg/render"
	"github.com/decker502/minegrid/pkg/utils"
)

// WindowTitle 窗口标题
const WindowTitle = "minegrid"

// Config 定义应用启动配置
type Config struct {
	// Editor 编辑器会话
	Editor *editor.Editor
	// Settings 偏好持久化，可为 nil
	Settings *editor.SettingsManager
	// Renderer 渲染器
	Renderer *render.Renderer
	// TextFont, BombFont 屏幕绘制使用的字体，可为 nil
	TextFont, BombFont *render.Font
	// Log 日志记录器
	Log logrus.FieldLogger
}

// App 编辑器应用，实现 ebiten.Game 接口
type App struct {
	editor     *editor.Editor
	settings   *editor.SettingsManager
	renderer   *render.Renderer
	sink       *render.ScreenSink
	controller *input.Controller
	pointer    *utils.PointerTracker
	textFont   *render.Font
	bombFont   *render.Font
	log        logrus.FieldLogger

	keyTokens []string
	// 布局变化后需要调整窗口大小
	pendingWindowResize bool
	// 最近一次 Layout 收到的窗口宽度
	outsideWidth int
}

// NewApp 创建编辑器应用
func NewApp(cfg Config) (*App, error) {
	if cfg.Editor == nil {
		return nil, errors.New("app requires an editor")
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.NewRenderer(render.NewTheme(cfg.Editor.Config()))
	}

	a := &App{
		editor:   cfg.Editor,
		settings: cfg.Settings,
		renderer: renderer,
		sink:     render.NewScreenSink(log),
		pointer:  utils.NewPointerTracker(),
		textFont: cfg.TextFont,
		bombFont: cfg.BombFont,
		log:      log.WithField("component", "app"),
	}
	a.controller = input.NewController(a.editor, a.editor.Layout())
	return a, nil
}

// WindowSize 返回当前布局对应的窗口尺寸
func (a *App) WindowSize() (int, int) {
	l := a.editor.Layout()
	return l.PixelWidth(), l.PixelHeight()
}

// Update 处理输入
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.pendingWindowResize {
		ebiten.SetWindowSize(a.WindowSize())
		a.pendingWindowResize = false
	} else {
		a.followWindowWidth()
	}

	a.handleDroppedFiles()
	a.handlePointer()
	a.handleKeys()
	return nil
}

func (a *App) handleDroppedFiles() {
	name, data, ok, err := utils.ReadDroppedJSON()
	if !ok {
		return
	}
	if err != nil {
		a.log.WithError(err).Warn("ignoring dropped files")
		return
	}
	if err := a.editor.LoadDocument(data); err != nil {
		a.log.WithError(err).WithField("file", name).Warn("ignoring dropped file")
		return
	}
	a.layoutChanged()
}

func (a *App) handlePointer() {
	ev := a.pointer.Poll()
	px, py := float64(ev.X), float64(ev.Y)

	switch ev.Phase {
	case utils.PointerDown:
		a.controller.PointerDown(px, py)
	case utils.PointerMove:
		a.controller.PointerMove(px, py)
	case utils.PointerUp:
		a.controller.PointerUp()
	}
}

func (a *App) handleKeys() {
	a.keyTokens = utils.AppendKeyTokens(a.keyTokens[:0])
	// 小键盘 +/- 不产生字符输入
	if inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		a.keyTokens = append(a.keyTokens, "+")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		a.keyTokens = append(a.keyTokens, "-")
	}

	for _, token := range a.keyTokens {
		cmd, ok := input.KeyCommand(token)
		if !ok {
			continue
		}
		if err := a.editor.Dispatch(context.Background(), cmd); err != nil {
			a.log.WithError(err).WithField("command", cmd.String()).Error("command failed")
			continue
		}
		if cmd == input.CmdSave {
			a.persist()
		}
	}
}

// followWindowWidth 用户拖动窗口改变宽度后，按新宽度重新计算布局
func (a *App) followWindowWidth() {
	w := a.outsideWidth
	if w <= 0 || w == a.editor.Layout().PixelWidth() {
		return
	}
	a.editor.SetCanvasWidth(float64(w))
	a.layoutChanged()
}

// layoutChanged 网格尺寸变化后同步控制器和窗口
func (a *App) layoutChanged() {
	a.controller.SetLayout(a.editor.Layout())
	a.pendingWindowResize = true
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sink.SetTarget(screen)
	a.renderer.Render(a.sink, a.editor.Grid(), a.editor.Layout(), render.Options{
		RevealBombs: a.editor.RevealBombs(),
		BombCount:   a.editor.Grid().BombCount(),
		TextFont:    a.textFont,
		BombFont:    a.bombFont,
	})
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 窗口比画布大时两侧填充背景色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.White)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑画布尺寸，与网格布局一致
// 窗口宽度在下一次 Update 中生效
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.outsideWidth = outsideWidth
	return a.WindowSize()
}

// Shutdown 保存偏好和当前文档
func (a *App) Shutdown() {
	a.persist()
}

func (a *App) persist() {
	if a.settings == nil {
		return
	}
	a.settings.SetPreferences(a.editor.Preferences())
	if err := a.settings.Save(); err != nil {
		a.log.WithError(err).Warn("failed to save preferences")
	}

	data, err := a.editor.Document().Marshal()
	if err != nil {
		a.log.WithError(err).Warn("failed to encode document")
		return
	}
	if err := a.settings.SaveDocument(data); err != nil {
		a.log.WithError(err).Warn("failed to save last document")
	}
}

// Editor 返回编辑器会话
func (a *App) Editor() *editor.Editor {
	return a.editor
}
