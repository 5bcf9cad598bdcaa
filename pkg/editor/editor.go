// Package editor 实现编辑器会话
//
// Editor 持有网格、当前画笔、炸弹显示开关、炸弹概率和随机源，
// 接收 input 包产生的命令并修改网格。窗口、导出和持久化都通过 Editor 访问网格，
// 不存在包级全局状态。
package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/document"
	"github.com/decker502/minegrid/pkg/grid"
	"github.com/decker502/minegrid/pkg/input"
)

var (
	// ErrNoExporter 未配置导出器时执行保存
	ErrNoExporter = errors.New("no exporter configured")
	// ErrPaintCommand 绘制命令必须通过 Paint 指定格子
	ErrPaintCommand = errors.New("paint command requires a cell")
)

// Editor 编辑器会话
type Editor struct {
	cfg *config.EditorConfig
	log logrus.FieldLogger

	grid        *grid.Grid
	layout      config.Layout
	canvasWidth float64

	brush      grid.Brush
	reveal     bool
	bombChance float64
	rng        grid.RNG

	exporter *Exporter
}

// Option 编辑器构造选项
type Option func(*Editor)

// WithRNG 指定随机源，测试中用于固定结果
func WithRNG(rng grid.RNG) Option {
	return func(e *Editor) { e.rng = rng }
}

// WithExporter 指定保存命令使用的导出器
func WithExporter(x *Exporter) Option {
	return func(e *Editor) { e.exporter = x }
}

// WithLogger 指定日志记录器
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Editor) { e.log = log }
}

// New 按配置创建编辑器，网格为 cfg.Cols × cfg.Rows 的空白网格
func New(cfg *config.EditorConfig, opts ...Option) *Editor {
	e := &Editor{
		cfg:         cfg,
		canvasWidth: cfg.CanvasWidth,
		brush:       grid.BrushNormal,
		reveal:      cfg.RevealBombs,
		bombChance:  roundChance(cfg.BombChance),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}
	e.log = e.log.WithField("component", "editor")

	e.replaceGrid(grid.New(cfg.Cols, cfg.Rows))
	return e
}

// Grid 返回当前网格，调用方只应读取
func (e *Editor) Grid() *grid.Grid { return e.grid }

// Layout 返回当前布局
func (e *Editor) Layout() config.Layout { return e.layout }

// Brush 返回当前画笔
func (e *Editor) Brush() grid.Brush { return e.brush }

// RevealBombs 是否在盖住的格子上显示炸弹
func (e *Editor) RevealBombs() bool { return e.reveal }

// BombChance 返回普通画笔埋炸弹的概率
func (e *Editor) BombChance() float64 { return e.bombChance }

// Config 返回编辑器配置
func (e *Editor) Config() *config.EditorConfig { return e.cfg }

// Paint 用当前画笔修改一个格子，实现 input.Painter
func (e *Editor) Paint(x, y int) bool {
	return e.Apply(input.PaintCommand(e.brush), x, y)
}

// Apply 执行格子绘制命令
//
// 返回：
//   - bool: 格子是否被修改；越界或非绘制命令返回 false
func (e *Editor) Apply(cmd input.Command, x, y int) bool {
	brush, ok := input.PaintBrush(cmd)
	if !ok {
		return false
	}
	if brush == grid.BrushGray && !e.cfg.Features.GrayBrush {
		return false
	}
	return e.grid.Toggle(x, y, brush, e.bombChance, e.rng)
}

// Dispatch 执行全局命令
//
// 参数：
//   - ctx: 保存命令使用的上下文
//   - cmd: 命令；绘制命令返回 ErrPaintCommand
//
// 返回：
//   - error: 保存失败或命令不适用
func (e *Editor) Dispatch(ctx context.Context, cmd input.Command) error {
	switch cmd {
	case input.CmdRerollUp:
		e.reroll(config.BombChanceStep)
	case input.CmdRerollDown:
		e.reroll(-config.BombChanceStep)
	case input.CmdToggleReveal:
		e.reveal = !e.reveal
	case input.CmdToggleBombBrush:
		e.toggleBrush(grid.BrushBomb)
	case input.CmdToggleGrayBrush:
		if !e.cfg.Features.GrayBrush {
			e.log.Debug("gray brush disabled")
			return nil
		}
		e.toggleBrush(grid.BrushGray)
	case input.CmdClear:
		e.grid.Clear()
	case input.CmdHideAll:
		e.grid.HideAll()
	case input.CmdSave:
		return e.Save(ctx)
	case input.CmdNone:
		return nil
	default:
		if cmd.IsPaint() {
			return fmt.Errorf("%w: %s", ErrPaintCommand, cmd)
		}
		return fmt.Errorf("unknown command %d", cmd)
	}

	e.log.WithFields(logrus.Fields{
		"command":    cmd.String(),
		"brush":      e.brush.String(),
		"reveal":     e.reveal,
		"bombChance": e.bombChance,
		"bombs":      e.grid.BombCount(),
	}).Debug("command applied")
	return nil
}

// Save 导出当前网格
func (e *Editor) Save(ctx context.Context) error {
	if e.exporter == nil {
		return ErrNoExporter
	}
	paths, err := e.exporter.Export(ctx, e.Snapshot())
	if err != nil {
		return err
	}
	e.log.WithField("files", paths).Info("grid saved")
	return nil
}

// Snapshot 返回当前网格的不可变副本
func (e *Editor) Snapshot() Snapshot {
	return Snapshot{
		Document:    document.FromGrid(e.grid),
		RevealBombs: e.reveal,
		CanvasWidth: e.canvasWidth,
	}
}

// Document 返回当前网格的文档表示
func (e *Editor) Document() document.Document {
	return document.FromGrid(e.grid)
}

// Resize 以新尺寸重建空白网格，原有内容全部丢弃
func (e *Editor) Resize(cols, rows int) error {
	if err := (document.Document{Cols: cols, Rows: rows}).Validate(); err != nil {
		return err
	}
	e.replaceGrid(grid.New(cols, rows))
	return nil
}

// SetCanvasWidth 修改画布宽度并重新计算布局
func (e *Editor) SetCanvasWidth(width float64) {
	if width <= 0 {
		return
	}
	e.canvasWidth = width
	e.layout = config.CalculateLayout(e.grid.Cols(), e.grid.Rows(), width)
}

// LoadDocument 解析 JSON 文档并替换当前网格
//
// 非文档数据返回错误且保持当前网格不变；格式错误的坐标条目被跳过。
func (e *Editor) LoadDocument(data []byte) error {
	doc, skipped, err := document.Parse(data)
	if err != nil {
		return err
	}
	g, err := doc.Grid()
	if err != nil {
		return err
	}
	e.replaceGrid(g)

	e.log.WithFields(logrus.Fields{
		"cols":    g.Cols(),
		"rows":    g.Rows(),
		"bombs":   g.BombCount(),
		"skipped": skipped,
	}).Info("document loaded")
	return nil
}

// Preferences 返回需要持久化的用户偏好
func (e *Editor) Preferences() Preferences {
	return Preferences{
		BombChance:  e.bombChance,
		RevealBombs: e.reveal,
		Brush:       e.brush.String(),
	}
}

// ApplyPreferences 恢复用户偏好；灰色画笔在功能关闭时回退为普通画笔
func (e *Editor) ApplyPreferences(p Preferences) {
	e.bombChance = roundChance(p.BombChance)
	e.reveal = p.RevealBombs
	e.brush = grid.ParseBrush(p.Brush)
	if e.brush == grid.BrushGray && !e.cfg.Features.GrayBrush {
		e.brush = grid.BrushNormal
	}
}

func (e *Editor) replaceGrid(g *grid.Grid) {
	e.grid = g
	e.layout = config.CalculateLayout(g.Cols(), g.Rows(), e.canvasWidth)
}

func (e *Editor) toggleBrush(b grid.Brush) {
	if e.brush == b {
		e.brush = grid.BrushNormal
	} else {
		e.brush = b
	}
}

func (e *Editor) reroll(delta float64) {
	e.bombChance = roundChance(e.bombChance + delta)
	e.grid.RerollBombs(e.bombChance, e.rng)
}

// roundChance 限制在 [0, 1] 并保留一位小数，避免反复加减产生浮点误差
func roundChance(p float64) float64 {
	p = math.Round(p*10) / 10
	return math.Max(0, math.Min(1, p))
}
