package input

import (
	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/grid"
)

// Painter 接收格子绘制请求，返回格子是否被修改
type Painter interface {
	Paint(x, y int) bool
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateDragging 指针按下中
	DragStateDragging
)

// Controller 指针输入控制器
//
// 一次拖拽（按下到抬起）内，同一格子最多交给 Painter 一次。
// 已访问集合在按下和抬起时清空。
type Controller struct {
	painter Painter
	layout  config.Layout
	state   DragState
	toggled map[grid.Point]struct{}
}

// NewController 创建指针控制器
func NewController(painter Painter, l config.Layout) *Controller {
	return &Controller{
		painter: painter,
		layout:  l,
		toggled: make(map[grid.Point]struct{}),
	}
}

// SetLayout 网格尺寸或画布变化后更新布局，同时结束当前拖拽
func (c *Controller) SetLayout(l config.Layout) {
	c.layout = l
	c.reset()
}

// Layout 返回当前布局
func (c *Controller) Layout() config.Layout {
	return c.layout
}

// State 返回当前拖拽状态
func (c *Controller) State() DragState {
	return c.state
}

// IsDragging 指针是否处于按下状态
func (c *Controller) IsDragging() bool {
	return c.state == DragStateDragging
}

// PointerDown 开始新的拖拽并处理按下位置
//
// 返回：
//   - bool: 是否有格子被修改
func (c *Controller) PointerDown(px, py float64) bool {
	c.reset()
	c.state = DragStateDragging
	return c.apply(px, py)
}

// PointerMove 指针移动；仅在按下状态下生效
func (c *Controller) PointerMove(px, py float64) bool {
	if c.state != DragStateDragging {
		return false
	}
	return c.apply(px, py)
}

// PointerUp 结束拖拽
func (c *Controller) PointerUp() {
	c.reset()
}

func (c *Controller) apply(px, py float64) bool {
	x, y, ok := c.layout.CellAt(px, py)
	if !ok {
		return false
	}
	p := grid.Point{X: x, Y: y}
	if _, seen := c.toggled[p]; seen {
		return false
	}
	c.toggled[p] = struct{}{}
	return c.painter.Paint(x, y)
}

func (c *Controller) reset() {
	c.state = DragStateNone
	clear(c.toggled)
}
