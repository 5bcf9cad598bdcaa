package render

import (
	"strconv"

	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/grid"
)

// 格子内部绘制比例（相对于格子边长）
const (
	tileInsetRatio   = 0.15 // 瓦片背面内框缩进
	numberSizeRatio  = 0.8  // 数字字号
	bombSizeRatio    = 1.2  // 炸弹字形字号
	numberPatchRatio = 0.12 // 数字背景块缩进
	counterBoxRatio  = 0.75 // 炸弹计数框边长 / 信息栏高度
)

// Options 单次渲染的参数
type Options struct {
	RevealBombs bool // 是否在盖住的格子上显示炸弹
	BombCount   int  // 顶部显示的炸弹数量

	TextFont *Font // 数字和计数字体
	BombFont *Font // 炸弹字形字体

	// OriginX, OriginY 整个画面的偏移量
	OriginX, OriginY float64
}

// Renderer 网格渲染器
//
// 只读取网格，不修改任何状态，输出全部写入 Sink。
type Renderer struct {
	Theme Theme
}

// NewRenderer 创建渲染器
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{Theme: theme}
}

// Render 绘制完整画面：背景、顶部信息栏、炸弹计数和全部格子
//
// 参数：
//   - sink: 绘图目标
//   - g: 网格模型
//   - l: 与网格尺寸一致的布局
//   - opts: 渲染选项
func (r *Renderer) Render(sink Sink, g *grid.Grid, l config.Layout, opts Options) {
	th := r.Theme
	if opts.TextFont == nil {
		opts.TextFont = DefaultTextFont()
	}
	if opts.BombFont == nil {
		opts.BombFont = DefaultBombFont()
	}

	sink.Clear(th.Background)

	// 每次渲染只计算一次邻接数
	numbers := g.Adjacency()

	r.drawTopBar(sink, l, opts)

	g.Each(func(x, y int, cell grid.Cell) {
		px, py := l.CellOrigin(x, y)
		px += opts.OriginX
		py += opts.OriginY

		if cell.State == grid.Hidden {
			if opts.RevealBombs && cell.IsBomb {
				r.drawBomb(sink, px, py, l.CellSize, opts.BombFont)
			} else {
				r.drawTileBack(sink, px, py, l.CellSize)
			}
			return
		}

		r.drawOpenCell(sink, px, py, l.CellSize, cell.IsGray, numbers[y][x], opts.TextFont)
	})
}

// drawTopBar 绘制顶部信息栏和炸弹计数框
func (r *Renderer) drawTopBar(sink Sink, l config.Layout, opts Options) {
	th := r.Theme
	ox, oy := opts.OriginX, opts.OriginY

	sink.StrokeRect(ox+l.Padding, oy+l.Padding, l.GridWidth, l.TopBarHeight, th.LineWidth, th.Line)

	boxSize := l.TopBarHeight * counterBoxRatio
	sink.StrokeRect(ox+l.Padding*1.25, oy+l.Padding*1.25, boxSize, boxSize, th.LineWidth, th.Line)
	sink.DrawText(
		strconv.Itoa(opts.BombCount),
		opts.TextFont,
		th.CounterFontSize,
		ox+l.Padding+boxSize/2,
		oy+l.Padding/2+l.TopBarHeight/2,
		th.Text,
	)
}

// drawOpenCell 绘制翻开的格子：外框、可选灰色填充、非零数字
func (r *Renderer) drawOpenCell(sink Sink, x, y, size float64, gray bool, n int, font *Font) {
	th := r.Theme
	bg := th.Background
	if gray {
		bg = th.Gray
		sink.FillRect(x, y, size, size, th.Gray)
	}
	sink.StrokeRect(x, y, size, size, th.LineWidth, th.Line)

	if n <= 0 {
		return
	}

	// 数字下方垫一块背景，保证可读
	inset := size * numberPatchRatio
	sink.FillRect(x+inset, y+inset, size-2*inset, size-2*inset, bg)
	sink.DrawText(strconv.Itoa(n), font, size*numberSizeRatio, x+size/2, y+size/2, th.Text)
}

// drawTileBack 绘制瓦片背面：填充、四个斜面、内框和四角连线
func (r *Renderer) drawTileBack(sink Sink, x, y, size float64) {
	th := r.Theme
	inset := size * tileInsetRatio
	small := size - 2*inset

	sink.FillRect(x, y, size, size, th.TileFill)

	outer := [4]Point{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}}
	inner := [4]Point{{x + inset, y + inset}, {x + size - inset, y + inset}, {x + size - inset, y + size - inset}, {x + inset, y + size - inset}}

	// 上、左为亮面，右、下为暗面
	sink.FillQuad(Quad{outer[0], outer[1], inner[1], inner[0]}, th.BevelLight)
	sink.FillQuad(Quad{outer[3], outer[0], inner[0], inner[3]}, th.BevelLight)
	sink.FillQuad(Quad{outer[1], outer[2], inner[2], inner[1]}, th.BevelDark)
	sink.FillQuad(Quad{outer[2], outer[3], inner[3], inner[2]}, th.BevelDark)

	sink.StrokeRect(x, y, size, size, th.LineWidth, th.TileLine)
	sink.StrokeRect(x+inset, y+inset, small, small, th.LineWidth, th.TileLine)
	for i := range outer {
		sink.StrokeLine(outer[i].X, outer[i].Y, inner[i].X, inner[i].Y, th.LineWidth, th.TileLine)
	}
}

// drawBomb 绘制显示出来的炸弹：外框加炸弹字形
func (r *Renderer) drawBomb(sink Sink, x, y, size float64, font *Font) {
	th := r.Theme
	sink.StrokeRect(x, y, size, size, th.LineWidth, th.Line)
	sink.DrawText(th.BombGlyph, font, size*bombSizeRatio, x+size/2, y+size/2, th.Bomb)
}
