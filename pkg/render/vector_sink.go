package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/decker502/minegrid/pkg/config"
)

// svgUnit svgo 只接受整数坐标，画布坐标乘以该系数后整体缩放回去
const svgUnit = 100

// VectorSink 输出 SVG 文档
//
// 用法：
//
//	sink := NewVectorSink(w, layout)
//	renderer.Render(sink, g, layout, opts)
//	sink.Close()
type VectorSink struct {
	canvas *svg.SVG
	width  float64
	height float64
}

// NewVectorSink 写出 SVG 头部并返回绘图目标
func NewVectorSink(w io.Writer, l config.Layout) *VectorSink {
	s := &VectorSink{
		canvas: svg.New(w),
		width:  l.CanvasWidth,
		height: l.CanvasHeight,
	}
	s.canvas.Start(l.PixelWidth(), l.PixelHeight())
	s.canvas.Gtransform(fmt.Sprintf("scale(%g)", 1.0/svgUnit))
	return s
}

// Close 写出 SVG 结尾
func (s *VectorSink) Close() {
	s.canvas.Gend()
	s.canvas.End()
}

func (s *VectorSink) Clear(c color.Color) {
	s.canvas.Rect(0, 0, u(s.width), u(s.height), fillStyle(c))
}

func (s *VectorSink) FillRect(x, y, w, h float64, c color.Color) {
	s.canvas.Rect(u(x), u(y), u(w), u(h), fillStyle(c))
}

func (s *VectorSink) StrokeRect(x, y, w, h, width float64, c color.Color) {
	s.canvas.Rect(u(x), u(y), u(w), u(h), strokeStyle(c, width))
}

func (s *VectorSink) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	s.canvas.Line(u(x1), u(y1), u(x2), u(y2), strokeStyle(c, width))
}

func (s *VectorSink) FillQuad(q Quad, c color.Color) {
	xs := make([]int, len(q))
	ys := make([]int, len(q))
	for i, p := range q {
		xs[i] = u(p.X)
		ys[i] = u(p.Y)
	}
	s.canvas.Polygon(xs, ys, fillStyle(c))
}

func (s *VectorSink) DrawText(str string, font *Font, size, cx, cy float64, c color.Color) {
	hex, opacity := svgColor(c)
	style := fmt.Sprintf(
		"text-anchor:middle;dominant-baseline:central;font-family:'%s';font-size:%d;fill:%s;fill-opacity:%g",
		font.Family, u(size), hex, opacity,
	)
	s.canvas.Text(u(cx), u(cy), str, style)
}

// u 画布坐标转换为 SVG 整数单位
func u(v float64) int {
	return int(math.Round(v * svgUnit))
}

func fillStyle(c color.Color) string {
	hex, opacity := svgColor(c)
	return fmt.Sprintf("fill:%s;fill-opacity:%g;stroke:none", hex, opacity)
}

func strokeStyle(c color.Color, width float64) string {
	hex, opacity := svgColor(c)
	return fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%g;stroke-width:%d", hex, opacity, u(width))
}

// svgColor 返回非预乘的 #rrggbb 和透明度
func svgColor(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), math.Round(float64(n.A)/255*1000) / 1000
}
