package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/decker502/minegrid/pkg/config"
)

// RasterSink 绘制到内存位图，用于 PNG 导出
//
// 画布坐标乘以 scale 得到像素坐标（对应原版 pixelDensity）。
type RasterSink struct {
	dc    *gg.Context
	scale float64
	faces map[faceKey]font.Face
}

// NewRasterSink 按布局和像素密度创建位图绘图目标
func NewRasterSink(l config.Layout, scale float64) *RasterSink {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(l.CanvasWidth * scale))
	h := int(math.Ceil(l.CanvasHeight * scale))
	return &RasterSink{
		dc:    gg.NewContext(w, h),
		scale: scale,
		faces: make(map[faceKey]font.Face),
	}
}

// Image 返回绘制结果
func (s *RasterSink) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG 以 PNG 格式写出绘制结果
func (s *RasterSink) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

func (s *RasterSink) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *RasterSink) FillRect(x, y, w, h float64, c color.Color) {
	k := s.scale
	s.dc.DrawRectangle(x*k, y*k, w*k, h*k)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *RasterSink) StrokeRect(x, y, w, h, width float64, c color.Color) {
	k := s.scale
	s.dc.DrawRectangle(x*k, y*k, w*k, h*k)
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width * k)
	s.dc.Stroke()
}

func (s *RasterSink) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	k := s.scale
	s.dc.DrawLine(x1*k, y1*k, x2*k, y2*k)
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width * k)
	s.dc.Stroke()
}

func (s *RasterSink) FillQuad(q Quad, c color.Color) {
	k := s.scale
	s.dc.MoveTo(q[0].X*k, q[0].Y*k)
	for _, p := range q[1:] {
		s.dc.LineTo(p.X*k, p.Y*k)
	}
	s.dc.ClosePath()
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *RasterSink) DrawText(str string, f *Font, size, cx, cy float64, c color.Color) {
	face, err := s.face(f, size)
	if err != nil {
		return
	}
	k := s.scale
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawStringAnchored(str, cx*k, cy*k, 0.5, 0.5)
}

// face 按字号缓存 truetype 字体；无法解析的字体（例如 CFF 轮廓的 OTF）退回内置字体
func (s *RasterSink) face(f *Font, size float64) (font.Face, error) {
	key := faceKey{font: f, size: size}
	if face, ok := s.faces[key]; ok {
		return face, nil
	}

	parsed, err := truetype.Parse(f.Data)
	if err != nil {
		parsed, err = truetype.Parse(DefaultTextFont().Data)
		if err != nil {
			return nil, err
		}
	}

	face := truetype.NewFace(parsed, &truetype.Options{Size: size * s.scale})
	s.faces[key] = face
	return face, nil
}
