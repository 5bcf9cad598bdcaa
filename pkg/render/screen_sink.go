package render

import (
	"bytes"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
)

// ScreenSink 绘制到 ebiten 图像（通常是窗口的 screen）
//
// 字体源在多帧之间复用，避免每帧重新解析字体文件。
type ScreenSink struct {
	dst *ebiten.Image
	log logrus.FieldLogger

	sources map[*Font]*text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace

	// 用于 DrawTriangles 的 1x1 白色纹理
	whiteSubImage *ebiten.Image

	// 重用的渲染对象（避免每帧分配）
	textDrawOpts text.DrawOptions
	vertices     []ebiten.Vertex
}

type faceKey struct {
	font *Font
	size float64
}

// NewScreenSink 创建 ebiten 绘图目标
func NewScreenSink(log logrus.FieldLogger) *ScreenSink {
	return &ScreenSink{
		log:      log,
		sources:  make(map[*Font]*text.GoTextFaceSource),
		faces:    make(map[faceKey]*text.GoTextFace),
		vertices: make([]ebiten.Vertex, 4),
	}
}

// SetTarget 设置本帧的绘制目标
func (s *ScreenSink) SetTarget(dst *ebiten.Image) {
	s.dst = dst
}

func (s *ScreenSink) Clear(c color.Color) {
	s.dst.Fill(c)
}

func (s *ScreenSink) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, true)
}

func (s *ScreenSink) StrokeRect(x, y, w, h, width float64, c color.Color) {
	vector.StrokeRect(s.dst, float32(x), float32(y), float32(w), float32(h), float32(width), c, true)
}

func (s *ScreenSink) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	vector.StrokeLine(s.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}

// FillQuad 用两个三角形填充四边形
func (s *ScreenSink) FillQuad(q Quad, c color.Color) {
	if s.whiteSubImage == nil {
		white := ebiten.NewImage(3, 3)
		white.Fill(color.White)
		s.whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	r, g, b, a := c.RGBA()
	for i, p := range q {
		s.vertices[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(r) / 0xffff,
			ColorG: float32(g) / 0xffff,
			ColorB: float32(b) / 0xffff,
			ColorA: float32(a) / 0xffff,
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	s.dst.DrawTriangles(s.vertices, []uint16{0, 1, 2, 0, 2, 3}, s.whiteSubImage, op)
}

func (s *ScreenSink) DrawText(str string, font *Font, size, cx, cy float64, c color.Color) {
	face := s.face(font, size)
	if face == nil {
		return
	}

	s.textDrawOpts.GeoM.Reset()
	s.textDrawOpts.GeoM.Translate(cx, cy)
	s.textDrawOpts.ColorScale.Reset()
	s.textDrawOpts.ColorScale.ScaleWithColor(c)
	s.textDrawOpts.PrimaryAlign = text.AlignCenter
	s.textDrawOpts.SecondaryAlign = text.AlignCenter
	text.Draw(s.dst, str, face, &s.textDrawOpts)
}

// face 返回指定字号的字体，首次使用时解析字体数据
func (s *ScreenSink) face(font *Font, size float64) *text.GoTextFace {
	key := faceKey{font: font, size: size}
	if f, ok := s.faces[key]; ok {
		return f
	}

	src, ok := s.sources[font]
	if !ok {
		var err error
		src, err = text.NewGoTextFaceSource(bytes.NewReader(font.Data))
		if err != nil {
			s.log.WithError(err).WithField("font", font.Family).Warn("无法创建字体源，使用内置字体")
			src, err = text.NewGoTextFaceSource(bytes.NewReader(DefaultTextFont().Data))
			if err != nil {
				s.log.WithError(err).Error("内置字体加载失败")
				return nil
			}
		}
		s.sources[font] = src
	}

	f := &text.GoTextFace{
		Source:    src,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	s.faces[key] = f
	return f
}
