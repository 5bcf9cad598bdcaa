package render

import "image/color"

// OpKind 绘图原语类型
type OpKind int

const (
	OpClear OpKind = iota
	OpFillRect
	OpStrokeRect
	OpStrokeLine
	OpFillQuad
	OpText
)

// Op 一次绘图调用
type Op struct {
	Kind  OpKind
	X, Y  float64 // 矩形左上角、线段起点或文本中心
	W, H  float64 // 矩形尺寸
	Quad  Quad
	Text  string
	Font  *Font
	Size  float64
	Color color.Color
}

// Recorder 记录所有绘图调用的 Sink，用于测试和调试
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h, Size: width, Color: c})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, X: x1, Y: y1, W: x2 - x1, H: y2 - y1, Size: width, Color: c})
}

func (r *Recorder) FillQuad(q Quad, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillQuad, Quad: q, Color: c})
}

func (r *Recorder) DrawText(s string, font *Font, size, cx, cy float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: cx, Y: cy, Text: s, Font: font, Size: size, Color: c})
}

// Texts 返回所有绘制的文本
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count 返回指定类型的调用次数
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
