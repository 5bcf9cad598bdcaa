package render

import (
	"fmt"
	"io"

	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/grid"
)

// WritePNG 渲染网格并以 PNG 写出
//
// scale 为像素密度，<= 0 时按 1 处理。
func (r *Renderer) WritePNG(w io.Writer, g *grid.Grid, l config.Layout, opts Options, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	sink := NewRasterSink(l, scale)
	r.Render(sink, g, l, opts)
	if err := sink.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// WriteSVG 渲染网格并以 SVG 写出
func (r *Renderer) WriteSVG(w io.Writer, g *grid.Grid, l config.Layout, opts Options) error {
	ew := &errWriter{w: w}
	sink := NewVectorSink(ew, l)
	r.Render(sink, g, l, opts)
	sink.Close()
	if ew.err != nil {
		return fmt.Errorf("failed to write svg: %w", ew.err)
	}
	return nil
}

// errWriter 记录第一次写入错误，svgo 本身不返回错误
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
