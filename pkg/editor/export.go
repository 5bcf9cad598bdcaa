package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/document"
	"github.com/decker502/minegrid/pkg/render"
)

// 保存时写出的文件名
const (
	DocumentFileName = "grid.json"
	PNGFileName      = "minesweeper-grid.png"
	SVGFileName      = "minesweeper-grid.svg"
)

// Snapshot 导出时使用的网格快照
type Snapshot struct {
	Document    document.Document
	RevealBombs bool
	CanvasWidth float64
}

// Exporter 将网格快照写为 JSON、PNG 和 SVG 三个文件
//
// 三个文件并发生成，任一失败时返回第一个错误。
type Exporter struct {
	dir      string
	scale    float64
	renderer *render.Renderer
	textFont *render.Font
	bombFont *render.Font
	log      logrus.FieldLogger
}

// NewExporter 创建导出器
//
// 参数：
//   - dir: 输出目录，不存在时自动创建
//   - scale: PNG 像素密度
//   - renderer: 渲染器
//   - textFont, bombFont: 字体，可为 nil（使用内置字体）
//   - log: 日志记录器
func NewExporter(dir string, scale float64, renderer *render.Renderer, textFont, bombFont *render.Font, log logrus.FieldLogger) *Exporter {
	if dir == "" {
		dir = config.DefaultOutputDir
	}
	return &Exporter{
		dir:      dir,
		scale:    scale,
		renderer: renderer,
		textFont: textFont,
		bombFont: bombFont,
		log:      log.WithField("component", "exporter"),
	}
}

// Dir 返回输出目录
func (x *Exporter) Dir() string { return x.dir }

// Export 写出快照
//
// 返回：
//   - []string: 写出的文件路径（JSON、PNG、SVG 顺序）
//   - error: 任一文件写出失败
func (x *Exporter) Export(ctx context.Context, snap Snapshot) ([]string, error) {
	g, err := snap.Document.Grid()
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", x.dir, err)
	}

	l := config.CalculateLayout(g.Cols(), g.Rows(), snap.CanvasWidth)
	opts := render.Options{
		RevealBombs: snap.RevealBombs,
		BombCount:   g.BombCount(),
		TextFont:    x.textFont,
		BombFont:    x.bombFont,
	}

	paths := []string{
		filepath.Join(x.dir, DocumentFileName),
		filepath.Join(x.dir, PNGFileName),
		filepath.Join(x.dir, SVGFileName),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return x.writeFile(ctx, paths[0], snap.Document.Encode)
	})
	eg.Go(func() error {
		return x.writeFile(ctx, paths[1], func(w io.Writer) error {
			return x.renderer.WritePNG(w, g, l, opts, x.scale)
		})
	})
	eg.Go(func() error {
		return x.writeFile(ctx, paths[2], func(w io.Writer) error {
			return x.renderer.WriteSVG(w, g, l, opts)
		})
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// writeFile 先写入临时文件再重命名，避免留下半个文件
func (x *Exporter) writeFile(ctx context.Context, path string, write func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}

	x.log.WithField("path", path).Debug("file written")
	return nil
}
