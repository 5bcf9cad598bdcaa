// cmd/gridrender/main.go
// 将网格 JSON 文档渲染为 PNG 和/或 SVG
//
// 用法：
//
//	go run ./cmd/gridrender --in=grid.json --out=out/minesweeper-grid --format=both
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/document"
	"github.com/decker502/minegrid/pkg/logger"
	"github.com/decker502/minegrid/pkg/render"
)

var (
	inPath     = flag.String("in", "", "输入 JSON 文档路径（- 表示标准输入）")
	outPath    = flag.String("out", "minesweeper-grid", "输出文件路径（不含扩展名）")
	format     = flag.String("format", "both", "输出格式：png | svg | both")
	width      = flag.Float64("width", 0, "画布宽度（覆盖配置）")
	scale      = flag.Float64("scale", 0, "PNG 像素密度（覆盖配置）")
	reveal     = flag.Bool("reveal", true, "在盖住的格子上显示炸弹")
	configPath = flag.String("config", "editor.yaml", "编辑器配置文件路径")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	log, err := logger.New(logger.Config{Verbose: *verbose})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(log); err != nil {
		log.WithError(err).Fatal("render failed")
	}
}

func run(log *logrus.Logger) error {
	formats, err := parseFormat(*format)
	if err != nil {
		return err
	}
	if *inPath == "" {
		return fmt.Errorf("--in is required")
	}

	cfg, err := config.LoadEditorConfig(*configPath)
	if err != nil {
		return err
	}
	if *width > 0 {
		cfg.CanvasWidth = *width
	}
	if *scale > 0 {
		cfg.ExportScale = *scale
	}

	doc, skipped, err := readDocument(*inPath)
	if err != nil {
		return err
	}
	g, err := doc.Grid()
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Warn("malformed coordinates skipped")
	}

	textFont, bombFont, err := render.LoadConfiguredFonts(cfg.Fonts)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.NewTheme(cfg))
	l := config.CalculateLayout(g.Cols(), g.Rows(), cfg.CanvasWidth)
	opts := render.Options{
		RevealBombs: *reveal,
		BombCount:   g.BombCount(),
		TextFont:    textFont,
		BombFont:    bombFont,
	}

	if dir := filepath.Dir(*outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	for _, f := range formats {
		path := *outPath + "." + f
		err := writeFile(path, func(w io.Writer) error {
			if f == "png" {
				return renderer.WritePNG(w, g, l, opts, cfg.ExportScale)
			}
			return renderer.WriteSVG(w, g, l, opts)
		})
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"path":  path,
			"cols":  g.Cols(),
			"rows":  g.Rows(),
			"bombs": g.BombCount(),
		}).Info("rendered")
	}
	return nil
}

// parseFormat 解析 --format 参数
func parseFormat(s string) ([]string, error) {
	switch strings.ToLower(s) {
	case "png":
		return []string{"png"}, nil
	case "svg":
		return []string{"svg"}, nil
	case "both", "":
		return []string{"png", "svg"}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want png, svg or both)", s)
	}
}

func readDocument(path string) (document.Document, int, error) {
	if path == "-" {
		return document.Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return document.Document{}, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return document.Decode(f)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
