// minegrid 扫雷风格网格图案编辑器
//
// 用法：
//
//	go run . --config=editor.yaml --cols=20 --rows=40 --load=grid.json
//
// 按键：s 保存，+/- 调整炸弹概率并重掷，r 显示/隐藏炸弹，b 炸弹画笔，
// g 灰色画笔，c 清空，h 全部盖住。拖入 JSON 文件即可加载。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"github.com/sirupsen/logrus"

	"github.com/decker502/minegrid/pkg/app"
	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/editor"
	"github.com/decker502/minegrid/pkg/logger"
	"github.com/decker502/minegrid/pkg/render"
)

// gdataAppName 偏好存储使用的应用名
const gdataAppName = "minegrid"

var (
	configPath = flag.String("config", "editor.yaml", "编辑器配置文件路径")
	cols       = flag.Int("cols", 0, "网格列数（覆盖配置）")
	rows       = flag.Int("rows", 0, "网格行数（覆盖配置）")
	width      = flag.Float64("width", 0, "画布宽度（覆盖配置）")
	loadPath   = flag.String("load", "", "启动时加载的 JSON 文档")
	outDir     = flag.String("out", "", "保存目录（覆盖配置）")
	verbose    = flag.Bool("verbose", false, "详细日志")
	logFile    = flag.String("log-file", "", "日志文件路径")
)

func main() {
	flag.Parse()

	log, err := logger.New(logger.Config{Verbose: *verbose, File: *logFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(log); err != nil {
		log.WithError(err).Fatal("minegrid exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.LoadEditorConfig(*configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	textFont, bombFont, err := render.LoadConfiguredFonts(cfg.Fonts)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(render.NewTheme(cfg))
	exporter := editor.NewExporter(cfg.OutputDir, cfg.ExportScale, renderer, textFont, bombFont, log)
	ed := editor.New(cfg, editor.WithLogger(log), editor.WithExporter(exporter))

	// gdata 初始化失败时降级为仅内存偏好
	gdataManager, err := gdata.Open(gdata.Config{AppName: gdataAppName})
	if err != nil {
		log.WithError(err).Warn("gdata unavailable, preferences will not persist")
		gdataManager = nil
	}
	settings := editor.NewSettingsManager(gdataManager, editor.DefaultPreferences(cfg), log)
	ed.ApplyPreferences(settings.Preferences())

	if err := loadInitialDocument(ed, settings, log); err != nil {
		return err
	}

	a, err := app.NewApp(app.Config{
		Editor:   ed,
		Settings: settings,
		Renderer: renderer,
		TextFont: textFont,
		BombFont: bombFont,
		Log:      log,
	})
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}
	defer a.Shutdown()

	ebiten.SetWindowSize(a.WindowSize())
	ebiten.SetWindowTitle(app.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.WithFields(logrus.Fields{
		"cols":  ed.Grid().Cols(),
		"rows":  ed.Grid().Rows(),
		"width": ed.Layout().CanvasWidth,
	}).Info("editor started")

	return ebiten.RunGame(a)
}

// applyFlags 用命令行参数覆盖配置
func applyFlags(cfg *config.EditorConfig) {
	if *width > 0 {
		cfg.CanvasWidth = *width
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
}

// loadInitialDocument --load 优先；其次按 --cols/--rows 新建空白网格；都未指定时恢复上次编辑的文档
func loadInitialDocument(ed *editor.Editor, settings *editor.SettingsManager, log logrus.FieldLogger) error {
	if *loadPath != "" {
		data, err := os.ReadFile(*loadPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", *loadPath, err)
		}
		if err := ed.LoadDocument(data); err != nil {
			return fmt.Errorf("failed to load %s: %w", *loadPath, err)
		}
		return nil
	}
	if *cols > 0 || *rows > 0 {
		c, r := ed.Grid().Cols(), ed.Grid().Rows()
		if *cols > 0 {
			c = *cols
		}
		if *rows > 0 {
			r = *rows
		}
		if err := ed.Resize(c, r); err != nil {
			return fmt.Errorf("invalid --cols/--rows: %w", err)
		}
		return nil
	}

	data, ok, err := settings.LoadDocument()
	if err != nil {
		log.WithError(err).Warn("failed to restore last document")
		return nil
	}
	if !ok {
		return nil
	}
	if err := ed.LoadDocument(data); err != nil {
		log.WithError(err).Warn("stored document is invalid, starting empty")
	}
	return nil
}
