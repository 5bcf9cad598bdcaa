//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.minegrid -o build/android/minegrid.aar -v ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Minegrid.xcframework -v ./mobile
//
// 移动端只使用内置字体和默认配置，不导出文件；偏好和最近文档通过 gdata 保存。
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/minegrid/pkg/app"
	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/editor"
	"github.com/decker502/minegrid/pkg/logger"
)

func init() {
	log, err := logger.New(logger.Config{Verbose: true})
	if err != nil {
		panic(err)
	}

	cfg := config.DefaultEditorConfig()
	ed := editor.New(cfg, editor.WithLogger(log))

	gdataManager, err := gdata.Open(gdata.Config{AppName: "minegrid"})
	if err != nil {
		log.WithError(err).Warn("gdata unavailable, preferences will not persist")
		gdataManager = nil
	}
	settings := editor.NewSettingsManager(gdataManager, editor.DefaultPreferences(cfg), log)
	ed.ApplyPreferences(settings.Preferences())
	if data, ok, err := settings.LoadDocument(); err == nil && ok {
		if err := ed.LoadDocument(data); err != nil {
			log.WithError(err).Warn("stored document is invalid, starting empty")
		}
	}

	editorApp, err := app.NewApp(app.Config{
		Editor:   ed,
		Settings: settings,
		Log:      log,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create app")
	}

	// 注册到 ebitenmobile
	mobile.SetGame(editorApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
