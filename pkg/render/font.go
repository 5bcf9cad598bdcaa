package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/minegrid/pkg/config"
)

// Font 字体句柄
//
// 只保存原始字体数据，各个 Sink 按需解析并缓存自己的字体对象。
type Font struct {
	// Family SVG 中使用的 font-family 名称
	Family string
	// Data TTF/OTF 字体数据
	Data []byte
}

// 内置字体全局唯一，Sink 按指针缓存解析结果
var (
	defaultTextFont = &Font{Family: "Go", Data: goregular.TTF}
	defaultBombFont = &Font{Family: "Go Bold", Data: gobold.TTF}
)

// DefaultTextFont 内置 Go Regular 字体，只读
func DefaultTextFont() *Font {
	return defaultTextFont
}

// DefaultBombFont 内置 Go Bold 字体，只读
func DefaultBombFont() *Font {
	return defaultBombFont
}

// LoadFont 从文件加载字体
//
// 参数：
//   - path: 字体文件路径，为空时直接返回 fallback
//   - fallback: 路径为空时使用的字体
//
// 返回：
//   - *Font: 字体句柄，Family 取文件名（不含扩展名）
//   - error: 读取失败
func LoadFont(path string, fallback *Font) (*Font, error) {
	if path == "" {
		return fallback, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取字体文件 %s: %w", path, err)
	}

	family := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Font{Family: family, Data: data}, nil
}

// LoadConfiguredFonts 按配置加载数字字体和炸弹字体，未配置时使用内置字体
func LoadConfiguredFonts(fc config.FontsConfig) (textFont, bombFont *Font, err error) {
	textFont, err = LoadFont(fc.TextPath, DefaultTextFont())
	if err != nil {
		return nil, nil, err
	}
	bombFont, err = LoadFont(fc.BombPath, DefaultBombFont())
	if err != nil {
		return nil, nil, err
	}
	return textFont, bombFont, nil
}
