package render

import (
	"image/color"

	"github.com/decker502/minegrid/pkg/config"
)

// Theme 渲染主题：调色板、炸弹字形和字号
type Theme struct {
	Background color.Color
	Line       color.Color
	Text       color.Color
	Gray       color.Color
	TileFill   color.Color
	TileLine   color.Color
	BevelLight color.Color
	BevelDark  color.Color
	Bomb       color.Color

	BombGlyph       string
	CounterFontSize float64
	LineWidth       float64
}

// NewTheme 从编辑器配置构建主题
func NewTheme(cfg *config.EditorConfig) Theme {
	p := cfg.Palette
	glyph := cfg.Fonts.BombGlyph
	if glyph == "" {
		glyph = "●"
	}
	counterSize := cfg.Fonts.CounterFontSize
	if counterSize <= 0 {
		counterSize = 40
	}
	return Theme{
		Background:      p.Background,
		Line:            p.Line,
		Text:            p.Text,
		Gray:            p.Gray,
		TileFill:        p.TileFill,
		TileLine:        p.TileLine,
		BevelLight:      p.BevelLight,
		BevelDark:       p.BevelDark,
		Bomb:            p.Bomb,
		BombGlyph:       glyph,
		CounterFontSize: counterSize,
		LineWidth:       1,
	}
}

// DefaultTheme 默认黑白主题
func DefaultTheme() Theme {
	return NewTheme(config.DefaultEditorConfig())
}
