package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/minegrid/pkg/document"
)

// 默认值
const (
	DefaultCanvasWidth = 1000.0
	DefaultCols        = 20
	DefaultRows        = 40
	DefaultBombChance  = 0.5
	DefaultExportScale = 3.0 // PNG 导出像素密度
	DefaultOutputDir   = "."

	// BombChanceStep 每次按 +/- 调整的炸弹概率步长
	BombChanceStep = 0.1
)

// EditorConfig 编辑器配置
//
// 配置文件位置: editor.yaml（可通过 --config 指定）
// 文件不存在时使用 DefaultEditorConfig()。
type EditorConfig struct {
	// CanvasWidth 画布宽度（像素），高度由布局计算
	CanvasWidth float64 `yaml:"canvasWidth"`

	// Cols, Rows 启动时的网格尺寸
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`

	// BombChance 普通画笔埋炸弹的概率 0.0 ~ 1.0
	BombChance float64 `yaml:"bombChance"`

	// RevealBombs 启动时是否显示炸弹
	RevealBombs bool `yaml:"revealBombs"`

	// ExportScale PNG 导出的像素密度倍数
	ExportScale float64 `yaml:"exportScale"`

	// OutputDir 保存文件的目录
	OutputDir string `yaml:"outputDir"`

	// Fonts 字体配置
	Fonts FontsConfig `yaml:"fonts"`

	// Palette 调色板
	Palette PaletteConfig `yaml:"palette"`

	// Features 功能开关
	Features FeaturesConfig `yaml:"features"`
}

// FontsConfig 字体配置
//
// Path 为空时使用内置 Go 字体。
type FontsConfig struct {
	TextPath        string  `yaml:"textPath"`        // 数字与计数使用的字体文件
	BombPath        string  `yaml:"bombPath"`        // 炸弹字形使用的字体文件
	BombGlyph       string  `yaml:"bombGlyph"`       // 炸弹字形
	CounterFontSize float64 `yaml:"counterFontSize"` // 顶部炸弹计数字号
}

// FeaturesConfig 功能开关
type FeaturesConfig struct {
	// GrayBrush 是否启用灰色画笔
	GrayBrush bool `yaml:"grayBrush"`
}

// PaletteConfig 调色板，颜色使用 "#rrggbb" 或 "#rrggbbaa"
type PaletteConfig struct {
	Background HexColor `yaml:"background"` // 画布背景
	Line       HexColor `yaml:"line"`       // 外框与网格线
	Text       HexColor `yaml:"text"`       // 数字与计数
	Gray       HexColor `yaml:"gray"`       // 灰色标记填充
	TileFill   HexColor `yaml:"tileFill"`   // 瓦片背面填充
	TileLine   HexColor `yaml:"tileLine"`   // 瓦片背面线条
	BevelLight HexColor `yaml:"bevelLight"` // 瓦片上、左斜面
	BevelDark  HexColor `yaml:"bevelDark"`  // 瓦片下、右斜面
	Bomb       HexColor `yaml:"bomb"`       // 炸弹字形
}

// DefaultEditorConfig 返回默认配置
func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		CanvasWidth: DefaultCanvasWidth,
		Cols:        DefaultCols,
		Rows:        DefaultRows,
		BombChance:  DefaultBombChance,
		RevealBombs: true,
		ExportScale: DefaultExportScale,
		OutputDir:   DefaultOutputDir,
		Fonts: FontsConfig{
			BombGlyph:       "●",
			CounterFontSize: 40,
		},
		Palette: DefaultPalette(),
		Features: FeaturesConfig{
			GrayBrush: true,
		},
	}
}

// DefaultPalette 返回黑白调色板
func DefaultPalette() PaletteConfig {
	return PaletteConfig{
		Background: HexColor{R: 255, G: 255, B: 255, A: 255},
		Line:       HexColor{A: 255},
		Text:       HexColor{A: 255},
		Gray:       HexColor{R: 200, G: 200, B: 200, A: 255},
		TileFill:   HexColor{A: 255},
		TileLine:   HexColor{R: 255, G: 255, B: 255, A: 255},
		BevelLight: HexColor{R: 60, G: 60, B: 60, A: 255},
		BevelDark:  HexColor{R: 20, G: 20, B: 20, A: 255},
		Bomb:       HexColor{A: 255},
	}
}

// LoadEditorConfig 从 YAML 文件加载编辑器配置
//
// 参数：
//   - path: 配置文件路径；文件不存在时返回默认配置
//
// 返回：
//   - *EditorConfig: 应用默认值并校验后的配置
//   - error: 读取、解析或校验失败
func LoadEditorConfig(path string) (*EditorConfig, error) {
	cfg := DefaultEditorConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read editor config file %s: %w", path, err)
	}

	// 在默认值之上解析，缺失字段保持默认
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse editor config YAML from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid editor config in %s: %w", path, err)
	}

	return cfg, nil
}

// Validate 校验配置取值范围
func (c *EditorConfig) Validate() error {
	if c.CanvasWidth <= 0 {
		return fmt.Errorf("canvasWidth must be positive, got %v", c.CanvasWidth)
	}
	if err := (document.Document{Cols: c.Cols, Rows: c.Rows}).Validate(); err != nil {
		return fmt.Errorf("cols and rows: %w", err)
	}
	if c.BombChance < 0 || c.BombChance > 1 {
		return fmt.Errorf("bombChance must be within [0, 1], got %v", c.BombChance)
	}
	if c.ExportScale <= 0 {
		return fmt.Errorf("exportScale must be positive, got %v", c.ExportScale)
	}
	return nil
}

// HexColor 可从 "#rrggbb" / "#rrggbbaa" 解析的颜色
//
// 分量为非预乘值，与十六进制写法一一对应。
type HexColor color.NRGBA

// RGBA 实现 color.Color
func (h HexColor) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(h).RGBA()
}

// String 返回 "#rrggbb" 或 "#rrggbbaa"
func (h HexColor) String() string {
	if h.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", h.R, h.G, h.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", h.R, h.G, h.B, h.A)
}

// ParseHexColor 解析 "#rgb"、"#rrggbb" 或 "#rrggbbaa"
func ParseHexColor(s string) (HexColor, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return HexColor{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return HexColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return HexColor{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (h *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*h = c
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (h HexColor) MarshalYAML() (interface{}, error) {
	return h.String(), nil
}
