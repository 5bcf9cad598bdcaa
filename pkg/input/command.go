// Package input 将指针和按键事件翻译为编辑器命令
//
// 指针事件通过 Controller 映射到格子坐标，并保证一次拖拽中每个格子最多被修改一次；
// 按键事件通过 KeyCommand 映射为 Command。两者都不直接依赖窗口系统，便于测试。
package input

import "github.com/decker502/minegrid/pkg/grid"

// Command 编辑器命令
type Command int

const (
	CmdNone Command = iota

	// 格子绘制命令，由当前画笔决定
	CmdToggleNormal
	CmdToggleBomb
	CmdToggleGray

	// 全局命令
	CmdRerollUp
	CmdRerollDown
	CmdToggleReveal
	CmdToggleBombBrush
	CmdToggleGrayBrush
	CmdClear
	CmdHideAll
	CmdSave
)

var commandNames = map[Command]string{
	CmdNone:            "none",
	CmdToggleNormal:    "toggle-normal",
	CmdToggleBomb:      "toggle-bomb",
	CmdToggleGray:      "toggle-gray",
	CmdRerollUp:        "reroll-up",
	CmdRerollDown:      "reroll-down",
	CmdToggleReveal:    "toggle-reveal",
	CmdToggleBombBrush: "toggle-bomb-brush",
	CmdToggleGrayBrush: "toggle-gray-brush",
	CmdClear:           "clear",
	CmdHideAll:         "hide-all",
	CmdSave:            "save",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsPaint 是否为格子绘制命令
func (c Command) IsPaint() bool {
	return c == CmdToggleNormal || c == CmdToggleBomb || c == CmdToggleGray
}

// keyCommands 按键到命令的映射
var keyCommands = map[string]Command{
	"s": CmdSave,
	"+": CmdRerollUp,
	"=": CmdRerollUp,
	"-": CmdRerollDown,
	"r": CmdToggleReveal,
	"b": CmdToggleBombBrush,
	"g": CmdToggleGrayBrush,
	"c": CmdClear,
	"h": CmdHideAll,
}

// KeyCommand 将按键字符映射为命令
//
// 参数：
//   - token: 单个输入字符，区分大小写
//
// 返回：
//   - Command: 对应的命令
//   - bool: 是否为已知按键
func KeyCommand(token string) (Command, bool) {
	cmd, ok := keyCommands[token]
	return cmd, ok
}

// PaintCommand 返回画笔对应的格子绘制命令
func PaintCommand(b grid.Brush) Command {
	switch b {
	case grid.BrushBomb:
		return CmdToggleBomb
	case grid.BrushGray:
		return CmdToggleGray
	default:
		return CmdToggleNormal
	}
}

// PaintBrush 返回绘制命令对应的画笔，非绘制命令返回 false
func PaintBrush(c Command) (grid.Brush, bool) {
	switch c {
	case CmdToggleNormal:
		return grid.BrushNormal, true
	case CmdToggleBomb:
		return grid.BrushBomb, true
	case CmdToggleGray:
		return grid.BrushGray, true
	default:
		return grid.BrushNormal, false
	}
}
