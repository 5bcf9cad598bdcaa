// Package utils 提供 ebiten 输入相关的工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerPhase 本帧指针事件类型
type PointerPhase int

const (
	// PointerNone 无事件
	PointerNone PointerPhase = iota
	// PointerDown 刚按下
	PointerDown
	// PointerMove 按住中
	PointerMove
	// PointerUp 刚抬起
	PointerUp
)

// PointerEvent 指针事件，坐标为屏幕（逻辑画布）坐标
type PointerEvent struct {
	Phase PointerPhase
	X, Y  int
}

// PointerTracker 统一鼠标左键和单指触摸的按下/移动/抬起事件
//
// 每帧调用一次 Poll。触摸优先：正在跟踪触摸时忽略鼠标。
type PointerTracker struct {
	touchID  ebiten.TouchID
	touching bool
	// 触摸抬起时已无法读取位置，使用最后一次记录的位置
	lastX, lastY int
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{touchID: -1}
}

// Poll 读取本帧的指针事件
func (p *PointerTracker) Poll() PointerEvent {
	if ev, ok := p.pollTouch(); ok {
		return ev
	}
	return p.pollMouse()
}

func (p *PointerTracker) pollTouch() (PointerEvent, bool) {
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.touching = false
			p.touchID = -1
			return PointerEvent{Phase: PointerUp, X: p.lastX, Y: p.lastY}, true
		}
		p.lastX, p.lastY = ebiten.TouchPosition(p.touchID)
		return PointerEvent{Phase: PointerMove, X: p.lastX, Y: p.lastY}, true
	}

	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) == 0 {
		return PointerEvent{}, false
	}
	p.touchID = touchIDs[0]
	p.touching = true
	p.lastX, p.lastY = ebiten.TouchPosition(p.touchID)
	return PointerEvent{Phase: PointerDown, X: p.lastX, Y: p.lastY}, true
}

func (p *PointerTracker) pollMouse() PointerEvent {
	x, y := ebiten.CursorPosition()
	phase := mousePhase(
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	)
	return PointerEvent{Phase: phase, X: x, Y: y}
}

// mousePhase 由按键状态推导事件类型
func mousePhase(justPressed, pressed, justReleased bool) PointerPhase {
	switch {
	case justPressed:
		return PointerDown
	case justReleased:
		return PointerUp
	case pressed:
		return PointerMove
	default:
		return PointerNone
	}
}

// AppendKeyTokens 将本帧输入的字符追加为单字符按键标记
func AppendKeyTokens(dst []string) []string {
	return appendRuneTokens(dst, ebiten.AppendInputChars(nil))
}

func appendRuneTokens(dst []string, runes []rune) []string {
	for _, r := range runes {
		dst = append(dst, string(r))
	}
	return dst
}
