package grid

// Brush 当前激活的画笔，决定一次拖动修改格子的哪一部分
type Brush int

const (
	// BrushNormal 普通画笔：切换盖住/空白，盖住时按概率埋炸弹
	BrushNormal Brush = iota
	// BrushBomb 炸弹画笔：只切换炸弹标记
	BrushBomb
	// BrushGray 灰色画笔：只切换灰色标记
	BrushGray
)

// String 返回画笔名称
func (b Brush) String() string {
	switch b {
	case BrushNormal:
		return "normal"
	case BrushBomb:
		return "bomb"
	case BrushGray:
		return "gray"
	default:
		return "unknown"
	}
}

// ParseBrush 解析画笔名称，未知名称返回 BrushNormal
func ParseBrush(name string) Brush {
	switch name {
	case "bomb":
		return BrushBomb
	case "gray":
		return BrushGray
	default:
		return BrushNormal
	}
}

// RNG 伯努利试验使用的随机源
// *math/rand/v2.Rand 满足该接口
type RNG interface {
	Float64() float64
}

// bernoulli 以概率 p 返回 true
func bernoulli(p float64, rng RNG) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}
