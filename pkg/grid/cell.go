// Package grid 提供编辑器的网格模型
//
// 网格由 rows × cols 个格子组成（行优先），每个格子包含：
//   - 显示状态（空白 / 盖住）
//   - 是否为炸弹
//   - 是否为灰色标记（纯装饰）
//
// 不变量：IsBomb == true 的格子必须处于 Hidden 状态。
// 所有修改操作在返回前都会维护该不变量以及缓存的炸弹计数。
package grid

// CellState 格子的显示状态
type CellState int

const (
	// Empty 空白格子（显示外框、可能显示数字）
	Empty CellState = iota
	// Hidden 盖住的格子（显示为瓦片背面，炸弹总是处于该状态）
	Hidden
)

// String 返回状态名称，与文档和日志中的写法一致
func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Cell 单个格子
type Cell struct {
	State  CellState // 显示状态
	IsBomb bool      // 是否为炸弹
	IsGray bool      // 灰色标记，仅在非盖住格子上绘制
}

// Point 网格坐标
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}
