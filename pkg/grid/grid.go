package grid

// Grid 编辑器网格模型
//
// 职责：
//   - 持有 rows × cols 的格子数组（行优先）
//   - 提供画笔切换、重新掷炸弹、全部盖住、清空等修改操作
//   - 缓存炸弹数量，保证 BombCount() 在每次操作返回后等于 IsBomb 格子的个数
//
// 尺寸变化时整体重建，不支持局部调整。
type Grid struct {
	cols      int
	rows      int
	cells     [][]Cell
	bombCount int
}

// New 创建 cols × rows 的空白网格
//
// cols、rows 必须为正整数，由调用方保证。
func New(cols, rows int) *Grid {
	g := &Grid{cols: cols, rows: rows}
	g.reset()
	return g
}

// reset 重新分配全部格子并清零计数
func (g *Grid) reset() {
	g.cells = make([][]Cell, g.rows)
	for y := 0; y < g.rows; y++ {
		g.cells[y] = make([]Cell, g.cols)
	}
	g.bombCount = 0
}

// Cols 返回列数
func (g *Grid) Cols() int { return g.cols }

// Rows 返回行数
func (g *Grid) Rows() int { return g.rows }

// BombCount 返回缓存的炸弹数量
func (g *Grid) BombCount() int { return g.bombCount }

// InBounds 判断坐标是否在网格范围内
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Cell 返回指定坐标的格子副本，越界时 ok 为 false
func (g *Grid) Cell(x, y int) (cell Cell, ok bool) {
	if !g.InBounds(x, y) {
		return Cell{}, false
	}
	return g.cells[y][x], true
}

// Toggle 按画笔修改单个格子
//
// 参数：
//   - x, y: 格子坐标，越界时静默忽略
//   - brush: 当前画笔
//   - bombChance: 普通画笔盖住格子时埋炸弹的概率
//   - rng: 随机源，仅普通画笔使用
//
// 返回：
//   - bool: 格子是否被修改
func (g *Grid) Toggle(x, y int, brush Brush, bombChance float64, rng RNG) bool {
	if !g.InBounds(x, y) {
		return false
	}
	cell := &g.cells[y][x]

	switch brush {
	case BrushBomb:
		if cell.IsBomb {
			cell.IsBomb = false
			cell.State = Empty
			g.bombCount--
		} else {
			cell.IsBomb = true
			cell.State = Hidden
			g.bombCount++
		}

	case BrushGray:
		cell.IsGray = !cell.IsGray

	default:
		if cell.State == Hidden {
			cell.State = Empty
			if cell.IsBomb {
				cell.IsBomb = false
				g.bombCount--
			}
		} else {
			cell.State = Hidden
			if !cell.IsBomb && bernoulli(bombChance, rng) {
				cell.IsBomb = true
				g.bombCount++
			}
		}
	}
	return true
}

// RerollBombs 对所有盖住的格子重新进行伯努利试验
//
// 已经是炸弹的盖住格子同样会重掷（可能失去炸弹），
// 非盖住格子强制为非炸弹。炸弹计数按结果重新统计。
func (g *Grid) RerollBombs(bombChance float64, rng RNG) {
	g.bombCount = 0
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			cell := &g.cells[y][x]
			if cell.State == Hidden {
				cell.IsBomb = bernoulli(bombChance, rng)
				if cell.IsBomb {
					g.bombCount++
				}
			} else {
				cell.IsBomb = false
			}
		}
	}
}

// HideAll 将所有格子设为盖住，不修改炸弹与灰色标记
func (g *Grid) HideAll() {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			g.cells[y][x].State = Hidden
		}
	}
}

// Clear 恢复为全空白网格，炸弹计数归零
func (g *Grid) Clear() {
	g.reset()
}

// MarkBomb 将格子设为炸弹（同时盖住）
//
// 已经是炸弹时不重复计数。越界时静默忽略。
func (g *Grid) MarkBomb(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	cell := &g.cells[y][x]
	cell.State = Hidden
	if !cell.IsBomb {
		cell.IsBomb = true
		g.bombCount++
	}
}

// MarkGray 为格子打上灰色标记
//
// 如果格子是盖住的非炸弹格子，则翻开使灰色可见；炸弹保持不变。
func (g *Grid) MarkGray(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	cell := &g.cells[y][x]
	cell.IsGray = true
	if cell.State == Hidden && !cell.IsBomb {
		cell.State = Empty
	}
}

// MarkHidden 盖住格子，炸弹格子保持原样
func (g *Grid) MarkHidden(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	cell := &g.cells[y][x]
	if !cell.IsBomb {
		cell.State = Hidden
	}
}

// Each 按行优先顺序遍历所有格子
func (g *Grid) Each(fn func(x, y int, cell Cell)) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			fn(x, y, g.cells[y][x])
		}
	}
}
