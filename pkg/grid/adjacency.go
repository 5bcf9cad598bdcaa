package grid

// Adjacency 计算每个格子周围 8 格中的炸弹数量
//
// 盖住的格子结果为 0（不会被显示）；网格外的邻居不计数。
// 返回的矩阵按 [y][x] 索引，每次调用重新计算，不缓存。
func (g *Grid) Adjacency() [][]int {
	numbers := make([][]int, g.rows)
	for y := 0; y < g.rows; y++ {
		numbers[y] = make([]int, g.cols)
		for x := 0; x < g.cols; x++ {
			if g.cells[y][x].State == Hidden {
				continue
			}
			count := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if g.InBounds(nx, ny) && g.cells[ny][nx].IsBomb {
						count++
					}
				}
			}
			numbers[y][x] = count
		}
	}
	return numbers
}
