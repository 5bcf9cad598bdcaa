package config

import "math"

// 布局配置
// 本文件定义编辑器画布的布局计算：格子尺寸、留白、顶部信息栏以及网格原点。
// 所有数值都是 (cols, rows, canvasWidth) 的纯函数，尺寸变化时重新计算。

// Layout 画布布局
type Layout struct {
	Cols int // 列数
	Rows int // 行数

	CellSize     float64 // 格子边长 = canvasWidth / (cols + 2)
	Padding      float64 // 留白 = CellSize
	TopBarHeight float64 // 顶部信息栏高度 = 2 * CellSize

	// GridWidth 与 GridHeight 都等于 rows * CellSize
	// 注意：宽度按行数计算，非方形网格会溢出或留白
	GridWidth  float64
	GridHeight float64

	CanvasWidth  float64 // 画布宽度
	CanvasHeight float64 // 画布高度 = TopBarHeight + GridHeight + 3 * Padding

	GridOriginX float64 // 第一个格子左上角 X = Padding
	GridOriginY float64 // 第一个格子左上角 Y = TopBarHeight + 2 * Padding
}

// CalculateLayout 根据网格尺寸和画布宽度计算布局
//
// 参数：
//   - cols, rows: 网格列数与行数
//   - canvasWidth: 画布宽度（像素）
//
// 返回：
//   - Layout: 计算结果；cols == -2 时除零，由调用方避免
func CalculateLayout(cols, rows int, canvasWidth float64) Layout {
	cellSize := canvasWidth / float64(cols+2)
	padding := cellSize
	topBarHeight := cellSize * 2
	gridWidth := cellSize * float64(rows)
	gridHeight := cellSize * float64(rows)

	return Layout{
		Cols:         cols,
		Rows:         rows,
		CellSize:     cellSize,
		Padding:      padding,
		TopBarHeight: topBarHeight,
		GridWidth:    gridWidth,
		GridHeight:   gridHeight,
		CanvasWidth:  canvasWidth,
		CanvasHeight: topBarHeight + gridHeight + padding*3,
		GridOriginX:  padding,
		GridOriginY:  topBarHeight + padding*2,
	}
}

// PixelWidth 返回向上取整后的画布宽度，用于分配窗口和图片
func (l Layout) PixelWidth() int {
	return int(math.Ceil(l.CanvasWidth))
}

// PixelHeight 返回向上取整后的画布高度
func (l Layout) PixelHeight() int {
	return int(math.Ceil(l.CanvasHeight))
}

// CellOrigin 返回格子左上角的画布坐标
func (l Layout) CellOrigin(x, y int) (px, py float64) {
	px = l.GridOriginX + float64(x)*l.CellSize
	py = l.GridOriginY + float64(y)*l.CellSize
	return px, py
}

// CellAt 将画布坐标转换为网格坐标
//
// 返回：
//   - x, y: 网格坐标（向下取整）
//   - ok: 坐标是否落在 cols × rows 范围内
func (l Layout) CellAt(px, py float64) (x, y int, ok bool) {
	if l.CellSize <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor((px - l.GridOriginX) / l.CellSize))
	y = int(math.Floor((py - l.GridOriginY) / l.CellSize))
	ok = x >= 0 && x < l.Cols && y >= 0 && y < l.Rows
	return x, y, ok
}
