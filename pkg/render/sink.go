// Package render 将网格模型绘制到绘图目标（Sink）
//
// 渲染器本身无状态：输入网格、布局和选项，输出一系列绘图原语。
// 绘图目标有三种实现：
//   - ScreenSink: ebiten 窗口（交互编辑）
//   - RasterSink: PNG 位图导出
//   - VectorSink: SVG 矢量导出
package render

import "image/color"

// Point 画布坐标点
type Point struct {
	X, Y float64
}

// Quad 四边形，顶点按顺时针排列
type Quad [4]Point

// Sink 绘图目标
//
// 所有坐标均为画布坐标（左上角为原点），描边宽度以画布像素为单位。
// 实现方负责把坐标缩放到自己的分辨率。
type Sink interface {
	// Clear 用背景色填充整个画布
	Clear(c color.Color)
	// FillRect 填充矩形
	FillRect(x, y, w, h float64, c color.Color)
	// StrokeRect 描边矩形
	StrokeRect(x, y, w, h, width float64, c color.Color)
	// StrokeLine 描边线段
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
	// FillQuad 填充四边形
	FillQuad(q Quad, c color.Color)
	// DrawText 以 (cx, cy) 为中心绘制文本
	DrawText(s string, font *Font, size, cx, cy float64, c color.Color)
}
