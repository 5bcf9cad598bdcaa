// Package document 实现网格与可移植 JSON 文档之间的转换
//
// 文档格式（无版本号）：
//
//	{ "cols": 20, "rows": 40,
//	  "bombs":  [{"x": 0, "y": 0}],
//	  "hidden": [{"x": 1, "y": 0}],
//	  "gray":   [{"x": 2, "y": 0}] }
//
// bombs 与 hidden 互斥；gray 独立，可与二者重叠。
// 旧格式没有 gray 字段，按空列表处理。
package document

import (
	"errors"
	"fmt"

	"github.com/decker502/minegrid/pkg/grid"
)

var (
	// ErrNotDocument 输入不是 JSON 对象
	ErrNotDocument = errors.New("not a grid document")
	// ErrInvalidSize cols 或 rows 缺失或不是正整数
	ErrInvalidSize = errors.New("invalid grid size")
	// ErrTooLarge 格子总数超过 MaxCells
	ErrTooLarge = errors.New("grid too large")
)

// MaxCells 单个文档允许的最大格子数
const MaxCells = 250_000

// Document 网格的可移植表示
type Document struct {
	Cols   int          `json:"cols"`
	Rows   int          `json:"rows"`
	Bombs  []grid.Point `json:"bombs"`
	Hidden []grid.Point `json:"hidden"`
	Gray   []grid.Point `json:"gray"`
}

// FromGrid 从网格生成文档
//
// bombs: 所有炸弹；hidden: 盖住的非炸弹格子；gray: 所有灰色格子。
// 坐标按行优先顺序输出。
func FromGrid(g *grid.Grid) Document {
	doc := Document{
		Cols:   g.Cols(),
		Rows:   g.Rows(),
		Bombs:  []grid.Point{},
		Hidden: []grid.Point{},
		Gray:   []grid.Point{},
	}

	g.Each(func(x, y int, cell grid.Cell) {
		p := grid.Point{X: x, Y: y}
		if cell.IsBomb {
			doc.Bombs = append(doc.Bombs, p)
		} else if cell.State == grid.Hidden {
			doc.Hidden = append(doc.Hidden, p)
		}
		if cell.IsGray {
			doc.Gray = append(doc.Gray, p)
		}
	})

	return doc
}

// Validate 校验网格尺寸；越界坐标不算错误，加载时会被忽略
func (d Document) Validate() error {
	return checkSize(d.Cols, d.Rows)
}

// checkSize 尺寸必须为正且总格子数不超过 MaxCells
func checkSize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, cols, rows)
	}
	// 先除后比，避免乘法溢出
	if cols > MaxCells/rows {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrTooLarge, cols, rows, MaxCells)
	}
	return nil
}

// Grid 根据文档重建网格
//
// 应用顺序固定为：bombs → gray → hidden。
// gray 会翻开盖住的非炸弹格子使灰色可见，随后的 hidden 再把需要盖住的格子盖回去。
// 越界坐标静默忽略。
func (d Document) Grid() (*grid.Grid, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	g := grid.New(d.Cols, d.Rows)
	for _, p := range d.Bombs {
		g.MarkBomb(p.X, p.Y)
	}
	for _, p := range d.Gray {
		g.MarkGray(p.X, p.Y)
	}
	for _, p := range d.Hidden {
		g.MarkHidden(p.X, p.Y)
	}
	return g, nil
}
