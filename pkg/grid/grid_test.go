package grid

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRNG 依次返回预设的随机值，用完后循环
type fixedRNG struct {
	values []float64
	i      int
}

func (r *fixedRNG) Float64() float64 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

// assertInvariants 校验炸弹不变量与缓存计数
func assertInvariants(t *testing.T, g *Grid) {
	t.Helper()
	bombs := 0
	g.Each(func(x, y int, cell Cell) {
		if cell.IsBomb {
			bombs++
			assert.Equalf(t, Hidden, cell.State, "bomb at (%d,%d) must be hidden", x, y)
		}
	})
	assert.Equal(t, bombs, g.BombCount(), "cached bomb counter")
}

func TestNewGridIsEmpty(t *testing.T) {
	g := New(4, 3)

	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 0, g.BombCount())
	g.Each(func(x, y int, cell Cell) {
		assert.Equal(t, Cell{}, cell)
	})
}

func TestToggleNormalBrush(t *testing.T) {
	g := New(3, 3)
	never := &fixedRNG{values: []float64{0.99}}

	require.True(t, g.Toggle(1, 1, BrushNormal, 0.5, never))
	cell, _ := g.Cell(1, 1)
	assert.Equal(t, Hidden, cell.State)
	assert.False(t, cell.IsBomb)
	assertInvariants(t, g)

	g.Toggle(1, 1, BrushNormal, 0.5, never)
	cell, _ = g.Cell(1, 1)
	assert.Equal(t, Empty, cell.State)
	assert.False(t, cell.IsBomb)
	assertInvariants(t, g)
}

func TestToggleNormalBrushPlantsBomb(t *testing.T) {
	g := New(3, 3)
	always := &fixedRNG{values: []float64{0.1}}

	g.Toggle(0, 0, BrushNormal, 0.5, always)
	cell, _ := g.Cell(0, 0)
	assert.Equal(t, Hidden, cell.State)
	assert.True(t, cell.IsBomb)
	assert.Equal(t, 1, g.BombCount())

	// 再次切换：翻开并移除炸弹
	g.Toggle(0, 0, BrushNormal, 0.5, always)
	cell, _ = g.Cell(0, 0)
	assert.Equal(t, Empty, cell.State)
	assert.False(t, cell.IsBomb)
	assert.Equal(t, 0, g.BombCount())
}

func TestToggleBombBrush(t *testing.T) {
	g := New(3, 3)

	g.Toggle(2, 1, BrushBomb, 0, nil)
	cell, _ := g.Cell(2, 1)
	assert.True(t, cell.IsBomb)
	assert.Equal(t, Hidden, cell.State)
	assert.Equal(t, 1, g.BombCount())

	g.Toggle(2, 1, BrushBomb, 0, nil)
	cell, _ = g.Cell(2, 1)
	assert.False(t, cell.IsBomb)
	assert.Equal(t, Empty, cell.State)
	assert.Equal(t, 0, g.BombCount())
}

func TestToggleBombBrushOnHiddenCell(t *testing.T) {
	g := New(2, 2)
	g.MarkHidden(0, 0)

	g.Toggle(0, 0, BrushBomb, 0, nil)
	cell, _ := g.Cell(0, 0)
	assert.True(t, cell.IsBomb)
	assert.Equal(t, Hidden, cell.State)
	assertInvariants(t, g)
}

func TestToggleGrayBrush(t *testing.T) {
	g := New(2, 2)
	g.MarkBomb(1, 1)

	g.Toggle(1, 1, BrushGray, 0, nil)
	cell, _ := g.Cell(1, 1)
	assert.True(t, cell.IsGray)
	assert.True(t, cell.IsBomb, "gray brush must not touch bomb flag")
	assert.Equal(t, Hidden, cell.State, "gray brush must not touch state")

	g.Toggle(1, 1, BrushGray, 0, nil)
	cell, _ = g.Cell(1, 1)
	assert.False(t, cell.IsGray)
	assertInvariants(t, g)
}

func TestToggleOutOfBoundsIsNoop(t *testing.T) {
	g := New(2, 2)

	for _, p := range []Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {100, 100}} {
		assert.False(t, g.Toggle(p.X, p.Y, BrushBomb, 1, nil))
	}
	assert.Equal(t, 0, g.BombCount())
	g.Each(func(x, y int, cell Cell) {
		assert.Equal(t, Cell{}, cell)
	})
}

func TestRerollBombs(t *testing.T) {
	g := New(3, 1)
	g.MarkBomb(0, 0)
	g.MarkHidden(1, 0)

	// 第一个盖住格子重掷失败（失去炸弹），第二个成功
	g.RerollBombs(0.5, &fixedRNG{values: []float64{0.9, 0.1}})

	c0, _ := g.Cell(0, 0)
	c1, _ := g.Cell(1, 0)
	c2, _ := g.Cell(2, 0)
	assert.False(t, c0.IsBomb)
	assert.True(t, c1.IsBomb)
	assert.False(t, c2.IsBomb)
	assert.Equal(t, 1, g.BombCount())
	assertInvariants(t, g)
}

func TestRerollBombsExtremes(t *testing.T) {
	g := New(5, 5)
	g.HideAll()
	rng := rand.New(rand.NewPCG(1, 2))

	g.RerollBombs(1, rng)
	assert.Equal(t, 25, g.BombCount())

	g.RerollBombs(0, rng)
	assert.Equal(t, 0, g.BombCount())
}

func TestRerollBombsCounterProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 50; i++ {
		g := New(1+rng.IntN(12), 1+rng.IntN(12))
		for j := 0; j < 40; j++ {
			g.Toggle(rng.IntN(g.Cols()), rng.IntN(g.Rows()), Brush(rng.IntN(3)), rng.Float64(), rng)
		}
		g.RerollBombs(rng.Float64(), rng)
		assertInvariants(t, g)
	}
}

func TestHideAll(t *testing.T) {
	g := New(3, 2)
	g.Toggle(0, 0, BrushGray, 0, nil)
	g.MarkBomb(2, 1)

	g.HideAll()

	g.Each(func(x, y int, cell Cell) {
		assert.Equal(t, Hidden, cell.State)
	})
	c, _ := g.Cell(0, 0)
	assert.True(t, c.IsGray)
	assert.Equal(t, 1, g.BombCount())
	assertInvariants(t, g)
}

func TestClear(t *testing.T) {
	g := New(3, 3)
	g.MarkBomb(0, 0)
	g.MarkBomb(1, 1)
	g.MarkGray(2, 2)

	g.Clear()

	assert.Equal(t, 0, g.BombCount())
	assert.Equal(t, 3, g.Cols())
	g.Each(func(x, y int, cell Cell) {
		assert.Equal(t, Cell{}, cell)
	})
}

func TestMarkOperations(t *testing.T) {
	g := New(3, 3)

	g.MarkBomb(1, 1)
	g.MarkBomb(1, 1)
	assert.Equal(t, 1, g.BombCount(), "marking twice must not double count")

	// 灰色标记不会翻开炸弹
	g.MarkGray(1, 1)
	c, _ := g.Cell(1, 1)
	assert.Equal(t, Hidden, c.State)
	assert.True(t, c.IsGray)

	// 灰色标记会翻开盖住的非炸弹格子
	g.MarkHidden(0, 0)
	g.MarkGray(0, 0)
	c, _ = g.Cell(0, 0)
	assert.Equal(t, Empty, c.State)

	// 越界静默忽略
	g.MarkBomb(5, 5)
	g.MarkGray(-1, 0)
	g.MarkHidden(0, 9)
	assertInvariants(t, g)
}

func TestBrushNames(t *testing.T) {
	for _, b := range []Brush{BrushNormal, BrushBomb, BrushGray} {
		assert.Equal(t, b, ParseBrush(b.String()))
	}
	assert.Equal(t, BrushNormal, ParseBrush("eraser"))
}
