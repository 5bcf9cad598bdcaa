package editor

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/document"
	"github.com/decker502/minegrid/pkg/grid"
	"github.com/decker502/minegrid/pkg/input"
)

// constRNG 总是返回同一个值
type constRNG float64

func (r constRNG) Float64() float64 { return float64(r) }

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestEditor(t *testing.T, mutate func(*config.EditorConfig), opts ...Option) *Editor {
	t.Helper()
	cfg := config.DefaultEditorConfig()
	cfg.Cols, cfg.Rows = 4, 3
	cfg.CanvasWidth = 600
	if mutate != nil {
		mutate(cfg)
	}
	opts = append([]Option{WithLogger(quietLogger()), WithRNG(constRNG(0.99))}, opts...)
	return New(cfg, opts...)
}

func dispatch(t *testing.T, e *Editor, cmds ...input.Command) {
	t.Helper()
	for _, cmd := range cmds {
		require.NoError(t, e.Dispatch(context.Background(), cmd))
	}
}

func TestNewEditor(t *testing.T) {
	e := newTestEditor(t, nil)

	assert.Equal(t, 4, e.Grid().Cols())
	assert.Equal(t, 3, e.Grid().Rows())
	assert.Equal(t, grid.BrushNormal, e.Brush())
	assert.True(t, e.RevealBombs())
	assert.Equal(t, 0.5, e.BombChance())
	assert.InDelta(t, 100.0, e.Layout().CellSize, 1e-9)
}

func TestPaintUsesActiveBrush(t *testing.T) {
	e := newTestEditor(t, nil)

	require.True(t, e.Paint(0, 0))
	cell, _ := e.Grid().Cell(0, 0)
	assert.Equal(t, grid.Hidden, cell.State)
	assert.False(t, cell.IsBomb, "rng 0.99 never plants at 0.5")

	dispatch(t, e, input.CmdToggleBombBrush)
	require.True(t, e.Paint(1, 0))
	cell, _ = e.Grid().Cell(1, 0)
	assert.True(t, cell.IsBomb)
	assert.Equal(t, 1, e.Grid().BombCount())

	dispatch(t, e, input.CmdToggleGrayBrush)
	assert.Equal(t, grid.BrushGray, e.Brush())
	require.True(t, e.Paint(2, 0))
	cell, _ = e.Grid().Cell(2, 0)
	assert.True(t, cell.IsGray)

	assert.False(t, e.Paint(10, 10))
}

func TestBrushTogglesReturnToNormal(t *testing.T) {
	e := newTestEditor(t, nil)

	dispatch(t, e, input.CmdToggleBombBrush)
	assert.Equal(t, grid.BrushBomb, e.Brush())
	dispatch(t, e, input.CmdToggleBombBrush)
	assert.Equal(t, grid.BrushNormal, e.Brush())

	dispatch(t, e, input.CmdToggleGrayBrush, input.CmdToggleGrayBrush)
	assert.Equal(t, grid.BrushNormal, e.Brush())
}

func TestGrayBrushDisabled(t *testing.T) {
	e := newTestEditor(t, func(c *config.EditorConfig) { c.Features.GrayBrush = false })

	dispatch(t, e, input.CmdToggleGrayBrush)
	assert.Equal(t, grid.BrushNormal, e.Brush())
	assert.False(t, e.Apply(input.CmdToggleGray, 0, 0))

	e.ApplyPreferences(Preferences{BombChance: 0.3, Brush: "gray"})
	assert.Equal(t, grid.BrushNormal, e.Brush())
}

func TestRerollClampsChance(t *testing.T) {
	e := newTestEditor(t, nil)
	e.Grid().HideAll()

	for i := 0; i < 8; i++ {
		dispatch(t, e, input.CmdRerollUp)
	}
	assert.Equal(t, 1.0, e.BombChance())
	assert.Equal(t, 12, e.Grid().BombCount(), "chance 1 bombs every hidden cell")

	for i := 0; i < 13; i++ {
		dispatch(t, e, input.CmdRerollDown)
	}
	assert.Equal(t, 0.0, e.BombChance())
	assert.Equal(t, 0, e.Grid().BombCount())
}

func TestRerollStepsStayOnTenths(t *testing.T) {
	e := newTestEditor(t, func(c *config.EditorConfig) { c.BombChance = 0 })

	for i := 0; i < 3; i++ {
		dispatch(t, e, input.CmdRerollUp)
	}
	assert.Equal(t, 0.3, e.BombChance())
}

func TestRevealClearHideAll(t *testing.T) {
	e := newTestEditor(t, nil)

	dispatch(t, e, input.CmdToggleReveal)
	assert.False(t, e.RevealBombs())

	dispatch(t, e, input.CmdHideAll)
	e.Grid().Each(func(x, y int, c grid.Cell) {
		assert.Equal(t, grid.Hidden, c.State)
	})

	e.Apply(input.CmdToggleBomb, 0, 0)
	dispatch(t, e, input.CmdClear)
	assert.Equal(t, 0, e.Grid().BombCount())
	e.Grid().Each(func(x, y int, c grid.Cell) {
		assert.Equal(t, grid.Cell{}, c)
	})
}

func TestDispatchRejectsPaintCommands(t *testing.T) {
	e := newTestEditor(t, nil)

	err := e.Dispatch(context.Background(), input.CmdToggleBomb)
	assert.True(t, errors.Is(err, ErrPaintCommand))
	assert.NoError(t, e.Dispatch(context.Background(), input.CmdNone))
}

func TestSaveWithoutExporter(t *testing.T) {
	e := newTestEditor(t, nil)
	err := e.Dispatch(context.Background(), input.CmdSave)
	assert.True(t, errors.Is(err, ErrNoExporter))
}

func TestLoadDocumentReplacesGrid(t *testing.T) {
	e := newTestEditor(t, nil)

	err := e.LoadDocument([]byte(`{"cols": 6, "rows": 2, "bombs": [{"x": 5, "y": 1}, {"x": 9, "y": 9}], "hidden": [{"x": 0, "y": 0}]}`))
	require.NoError(t, err)

	assert.Equal(t, 6, e.Grid().Cols())
	assert.Equal(t, 2, e.Grid().Rows())
	assert.Equal(t, 1, e.Grid().BombCount())
	assert.Equal(t, 6, e.Layout().Cols)
	assert.InDelta(t, 600.0/8, e.Layout().CellSize, 1e-9)
}

func TestLoadDocumentKeepsGridOnError(t *testing.T) {
	e := newTestEditor(t, nil)
	e.Paint(0, 0)
	before := e.Document()

	err := e.LoadDocument([]byte(`[1, 2, 3]`))
	assert.True(t, errors.Is(err, document.ErrNotDocument))
	assert.Equal(t, before, e.Document())
}

func TestLoadDocumentRejectsHugeGrid(t *testing.T) {
	e := newTestEditor(t, nil)
	e.Paint(1, 1)
	before := e.Document()
	layout := e.Layout()

	err := e.LoadDocument([]byte(`{"cols": 2000000000, "rows": 2000000000, "bombs": [], "hidden": []}`))
	assert.ErrorIs(t, err, document.ErrTooLarge)
	assert.Equal(t, before, e.Document())
	assert.Equal(t, layout, e.Layout())
}

func TestResize(t *testing.T) {
	e := newTestEditor(t, nil)
	e.Paint(0, 0)

	require.NoError(t, e.Resize(10, 5))
	assert.Equal(t, 10, e.Layout().Cols)
	assert.Empty(t, e.Document().Hidden)

	assert.Error(t, e.Resize(0, 5))
	assert.ErrorIs(t, e.Resize(1_000_000, 1_000_000), document.ErrTooLarge)
	assert.Equal(t, 10, e.Grid().Cols())
}

func TestSetCanvasWidth(t *testing.T) {
	e := newTestEditor(t, nil)

	e.SetCanvasWidth(1200)
	assert.InDelta(t, 200.0, e.Layout().CellSize, 1e-9)

	e.SetCanvasWidth(-1)
	assert.InDelta(t, 200.0, e.Layout().CellSize, 1e-9)
}

func TestPreferencesRoundTrip(t *testing.T) {
	e := newTestEditor(t, nil)
	dispatch(t, e, input.CmdToggleBombBrush, input.CmdToggleReveal, input.CmdRerollDown)

	p := e.Preferences()
	assert.Equal(t, Preferences{BombChance: 0.4, RevealBombs: false, Brush: "bomb"}, p)

	other := newTestEditor(t, nil)
	other.ApplyPreferences(p)
	assert.Equal(t, p, other.Preferences())
}

func TestControllerDrivesEditor(t *testing.T) {
	e := newTestEditor(t, nil)
	c := input.NewController(e, e.Layout())

	// 4 列、画布 600：格子 100，原点 (100, 400)
	c.PointerDown(150, 450)
	c.PointerMove(250, 450)
	c.PointerMove(150, 450)
	c.PointerUp()

	assert.Equal(t, []grid.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, e.Document().Hidden)
}
