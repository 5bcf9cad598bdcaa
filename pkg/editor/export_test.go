package editor

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/minegrid/pkg/document"
	"github.com/decker502/minegrid/pkg/input"
	"github.com/decker502/minegrid/pkg/render"
)

func newTestExporter(dir string) *Exporter {
	return NewExporter(dir, 2, render.NewRenderer(render.DefaultTheme()), nil, nil, quietLogger())
}

func TestSaveWritesAllArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := newTestEditor(t, nil, WithExporter(newTestExporter(dir)))
	e.Apply(input.CmdToggleBomb, 1, 1)
	e.Apply(input.CmdToggleGray, 0, 0)

	require.NoError(t, e.Dispatch(context.Background(), input.CmdSave))

	data, err := os.ReadFile(filepath.Join(dir, DocumentFileName))
	require.NoError(t, err)
	doc, _, err := document.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, e.Document(), doc)

	pngData, err := os.ReadFile(filepath.Join(dir, PNGFileName))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(pngData))
	require.NoError(t, err)
	assert.Equal(t, e.Layout().PixelWidth()*2, img.Bounds().Dx())

	svgData, err := os.ReadFile(filepath.Join(dir, SVGFileName))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(svgData), "</svg>"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temporary files left behind")
}

func TestExportCanceledContext(t *testing.T) {
	dir := t.TempDir()
	x := newTestExporter(dir)
	e := newTestEditor(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := x.Export(ctx, e.Snapshot())
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(dir, DocumentFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportRejectsInvalidSnapshot(t *testing.T) {
	x := newTestExporter(t.TempDir())
	_, err := x.Export(context.Background(), Snapshot{CanvasWidth: 100})
	assert.ErrorIs(t, err, document.ErrInvalidSize)
}
