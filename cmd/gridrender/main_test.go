package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/minegrid/pkg/document"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "png", want: []string{"png"}},
		{in: "SVG", want: []string{"svg"}},
		{in: "both", want: []string{"png", "svg"}},
		{in: "", want: []string{"png", "svg"}},
		{in: "jpeg", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "small.json")
	require.NoError(t, os.WriteFile(small, []byte(`{"cols": 3, "rows": 2, "bombs": [{"x": 1, "y": 1}]}`), 0o644))
	doc, skipped, err := readDocument(small)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, 3, doc.Cols)

	huge := filepath.Join(dir, "huge.json")
	require.NoError(t, os.WriteFile(huge, []byte(`{"cols": 2000000000, "rows": 2000000000}`), 0o644))
	_, _, err = readDocument(huge)
	assert.ErrorIs(t, err, document.ErrTooLarge)

	_, _, err = readDocument(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
