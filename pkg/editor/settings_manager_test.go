package editor

import (
	"fmt"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/minegrid/pkg/config"
)

// createTestGdataManager 在临时 HOME 下创建 gdata Manager，不可用时跳过测试
func createTestGdataManager(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	manager, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("minegrid_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	return manager
}

func TestSettingsManagerDegradedMode(t *testing.T) {
	defaults := DefaultPreferences(config.DefaultEditorConfig())
	sm := NewSettingsManager(nil, defaults, quietLogger())

	assert.Equal(t, defaults, sm.Preferences())

	sm.SetPreferences(Preferences{BombChance: 0.2, Brush: "bomb"})
	assert.NoError(t, sm.Save())
	assert.Equal(t, "bomb", sm.Preferences().Brush)

	assert.NoError(t, sm.SaveDocument([]byte(`{}`)))
	data, ok, err := sm.LoadDocument()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestSettingsManagerPersistsPreferences(t *testing.T) {
	manager := createTestGdataManager(t)
	defaults := DefaultPreferences(config.DefaultEditorConfig())

	sm := NewSettingsManager(manager, defaults, quietLogger())
	assert.Equal(t, defaults, sm.Preferences())

	want := Preferences{BombChance: 0.7, RevealBombs: false, Brush: "gray"}
	sm.SetPreferences(want)
	require.NoError(t, sm.Save())

	reloaded := NewSettingsManager(manager, defaults, quietLogger())
	assert.Equal(t, want, reloaded.Preferences())
}

func TestSettingsManagerRejectsBadChance(t *testing.T) {
	manager := createTestGdataManager(t)
	require.NoError(t, manager.SaveObjectProp(settingsObject, settingsProperty, []byte("bombChance: 3\n")))

	defaults := DefaultPreferences(config.DefaultEditorConfig())
	sm := NewSettingsManager(manager, defaults, quietLogger())
	assert.Equal(t, defaults, sm.Preferences())
	assert.Error(t, sm.Load())
}

func TestSettingsManagerLastDocument(t *testing.T) {
	manager := createTestGdataManager(t)
	sm := NewSettingsManager(manager, Preferences{}, quietLogger())

	_, ok, err := sm.LoadDocument()
	require.NoError(t, err)
	assert.False(t, ok)

	e := newTestEditor(t, nil)
	e.Paint(2, 1)
	data, err := e.Document().Marshal()
	require.NoError(t, err)
	require.NoError(t, sm.SaveDocument(data))

	loaded, ok, err := sm.LoadDocument()
	require.NoError(t, err)
	require.True(t, ok)

	other := newTestEditor(t, nil)
	require.NoError(t, other.LoadDocument(loaded))
	assert.Equal(t, e.Document(), other.Document())
}
