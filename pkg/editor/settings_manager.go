package editor

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/decker502/minegrid/pkg/config"
)

// Preferences 需要跨会话保存的用户偏好
type Preferences struct {
	BombChance  float64 `yaml:"bombChance"`  // 炸弹概率 0.0 ~ 1.0
	RevealBombs bool    `yaml:"revealBombs"` // 是否显示炸弹
	Brush       string  `yaml:"brush"`       // 画笔名称 normal/bomb/gray
}

// DefaultPreferences 从编辑器配置得到默认偏好
func DefaultPreferences(cfg *config.EditorConfig) Preferences {
	return Preferences{
		BombChance:  cfg.BombChance,
		RevealBombs: cfg.RevealBombs,
		Brush:       "normal",
	}
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
	documentObject   = "document"
	documentProperty = "last"
)

// SettingsManager 用户偏好与最近文档的持久化
//
// gdataManager 为 nil 时进入降级模式：偏好只保存在内存中，Save 不报错。
type SettingsManager struct {
	gdataManager *gdata.Manager
	defaults     Preferences
	prefs        Preferences
	log          logrus.FieldLogger
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的偏好
//
// 加载失败不是致命错误，记录警告后使用默认偏好。
func NewSettingsManager(gdataManager *gdata.Manager, defaults Preferences, log logrus.FieldLogger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     defaults,
		prefs:        defaults,
		log:          log.WithField("component", "settings"),
	}
	if err := sm.Load(); err != nil {
		sm.log.WithError(err).Warn("failed to load preferences, using defaults")
	}
	return sm
}

// Load 从 gdata 加载偏好，不存在时使用默认值
func (sm *SettingsManager) Load() error {
	sm.prefs = sm.defaults
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	loaded := sm.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	if loaded.BombChance < 0 || loaded.BombChance > 1 {
		return fmt.Errorf("stored bombChance out of range: %v", loaded.BombChance)
	}

	sm.prefs = loaded
	sm.log.Debug("preferences loaded")
	return nil
}

// Save 保存偏好到 gdata；降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	sm.log.Debug("preferences saved")
	return nil
}

// Preferences 返回当前偏好
func (sm *SettingsManager) Preferences() Preferences {
	return sm.prefs
}

// SetPreferences 修改内存中的偏好，需调用 Save 持久化
func (sm *SettingsManager) SetPreferences(p Preferences) {
	sm.prefs = p
}

// SaveDocument 保存最近编辑的文档（JSON）
func (sm *SettingsManager) SaveDocument(data []byte) error {
	if sm.gdataManager == nil {
		return nil
	}
	if err := sm.gdataManager.SaveObjectProp(documentObject, documentProperty, data); err != nil {
		return fmt.Errorf("failed to save last document: %w", err)
	}
	return nil
}

// LoadDocument 读取最近编辑的文档
//
// 返回：
//   - []byte: 文档内容
//   - bool: 是否存在已保存的文档
//   - error: 读取失败
func (sm *SettingsManager) LoadDocument() ([]byte, bool, error) {
	if sm.gdataManager == nil {
		return nil, false, nil
	}
	if !sm.gdataManager.ObjectPropExists(documentObject, documentProperty) {
		return nil, false, nil
	}
	data, err := sm.gdataManager.LoadObjectProp(documentObject, documentProperty)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load last document: %w", err)
	}
	return data, true, nil
}
