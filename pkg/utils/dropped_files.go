package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoJSONFile 拖入的文件中没有 JSON 文件
var ErrNoJSONFile = errors.New("no .json file dropped")

// ReadDroppedJSON 读取本帧拖入窗口的第一个 JSON 文件
//
// 返回：
//   - name: 文件路径（拖放文件系统内）
//   - data: 完整文件内容
//   - ok: 本帧是否有文件拖入
//   - err: 没有 JSON 文件或读取失败
func ReadDroppedJSON() (name string, data []byte, ok bool, err error) {
	fsys := ebiten.DroppedFiles()
	if fsys == nil {
		return "", nil, false, nil
	}
	name, data, err = FirstJSONFile(fsys)
	return name, data, true, err
}

// FirstJSONFile 按字典序查找并读取文件系统中的第一个 .json 文件
func FirstJSONFile(fsys fs.FS) (string, []byte, error) {
	var found string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(path.Ext(p), ".json") {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to scan dropped files: %w", err)
	}
	if found == "" {
		return "", nil, ErrNoJSONFile
	}

	data, err := fs.ReadFile(fsys, found)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read dropped file %s: %w", found, err)
	}
	return found, data, nil
}
