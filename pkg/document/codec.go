package document

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/decker502/minegrid/pkg/grid"
)

// Parse 解析 JSON 文档
//
// 容错规则：
//   - 不是 JSON 对象（包括 null、数组、非法 JSON）返回 ErrNotDocument
//   - cols/rows 缺失、非整数或非正数返回 ErrInvalidSize
//   - 格子总数超过 MaxCells 返回 ErrTooLarge
//   - 坐标列表不是数组时整个列表视为空
//   - 单个坐标不是对象、缺少 x/y 或不是整数时跳过该条目
//
// 第二个返回值为被跳过的坐标条目数。
func Parse(data []byte) (Document, int, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Document{}, 0, ErrNotDocument
	}

	cols, okCols := parseInt(fields["cols"])
	rows, okRows := parseInt(fields["rows"])
	if !okCols || !okRows || cols <= 0 || rows <= 0 {
		return Document{}, 0, fmt.Errorf("%w: cols=%s rows=%s", ErrInvalidSize, fields["cols"], fields["rows"])
	}
	if err := checkSize(cols, rows); err != nil {
		return Document{}, 0, err
	}

	doc := Document{Cols: cols, Rows: rows}
	skipped := 0
	var n int
	doc.Bombs, n = parsePoints(fields["bombs"])
	skipped += n
	doc.Hidden, n = parsePoints(fields["hidden"])
	skipped += n
	doc.Gray, n = parsePoints(fields["gray"])
	skipped += n

	return doc, skipped, nil
}

// Decode 从 Reader 读取完整内容后解析
func Decode(r io.Reader) (Document, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, 0, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data)
}

// Marshal 以缩进格式输出 JSON，三个坐标列表总是存在
func (d Document) Marshal() ([]byte, error) {
	d.normalize()
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return append(data, '\n'), nil
}

// Encode 写出 JSON 文档
func (d Document) Encode(w io.Writer) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (d *Document) normalize() {
	if d.Bombs == nil {
		d.Bombs = []grid.Point{}
	}
	if d.Hidden == nil {
		d.Hidden = []grid.Point{}
	}
	if d.Gray == nil {
		d.Gray = []grid.Point{}
	}
}

// parseInt 解析 JSON 数字，只接受整数值
func parseInt(raw json.RawMessage) (int, bool) {
	if raw == nil || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// parsePoints 解析坐标列表，返回有效坐标和跳过的条目数
func parsePoints(raw json.RawMessage) ([]grid.Point, int) {
	points := []grid.Point{}
	if raw == nil {
		return points, 0
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return points, 0
	}

	skipped := 0
	for _, entry := range entries {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(entry, &obj); err != nil || obj == nil {
			skipped++
			continue
		}
		x, okX := parseInt(obj["x"])
		y, okY := parseInt(obj["y"])
		if !okX || !okY {
			skipped++
			continue
		}
		points = append(points, grid.Point{X: x, Y: y})
	}
	return points, skipped
}
