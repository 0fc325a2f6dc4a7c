package layout

import (
	"strconv"
	"strings"
)

// 渲染器以每毫米一个像素（DPMM(1)）栅格化画布，因此布局中的 1 个单位
// 既是 1mm 也是输出图片上的 1px；字体系统使用 pt，需要在边界换算。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号转换为字体面使用的 pt。
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx 将 pt 转换为像素。
func PtToPx(pt float64) float64 { return pt * PtToMm }

// ParseLength 解析 "75"、"75px" 或 "12pt" 形式的长度，返回像素值。
func ParseLength(value string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	scale := 1.0
	switch {
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	case strings.HasSuffix(v, "pt"):
		v = strings.TrimSuffix(v, "pt")
		scale = PtToMm
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, err
	}
	return f * scale, nil
}
