// Package fonts 加载绘制卡片所用的字体数据。
package fonts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// builtins 是随程序分发的 Go 字体，仅含拉丁字形，主要用于测试与预览。
var builtins = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

// Builtins 返回可用的内置字体名，按字母排序。
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load 返回字体的字节数据。src 可写为 "builtin:goregular" 或字体文件路径（TTF/OTF）。
func Load(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("未指定字体")
	}
	if name, ok := cutBuiltin(src); ok {
		data, ok := builtins[name]
		if !ok {
			return nil, fmt.Errorf("找不到内置字体资源 builtin:%s（可用：%s）", name, strings.Join(Builtins(), ", "))
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("字体文件 %s 为空", src)
	}
	return data, nil
}

func cutBuiltin(src string) (string, bool) {
	for _, prefix := range []string{"builtin:", "built-in:"} {
		if name, ok := strings.CutPrefix(src, prefix); ok {
			return name, true
		}
	}
	return "", false
}
