// Package naming 决定每张卡片的输出文件名。
package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultPattern 与运行时间戳加行号的命名方式一致，例如 20240101_120000_3.jpg。
const DefaultPattern = "${run}_${index}.jpg"

// Extension 输出文件的扩展名。
const Extension = ".jpg"

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// unsafeChars 在文件名中需要替换的字符。
var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]+`)

// Fields 是命名时可引用的记录字段。
type Fields struct {
	Index  int
	Title  string
	Author string
}

// Namer 为一条记录生成文件名（不含目录）。
type Namer interface {
	Name(f Fields) string
}

// Template 按模板展开文件名，支持 ${run}、${index}、${title}、${author}。
// 未知占位符原样保留。
type Template struct {
	Pattern string
	Run     string
}

// New 创建使用 pattern 与运行标识 run 的模板；pattern 为空时使用 DefaultPattern。
func New(pattern, run string) Template {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return Template{Pattern: pattern, Run: run}
}

// Name 实现 Namer。
func (t Template) Name(f Fields) string {
	pattern := t.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	values := map[string]string{
		"run":    t.Run,
		"index":  strconv.Itoa(f.Index),
		"title":  f.Title,
		"author": f.Author,
	}
	name := exprPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		val, ok := values[strings.TrimSpace(groups[1])]
		if !ok {
			return match
		}
		return Sanitize(val)
	})
	if !strings.EqualFold(filepath.Ext(name), Extension) {
		name += Extension
	}
	return name
}

// Sanitize 把路径分隔符与文件系统不允许的字符替换为 "_"，并去掉首尾的 "." "_" 与空格。
func Sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(strings.TrimSpace(s), "_")
	return strings.Trim(s, "._ ")
}

// RunID 把时间格式化为运行标识，例如 20240101_120000。
func RunID(t time.Time) string {
	return t.Format("20060102_150405")
}
