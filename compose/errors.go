package compose

import "fmt"

// ResourceError 表示字体、背景图或输出目录等资源无法加载或写入。
// Index 为触发错误的记录行号；与单条记录无关的资源为 -1。
type ResourceError struct {
	Resource string
	Path     string
	Index    int
	Write    bool // 写入失败；否则为读取或加载失败
	Err      error
}

func (e *ResourceError) Error() string {
	verb := "无法加载"
	if e.Write {
		verb = "无法写入"
	}
	msg := verb + e.Resource
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Index >= 0 {
		msg = fmt.Sprintf("第 %d 行：%s", e.Index, msg)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// RecordError 表示某条记录在排版或渲染阶段失败。
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("第 %d 行生成失败: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
