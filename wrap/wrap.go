// Package wrap 按固定字数对中文书摘进行折行，并处理标点避头规则。
package wrap

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// terminalMarks 句末标点：出现后立即换行，并追加一个空行作为段落间隔。
var terminalMarks = []rune{'。', '？', '！', '；'}

// noLineStartMarks 不允许出现在行首的标点。
var noLineStartMarks = []rune{'。', '？', '！', '；', '：', '、', '》', '）', '】', '》', '』', '〞'}

// IsTerminal 判断 r 是否为句末标点。
func IsTerminal(r rune) bool { return slices.Contains(terminalMarks, r) }

// IsNoLineStart 判断 r 是否为不允许出现在行首的标点。
func IsNoLineStart(r rune) bool { return slices.Contains(noLineStartMarks, r) }

// Wrap 将 text 按每行最多 maxCharsPerLine 个字符折行，返回以 "\n" 连接的结果。
// 每个 rune 计为一个字符，不做字宽测量。
func Wrap(text string, maxCharsPerLine int) string {
	return strings.Join(wrapLines(text, maxCharsPerLine), "\n")
}

// Lines 与 Wrap 相同，但返回按换行符拆分后的行，空文本返回一个空行。
func Lines(text string, maxCharsPerLine int) []string {
	return strings.Split(Wrap(text, maxCharsPerLine), "\n")
}

func wrapLines(text string, maxCharsPerLine int) []string {
	if maxCharsPerLine < 1 {
		maxCharsPerLine = 1
	}

	var lines []string
	var current []rune

	for _, r := range text {
		current = append(current, r)

		if IsTerminal(r) {
			lines = append(lines, string(current), "")
			current = current[:0]
		} else if len(current) > 0 && IsNoLineStart(current[0]) && len(lines) > 0 {
			// 行首标点挂到上一行末尾
			lines[len(lines)-1] += string(current[0])
			current = current[1:]
		}

		if len(current) >= maxCharsPerLine {
			if head, rest, ok := cutAtTerminal(current); ok {
				lines = append(lines, string(head))
				current = rest
			} else {
				lines = append(lines, string(current))
				current = current[:0]
			}
		}
	}

	if len(current) > 0 {
		lines = append(lines, string(current))
	}

	return fixLeadingMark(lines)
}

// cutAtTerminal 按 terminalMarks 的顺序查找第一个出现在 line 中的句末标点，
// 在其后切分，标点保留在前半段。
func cutAtTerminal(line []rune) (head, rest []rune, ok bool) {
	for _, mark := range terminalMarks {
		if i := slices.Index(line, mark); i >= 0 {
			head = slices.Clone(line[:i+1])
			rest = slices.Clone(line[i+1:])
			return head, rest, true
		}
	}
	return nil, nil, false
}

// fixLeadingMark 对折行结果做一次避头修正：只处理第一处以禁用标点开头的行，
// 将该标点移到上一行末尾；若该行因此变空则删除。
func fixLeadingMark(lines []string) []string {
	for i := 1; i < len(lines); i++ {
		first, size := utf8.DecodeRuneInString(lines[i])
		if lines[i] == "" || !IsNoLineStart(first) {
			continue
		}
		lines[i-1] += string(first)
		lines[i] = lines[i][size:]
		if lines[i] == "" {
			lines = slices.Delete(lines, i, i+1)
		}
		break
	}
	return lines
}
