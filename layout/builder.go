package layout

import (
	"fmt"
	"strings"
)

// Content 是一张卡片要绘制的文字：已折行的书摘、书名与作者。
type Content struct {
	Lines  []string
	Title  string
	Author string
}

// Build 计算三个文本区域在 width x height 画布上的位置。
// 三个区域互不依赖，各自只读取 cfg 中对应的常量。
func Build(cfg Config, width, height float64, content Content) (*Card, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效：%gx%g", width, height)
	}

	card := &Card{Width: width, Height: height}
	card.Texts = append(card.Texts, excerptBox(cfg.Excerpt, content.Lines))
	card.Texts = append(card.Texts, titleBox(cfg.Title, height, content.Title))
	card.Texts = append(card.Texts, authorBoxes(cfg.Author, width, content.Author)...)
	return card, nil
}

// excerptBox 书摘从 (Left, Top) 开始逐行向下排，相邻基线间距为 FontSize+LineSpacing。
func excerptBox(style ExcerptStyle, lines []string) TextBox {
	tb := TextBox{
		Role:     RoleExcerpt,
		Content:  strings.Join(lines, "\n"),
		X:        style.Left,
		Y:        style.Top,
		FontSize: style.FontSize,
		Color:    style.Color,
	}
	for i, content := range lines {
		line := TextLine{Content: content, Height: style.FontSize}
		if i > 0 {
			line.GapBefore = style.LineSpacing
		}
		tb.Lines = append(tb.Lines, line)
		tb.Height += line.GapBefore + line.Height
	}
	return tb
}

// titleBox 书名单行绘制，顶部距画布底边 Bottom+FontSize。
func titleBox(style TitleStyle, height float64, title string) TextBox {
	return TextBox{
		Role:     RoleTitle,
		Content:  title,
		X:        style.Left,
		Y:        height - style.Bottom - style.FontSize,
		FontSize: style.FontSize,
		Color:    style.Color,
		Lines:    []TextLine{{Content: title, Height: style.FontSize}},
		Height:   style.FontSize,
	}
}

// authorBoxes 作者按字拆开，每个字一个文本块，按方块字宽 FontSize 竖直排列。
func authorBoxes(style AuthorStyle, width float64, author string) []TextBox {
	x := width - style.Right - style.FontSize
	var boxes []TextBox
	for i, r := range []rune(author) {
		ch := string(r)
		boxes = append(boxes, TextBox{
			Role:     RoleAuthor,
			Content:  ch,
			X:        x,
			Y:        style.Top + float64(i)*(style.FontSize+style.Spacing),
			FontSize: style.FontSize,
			Color:    style.Color,
			Lines:    []TextLine{{Content: ch, Height: style.FontSize}},
			Height:   style.FontSize,
		})
	}
	return boxes
}
