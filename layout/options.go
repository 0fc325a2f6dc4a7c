package layout

import "fmt"

// Config 汇总三个文本区域的排版常量。它是一个不可变的值，由调用方显式传入。
type Config struct {
	Width   float64 // 画布宽度（px）
	Height  float64 // 画布高度（px）
	Excerpt ExcerptStyle
	Title   TitleStyle
	Author  AuthorStyle
}

// ExcerptStyle 书摘内容区域：左上角起排的多行文本。
type ExcerptStyle struct {
	FontSize    float64
	Color       Color
	Left        float64
	Top         float64
	LineSpacing float64
	MaxChars    int // 每行最多字符数
}

// TitleStyle 书名区域：左下角偏中间的单行文本。
type TitleStyle struct {
	FontSize float64
	Color    Color
	Left     float64
	Bottom   float64 // 距画布底边
}

// AuthorStyle 作者区域：右侧偏上，一字一行竖排。
type AuthorStyle struct {
	FontSize float64
	Color    Color
	Right    float64
	Top      float64
	Spacing  float64 // 相邻两字之间的间距
}

// DefaultConfig 返回默认的 1417x1890 卡片排版。
func DefaultConfig() Config {
	return Config{
		Width:  1417,
		Height: 1890,
		Excerpt: ExcerptStyle{
			FontSize:    75,
			Color:       Color{0, 0, 0},
			Left:        200,
			Top:         400,
			LineSpacing: 50,
			MaxChars:    12,
		},
		Title: TitleStyle{
			FontSize: 55,
			Color:    Color{0, 0, 0},
			Left:     200,
			Bottom:   400,
		},
		Author: AuthorStyle{
			FontSize: 150,
			Color:    Color{100, 100, 100},
			Right:    10,
			Top:      100,
			Spacing:  15,
		},
	}
}

// Validate 检查尺寸与字号等必须为正的字段。
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("画布尺寸必须为正数：%gx%g", c.Width, c.Height)
	}
	if c.Excerpt.FontSize <= 0 || c.Title.FontSize <= 0 || c.Author.FontSize <= 0 {
		return fmt.Errorf("字号必须为正数")
	}
	if c.Excerpt.MaxChars < 1 {
		return fmt.Errorf("每行字符数必须至少为 1，当前为 %d", c.Excerpt.MaxChars)
	}
	for _, col := range []Color{c.Excerpt.Color, c.Title.Color, c.Author.Color} {
		if !col.valid() {
			return fmt.Errorf("颜色分量超出 0-255 范围：%v", col)
		}
	}
	return nil
}

func (c Color) valid() bool {
	for _, v := range []int{c.R, c.G, c.B} {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}
