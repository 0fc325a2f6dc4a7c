package layout

// 该文件定义卡片布局结果，供布局计算、渲染与调试 JSON 共用。
// 坐标原点在画布左上角，单位为像素。

// 文本块角色。
const (
	RoleExcerpt = "excerpt"
	RoleTitle   = "title"
	RoleAuthor  = "author"
)

// Card 是一张卡片的完整布局：画布尺寸与已定位的文本块。
type Card struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Texts  []TextBox `json:"texts"`
}

// Role 返回指定角色的文本块，保持原有顺序。
func (c *Card) Role(role string) []TextBox {
	if c == nil {
		return nil
	}
	var out []TextBox
	for _, tb := range c.Texts {
		if tb.Role == role {
			out = append(out, tb)
		}
	}
	return out
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextBox 表示一个已经排好坐标的文本块，(X, Y) 为首行顶部左侧。
type TextBox struct {
	Role     string     `json:"role"`
	Content  string     `json:"content"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	FontSize float64    `json:"fontSize"`
	Color    Color      `json:"color"`
	Lines    []TextLine `json:"lines"`
	Height   float64    `json:"height"`
}

// TextLine 表示排版后的一行文本内容及其高度。
type TextLine struct {
	Content   string  `json:"content"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// Top 返回第 i 行顶部的绝对 y 坐标。
func (tb TextBox) Top(i int) float64 {
	y := tb.Y
	for j := 0; j < i && j < len(tb.Lines); j++ {
		y += tb.Lines[j].GapBefore + tb.Lines[j].Height
	}
	if i < len(tb.Lines) {
		y += tb.Lines[i].GapBefore
	}
	return y
}
