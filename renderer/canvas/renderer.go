package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/renderer"
)

// resolution 每毫米一个像素，使布局单位与输出像素一一对应。
var resolution = canvas.DPMM(1.0)

// Renderer draws card layouts via github.com/tdewolff/canvas and rasterizes them.
// A Renderer is not safe for concurrent use; create one per worker.
type Renderer struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
	faces  map[faceKey]*canvas.FontFace
}

var _ renderer.Renderer = (*Renderer)(nil)

type faceKey struct {
	size  float64
	color layout.Color
}

// New parses font data (TTF/OTF) into a font family shared by all text blocks.
func New(font []byte) (*Renderer, error) {
	if len(font) == 0 {
		return nil, fmt.Errorf("字体数据为空")
	}
	family := canvas.NewFontFamily("quotecard")
	if err := family.LoadFont(font, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	return &Renderer{
		family: family,
		style:  canvas.FontRegular,
		faces:  map[faceKey]*canvas.FontFace{},
	}, nil
}

// Render draws the background and every text box of card, then rasterizes the result.
func (r *Renderer) Render(card *layout.Card, background image.Image) (image.Image, error) {
	if card == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if card.Width <= 0 || card.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效：%gx%g", card.Width, card.Height)
	}

	c := canvas.New(card.Width, card.Height)
	ctx := canvas.NewContext(c)
	if background != nil {
		// 默认坐标系原点在左下角，背景从 (0,0) 铺满整张画布
		ctx.DrawImage(0, 0, background, resolution)
	}
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	for _, tb := range card.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return nil, err
		}
	}
	return rasterizer.Draw(c, resolution, canvas.DefaultColorSpace), nil
}

// drawTextBox 逐行绘制文本块，行顶部加字体上升部即为基线。
func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	if tb.FontSize <= 0 {
		return fmt.Errorf("%s 文本字号无效：%g", tb.Role, tb.FontSize)
	}
	face := r.face(tb.FontSize, tb.Color)
	ascent := r.ascent(tb.FontSize)

	cursorY := tb.Y
	for _, line := range tb.Lines {
		cursorY += line.GapBefore
		if line.Content != "" {
			textLine := canvas.NewTextLine(face, line.Content, canvas.Left)
			ctx.DrawText(tb.X, cursorY+ascent, textLine)
		}
		lineHeight := line.Height
		if lineHeight <= 0 {
			lineHeight = tb.FontSize
		}
		cursorY += lineHeight
	}
	return nil
}

// face 返回像素字号 sizePx 对应的字体面；字体系统使用 pt，这里做一次 px→pt。
func (r *Renderer) face(sizePx float64, col layout.Color) *canvas.FontFace {
	key := faceKey{size: sizePx, color: col}
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := r.family.Face(layout.PxToPt(sizePx), colorFromLayout(col), r.style, canvas.FontNormal)
	r.faces[key] = f
	return f
}

// ascent 返回 sizePx 字号的字体上升部高度（px），与颜色无关。
func (r *Renderer) ascent(sizePx float64) float64 {
	return r.face(sizePx, layout.Color{}).Metrics().Ascent
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
