package renderer

import (
	"image"

	"github.com/ByLCY/quotecard/layout"
)

// Renderer 将卡片布局绘制到背景图上，返回新的栅格图像。
// background 不会被修改；返回的图像与 card 尺寸一致。
type Renderer interface {
	Render(card *layout.Card, background image.Image) (image.Image, error)
}
