// Package compose 把排版结果绘制到背景图上并写出 JPEG，
// 同时提供按记录并发生成整批卡片的流程。
package compose

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/renderer"
)

// DefaultQuality 输出 JPEG 的默认质量。
const DefaultQuality = 95

// Composer 生成单张卡片。Renderer 不要求并发安全，每个 Composer 独占一个。
type Composer struct {
	Config     layout.Config
	Background string // 预处理后的背景图路径
	OutputDir  string
	Renderer   renderer.Renderer
	Quality    int
}

// Compose 为第 index 行绘制卡片并写入 OutputDir/name，返回输出路径与排版结果。
// lines 是已折行的书摘；背景图每次重新读取，原文件不会被修改。
func (c *Composer) Compose(index int, name string, lines []string, title, author string) (string, *layout.Card, error) {
	if c.Renderer == nil {
		return "", nil, fmt.Errorf("renderer 不能为空")
	}
	bg, err := imaging.Open(c.Background)
	if err != nil {
		return "", nil, &ResourceError{Resource: "背景图", Path: c.Background, Index: index, Err: err}
	}
	bounds := bg.Bounds()

	card, err := layout.Build(c.Config, float64(bounds.Dx()), float64(bounds.Dy()), layout.Content{
		Lines:  lines,
		Title:  title,
		Author: author,
	})
	if err != nil {
		return "", nil, &RecordError{Index: index, Err: fmt.Errorf("布局计算失败: %w", err)}
	}

	img, err := c.Renderer.Render(card, bg)
	if err != nil {
		return "", nil, &RecordError{Index: index, Err: fmt.Errorf("渲染失败: %w", err)}
	}

	path := filepath.Join(c.OutputDir, name)
	if err := c.save(img, path); err != nil {
		return "", nil, &ResourceError{Resource: "输出文件", Path: path, Index: index, Write: true, Err: err}
	}
	return path, card, nil
}

// save 先写入同目录下的临时文件再重命名，避免留下写了一半的图片。
func (c *Composer) save(img image.Image, path string) error {
	quality := c.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".card-*.jpg")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := imaging.Encode(tmp, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("编码 JPEG 失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
