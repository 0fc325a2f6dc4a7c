// Package background 校验上传文件并把背景图裁剪为卡片尺寸。
package background

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
)

// AllowedExtensions 上传文件允许的扩展名（小写、不含点）。
var AllowedExtensions = []string{"xlsx", "jpg"}

// imageExtensions 可作为背景的图片格式。
var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// ValidationError 表示输入在任何卡片生成之前就被拒绝。
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// SizeMessage 是背景图尺寸不足时给用户的提示。
func SizeMessage(width, height int) string {
	return fmt.Sprintf("图片尺寸不合格，请上传符合尺寸要求的图片。尺寸要求大于或等于%dx%d像素。", width, height)
}

// CheckExtension 检查文件名的扩展名是否在 allowed 列表中；allowed 为空时使用 AllowedExtensions。
func CheckExtension(name string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = AllowedExtensions
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" || !slices.Contains(allowed, ext) {
		return &ValidationError{
			Path:    name,
			Message: fmt.Sprintf("不支持的文件类型，仅允许 %s", strings.Join(allowed, ", ")),
		}
	}
	return nil
}

// Prepare 打开背景图，确认其不小于 width x height，居中裁剪到该尺寸后
// 保存到 dir，文件名为 "<prefix>_<原文件名>_processed_image<扩展名>"，返回保存路径。
func Prepare(path, dir, prefix string, width, height int) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(imageExtensions, ext) {
		return "", &ValidationError{Path: path, Message: "背景图仅支持 jpg、jpeg、png 格式"}
	}

	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("读取背景图 %s 失败: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() < width || b.Dy() < height {
		return "", &ValidationError{Path: path, Message: SizeMessage(width, height)}
	}
	if b.Dx() != width || b.Dy() != height {
		img = imaging.CropCenter(img, width, height)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建目录 %s 失败: %w", dir, err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := base + "_processed_image" + filepath.Ext(path)
	if prefix != "" {
		name = prefix + "_" + name
	}
	out := filepath.Join(dir, name)
	if err := imaging.Save(img, out, imaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("保存处理后的背景图失败: %w", err)
	}
	return out, nil
}
