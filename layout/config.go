package layout

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/quotecard/dsl"
)

// LoadConfig 读取排版文件，在默认排版的基础上覆盖其中出现的字段。
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("无法打开排版文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return Config{}, fmt.Errorf("解析排版文件 %s 失败: %w", path, err)
	}
	cfg, err := FromDocument(doc)
	if err != nil {
		return Config{}, fmt.Errorf("排版文件 %s: %w", path, err)
	}
	return cfg, nil
}

// FromDocument 将排版 AST 转为 Config，未出现的字段保留默认值。
func FromDocument(doc *dsl.Document) (Config, error) {
	cfg := DefaultConfig()
	if doc == nil || doc.Body == nil {
		return cfg, nil
	}

	for _, st := range doc.Body.Statements {
		switch {
		case st.Assignment != nil:
			if err := applyCanvas(&cfg, st.Assignment); err != nil {
				return Config{}, err
			}
		case st.Command != nil:
			if err := applySection(&cfg, st.Command); err != nil {
				return Config{}, err
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyCanvas(cfg *Config, a *dsl.Assignment) error {
	switch a.Key {
	case "width":
		return setLength(&cfg.Width, a)
	case "height":
		return setLength(&cfg.Height, a)
	default:
		return fmt.Errorf("%s: 未知的画布属性 %s", a.Pos, a.Key)
	}
}

func applySection(cfg *Config, cmd *dsl.Command) error {
	if len(cmd.Args) > 0 {
		return fmt.Errorf("%s: %s 段落不接受参数", cmd.Pos, cmd.Name)
	}
	if cmd.Block == nil {
		return fmt.Errorf("%s: %s 段落缺少内容", cmd.Pos, cmd.Name)
	}

	var apply func(a *dsl.Assignment) error
	switch cmd.Name {
	case RoleExcerpt:
		apply = func(a *dsl.Assignment) error { return applyExcerpt(&cfg.Excerpt, a) }
	case RoleTitle:
		apply = func(a *dsl.Assignment) error { return applyTitle(&cfg.Title, a) }
	case RoleAuthor:
		apply = func(a *dsl.Assignment) error { return applyAuthor(&cfg.Author, a) }
	default:
		return fmt.Errorf("%s: 未知的段落 %s", cmd.Pos, cmd.Name)
	}

	for _, st := range cmd.Block.Statements {
		if st.Assignment == nil {
			return fmt.Errorf("%s: %s 段落内只允许 key: value 形式", cmd.Pos, cmd.Name)
		}
		if err := apply(st.Assignment); err != nil {
			return err
		}
	}
	return nil
}

func applyExcerpt(s *ExcerptStyle, a *dsl.Assignment) error {
	switch a.Key {
	case "size":
		return setLength(&s.FontSize, a)
	case "color":
		return setColor(&s.Color, a)
	case "left":
		return setLength(&s.Left, a)
	case "top":
		return setLength(&s.Top, a)
	case "spacing", "line-spacing":
		return setLength(&s.LineSpacing, a)
	case "max-chars":
		n, err := strconv.Atoi(a.Value.Text())
		if err != nil {
			return fmt.Errorf("%s: max-chars 需要整数: %w", a.Pos, err)
		}
		s.MaxChars = n
		return nil
	default:
		return unknownKey(RoleExcerpt, a)
	}
}

func applyTitle(s *TitleStyle, a *dsl.Assignment) error {
	switch a.Key {
	case "size":
		return setLength(&s.FontSize, a)
	case "color":
		return setColor(&s.Color, a)
	case "left":
		return setLength(&s.Left, a)
	case "bottom":
		return setLength(&s.Bottom, a)
	default:
		return unknownKey(RoleTitle, a)
	}
}

func applyAuthor(s *AuthorStyle, a *dsl.Assignment) error {
	switch a.Key {
	case "size":
		return setLength(&s.FontSize, a)
	case "color":
		return setColor(&s.Color, a)
	case "right":
		return setLength(&s.Right, a)
	case "top":
		return setLength(&s.Top, a)
	case "spacing":
		return setLength(&s.Spacing, a)
	default:
		return unknownKey(RoleAuthor, a)
	}
}

func unknownKey(section string, a *dsl.Assignment) error {
	return fmt.Errorf("%s: %s 段落不支持属性 %s", a.Pos, section, a.Key)
}

func setLength(dst *float64, a *dsl.Assignment) error {
	v, err := ParseLength(a.Value.Text())
	if err != nil {
		return fmt.Errorf("%s: %s 的值 %q 无法解析为长度", a.Pos, a.Key, a.Value.Text())
	}
	*dst = v
	return nil
}

func setColor(dst *Color, a *dsl.Assignment) error {
	c, err := ParseColor(a.Value.Text())
	if err != nil {
		return fmt.Errorf("%s: %w", a.Pos, err)
	}
	*dst = c
	return nil
}

// ParseColor 解析 #RGB 或 #RRGGBB 形式的颜色。
func ParseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}
