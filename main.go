package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/ByLCY/quotecard/background"
	"github.com/ByLCY/quotecard/compose"
	"github.com/ByLCY/quotecard/fonts"
	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/naming"
	"github.com/ByLCY/quotecard/renderer"
	canvasrenderer "github.com/ByLCY/quotecard/renderer/canvas"
	"github.com/ByLCY/quotecard/sheet"
)

type options struct {
	xlsx       string
	background string
	font       string
	outputDir  string
	uploadsDir string
	layoutPath string
	pattern    string
	workers    int
	quality    int
	debugPath  string
}

func main() {
	var opts options
	flag.StringVar(&opts.xlsx, "xlsx", "", "书摘表格路径（.xlsx）")
	flag.StringVar(&opts.background, "bg", "", "背景图路径（.jpg）")
	flag.StringVar(&opts.font, "font", "font.ttf", "字体文件路径，或 builtin:goregular 等内置字体")
	flag.StringVar(&opts.outputDir, "out", "output", "卡片输出目录")
	flag.StringVar(&opts.uploadsDir, "uploads", "uploads", "预处理背景图的存放目录")
	flag.StringVar(&opts.layoutPath, "layout", "", "排版配置文件（.card）")
	flag.StringVar(&opts.pattern, "name", naming.DefaultPattern, "输出文件名模板，支持 ${run} ${index} ${title} ${author}")
	flag.IntVar(&opts.workers, "workers", 0, "并发数，0 表示使用全部 CPU")
	flag.IntVar(&opts.quality, "quality", compose.DefaultQuality, "JPEG 质量（1-100）")
	flag.StringVar(&opts.debugPath, "debug", "", "布局调试 JSON 输出路径")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	compose.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, err := run(ctx, opts, logger)
	if err != nil {
		log.Fatalf("生成卡片失败: %v", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	fmt.Printf("已生成 %d 张卡片：%s\n", len(paths), opts.outputDir)
}

// run 串联输入校验、背景预处理、表格读取与卡片生成，返回按表格顺序排列的输出路径。
func run(ctx context.Context, opts options, logger *slog.Logger) ([]string, error) {
	if err := background.CheckExtension(opts.xlsx); err != nil {
		return nil, err
	}
	if err := background.CheckExtension(opts.background); err != nil {
		return nil, err
	}

	cfg := layout.DefaultConfig()
	if opts.layoutPath != "" {
		loaded, err := layout.LoadConfig(opts.layoutPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fontData, err := fonts.Load(opts.font)
	if err != nil {
		return nil, &compose.ResourceError{Resource: "字体", Path: opts.font, Index: -1, Err: err}
	}
	// 提前解析一次，字体损坏时在处理任何记录之前失败
	if _, err := canvasrenderer.New(fontData); err != nil {
		return nil, &compose.ResourceError{Resource: "字体", Path: opts.font, Index: -1, Err: err}
	}

	runID := naming.RunID(time.Now())
	bg, err := background.Prepare(opts.background, opts.uploadsDir, runID, int(cfg.Width), int(cfg.Height))
	if err != nil {
		return nil, err
	}
	logger.Debug("背景图已处理", "path", bg)

	records, skipped, err := sheet.Load(opts.xlsx)
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		logger.Warn("跳过记录", "index", s.Index, "error", s)
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	result, err := compose.Generate(ctx, records, compose.Options{
		Layout:     cfg,
		Background: bg,
		OutputDir:  opts.outputDir,
		Namer:      naming.New(opts.pattern, runID),
		Workers:    opts.workers,
		Quality:    opts.quality,
		NewRenderer: func() (renderer.Renderer, error) {
			return canvasrenderer.New(fontData)
		},
	})
	if err != nil {
		return nil, err
	}

	if opts.debugPath != "" {
		if err := writeDebug(result.Cards, opts.debugPath); err != nil {
			return nil, err
		}
	}
	return result.Paths, nil
}

func writeDebug(cards []*layout.Card, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(cards, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
