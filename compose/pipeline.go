package compose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/ByLCY/quotecard/layout"
	"github.com/ByLCY/quotecard/naming"
	"github.com/ByLCY/quotecard/renderer"
	"github.com/ByLCY/quotecard/sheet"
	"github.com/ByLCY/quotecard/wrap"
)

// Options 控制一次批量生成。
type Options struct {
	Layout     layout.Config
	Background string
	OutputDir  string
	Namer      naming.Namer
	// Workers 为并发数，<=0 时使用 CPU 核数。
	Workers int
	Quality int
	// NewRenderer 为每个 worker 创建独立的渲染器。
	NewRenderer func() (renderer.Renderer, error)
}

// Result 按输入顺序保存每条记录的输出路径与排版结果。
type Result struct {
	Paths []string
	Cards []*layout.Card
}

type job struct {
	pos    int
	record sheet.Record
	name   string
}

// Generate 为每条记录生成一张卡片。任一记录失败时取消其余任务，
// 删除本次已写出的文件并返回带行号的错误。
func Generate(ctx context.Context, records []sheet.Record, opts Options) (*Result, error) {
	if opts.NewRenderer == nil {
		return nil, fmt.Errorf("未提供渲染器")
	}
	if opts.Namer == nil {
		opts.Namer = naming.New("", "")
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("排版配置无效: %w", err)
	}

	jobs, err := plan(records, opts.Namer)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Paths: make([]string, len(records)),
		Cards: make([]*layout.Card, len(records)),
	}
	if len(jobs) == 0 {
		return result, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(jobs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan job)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		written  []string
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	log := Logger()
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			r, err := opts.NewRenderer()
			if err != nil {
				fail(&ResourceError{Resource: "字体", Index: -1, Err: err})
				return
			}
			c := &Composer{
				Config:     opts.Layout,
				Background: opts.Background,
				OutputDir:  opts.OutputDir,
				Renderer:   r,
				Quality:    opts.Quality,
			}
			for j := range queue {
				if ctx.Err() != nil {
					continue
				}
				lines := wrap.Lines(j.record.Excerpt, opts.Layout.Excerpt.MaxChars)
				log.Debug("排版记录", "index", j.record.Index, "lines", len(lines))
				path, card, err := c.Compose(j.record.Index, j.name, lines, j.record.Title, j.record.Author)
				if err != nil {
					fail(err)
					continue
				}
				mu.Lock()
				written = append(written, path)
				mu.Unlock()
				result.Paths[j.pos] = path
				result.Cards[j.pos] = card
				log.Info("已生成卡片", "index", j.record.Index, "path", path)
			}
		}()
	}

feed:
	for _, j := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case queue <- j:
		}
	}
	close(queue)
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		// 外部取消
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		for _, path := range written {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Warn("清理输出文件失败", "path", path, "error", err)
			}
		}
		return nil, firstErr
	}
	return result, nil
}

// plan 预先计算每条记录的文件名，出现重名时直接报错。
func plan(records []sheet.Record, namer naming.Namer) ([]job, error) {
	jobs := make([]job, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		name := namer.Name(naming.Fields{Index: rec.Index, Title: rec.Title, Author: rec.Author})
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("第 %d 行与第 %d 行的输出文件名重复：%s", rec.Index, prev, name)
		}
		seen[name] = rec.Index
		jobs = append(jobs, job{pos: i, record: rec, name: name})
	}
	return jobs, nil
}
