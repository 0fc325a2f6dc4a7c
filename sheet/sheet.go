// Package sheet 把电子表格的行映射为书摘记录。
//
// 表格按列位置读取：第 0 列为书摘内容，第 1 列为书名，第 2 列为作者；
// 第一行总是表头，不生成卡片。
package sheet

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
	"golang.org/x/text/unicode/norm"
)

// 列位置。
const (
	ColumnExcerpt = iota
	ColumnTitle
	ColumnAuthor
)

var columnNames = [...]string{"书摘内容", "书名", "作者"}

// Row 是表格中的一行原始文本，Index 为从 0 开始的行号。
type Row struct {
	Index int
	Cells []string
}

// Cell 返回第 col 列的值，不存在时返回空串。
func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

// Record 是一条待生成卡片的书摘。
type Record struct {
	Index   int    `json:"index"`
	Excerpt string `json:"excerpt"`
	Title   string `json:"title"`
	Author  string `json:"author"`
}

// ShapeError 表示某一行缺少必需的字段，该行会被跳过。
type ShapeError struct {
	Index   int
	Missing []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("第 %d 行缺少字段：%s", e.Index, strings.Join(e.Missing, "、"))
}

// Records 丢弃表头（行号 0）后把每一行映射为 Record；缺字段的行被跳过并以 ShapeError 报告。
// 表头按行号判断，表格第一行为空时不会把第一条数据当作表头。
func Records(rows []Row) ([]Record, []*ShapeError) {
	var records []Record
	var skipped []*ShapeError
	for _, row := range rows {
		if row.Index == 0 {
			continue
		}
		var missing []string
		for col, name := range columnNames {
			if strings.TrimSpace(row.Cell(col)) == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			skipped = append(skipped, &ShapeError{Index: row.Index, Missing: missing})
			continue
		}
		records = append(records, Record{
			Index:   row.Index,
			Excerpt: row.Cell(ColumnExcerpt),
			Title:   row.Cell(ColumnTitle),
			Author:  row.Cell(ColumnAuthor),
		})
	}
	return records, skipped
}

// Load 读取 xlsx 文件并返回记录与被跳过的行。
func Load(path string) ([]Record, []*ShapeError, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	records, skipped := Records(rows)
	return records, skipped, nil
}

// ReadFile 读取 xlsx 文件第一个工作表的全部行。
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开表格 %s: %w", path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("无法打开表格 %s: %w", path, err)
	}
	rows, err := Read(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read 从 r 读取 xlsx 内容，size 为数据总长度。
func Read(r io.ReaderAt, size int64) ([]Row, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("无法读取表格: %w", err)
	}
	defer wb.Close()
	return readWorkbook(wb)
}

func readWorkbook(wb *spreadsheet.Workbook) ([]Row, error) {
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("表格中没有工作表")
	}

	var rows []Row
	for _, row := range sheets[0].Rows() {
		out := Row{Index: int(row.RowNumber()) - 1}
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			col := int(reference.ColumnToIndex(colName))
			for len(out.Cells) <= col {
				out.Cells = append(out.Cells, "")
			}
			out.Cells[col] = norm.NFC.String(cell.GetFormattedValue())
		}
		rows = append(rows, out)
	}
	return rows, nil
}
