package export

import (
	"bytes"
	"fmt"
	"strings"

	gospreadsheet "github.com/VantageDataChat/GoExcel"

	"pcqmdeck/deck"
)

// GoExcelExportService writes the deck's tables and metric cards to a workbook using GoExcel (pure Go)
type GoExcelExportService struct{}

// NewGoExcelExportService creates a new GoExcel export service
func NewGoExcelExportService() *GoExcelExportService {
	return &GoExcelExportService{}
}

const (
	indexSheetName   = "Mục lục"
	metricsSheetName = "Chỉ số"
	maxSheetName     = 31
	excelFont        = "Arial"
)

func thinBorders(color string) *gospreadsheet.Borders {
	return &gospreadsheet.Borders{
		Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: color},
		Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: color},
		Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: color},
		Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: color},
	}
}

// ExportTables writes an index sheet, one sheet per table slide and a sheet
// listing every metric card in the deck.
func (s *GoExcelExportService) ExportTables(d deck.Deck) ([]byte, error) {
	tables := d.Tables()
	if len(tables) == 0 {
		return nil, fmt.Errorf("no table data to export")
	}

	wb := gospreadsheet.New()
	index := wb.GetActiveSheet()
	index.SetTitle(indexSheetName)

	indexRows := make([][]string, 0, len(tables))
	used := map[string]bool{indexSheetName: true, metricsSheetName: true}

	for _, nt := range tables {
		name := uniqueSheetName(SheetName(nt.Number, nt.Slide.Title), used)
		ws, err := wb.AddSheet(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		writeGrid(ws, nt.Slide.Table.Headers, nt.Slide.Table.Rows)
		indexRows = append(indexRows, []string{fmt.Sprintf("%d", nt.Number), nt.Slide.DisplayTitle(), name})
	}

	writeGrid(index, []string{"Slide", "Tiêu đề", "Sheet"}, indexRows)

	if metrics := metricRows(d); len(metrics) > 0 {
		ws, err := wb.AddSheet(metricsSheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", metricsSheetName, err)
		}
		writeGrid(ws, []string{"Slide", "Chỉ số", "Giá trị", "Mô tả"}, metrics)
	}

	wb.Properties.Title = d.Title
	wb.Properties.Creator = d.Author
	wb.Properties.Description = "Bảng số liệu trích từ bài trình bày tổng quan dự án"
	wb.Properties.Subject = "PCQM"
	wb.Properties.Keywords = "PCQM,EVM,báo cáo"
	wb.Properties.Category = "Báo cáo dự án"
	wb.Properties.LastModifiedBy = d.Author

	var buf bytes.Buffer
	writer := gospreadsheet.NewXLSXWriter()
	if err := writer.Write(wb, &buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func metricRows(d deck.Deck) [][]string {
	var rows [][]string
	for i, sl := range d.Slides {
		if sl.Kind != deck.KindMetrics {
			continue
		}
		for _, m := range sl.Cards() {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), m.Name, m.Value, m.Desc})
		}
	}
	return rows
}

// writeGrid writes a header row and banded data rows, sizing columns to content
func writeGrid(ws *gospreadsheet.Worksheet, headers []string, rows [][]string) {
	hs := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Bold:  true,
			Size:  11,
			Color: deck.White.Hex(),
			Name:  excelFont,
		}).
		SetFill(&gospreadsheet.Fill{
			Type:  "solid",
			Color: deck.Secondary.Hex(),
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignCenter,
			Vertical:   gospreadsheet.AlignMiddle,
		}).
		SetBorders(thinBorders("FFFFFF"))

	// Even data rows are banded
	banded := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{Size: 10, Color: deck.Dark.Hex(), Name: excelFont}).
		SetFill(&gospreadsheet.Fill{Type: "solid", Color: deck.Light.Hex()}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignLeft,
			Vertical:   gospreadsheet.AlignMiddle,
			WrapText:   true,
		}).
		SetBorders(thinBorders("D9D9D9"))
	plain := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{Size: 10, Color: deck.Dark.Hex(), Name: excelFont}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignLeft,
			Vertical:   gospreadsheet.AlignMiddle,
			WrapText:   true,
		}).
		SetBorders(thinBorders("D9D9D9"))

	widths := make([]int, len(headers))
	for i, h := range headers {
		cellName, _ := gospreadsheet.CellName(0, i)
		ws.SetCellValue(cellName, h)
		ws.SetCellStyle(cellName, hs)
		widths[i] = len([]rune(h))
	}
	ws.SetRowHeight(0, 25)

	for r, row := range rows {
		style := plain
		if r%2 == 0 {
			style = banded
		}
		for c := 0; c < len(headers) && c < len(row); c++ {
			cellName, _ := gospreadsheet.CellName(r+1, c)
			ws.SetCellValue(cellName, row[c])
			ws.SetCellStyle(cellName, style)
			if n := len([]rune(row[c])); n > widths[c] {
				widths[c] = n
			}
		}
		ws.SetRowHeight(r+1, 20)
	}

	for i, w := range widths {
		ws.SetColumnWidth(i, ColumnWidth(w))
	}

	ws.FreezePane("A2")
}

// ColumnWidth maps a text length in runes to a column width clamped to [12, 60]
func ColumnWidth(runes int) float64 {
	width := float64(runes) * 1.2
	if width < 12 {
		width = 12
	}
	if width > 60 {
		width = 60
	}
	return width
}

// SheetName builds a worksheet name for a table slide: characters Excel
// rejects become spaces and the result is capped at 31 runes.
func SheetName(number int, title string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, title)
	clean = strings.Join(strings.Fields(clean), " ")

	name := []rune(fmt.Sprintf("%02d %s", number, clean))
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return strings.TrimSpace(string(name))
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[candidate]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		base := []rune(name)
		if len(base)+len([]rune(suffix)) > maxSheetName {
			base = base[:maxSheetName-len([]rune(suffix))]
		}
		candidate = string(base) + suffix
	}
	used[candidate] = true
	return candidate
}
