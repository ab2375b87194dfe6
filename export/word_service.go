package export

import (
	"fmt"
	"strings"

	goword "github.com/VantageDataChat/GoWord"
	"github.com/VantageDataChat/GoWord/style"

	"pcqmdeck/deck"
)

// WordExportService writes a speaker outline of the deck using GoWord (pure Go)
type WordExportService struct{}

// NewWordExportService creates a new Word export service
func NewWordExportService() *WordExportService {
	return &WordExportService{}
}

const wordTableWidth = 9000

// ExportOutline writes every slide as a numbered heading followed by its
// bullets, table, metric cards or quote.
func (s *WordExportService) ExportOutline(d deck.Deck) ([]byte, error) {
	if d.Len() == 0 {
		return nil, fmt.Errorf("deck has no slides")
	}

	doc := goword.New()
	doc.Properties.Title = d.Title
	doc.Properties.Creator = d.Author
	doc.Properties.Description = "Dàn ý bài trình bày tổng quan dự án"

	sec := doc.AddSection()
	sec.AddTitle(d.Title, 1)
	sec.AddText(fmt.Sprintf("%d slide", d.Len()),
		&style.FontStyle{Size: 10, Color: deck.Muted.Hex()},
		&style.ParagraphStyle{Alignment: style.AlignCenter})
	sec.AddTextBreak(1)

	// Tables and metric cards share one grid layout
	addTable := func(headers []string, rows [][]string) {
		colWidth := wordTableWidth / len(headers)

		ts := &style.TableStyle{Width: wordTableWidth, Alignment: "center"}
		ts.SetAllBorders("single", 4, "D9D9D9")
		tbl := sec.AddTable(ts)
		tbl.Grid = make([]int, len(headers))
		for i := range tbl.Grid {
			tbl.Grid[i] = colWidth
		}

		headerRow := tbl.AddRow(0, &style.RowStyle{IsHeader: true})
		for _, h := range headers {
			headerRow.AddCell(colWidth, &style.CellStyle{
				Shading: &style.Shading{Fill: deck.Secondary.Hex()},
			}).AddText(h, &style.FontStyle{Bold: true, Size: 10, Color: "FFFFFF"}, nil)
		}

		for _, rowData := range rows {
			row := tbl.AddRow(0, nil)
			for i := 0; i < len(headers) && i < len(rowData); i++ {
				row.AddCell(colWidth, nil).AddText(rowData[i], &style.FontStyle{Size: 9}, nil)
			}
		}
	}

	for i, sl := range d.Slides {
		heading := fmt.Sprintf("%d. %s", i+1, strings.ReplaceAll(sl.DisplayTitle(), "\n", " "))
		sec.AddText(heading,
			&style.FontStyle{Bold: true, Size: 14, Color: deck.Primary.Hex()},
			&style.ParagraphStyle{SpaceAfter: 120})

		switch sl.Kind {
		case deck.KindTitle, deck.KindSection:
			if sl.Subtitle != "" {
				sec.AddText(sl.Subtitle,
					&style.FontStyle{Size: 11, Color: deck.Muted.Hex(), Italic: true},
					nil)
			}
		case deck.KindContent:
			for _, item := range sl.Items {
				sec.AddText(deck.Bullet(item),
					&style.FontStyle{Size: 11, Color: deck.Dark.Hex()},
					&style.ParagraphStyle{Indent: 360})
			}
		case deck.KindTable:
			addTable(sl.Table.Headers, sl.Table.Rows)
		case deck.KindMetrics:
			rows := make([][]string, 0, len(sl.Cards()))
			for _, m := range sl.Cards() {
				rows = append(rows, []string{m.Name, m.Value, m.Desc})
			}
			addTable([]string{"Chỉ số", "Giá trị", "Mô tả"}, rows)
		case deck.KindHighlight:
			sec.AddText(quote(sl.Main),
				&style.FontStyle{Size: 13, Color: deck.Dark.Hex(), Italic: true},
				&style.ParagraphStyle{Alignment: style.AlignCenter})
			if sl.Sub != "" {
				sec.AddText(sl.Sub,
					&style.FontStyle{Size: 10, Color: deck.Muted.Hex()},
					&style.ParagraphStyle{Alignment: style.AlignCenter})
			}
		}

		sec.AddTextBreak(1)
	}

	data, err := doc.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to write Word file: %w", err)
	}

	return data, nil
}
