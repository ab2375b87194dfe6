package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"pcqmdeck/deck"
)

// PDFExportService renders a printable handout of the deck using maroto
type PDFExportService struct{}

// NewPDFExportService creates a new PDF export service
func NewPDFExportService() *PDFExportService {
	return &PDFExportService{}
}

func pdfColor(c deck.Color) *props.Color {
	return &props.Color{Red: int(c.R), Green: int(c.G), Blue: int(c.B)}
}

// ExportHandout writes one block per slide. The core Arial font only covers
// Latin-1, so text is folded to its unaccented form first.
func (s *PDFExportService) ExportHandout(d deck.Deck) ([]byte, error) {
	if d.Len() == 0 {
		return nil, fmt.Errorf("deck has no slides")
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithTitle(Fold(d.Title), false).
		WithAuthor(Fold(d.Author), false).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithDefaultFont(&props.Font{
			Family: fontfamily.Arial,
			Size:   10,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		col.New(12).Add(
			text.New(Fold(d.Title), props.Text{
				Family: fontfamily.Arial,
				Size:   18,
				Style:  fontstyle.Bold,
				Align:  align.Center,
				Color:  pdfColor(deck.Primary),
			}),
		),
	)
	m.AddRow(5)

	for i, sl := range d.Slides {
		s.addSlideHeading(m, i+1, sl)

		switch sl.Kind {
		case deck.KindTitle, deck.KindSection:
			if sl.Subtitle != "" {
				s.addLine(m, sl.Subtitle, 10, fontstyle.Italic, deck.Muted)
			}
		case deck.KindContent:
			for _, item := range sl.Items {
				s.addLine(m, deck.Bullet(item), 10, fontstyle.Normal, deck.Dark)
			}
		case deck.KindTable:
			s.addTable(m, sl.Table.Headers, sl.Table.Rows)
		case deck.KindMetrics:
			rows := make([][]string, 0, len(sl.Cards()))
			for _, c := range sl.Cards() {
				rows = append(rows, []string{c.Name, c.Value, c.Desc})
			}
			s.addTable(m, []string{"Chỉ số", "Giá trị", "Mô tả"}, rows)
		case deck.KindHighlight:
			s.addLine(m, quote(sl.Main), 11, fontstyle.Italic, deck.Dark)
			if sl.Sub != "" {
				s.addLine(m, sl.Sub, 9, fontstyle.Normal, deck.Muted)
			}
		}

		m.AddRow(5)
	}

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return document.GetBytes(), nil
}

func (s *PDFExportService) addSlideHeading(m core.Maroto, number int, sl deck.Slide) {
	title := strings.ReplaceAll(sl.DisplayTitle(), "\n", " ")
	m.AddRow(9,
		col.New(12).Add(
			text.New(Fold(fmt.Sprintf("%d. %s", number, title)), props.Text{
				Family: fontfamily.Arial,
				Size:   12,
				Style:  fontstyle.Bold,
				Color:  pdfColor(deck.Primary),
			}),
		),
	)
}

func (s *PDFExportService) addLine(m core.Maroto, line string, size float64, style fontstyle.Type, c deck.Color) {
	m.AddRow(6,
		col.New(12).Add(
			text.New(Fold(line), props.Text{
				Family: fontfamily.Arial,
				Size:   size,
				Style:  style,
				Align:  align.Left,
				Color:  pdfColor(c),
			}),
		),
	)
}

func (s *PDFExportService) addTable(m core.Maroto, headers []string, rows [][]string) {
	colWidth := 12 / len(headers)

	headerCols := []core.Col{}
	for _, h := range headers {
		headerCols = append(headerCols, col.New(colWidth).Add(
			text.New(Fold(h), props.Text{
				Family: fontfamily.Arial,
				Size:   8,
				Style:  fontstyle.Bold,
				Align:  align.Center,
				Color:  pdfColor(deck.Secondary),
			}),
		))
	}
	m.AddRow(7, headerCols...)

	for _, row := range rows {
		dataCols := []core.Col{}
		for i := 0; i < len(headers) && i < len(row); i++ {
			dataCols = append(dataCols, col.New(colWidth).Add(
				text.New(Fold(row[i]), props.Text{
					Family: fontfamily.Arial,
					Size:   7,
					Align:  align.Left,
				}),
			))
		}
		m.AddRow(8, dataCols...)
	}
}

// Fold strips combining marks, spells out the few symbols the deck uses and
// drops whatever is still outside Latin-1, such as emoji.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range folded {
		switch r {
		case 'đ':
			r = 'd'
		case 'Đ':
			r = 'D'
		case '≥':
			b.WriteString(">=")
			continue
		case '≤':
			b.WriteString("<=")
			continue
		case '→':
			b.WriteString("->")
			continue
		case '•':
			r = '-'
		}
		if r > 0xFF {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
