package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"pcqmdeck/deck"
)

// GoPPTService renders a deck to PowerPoint using GoPPT (pure Go, zero dependencies)
type GoPPTService struct{}

// NewGoPPTService creates a new GoPPT service
func NewGoPPTService() *GoPPTService {
	return &GoPPTService{}
}

// Slide geometry is authored on a 13.333 x 7.5 inch canvas and scaled onto
// GoPPT's 10 x 5.625 inch 16:9 page. Font sizes below are already scaled.
const (
	emuPerInch  = 914400
	canvasScale = 0.75

	designWidth  = 13.333
	designHeight = 7.5

	gopptSlideWidth  = int64(10.0 * emuPerInch)
	gopptSlideHeight = int64(5.625 * emuPerInch)

	// 字号 (pt), design size x 0.75
	fontCoverTitle     = 33 // 44
	fontCoverSubtitle  = 18 // 24
	fontSectionTitle   = 30 // 40
	fontSectionSub     = 15 // 20
	fontHeader         = 21 // 28
	fontBullet         = 15 // 20
	fontTableHead      = 11 // 14
	fontTableCell      = 9  // 12
	fontCardName       = 9  // 12
	fontCardValue      = 21 // 28
	fontCardDesc       = 8  // 11
	fontHighlightTitle = 18 // 24
	fontHighlightMain  = 20 // 26
	fontHighlightSub   = 12 // 16

	headerBarHeight = 1.2
	maxTableHeight  = 5.0
	tableRowHeight  = 0.5
)

// emu converts a design-canvas length in inches to scaled EMU
func emu(inches float64) int64 {
	return int64(math.Round(inches * canvasScale * emuPerInch))
}

// helper: create a solid fill
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

func color(c deck.Color) ppt.Color {
	return ppt.NewColor(c.ARGB())
}

// Render builds the whole deck and returns the PPTX bytes
func (s *GoPPTService) Render(d deck.Deck) ([]byte, error) {
	if d.Len() == 0 {
		return nil, fmt.Errorf("deck has no slides")
	}

	p := ppt.New()
	p.GetDocumentProperties().Title = d.Title
	p.GetDocumentProperties().Creator = d.Author

	for i, sl := range d.Slides {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}

		switch sl.Kind {
		case deck.KindTitle:
			s.addTitleSlide(slide, sl)
		case deck.KindSection:
			s.addSectionSlide(slide, sl)
		case deck.KindContent:
			s.addContentSlide(slide, sl)
		case deck.KindTable:
			s.addTableSlide(slide, sl)
		case deck.KindMetrics:
			s.addMetricsSlide(slide, sl)
		case deck.KindHighlight:
			s.addHighlightSlide(slide, sl)
		default:
			return nil, fmt.Errorf("slide %d: unsupported kind %s", i+1, sl.Kind)
		}
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}

	return buf.Bytes(), nil
}

// box places an empty rich text shape using design-canvas inches
func box(slide *ppt.Slide, x, y, w, h float64) *ppt.RichTextShape {
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(emu(x)).SetOffsetY(emu(y))
	shape.SetWidth(emu(w)).SetHeight(emu(h))
	return shape
}

// rect places a filled rectangle
func rect(slide *ppt.Slide, x, y, w, h float64, fill deck.Color) *ppt.RichTextShape {
	shape := box(slide, x, y, w, h)
	shape.SetFill(solidFill(fill.ARGB()))
	return shape
}

// fullBleed covers the whole page, avoiding rounding gaps at the edges
func fullBleed(slide *ppt.Slide, fill deck.Color) {
	bg := slide.CreateRichTextShape()
	bg.SetOffsetX(0).SetOffsetY(0)
	bg.SetWidth(gopptSlideWidth).SetHeight(gopptSlideHeight)
	bg.SetFill(solidFill(fill.ARGB()))
}

// headerBar draws the full-width band behind content slide titles
func headerBar(slide *ppt.Slide) {
	bar := slide.CreateRichTextShape()
	bar.SetOffsetX(0).SetOffsetY(0)
	bar.SetWidth(gopptSlideWidth).SetHeight(emu(headerBarHeight))
	bar.SetFill(solidFill(deck.Primary.ARGB()))
}

// addSlideHeader adds the header band and white title used by content, table and metrics slides
func (s *GoPPTService) addSlideHeader(slide *ppt.Slide, title string) {
	headerBar(slide)

	titleShape := box(slide, 0.5, 0.3, 12, 0.7)
	tr := titleShape.CreateTextRun(title)
	tr.GetFont().SetSize(fontHeader).SetBold(true).SetColor(color(deck.White))
}

// addTitleSlide adds a full-bleed cover slide
func (s *GoPPTService) addTitleSlide(slide *ppt.Slide, sl deck.Slide) {
	fullBleed(slide, deck.Primary)

	titleShape := box(slide, 0.5, 2.5, 12.333, 1.5)
	for i, line := range sl.TitleLines() {
		if i > 0 {
			titleShape.CreateParagraph()
		}
		tr := titleShape.CreateTextRun(line)
		tr.GetFont().SetSize(fontCoverTitle).SetBold(true).SetColor(color(deck.White))
		alignCenter(titleShape.GetActiveParagraph())
	}

	subShape := box(slide, 0.5, 4.2, 12.333, 1)
	tr := subShape.CreateTextRun(sl.Subtitle)
	tr.GetFont().SetSize(fontCoverSubtitle).SetColor(color(deck.SubtitleBlue))
	alignCenter(subShape.GetActiveParagraph())
}

// addSectionSlide adds a divider with an accent bar on the left
func (s *GoPPTService) addSectionSlide(slide *ppt.Slide, sl deck.Slide) {
	bar := slide.CreateRichTextShape()
	bar.SetOffsetX(0).SetOffsetY(0)
	bar.SetWidth(emu(0.3)).SetHeight(gopptSlideHeight)
	bar.SetFill(solidFill(deck.Primary.ARGB()))

	titleShape := box(slide, 0.8, 2.8, 12, 1.2)
	tr := titleShape.CreateTextRun(sl.Title)
	tr.GetFont().SetSize(fontSectionTitle).SetBold(true).SetColor(color(deck.Dark))

	if sl.Subtitle != "" {
		subShape := box(slide, 0.8, 4.2, 12, 0.8)
		subTr := subShape.CreateTextRun(sl.Subtitle)
		subTr.GetFont().SetSize(fontSectionSub).SetColor(color(deck.Muted))
	}
}

// addContentSlide adds a bullet list
func (s *GoPPTService) addContentSlide(slide *ppt.Slide, sl deck.Slide) {
	s.addSlideHeader(slide, sl.DisplayTitle())

	contentShape := box(slide, 0.5, 1.5, 12.333, 5.5)
	for i, item := range sl.Items {
		if i > 0 {
			contentShape.CreateParagraph()
		}

		tr := contentShape.CreateTextRun(deck.Bullet(item))
		tr.GetFont().SetSize(fontBullet).SetColor(color(deck.Dark))
	}
}

// tableGeometry returns the table origin, column width and row height in design inches
func tableGeometry(cols, rows int) (x, y, colWidth, rowHeight float64) {
	const width = 12.333
	height := math.Min(tableRowHeight*float64(rows), maxTableHeight)
	return 0.5, 1.6, width / float64(cols), height / float64(rows)
}

// addTableSlide draws the table as a grid of filled cells
func (s *GoPPTService) addTableSlide(slide *ppt.Slide, sl deck.Slide) {
	s.addSlideHeader(slide, sl.DisplayTitle())

	tbl := sl.Table
	x0, y0, colWidth, rowHeight := tableGeometry(len(tbl.Headers), len(tbl.Rows)+1)

	// Header row
	for c, header := range tbl.Headers {
		cell := rect(slide, x0+float64(c)*colWidth, y0, colWidth, rowHeight, deck.Secondary)
		tr := cell.CreateTextRun(header)
		tr.GetFont().SetSize(fontTableHead).SetBold(true).SetColor(color(deck.White))
		alignCenter(cell.GetActiveParagraph())
	}

	// Data rows, even rows banded
	for r, row := range tbl.Rows {
		fill := deck.White
		if r%2 == 0 {
			fill = deck.Light
		}
		y := y0 + float64(r+1)*rowHeight
		for c := 0; c < len(tbl.Headers) && c < len(row); c++ {
			cell := rect(slide, x0+float64(c)*colWidth, y, colWidth, rowHeight, fill)
			tr := cell.CreateTextRun(row[c])
			tr.GetFont().SetSize(fontTableCell).SetColor(color(deck.Dark))
		}
	}
}

// cardOrigin returns the top-left corner of metric card i in design inches
func cardOrigin(i int) (x, y float64) {
	const (
		cardWidth  = 3.8
		cardHeight = 2.2
		startX     = 0.5
		startY     = 1.6
		gapX       = 0.3
		gapY       = 0.3
	)
	row, col := i/3, i%3
	return startX + float64(col)*(cardWidth+gapX), startY + float64(row)*(cardHeight+gapY)
}

// addMetricsSlide adds up to six metric cards in a 2 x 3 grid
func (s *GoPPTService) addMetricsSlide(slide *ppt.Slide, sl deck.Slide) {
	s.addSlideHeader(slide, sl.DisplayTitle())

	const (
		cardWidth  = 3.8
		cardHeight = 2.2
	)

	for i, metric := range sl.Cards() {
		x, y := cardOrigin(i)

		rect(slide, x, y, cardWidth, cardHeight, deck.CardFill)

		nameShape := box(slide, x+0.2, y+0.2, cardWidth-0.4, 0.4)
		nameTr := nameShape.CreateTextRun(metric.Name)
		nameTr.GetFont().SetSize(fontCardName).SetColor(color(deck.Muted))

		valueShape := box(slide, x+0.2, y+0.6, cardWidth-0.4, 0.8)
		valueTr := valueShape.CreateTextRun(metric.Value)
		valueTr.GetFont().SetSize(fontCardValue).SetBold(true).SetColor(color(metric.ValueColor()))

		descShape := box(slide, x+0.2, y+1.5, cardWidth-0.4, 0.5)
		descTr := descShape.CreateTextRun(metric.Desc)
		descTr.GetFont().SetSize(fontCardDesc).SetColor(color(deck.Muted))
	}
}

// addHighlightSlide adds a quote slide on a light background
func (s *GoPPTService) addHighlightSlide(slide *ppt.Slide, sl deck.Slide) {
	fullBleed(slide, deck.HighlightBackground)
	rect(slide, 6, 2.5, 0.15, 2.5, deck.Primary)

	titleShape := box(slide, 0.5, 0.5, 12, 0.8)
	titleTr := titleShape.CreateTextRun(sl.Title)
	titleTr.GetFont().SetSize(fontHighlightTitle).SetBold(true).SetColor(color(deck.Primary))

	mainShape := box(slide, 0.8, 2.8, 11.5, 2)
	mainTr := mainShape.CreateTextRun(quote(sl.Main))
	mainTr.GetFont().SetSize(fontHighlightMain).SetColor(color(deck.Dark))
	alignCenter(mainShape.GetActiveParagraph())

	if sl.Sub != "" {
		subShape := box(slide, 0.8, 5.5, 11.5, 1)
		subTr := subShape.CreateTextRun(sl.Sub)
		subTr.GetFont().SetSize(fontHighlightSub).SetColor(color(deck.Muted))
		alignCenter(subShape.GetActiveParagraph())
	}
}

func quote(s string) string {
	return `"` + strings.TrimSpace(s) + `"`
}
