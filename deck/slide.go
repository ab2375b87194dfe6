package deck

import (
	"fmt"
	"strings"

	"pcqmdeck/evm"
)

// Color is an sRGB triple
type Color struct {
	R, G, B uint8
}

// RGB builds a Color
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as RRGGBB
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ARGB returns the color as opaque AARRGGBB
func (c Color) ARGB() string {
	return "FF" + c.Hex()
}

// Deck palette
var (
	Primary             = RGB(41, 98, 255)
	Secondary           = RGB(99, 102, 241)
	Success             = RGB(34, 197, 94)
	Warning             = RGB(234, 179, 8)
	Danger              = RGB(239, 68, 68)
	Dark                = RGB(31, 41, 55)
	Light               = RGB(249, 250, 251)
	White               = RGB(255, 255, 255)
	SubtitleBlue        = RGB(219, 234, 254)
	Muted               = RGB(107, 114, 128)
	CardFill            = RGB(243, 244, 246)
	CardBorder          = RGB(209, 213, 219)
	HighlightBackground = RGB(238, 242, 255)
)

// Kind identifies which layout helper renders a slide
type Kind int

const (
	KindTitle Kind = iota
	KindSection
	KindContent
	KindTable
	KindMetrics
	KindHighlight
)

func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindSection:
		return "section"
	case KindContent:
		return "content"
	case KindTable:
		return "table"
	case KindMetrics:
		return "metrics"
	case KindHighlight:
		return "highlight"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MaxMetricCards is the number of cards a metrics slide can hold (2 rows x 3 cols)
const MaxMetricCards = 6

// Metric is one card on a metrics slide
type Metric struct {
	Name  string
	Value string
	Desc  string
	Color *Color // nil renders in Dark
}

// ValueColor returns the card's value color
func (m Metric) ValueColor() Color {
	if m.Color == nil {
		return Dark
	}
	return *m.Color
}

// Table is a header row plus data rows
type Table struct {
	Headers []string
	Rows    [][]string
}

// Slide holds the content of one slide. Which fields matter depends on Kind.
type Slide struct {
	Kind     Kind
	Title    string
	Subtitle string
	Icon     string
	Items    []string
	Table    *Table
	Metrics  []Metric
	Main     string
	Sub      string
}

// DisplayTitle prefixes the title with the slide icon when there is one
func (s Slide) DisplayTitle() string {
	if s.Icon == "" {
		return s.Title
	}
	return s.Icon + " " + s.Title
}

// TitleLines splits a multi-line title
func (s Slide) TitleLines() []string {
	return strings.Split(s.Title, "\n")
}

// Cards returns the metrics that fit on the slide
func (s Slide) Cards() []Metric {
	if len(s.Metrics) > MaxMetricCards {
		return s.Metrics[:MaxMetricCards]
	}
	return s.Metrics
}

// Deck is an ordered list of slides
type Deck struct {
	Title  string
	Author string
	// Figures are the EVM inputs the metric slides are derived from
	Figures evm.Snapshot
	Slides  []Slide
}

// Len returns the slide count
func (d Deck) Len() int {
	return len(d.Slides)
}

// Titles returns every slide's display title in order
func (d Deck) Titles() []string {
	titles := make([]string, 0, len(d.Slides))
	for _, s := range d.Slides {
		titles = append(titles, s.DisplayTitle())
	}
	return titles
}

// NumberedTable is a table slide together with its 1-based position in the deck
type NumberedTable struct {
	Number int
	Slide  Slide
}

// Tables returns every slide that carries a table
func (d Deck) Tables() []NumberedTable {
	var out []NumberedTable
	for i, s := range d.Slides {
		if s.Kind == KindTable && s.Table != nil {
			out = append(out, NumberedTable{Number: i + 1, Slide: s})
		}
	}
	return out
}

// Validate checks structural invariants of the deck
func (d Deck) Validate() error {
	if err := d.Figures.Validate(); err != nil {
		return err
	}
	for i, s := range d.Slides {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("slide %d (%s): empty title", i+1, s.Kind)
		}
		switch s.Kind {
		case KindTable:
			if s.Table == nil || len(s.Table.Headers) == 0 {
				return fmt.Errorf("slide %d: table without headers", i+1)
			}
			for r, row := range s.Table.Rows {
				if len(row) != len(s.Table.Headers) {
					return fmt.Errorf("slide %d: row %d has %d cells, want %d", i+1, r+1, len(row), len(s.Table.Headers))
				}
			}
		case KindMetrics:
			if len(s.Metrics) == 0 {
				return fmt.Errorf("slide %d: metrics slide without cards", i+1)
			}
		case KindContent:
			if len(s.Items) == 0 {
				return fmt.Errorf("slide %d: content slide without items", i+1)
			}
		}
	}
	return nil
}

// Bullet returns the paragraph text for a content item. Every item gets the
// bullet prefix, including blank items and items that already carry one.
func Bullet(item string) string {
	return "• " + item
}
