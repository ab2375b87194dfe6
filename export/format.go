package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"pcqmdeck/deck"
)

// Format is an output file type
type Format string

const (
	FormatPPTX Format = "pptx"
	FormatXLSX Format = "xlsx"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// AllFormats lists every supported format, presentation first
var AllFormats = []Format{FormatPPTX, FormatXLSX, FormatDOCX, FormatPDF}

// ParseFormat accepts a format name or extension, case-insensitively
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch name {
	case "pptx", "ppt", "powerpoint":
		return FormatPPTX, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "docx", "word":
		return FormatDOCX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", s)
	}
}

// ParseFormats parses a list of format names. The presentation is always
// produced and always comes first; duplicates are dropped.
func ParseFormats(names []string) ([]Format, error) {
	out := []Format{FormatPPTX}
	seen := map[Format]bool{FormatPPTX: true}
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFormat(part)
			if err != nil {
				return nil, err
			}
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// OutputPath derives the path for format f from the presentation path
func OutputPath(pptxPath string, f Format) string {
	ext := filepath.Ext(pptxPath)
	return strings.TrimSuffix(pptxPath, ext) + f.Extension()
}

// Renderer turns a deck into file bytes for any supported format
type Renderer struct {
	ppt   *GoPPTService
	excel *GoExcelExportService
	word  *WordExportService
	pdf   *PDFExportService
}

// NewRenderer creates a renderer backed by every export service
func NewRenderer() *Renderer {
	return &Renderer{
		ppt:   NewGoPPTService(),
		excel: NewGoExcelExportService(),
		word:  NewWordExportService(),
		pdf:   NewPDFExportService(),
	}
}

// Render produces the bytes of d in format f
func (r *Renderer) Render(f Format, d deck.Deck) ([]byte, error) {
	switch f {
	case FormatPPTX:
		return r.ppt.Render(d)
	case FormatXLSX:
		return r.excel.ExportTables(d)
	case FormatDOCX:
		return r.word.ExportOutline(d)
	case FormatPDF:
		return r.pdf.ExportHandout(d)
	default:
		return nil, fmt.Errorf("unsupported format: %q", string(f))
	}
}
