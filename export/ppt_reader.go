package export

import (
	"fmt"
	"os"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

// SlideSummary is the text found on one slide of a saved presentation
type SlideSummary struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Texts  []string `json:"texts,omitempty"`
}

// Inspect reads a PPTX file and returns a text summary per slide. The first
// non-empty text shape is taken as the slide title; multi-paragraph shapes
// are joined with newlines.
func Inspect(filePath string) ([]SlideSummary, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PPT file: %w", err)
	}

	slides := pres.GetAllSlides()
	if len(slides) == 0 {
		return nil, fmt.Errorf("PPT file has no slides")
	}

	summaries := make([]SlideSummary, 0, len(slides))
	for i, slide := range slides {
		sum := SlideSummary{Number: i + 1}

		for _, shape := range slide.GetShapes() {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			text := shapeText(rts)
			if text == "" {
				continue
			}
			if sum.Title == "" {
				sum.Title = text
			} else {
				sum.Texts = append(sum.Texts, text)
			}
		}

		summaries = append(summaries, sum)
	}

	return summaries, nil
}

// InspectBytes summarizes an in-memory PPTX. The reader only opens files, so
// the data is staged in a temporary file.
func InspectBytes(data []byte) ([]SlideSummary, error) {
	tmp, err := os.CreateTemp("", "pcqmdeck-*.pptx")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}
	return Inspect(tmp.Name())
}

func shapeText(rts *ppt.RichTextShape) string {
	var lines []string
	for _, para := range rts.GetParagraphs() {
		var text string
		for _, elem := range para.GetElements() {
			if run, ok := elem.(*ppt.TextRun); ok {
				text += run.GetText()
			}
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

// SlideCount returns the number of slides in a saved presentation
func SlideCount(filePath string) (int, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PPT file: %w", err)
	}
	return len(pres.GetAllSlides()), nil
}
