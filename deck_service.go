package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"pcqmdeck/database"
	"pcqmdeck/deck"
	"pcqmdeck/export"
	"pcqmdeck/i18n"
	"pcqmdeck/logger"
)

// GenerateRequest describes one generation run
type GenerateRequest struct {
	Output  string
	Formats []export.Format
	Lang    i18n.Language
	RunID   string
}

// OutputFile is one file written by a run
type OutputFile struct {
	Format export.Format `json:"format"`
	Path   string        `json:"path"`
	Size   int64         `json:"size"`
	SHA256 string        `json:"sha256"`
}

// Result summarizes a generation run
type Result struct {
	RunID      string       `json:"runId"`
	SlideCount int          `json:"slideCount"`
	Files      []OutputFile `json:"files"`
}

// Presentation returns the PPTX entry of the result
func (r *Result) Presentation() (OutputFile, bool) {
	for _, f := range r.Files {
		if f.Format == export.FormatPPTX {
			return f, true
		}
	}
	return OutputFile{}, false
}

// DeckService builds the overview deck and writes it in the requested formats
type DeckService struct {
	renderer *export.Renderer
	history  *database.HistoryService
	log      *logger.Logger
	build    func() deck.Deck
}

// NewDeckService creates a DeckService. history and log may be nil.
func NewDeckService(history *database.HistoryService, log *logger.Logger) *DeckService {
	return &DeckService{
		renderer: export.NewRenderer(),
		history:  history,
		log:      log,
		build:    deck.Overview,
	}
}

func (s *DeckService) logf(format string, args ...interface{}) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}

// Generate renders the deck, writes every requested format next to the
// presentation path and records each file in the history store.
func (s *DeckService) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if req.Output == "" {
		return nil, WrapError("DeckService", "Generate", fmt.Errorf("output path is required"))
	}
	formats := req.Formats
	if len(formats) == 0 {
		formats = []export.Format{export.FormatPPTX}
	}
	runID := req.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	d := s.build()
	if err := d.Validate(); err != nil {
		return nil, WrapError("DeckService", "Validate", err)
	}
	s.logf("[GENERATE] run %s: %d slides, formats %v", runID, d.Len(), formats)

	result := &Result{RunID: runID, SlideCount: d.Len()}

	for _, f := range formats {
		if err := ctx.Err(); err != nil {
			return nil, WrapError("DeckService", "Generate", err)
		}

		data, err := s.renderer.Render(f, d)
		if err != nil {
			s.logf("[GENERATE] render %s failed: %v", f, err)
			return nil, WrapError("DeckService", "Render", WrapOperationErrorf("render %s", err, f))
		}

		path := export.OutputPath(req.Output, f)
		if err := writeFile(path, data); err != nil {
			s.logf("[GENERATE] write %s failed: %v", path, err)
			return nil, WrapError("DeckService", "Write", err)
		}

		if f == export.FormatPPTX {
			if err := verifySlideCount(path, d.Len()); err != nil {
				s.logf("[GENERATE] verify %s failed: %v", path, err)
				return nil, WrapError("DeckService", "Verify", err)
			}
		}

		sum := sha256.Sum256(data)
		out := OutputFile{
			Format: f,
			Path:   path,
			Size:   int64(len(data)),
			SHA256: hex.EncodeToString(sum[:]),
		}
		result.Files = append(result.Files, out)
		s.logf("[GENERATE] wrote %s (%d bytes, sha256 %s)", out.Path, out.Size, out.SHA256[:12])

		s.record(ctx, runID, req.Lang, d.Len(), out)
	}

	return result, nil
}

// record stores a history row. The files are already on disk, so a failure
// here is logged and does not fail the run.
func (s *DeckService) record(ctx context.Context, runID string, lang i18n.Language, slides int, out OutputFile) {
	if s.history == nil {
		return
	}
	abs, err := filepath.Abs(out.Path)
	if err != nil {
		abs = out.Path
	}
	_, err = s.history.Record(ctx, database.Generation{
		RunID:      runID,
		Format:     string(out.Format),
		OutputPath: abs,
		SlideCount: slides,
		SizeBytes:  out.Size,
		SHA256:     out.SHA256,
		Lang:       lang.Code(),
	})
	if err != nil {
		s.logf("[HISTORY] record %s failed: %v", out.Path, err)
	}
}

// writeFile creates missing parent directories and writes data
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return WrapOperationError("create output directory", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WrapOperationErrorf("write %s", err, filepath.Base(path))
	}
	return nil
}

func verifySlideCount(path string, want int) error {
	got, err := export.SlideCount(path)
	if err != nil {
		return WrapOperationError("read back presentation", err)
	}
	if got != want {
		return fmt.Errorf("presentation has %d slides, want %d", got, want)
	}
	return nil
}
