package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"pcqmdeck/buildinfo"
	"pcqmdeck/config"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PCQM_DECK_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("PCQM_DECK_LANG", "en")
	t.Setenv("PCQM_DECK_FORMATS", "pptx")
	return dir
}

func TestCLI_DefaultRun(t *testing.T) {
	dir := isolate(t)
	t.Chdir(dir)

	out, err := runCLI(t)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	want := "Presentation saved to: " + config.DefaultOutput + "\nTotal slides: 21\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestCLI_GenerateExtraFormatsVietnamese(t *testing.T) {
	dir := isolate(t)
	output := filepath.Join(dir, "deck.pptx")

	out, err := runCLI(t, "generate", "-o", output, "-f", "pdf", "--lang", "vi")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"Đã lưu bài trình bày tại: " + output,
		"Tổng số slide: 21",
		"Đã lưu PDF tại: " + filepath.Join(dir, "deck.pdf"),
	}
	if len(lines) != len(want) {
		t.Fatalf("output lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestCLI_InspectAndHistory(t *testing.T) {
	dir := isolate(t)
	output := filepath.Join(dir, "deck.pptx")

	if _, err := runCLI(t, "-o", output); err != nil {
		t.Fatalf("generate error: %v", err)
	}

	out, err := runCLI(t, "inspect", output)
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 22 {
		t.Fatalf("inspect printed %d lines, want header + 21", len(lines))
	}
	if !strings.Contains(lines[1], "HỆ THỐNG QUẢN LÝ CHI PHÍ / & CHẤT LƯỢNG DỰ ÁN") {
		t.Errorf("first slide line = %q", lines[1])
	}

	out, err = runCLI(t, "history", "--limit", "5")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if !strings.Contains(out, output) || !strings.Contains(out, "pptx") {
		t.Errorf("history output missing the generated file:\n%s", out)
	}
}

func TestCLI_HistoryEmpty(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "history")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if strings.TrimSpace(out) != "No generations recorded yet" {
		t.Errorf("history output = %q", out)
	}
}

func TestCLI_Errors(t *testing.T) {
	dir := isolate(t)

	if _, err := runCLI(t, "-o", filepath.Join(dir, "x.pptx"), "-f", "odp"); err == nil {
		t.Error("unsupported format accepted")
	}
	if _, err := runCLI(t, "inspect", filepath.Join(dir, "missing.pptx")); err == nil {
		t.Error("inspect of a missing file succeeded")
	}
	if _, err := runCLI(t, "--config", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestCLI_DBStatusAndRollback(t *testing.T) {
	dir := isolate(t)
	if _, err := runCLI(t, "-o", filepath.Join(dir, "deck.pptx")); err != nil {
		t.Fatalf("generate error: %v", err)
	}

	out, err := runCLI(t, "db", "status")
	if err != nil {
		t.Fatalf("db status error: %v", err)
	}
	if strings.TrimSpace(out) != "Schema versions: 1, 2" {
		t.Errorf("db status output = %q", out)
	}

	out, err = runCLI(t, "db", "rollback", "2")
	if err != nil {
		t.Fatalf("db rollback error: %v", err)
	}
	if strings.TrimSpace(out) != "Rolled back migration 2" {
		t.Errorf("db rollback output = %q", out)
	}

	out, err = runCLI(t, "db", "status")
	if err != nil {
		t.Fatalf("db status error: %v", err)
	}
	if strings.TrimSpace(out) != "Schema versions: 1" {
		t.Errorf("db status after rollback = %q", out)
	}

	if _, err := runCLI(t, "db", "rollback", "two"); err == nil {
		t.Error("non-numeric rollback version accepted")
	}
	if _, err := runCLI(t, "db", "rollback", "2"); err == nil {
		t.Error("rollback of an unapplied migration succeeded")
	}
}

func TestCLI_Version(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(out) != buildinfo.String() {
		t.Errorf("version output = %q", out)
	}
}
