package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogger_WritesRunFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := NewLogger()
	if err := l.Init(dir, "0123456789abcdef"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	path := l.Path()
	l.Logf("rendered %d slides", 21)
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	content := string(data)
	for _, want := range []string{"[01234567] Run started", "[01234567] rendered 21 slides", "Run finished"} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q:\n%s", want, content)
		}
	}
	if l.Path() != "" {
		t.Error("Path() after Close should be empty")
	}
}

func TestLogger_NewFilePerRun(t *testing.T) {
	dir := t.TempDir()

	first := NewLogger()
	if err := first.Init(dir, "a"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	firstPath := first.Path()
	first.Close()

	second := NewLogger()
	if err := second.Init(dir, "b"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer second.Close()

	if firstPath == second.Path() {
		t.Errorf("both runs logged to %s", firstPath)
	}
}

func TestLogger_SkipsPastGapInRunNumbers(t *testing.T) {
	dir := t.TempDir()
	date := time.Now().Format("2006-01-02")
	for _, n := range []string{"1", "3"} {
		name := filepath.Join(dir, "pcqmdeck_"+date+"_"+n+".log")
		if err := os.WriteFile(name, []byte("old\n"), 0644); err != nil {
			t.Fatalf("failed to seed %s: %v", name, err)
		}
	}

	l := NewLogger()
	if err := l.Init(dir, "c"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer l.Close()

	want := filepath.Join(dir, "pcqmdeck_"+date+"_4.log")
	if l.Path() != want {
		t.Errorf("Path() = %s, want %s", l.Path(), want)
	}
}

func TestNextRunNumber(t *testing.T) {
	cases := []struct {
		name    string
		matches []string
		want    int
	}{
		{"none", nil, 1},
		{"sequential", []string{"pcqmdeck_2026-01-02_1.log", "pcqmdeck_2026-01-02_2.log"}, 3},
		{"gap", []string{"logs/pcqmdeck_2026-01-02_3.log", "logs/pcqmdeck_2026-01-02_1.log"}, 4},
		{"not a number", []string{"pcqmdeck_2026-01-02_x.log"}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := nextRunNumber(c.matches); got != c.want {
				t.Errorf("nextRunNumber(%v) = %d, want %d", c.matches, got, c.want)
			}
		})
	}
}

func TestLogger_Mirror(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger()
	l.SetMirror(&buf)
	l.Log("before init")

	if !strings.Contains(buf.String(), "before init") {
		t.Errorf("mirror got %q", buf.String())
	}
}

func TestLogger_NoopBeforeInit(t *testing.T) {
	l := NewLogger()
	l.Log("dropped")
	l.Close()
}
