package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Logger writes timestamped lines to a per-run log file
type Logger struct {
	file   *os.File
	mirror io.Writer
	runID  string
	mu     sync.Mutex
}

// NewLogger creates a new Logger instance
func NewLogger() *Logger {
	return &Logger{}
}

// Init opens a new log file in logDir. Files are named by date with a
// counter so each run gets its own file.
func (l *Logger) Init(logDir string, runID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	dateStr := time.Now().Format("2006-01-02")
	pattern := filepath.Join(logDir, fmt.Sprintf("pcqmdeck_%s_*.log", dateStr))
	matches, _ := filepath.Glob(pattern)
	runCount := nextRunNumber(matches)
	filename := filepath.Join(logDir, fmt.Sprintf("pcqmdeck_%s_%d.log", dateStr, runCount))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	l.file = f
	l.runID = runID
	l.logInternal("Run started")
	return nil
}

// nextRunNumber returns one past the highest run suffix among the given
// pcqmdeck_<date>_<n>.log files, so gaps never reuse an existing file.
func nextRunNumber(matches []string) int {
	highest := 0
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), ".log")
		idx := strings.LastIndex(name, "_")
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(name[idx+1:])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

// Path returns the current log file path, or "" before Init
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// SetMirror copies every line to w as well, e.g. stderr under --debug
func (l *Logger) SetMirror(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mirror = w
}

// Log writes a message to the log file
func (l *Logger) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logInternal(message)
}

// Logf writes a formatted message to the log file
func (l *Logger) Logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logInternal(fmt.Sprintf(format, args...))
}

func (l *Logger) logInternal(message string) {
	if l.file == nil && l.mirror == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	line := fmt.Sprintf("[%s] %s\n", timestamp, message)
	if l.runID != "" {
		line = fmt.Sprintf("[%s] [%s] %s\n", timestamp, shortID(l.runID), message)
	}

	if l.file != nil {
		io.WriteString(l.file, line)
	}
	if l.mirror != nil {
		io.WriteString(l.mirror, line)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.logInternal("Run finished")
		l.file.Close()
		l.file = nil
	}
}
