package typewriter

import (
	"io"
	"strings"
	"sync"
)

// WriterSurface streams revealed text to an io.Writer, such as a terminal.
// A terminal grows with its content, so Fit only records the line count.
type WriterSurface struct {
	mu     sync.Mutex
	w      io.Writer
	text   strings.Builder
	height int
}

// NewWriterSurface returns a Surface that writes to w.
func NewWriterSurface(w io.Writer) *WriterSurface {
	return &WriterSurface{w: w}
}

func (s *WriterSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text.Reset()
	s.height = 0
}

func (s *WriterSurface) Append(str string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text.WriteString(str)
	_, _ = io.WriteString(s.w, str)
}

func (s *WriterSurface) SetText(str string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text.Reset()
	s.text.WriteString(str)
	_, _ = io.WriteString(s.w, str)
}

func (s *WriterSurface) Fit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height = lineCount(s.text.String())
}

// Text returns everything shown since the last Clear.
func (s *WriterSurface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text.String()
}

// Height returns the line count recorded by the last Fit.
func (s *WriterSurface) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

func lineCount(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
