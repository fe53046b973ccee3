// Package typewriter reveals a complete string onto a display surface one
// character at a time.
//
// The reveal is a small linear state machine: idle, then revealing with an
// index from 0 to n, then done. It cannot be resumed once stopped.
package typewriter

import (
	"context"
	"time"

	"stockprofit/internal/logging"
)

// DefaultInterval is the cadence between two revealed characters.
const DefaultInterval = 50 * time.Millisecond

// Surface is the display element text is revealed onto.
type Surface interface {
	// Clear empties the text and resets the height.
	Clear()
	// Append adds s to the end of the current text.
	Append(s string)
	// SetText replaces the current text in one step.
	SetText(s string)
	// Fit resizes the surface to its natural content height.
	Fit()
}

// Typewriter holds the reveal state for one string.
type Typewriter struct {
	text  []rune
	index int
}

// New creates a Typewriter for text. Characters are Unicode code points.
func New(text string) *Typewriter {
	return &Typewriter{text: []rune(text)}
}

// Next returns the next character to reveal and advances. ok is false once
// the whole text has been revealed.
func (t *Typewriter) Next() (ch string, ok bool) {
	if t.index >= len(t.text) {
		return "", false
	}
	ch = string(t.text[t.index])
	t.index++
	return ch, true
}

// Revealed returns the prefix revealed so far.
func (t *Typewriter) Revealed() string {
	return string(t.text[:t.index])
}

// Done reports whether every character has been revealed.
func (t *Typewriter) Done() bool {
	return t.index >= len(t.text)
}

// Len returns the number of characters in the full text.
func (t *Typewriter) Len() int {
	return len(t.text)
}

// Index returns how many characters have been revealed.
func (t *Typewriter) Index() int {
	return t.index
}

// Run clears s and reveals text onto it, one character per interval,
// fitting s after every character. It returns nil once the text is fully
// revealed and ctx.Err() if ctx is cancelled first; a cancelled reveal
// leaves the prefix already shown in place.
func Run(ctx context.Context, s Surface, text string, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := logging.Get(logging.CategoryAnimation)

	tw := New(text)
	s.Clear()
	if tw.Done() {
		s.Fit()
		return nil
	}
	log.Debug("revealing %d characters every %v", tw.Len(), interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("reveal stopped at %d/%d", tw.Index(), tw.Len())
			return ctx.Err()
		case <-ticker.C:
			ch, _ := tw.Next()
			s.Append(ch)
			s.Fit()
			if tw.Done() {
				return nil
			}
		}
	}
}
