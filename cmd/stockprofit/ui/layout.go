package ui

// Layout constants for the form and output pane
const (
	LabelWidth        = 16
	InputWidth        = 24
	OutputPaddingLeft = 2
	OutputBorderWidth = 1

	// Rows used by everything that is not the output pane:
	// header, three inputs, status, footer and margins.
	ChromeHeight = 10

	MinimumOutputWidth  = 20
	MinimumOutputHeight = 3
	DefaultWidth        = 80
	DefaultHeight       = 24
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return LayoutConfig{TerminalWidth: width, TerminalHeight: height}
}

// OutputWidth returns the wrap width for response text
func (l LayoutConfig) OutputWidth() int {
	w := l.TerminalWidth - OutputPaddingLeft - OutputBorderWidth - 1
	if w < MinimumOutputWidth {
		return MinimumOutputWidth
	}
	return w
}

// OutputMaxHeight returns how tall the output pane may grow
func (l LayoutConfig) OutputMaxHeight() int {
	h := l.TerminalHeight - ChromeHeight
	if h < MinimumOutputHeight {
		return MinimumOutputHeight
	}
	return h
}
