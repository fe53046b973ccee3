package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// OutputPane is the display element responses are revealed onto.
// It grows with its wrapped content up to a maximum height and scrolls
// past that, keeping the newest text in view.
type OutputPane struct {
	text      string
	width     int
	maxHeight int
	height    int
	viewport  viewport.Model
}

// NewOutputPane creates an empty pane for the given wrap width and height cap.
func NewOutputPane(width, maxHeight int) *OutputPane {
	p := &OutputPane{viewport: viewport.New(width, 0)}
	p.Resize(width, maxHeight)
	return p
}

// Resize updates the wrap width and height cap and refits the content.
func (p *OutputPane) Resize(width, maxHeight int) {
	p.width = width
	p.maxHeight = maxHeight
	p.viewport.Width = width
	p.Fit()
}

func (p *OutputPane) Clear() {
	p.text = ""
	p.height = 0
	p.viewport.Height = 0
	p.viewport.SetContent("")
}

func (p *OutputPane) Append(s string) {
	p.text += s
}

func (p *OutputPane) SetText(s string) {
	p.text = s
}

// Fit sets the pane height to the wrapped content height, capped at maxHeight.
func (p *OutputPane) Fit() {
	wrapped := p.wrapped()
	h := 0
	if p.text != "" {
		h = lipgloss.Height(wrapped)
	}
	if p.maxHeight > 0 && h > p.maxHeight {
		h = p.maxHeight
	}
	p.height = h
	p.viewport.Height = h
	p.viewport.SetContent(wrapped)
	p.viewport.GotoBottom()
}

// Text returns the full text shown in the pane.
func (p *OutputPane) Text() string {
	return p.text
}

// Height returns the height set by the last Fit.
func (p *OutputPane) Height() int {
	return p.height
}

// View renders the visible part of the pane.
func (p *OutputPane) View() string {
	if p.height == 0 {
		return ""
	}
	return p.viewport.View()
}

func (p *OutputPane) wrapped() string {
	if p.width <= 0 {
		return p.text
	}
	return lipgloss.NewStyle().Width(p.width).Render(p.text)
}
