package ui

import (
	"fmt"
	"strings"

	"stockprofit/internal/form"

	"github.com/charmbracelet/lipgloss"
)

var fieldLabels = [fieldCount]string{
	fieldTicker:       "Ticker",
	fieldPurchaseDate: "Purchase date",
	fieldShares:       "Shares",
}

// View renders the form, or the alert on top of everything while one is open.
func (m Model) View() string {
	if m.alert != "" {
		return m.renderAlert()
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Stock Profit Calculator"))
	b.WriteString("\n")

	for i, in := range m.inputs {
		label := m.styles.Label
		if i == m.focus {
			label = m.styles.FocusedLabel
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[i]), in.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.pending {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(m.styles.Status.Render(m.status))
	b.WriteString("\n")

	if pane := m.output.View(); pane != "" {
		style := m.styles.Output
		if m.outKind != form.OutcomeReveal {
			style = m.styles.OutputError
		}
		b.WriteString("\n")
		b.WriteString(style.Render(pane))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render(m.helpLine()))
	return b.String()
}

func (m Model) helpLine() string {
	return fmt.Sprintf("tab: next field • enter: submit • esc: cancel • ctrl+c: quit • %s", m.opts.Endpoint)
}

func (m Model) renderAlert() string {
	box := m.styles.Alert.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.AlertTitle.Render(m.alert),
			"",
			m.styles.Status.Render("press enter to continue"),
		),
	)
	return lipgloss.Place(m.layout.TerminalWidth, m.layout.TerminalHeight, lipgloss.Center, lipgloss.Center, box)
}
