package ui

import (
	"context"
	"strings"
	"time"

	"stockprofit/internal/config"
	"stockprofit/internal/form"
	"stockprofit/internal/logging"
	"stockprofit/internal/typewriter"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Input indexes
const (
	fieldTicker = iota
	fieldPurchaseDate
	fieldShares
	fieldCount
)

// Options configures a Model.
type Options struct {
	Controller     *form.Controller
	Endpoint       string
	Interval       time.Duration
	CancelPrevious bool
	RenderMarkdown bool
	Theme          string

	// NewPredictor rebuilds the predictor when the config file changes.
	NewPredictor func(*config.Config) form.Predictor
}

// outcomeMsg delivers the result of one fetch.
type outcomeMsg struct {
	gen       uint64
	outcome   form.Outcome
	cancelled bool
}

// revealTickMsg advances the reveal of generation gen by one character.
type revealTickMsg struct {
	gen uint64
}

// ConfigChangedMsg is sent when the watched config file is reloaded.
type ConfigChangedMsg struct {
	Config *config.Config
}

// Model is the interactive stock purchase form.
type Model struct {
	ctx    context.Context
	opts   Options
	styles Styles
	layout LayoutConfig

	inputs []textinput.Model
	focus  int

	output   *OutputPane
	outKind  form.OutcomeKind
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	alert   string
	pending bool
	status  string

	gen    uint64
	cancel context.CancelFunc
	tw     *typewriter.Typewriter
	twGen  uint64
}

// NewModel creates the form. ctx bounds every request the form issues.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = opts.Controller.Interval()
	}
	styles := NewStyles(ThemeFor(opts.Theme))
	layout := NewLayoutConfig(0, 0)

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Width = InputWidth
		in.TextStyle = styles.Input
		in.PlaceholderStyle = styles.Placeholder
		switch i {
		case fieldTicker:
			in.Placeholder = "AAPL"
			in.CharLimit = 16
		case fieldPurchaseDate:
			in.Placeholder = "YYYY-MM-DD"
			in.CharLimit = 10
		case fieldShares:
			in.Placeholder = "10"
			in.CharLimit = 12
		}
		inputs[i] = in
	}
	inputs[fieldTicker].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctx:     ctx,
		opts:    opts,
		styles:  styles,
		layout:  layout,
		inputs:  inputs,
		output:  NewOutputPane(layout.OutputWidth(), layout.OutputMaxHeight()),
		spinner: sp,
		status:  "ready",
	}
	m.renderer = m.newRenderer()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayoutConfig(msg.Width, msg.Height)
		m.output.Resize(m.layout.OutputWidth(), m.layout.OutputMaxHeight())
		m.renderer = m.newRenderer()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case outcomeMsg:
		return m.handleOutcome(msg)

	case revealTickMsg:
		return m.handleTick(msg)

	case ConfigChangedMsg:
		return m.handleConfig(msg.Config), nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}

	// The alert blocks the form until dismissed.
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if m.focus < fieldCount-1 {
			return m, m.setFocus(m.focus + 1)
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	case "esc":
		m.stop()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// Fields returns the current form values.
func (m Model) Fields() form.Fields {
	return form.Fields{
		Ticker:       m.inputs[fieldTicker].Value(),
		PurchaseDate: m.inputs[fieldPurchaseDate].Value(),
		Shares:       m.inputs[fieldShares].Value(),
	}
}

// SetFields fills the form inputs.
func (m *Model) SetFields(f form.Fields) {
	m.inputs[fieldTicker].SetValue(f.Ticker)
	m.inputs[fieldPurchaseDate].SetValue(f.PurchaseDate)
	m.inputs[fieldShares].SetValue(f.Shares)
}

// submit stops the previous submission, clears the output, validates, and
// starts one fetch.
func (m Model) submit() (tea.Model, tea.Cmd) {
	log := logging.Get(logging.CategoryUI)

	// The previous submission stops even when this one fails validation.
	if m.opts.CancelPrevious {
		m.stop()
	}
	m.output.Clear()
	m.output.Fit()

	req, err := m.Fields().Request()
	if err != nil {
		log.Info("validation alert: %v", err)
		m.alert = err.Error()
		return m, nil
	}

	m.gen++
	gen := m.gen
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.pending = true
	m.status = "fetching prediction for " + req.Ticker
	log.Info("submission %d: %s %s x%d", gen, req.Ticker, req.PurchaseDate, req.Shares)

	ctrl := m.opts.Controller
	fetch := func() tea.Msg {
		out := ctrl.Fetch(ctx, req)
		return outcomeMsg{gen: gen, outcome: out, cancelled: ctx.Err() != nil}
	}
	return m, tea.Batch(m.spinner.Tick, fetch)
}

// stop cancels any in-flight request and reveal.
func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.pending || m.tw != nil {
		m.status = "cancelled"
	}
	m.pending = false
	m.tw = nil
}

func (m Model) handleOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	if msg.cancelled {
		return m, nil
	}
	if m.opts.CancelPrevious && msg.gen != m.gen {
		return m, nil
	}
	if msg.gen == m.gen {
		m.pending = false
	}

	m.outKind = msg.outcome.Kind
	if msg.outcome.Kind != form.OutcomeReveal {
		m.tw = nil
		m.output.SetText(msg.outcome.Text)
		m.output.Fit()
		m.status = msg.outcome.Kind.String()
		return m, nil
	}

	m.tw = typewriter.New(msg.outcome.Text)
	m.twGen = msg.gen
	m.output.Clear()
	if m.tw.Done() {
		m.output.Fit()
		return m.finishReveal(), nil
	}
	m.status = "revealing"
	return m, m.tick(msg.gen)
}

func (m Model) tick(gen uint64) tea.Cmd {
	return tea.Tick(m.opts.Interval, func(time.Time) tea.Msg {
		return revealTickMsg{gen: gen}
	})
}

func (m Model) handleTick(msg revealTickMsg) (tea.Model, tea.Cmd) {
	if m.tw == nil || msg.gen != m.twGen {
		return m, nil
	}
	if ch, ok := m.tw.Next(); ok {
		m.output.Append(ch)
		m.output.Fit()
	}
	if m.tw.Done() {
		return m.finishReveal(), nil
	}
	return m, m.tick(msg.gen)
}

func (m Model) finishReveal() Model {
	text := m.tw.Revealed()
	m.tw = nil
	m.status = "done"
	if m.opts.RenderMarkdown && m.renderer != nil && text != "" {
		rendered, err := m.renderer.Render(text)
		if err != nil {
			logging.Get(logging.CategoryUI).Warn("markdown render failed: %v", err)
			return m
		}
		m.output.SetText(strings.TrimRight(rendered, "\n"))
		m.output.Fit()
	}
	return m
}

func (m Model) handleConfig(cfg *config.Config) Model {
	if m.opts.NewPredictor != nil {
		m.opts.Controller.SetPredictor(m.opts.NewPredictor(cfg))
	}
	m.opts.Endpoint = cfg.Endpoint.URL
	m.opts.Interval = cfg.GetInterval()
	m.opts.CancelPrevious = cfg.Animation.CancelPrevious
	m.status = "config reloaded"
	logging.UI("using endpoint %s", cfg.Endpoint.URL)
	return m
}

func (m Model) newRenderer() *glamour.TermRenderer {
	if !m.opts.RenderMarkdown {
		return nil
	}
	style := "light"
	if m.styles.Theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(m.layout.OutputWidth()),
	)
	if err != nil {
		logging.Get(logging.CategoryUI).Warn("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

// Output exposes the output pane.
func (m Model) Output() *OutputPane {
	return m.output
}

// Alert returns the validation message currently blocking the form.
func (m Model) Alert() string {
	return m.alert
}

// Pending reports whether a request is outstanding.
func (m Model) Pending() bool {
	return m.pending
}
