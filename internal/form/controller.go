package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"stockprofit/internal/logging"
	"stockprofit/internal/prediction"
	"stockprofit/internal/typewriter"
)

// Predictor submits one prediction request.
type Predictor interface {
	Predict(ctx context.Context, req prediction.Request) (string, error)
}

// Alerter shows a blocking validation message.
type Alerter interface {
	Alert(msg string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(msg string)

func (f AlerterFunc) Alert(msg string) { f(msg) }

// OutcomeKind classifies how a fetch ended.
type OutcomeKind int

const (
	// OutcomeReveal carries response text to animate.
	OutcomeReveal OutcomeKind = iota
	// OutcomeFailure is a non-2xx reply, shown without animation.
	OutcomeFailure
	// OutcomeError is a transport or parse failure, shown without animation.
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReveal:
		return "reveal"
	case OutcomeFailure:
		return "failure"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the user-visible result of one fetch.
type Outcome struct {
	Kind OutcomeKind
	Text string
}

// Option customizes a Controller.
type Option func(*Controller)

// WithInterval sets the reveal cadence.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithCancelPrevious controls whether a new submission stops the one in flight.
func WithCancelPrevious(enabled bool) Option {
	return func(c *Controller) { c.cancelPrevious = enabled }
}

// Controller runs form submissions.
type Controller struct {
	predictor      Predictor
	alerter        Alerter
	interval       time.Duration
	cancelPrevious bool

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewController creates a controller. Submissions cancel the previous one by default.
func NewController(p Predictor, a Alerter, opts ...Option) *Controller {
	c := &Controller{
		predictor:      p,
		alerter:        a,
		interval:       typewriter.DefaultInterval,
		cancelPrevious: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPredictor swaps the predictor used by later submissions.
func (c *Controller) SetPredictor(p Predictor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.predictor = p
}

// Interval returns the reveal cadence.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Fetch issues exactly one request and maps its result to an Outcome.
func (c *Controller) Fetch(ctx context.Context, req prediction.Request) Outcome {
	c.mu.Lock()
	p := c.predictor
	c.mu.Unlock()

	text, err := p.Predict(ctx, req)
	if err == nil {
		return Outcome{Kind: OutcomeReveal, Text: text}
	}

	var statusErr *prediction.StatusError
	if errors.As(err, &statusErr) {
		return Outcome{Kind: OutcomeFailure, Text: "Failed to fetch data: " + statusErr.Body}
	}
	return Outcome{Kind: OutcomeError, Text: "Error: " + err.Error()}
}

// Submit runs one submission against s: clear, validate, fetch, then
// reveal or show the error text. Validation failures go to the Alerter and
// no request is made.
//
// User-facing failures are written to s, never returned. The returned
// error is non-nil only when the submission was cancelled, either by ctx or
// by a newer submission.
func (c *Controller) Submit(ctx context.Context, f Fields, s typewriter.Surface) error {
	ctx, id, done := c.begin(ctx)
	defer done()

	log := logging.Get(logging.CategoryForm).With("submission", id)

	s.Clear()

	req, err := f.Request()
	if err != nil {
		log.Info("validation failed: %v", err)
		c.alerter.Alert(err.Error())
		return nil
	}

	out := c.Fetch(ctx, req)
	if ctx.Err() != nil {
		log.Debug("submission cancelled during fetch")
		return ctx.Err()
	}
	log.Info("outcome %s (%d chars)", out.Kind, len(out.Text))

	if out.Kind != OutcomeReveal {
		s.SetText(out.Text)
		return nil
	}
	return typewriter.Run(ctx, s, out.Text, c.interval)
}

// Cancel stops the submission in flight, if any.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) begin(parent context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelPrevious && c.cancel != nil {
		c.cancel()
	}
	c.seq++
	id := c.seq
	c.cancel = cancel

	return ctx, id, func() {
		c.mu.Lock()
		if c.seq == id {
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}
}
