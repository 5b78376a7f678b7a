// Package editor holds the editing state of an AI summary step: a draft of
// the step input, validated field setters and debounced propagation of the
// whole input to the owner of the workflow.
package editor

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/flowcrm/aisummary/pkg/models"
)

// DefaultDebounceWait is the quiet period before input edits are propagated.
const DefaultDebounceWait = time.Second

const maxTemperature = 2.0

// FormData is the draft shown by the panel. Every field is always set.
type FormData struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

func newFormData(in models.AiSummaryInput) FormData {
	req := in.Resolve()

	return FormData{
		Prompt:      req.Prompt,
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
}

func (f FormData) input() models.AiSummaryInput {
	return models.AiSummaryInput{
		Prompt:      f.Prompt,
		Model:       models.Ptr(f.Model),
		MaxTokens:   models.Ptr(f.MaxTokens),
		Temperature: models.Ptr(f.Temperature),
	}
}

type config struct {
	clock clockwork.Clock
	wait  time.Duration
}

type Option func(*config)

func WithClock(clock clockwork.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

func WithDebounceWait(wait time.Duration) Option {
	return func(c *config) {
		c.wait = wait
	}
}

type Panel struct {
	mu       sync.Mutex
	action   models.AiSummaryAction
	form     FormData
	onUpdate func(models.AiSummaryAction)
	closed   bool

	debouncer *Debouncer[models.AiSummaryInput]
}

func NewPanel(action models.AiSummaryAction, options ActionOptions, opts ...Option) *Panel {
	cfg := config{
		clock: clockwork.NewRealClock(),
		wait:  DefaultDebounceWait,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Panel{
		action: cloneAction(action),
		form:   newFormData(action.Settings.Input),
	}

	if editable, ok := options.(Editable); ok && editable.OnActionUpdate != nil {
		p.onUpdate = editable.OnActionUpdate
	}

	p.debouncer = NewDebouncer(cfg.clock, cfg.wait, p.propagateInput)

	return p
}

// ReadOnly reports whether edits are disabled.
func (p *Panel) ReadOnly() bool {
	return p.onUpdate == nil
}

func (p *Panel) Form() FormData {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.form
}

// Action returns the step as last propagated.
func (p *Panel) Action() models.AiSummaryAction {
	p.mu.Lock()
	defer p.mu.Unlock()

	return cloneAction(p.action)
}

// Pending reports whether an input edit is waiting to be propagated.
func (p *Panel) Pending() bool {
	return p.debouncer.Pending()
}

func (p *Panel) SetPrompt(prompt string) bool {
	return p.edit(func(f *FormData) bool {
		f.Prompt = prompt

		return true
	})
}

func (p *Panel) SetModel(model string) bool {
	return p.edit(func(f *FormData) bool {
		if strings.TrimSpace(model) == "" {
			return false
		}

		f.Model = model

		return true
	})
}

// SetMaxTokens accepts a positive integer in decimal form.
func (p *Panel) SetMaxTokens(raw string) bool {
	return p.edit(func(f *FormData) bool {
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || value <= 0 {
			return false
		}

		f.MaxTokens = value

		return true
	})
}

// SetTemperature accepts a number between 0 and 2 inclusive.
func (p *Panel) SetTemperature(raw string) bool {
	return p.edit(func(f *FormData) bool {
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(value) || value < 0 || value > maxTemperature {
			return false
		}

		f.Temperature = value

		return true
	})
}

// SetTitle renames the step. The change is propagated immediately.
func (p *Panel) SetTitle(name string) bool {
	return p.update(func(a *models.AiSummaryAction) {
		a.Name = name
	})
}

// SetOutputSchema replaces the output schema. The change is propagated immediately.
func (p *Panel) SetOutputSchema(schema models.OutputSchema) bool {
	return p.update(func(a *models.AiSummaryAction) {
		a.Settings.OutputSchema = schema.Clone()
	})
}

// Close delivers any pending input edit and disables further edits.
func (p *Panel) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()

		return
	}
	p.closed = true
	p.mu.Unlock()

	p.debouncer.Flush()
}

func (p *Panel) edit(apply func(*FormData) bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.onUpdate == nil || p.closed {
		return false
	}

	draft := p.form
	if !apply(&draft) {
		return false
	}

	p.form = draft
	p.debouncer.Schedule(draft.input())

	return true
}

func (p *Panel) update(apply func(*models.AiSummaryAction)) bool {
	p.mu.Lock()
	if p.onUpdate == nil || p.closed {
		p.mu.Unlock()

		return false
	}

	apply(&p.action)
	snapshot := cloneAction(p.action)
	p.mu.Unlock()

	p.onUpdate(snapshot)

	return true
}

func (p *Panel) propagateInput(input models.AiSummaryInput) {
	p.mu.Lock()
	p.action.Settings.Input = input
	snapshot := cloneAction(p.action)
	p.mu.Unlock()

	p.onUpdate(snapshot)
}

func cloneAction(a models.AiSummaryAction) models.AiSummaryAction {
	a.Settings.OutputSchema = a.Settings.OutputSchema.Clone()

	return a
}
