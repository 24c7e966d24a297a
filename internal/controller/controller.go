package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Conceptual-Machines/wave-divider/internal/export"
	"github.com/Conceptual-Machines/wave-divider/internal/logger"
	"github.com/Conceptual-Machines/wave-divider/internal/presets"
	"github.com/Conceptual-Machines/wave-divider/internal/render"
	"github.com/Conceptual-Machines/wave-divider/internal/scheduler"
	"github.com/Conceptual-Machines/wave-divider/internal/wave"
	"github.com/benbjohnson/clock"
)

var ErrUnknownPreset = errors.New("unknown preset")

// StaleCounter counts render responses discarded as out of date
type StaleCounter interface {
	RecordStaleRender()
}

// Options configures a Controller. Only RendererURL is required.
type Options struct {
	RendererURL   string
	PublicBaseURL string // defaults to RendererURL
	Quiet         time.Duration
	Clock         clock.Clock
	HTTPClient    *http.Client
	Presets       []presets.Preset
	Recorder      render.Recorder
	StaleCounter  StaleCounter
	// OnFailure is called for every failed render, after the controller has
	// published its own event
	OnFailure func(render.Failure)
}

// Controller is the single owner of the editing session: the parameter
// model, the pending debounce timer, the last accepted render and the
// selected export mode.
type Controller struct {
	mu      sync.Mutex
	model   *wave.Model
	mode    export.Mode
	baseCtx context.Context

	presets       []presets.Preset
	publicBaseURL string
	debouncer     *scheduler.Debouncer
	fetcher       *render.Fetcher
	stale         StaleCounter
	onFailure     func(render.Failure)

	events *broker
}

// New builds an idle controller. Nothing is rendered until Start or the first edit.
func New(opts Options) *Controller {
	c := &Controller{
		model:         wave.NewModel(),
		mode:          export.ModeMarkdown,
		baseCtx:       context.Background(),
		presets:       opts.Presets,
		publicBaseURL: opts.PublicBaseURL,
		stale:         opts.StaleCounter,
		onFailure:     opts.OnFailure,
		events:        newBroker(),
	}
	if c.publicBaseURL == "" {
		c.publicBaseURL = opts.RendererURL
	}

	fetchOpts := []render.Option{render.WithFailureObserver(c.renderFailed)}
	if opts.Recorder != nil {
		fetchOpts = append(fetchOpts, render.WithRecorder(opts.Recorder))
	}
	c.fetcher = render.NewFetcher(opts.RendererURL, opts.HTTPClient, fetchOpts...)
	c.debouncer = scheduler.New(opts.Quiet, opts.Clock, c.debounced)

	return c
}

// Start renders the initial parameters. ctx is also used for every later
// debounced render, so cancelling it stops background rendering.
func (c *Controller) Start(ctx context.Context) render.Result {
	c.mu.Lock()
	c.baseCtx = ctx
	c.mu.Unlock()

	logger.Info("Controller started", logger.Fields{
		"presets": len(c.presets),
		"quiet":   c.debouncer.Quiet().String(),
	})
	return c.Regenerate(ctx)
}

// Close cancels any pending render and disconnects subscribers
func (c *Controller) Close() {
	c.debouncer.Stop()
	c.events.close()
}

func (c *Controller) debounced() {
	c.mu.Lock()
	ctx := c.baseCtx
	c.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	c.Regenerate(ctx)
}

// Set stores one field and schedules a debounced render. Rejected input
// leaves the model untouched and schedules nothing.
func (c *Controller) Set(field wave.Field, value string) error {
	c.mu.Lock()
	err := c.model.Set(field, value)
	state := c.model.Snapshot()
	c.mu.Unlock()

	if err != nil {
		logger.Debug("Ignoring invalid parameter", logger.Fields{
			"field": string(field),
			"value": value,
			"error": err.Error(),
		})
		return err
	}

	c.events.publish(newEvent(EventParams, state))
	c.debouncer.Notify()
	return nil
}

// ToggleFlag inverts a flag and schedules a debounced render
func (c *Controller) ToggleFlag(flag wave.Flag) (bool, error) {
	c.mu.Lock()
	on, err := c.model.ToggleFlag(flag)
	state := c.model.Snapshot()
	c.mu.Unlock()

	if err != nil {
		return false, err
	}

	c.events.publish(newEvent(EventParams, state))
	c.debouncer.Notify()
	return on, nil
}

// ApplyPreset overwrites the model with a preset and renders immediately,
// bypassing the debounce. A pending debounced render is cancelled since the
// immediate render already covers it.
func (c *Controller) ApplyPreset(ctx context.Context, index int) (render.Result, error) {
	if index < 0 || index >= len(c.presets) {
		return render.Result{}, fmt.Errorf("%w: %d", ErrUnknownPreset, index)
	}
	p := c.presets[index]

	c.mu.Lock()
	err := p.ApplyTo(c.model)
	state := c.model.Snapshot()
	c.mu.Unlock()

	if err != nil {
		return render.Result{}, err
	}

	logger.Info("Preset applied", logger.Fields{"label": p.Label})
	c.debouncer.Stop()
	c.events.publish(newEvent(EventPreset, state))
	return c.Regenerate(ctx), nil
}

// Regenerate derives flip, snapshots the model and asks the renderer for it.
// The result is also published to subscribers.
func (c *Controller) Regenerate(ctx context.Context) render.Result {
	// The sequence number is reserved with the snapshot so numbering follows
	// the order in which states were taken
	c.mu.Lock()
	c.model.DeriveFlip()
	state := c.model.Snapshot()
	seq := c.fetcher.Next()
	c.mu.Unlock()

	res := c.fetcher.Render(ctx, seq, state)

	switch res.Outcome {
	case render.Applied:
		ev := newEvent(EventRender, state)
		ev.Surface = c.fetcher.Surface()
		c.events.publish(ev)
	case render.Stale:
		if c.stale != nil {
			c.stale.RecordStaleRender()
		}
	}
	return res
}

func (c *Controller) renderFailed(f render.Failure) {
	ev := newEvent(EventRenderFailed, wave.State{})
	ev.Error = f.Err.Error()
	c.events.publish(ev)

	if c.onFailure != nil {
		c.onFailure(f)
	}
}

// SetExportMode selects the snippet format
func (c *Controller) SetExportMode(mode export.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

// ExportCode returns the embed snippet for the last accepted render in the
// selected mode. Before the first render the URL part is empty.
func (c *Controller) ExportCode() string {
	c.mu.Lock()
	mode := c.mode
	c.mu.Unlock()

	url := export.AbsoluteURL(c.publicBaseURL, c.fetcher.Surface().LastRequest)
	return export.Format(url, mode)
}

// Presets returns the session's preset catalog
func (c *Controller) Presets() []presets.Preset {
	out := make([]presets.Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Surface returns the last accepted render
func (c *Controller) Surface() render.Surface {
	return c.fetcher.Surface()
}

// Snapshot is a read-only view of the whole session
type Snapshot struct {
	State       wave.State  `json:"state"`
	ExportMode  export.Mode `json:"export_mode"`
	LastRequest string      `json:"last_request"`
	LastError   string      `json:"last_error,omitempty"`
	Loading     int         `json:"loading"`
	Pending     bool        `json:"pending"`
}

// Snapshot returns the current session view
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	state := c.model.Snapshot()
	mode := c.mode
	c.mu.Unlock()

	surface := c.fetcher.Surface()
	return Snapshot{
		State:       state,
		ExportMode:  mode,
		LastRequest: surface.LastRequest,
		LastError:   surface.LastError,
		Loading:     c.fetcher.Loading(),
		Pending:     c.debouncer.Pending(),
	}
}

// Subscribe returns a channel of session events and a function that ends
// the subscription. Slow subscribers miss events rather than block edits.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	return c.events.subscribe()
}
