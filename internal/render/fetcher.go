// Package render talks to the external wave renderer and owns the last
// accepted render.
//
// Requests are numbered as they are issued. A response is applied only when
// its number is higher than the one currently displayed, so a slow response
// can never overwrite a newer one. Failures leave the surface as it was and
// are reported to an optional observer instead of being returned to the UI.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/Conceptual-Machines/wave-divider/internal/logger"
	"github.com/Conceptual-Machines/wave-divider/internal/wave"
)

const maxBodyBytes = 4 << 20

var (
	ErrStatus      = errors.New("renderer returned an error status")
	ErrNonTextBody = errors.New("renderer returned a non-text body")
)

// Surface is the last accepted render
type Surface struct {
	Markup      string    `json:"markup"`
	LastRequest string    `json:"last_request"`
	Seq         uint64    `json:"seq"`
	UpdatedAt   time.Time `json:"updated_at"`
	LastError   string    `json:"last_error,omitempty"`
}

// Rendered reports whether any render has been accepted yet
func (s Surface) Rendered() bool {
	return s.Seq > 0
}

// Outcome describes what happened to one Regenerate call
type Outcome int

const (
	Applied Outcome = iota
	Stale
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Stale:
		return "stale"
	default:
		return "failed"
	}
}

// Result is returned by Render. Err is set for Failed, and for Stale when a
// superseded request failed.
type Result struct {
	Seq     uint64
	Path    string
	Outcome Outcome
	Err     error
}

// Failure is passed to the failure observer
type Failure struct {
	Seq  uint64
	Path string
	Err  error
}

// Recorder receives timing for every renderer call
type Recorder interface {
	RecordRender(ctx context.Context, statusCode int, duration time.Duration, success bool)
}

type Option func(*Fetcher)

// WithFailureObserver registers a callback for failed renders
func WithFailureObserver(fn func(Failure)) Option {
	return func(f *Fetcher) { f.onFailure = fn }
}

// WithRecorder registers a metrics recorder
func WithRecorder(r Recorder) Option {
	return func(f *Fetcher) { f.recorder = r }
}

// Fetcher issues render requests. It enforces no timeout; the caller's
// context and http.Client decide how long a request may take.
type Fetcher struct {
	baseURL string
	client  *http.Client

	onFailure func(Failure)
	recorder  Recorder

	seq      atomic.Uint64
	inFlight atomic.Int32

	mu      sync.RWMutex
	surface Surface
}

// NewFetcher returns a fetcher for the renderer at baseURL. A nil client
// means http.DefaultClient.
func NewFetcher(baseURL string, client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Next reserves the sequence number for a render. Callers that snapshot
// state under their own lock must reserve the number under that same lock,
// otherwise an older snapshot can be numbered after a newer one.
func (f *Fetcher) Next() uint64 {
	return f.seq.Add(1)
}

// Regenerate renders state under a freshly reserved sequence number
func (f *Fetcher) Regenerate(ctx context.Context, state wave.State) Result {
	return f.Render(ctx, f.Next(), state)
}

// Render fetches state and applies the result if seq is the newest so far.
// A failure that finishes after a newer render was applied is reported as
// Stale and leaves the failure signal alone.
func (f *Fetcher) Render(ctx context.Context, seq uint64, state wave.State) Result {
	path := state.RequestPath()

	f.inFlight.Add(1)
	defer f.inFlight.Add(-1)

	start := time.Now()
	markup, status, err := f.fetch(ctx, path)
	duration := time.Since(start)

	logger.LogRenderRequest(ctx, path, seq, duration, err)
	if f.recorder != nil {
		f.recorder.RecordRender(ctx, status, duration, err == nil)
	}

	if err != nil {
		f.mu.Lock()
		if seq < f.surface.Seq {
			displayed := f.surface.Seq
			f.mu.Unlock()
			logger.Debug("Ignoring failure of superseded render", logger.Fields{
				"seq":       seq,
				"displayed": displayed,
				"error":     err.Error(),
			})
			return Result{Seq: seq, Path: path, Outcome: Stale, Err: err}
		}
		f.surface.LastError = err.Error()
		f.mu.Unlock()

		if f.onFailure != nil {
			f.onFailure(Failure{Seq: seq, Path: path, Err: err})
		}
		return Result{Seq: seq, Path: path, Outcome: Failed, Err: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq <= f.surface.Seq {
		logger.Debug("Discarding stale render", logger.Fields{
			"seq":       seq,
			"displayed": f.surface.Seq,
		})
		return Result{Seq: seq, Path: path, Outcome: Stale}
	}

	f.surface = Surface{
		Markup:      markup,
		LastRequest: path,
		Seq:         seq,
		UpdatedAt:   time.Now(),
	}
	return Result{Seq: seq, Path: path, Outcome: Applied}
}

func (f *Fetcher) fetch(ctx context.Context, path string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return "", 0, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Accept", "image/svg+xml, text/*;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("render request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("⚠️  Failed to close renderer response body: %v", closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read render response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	if !isText(resp.Header.Get("Content-Type"), body) {
		return "", resp.StatusCode, fmt.Errorf("%w: %q", ErrNonTextBody, resp.Header.Get("Content-Type"))
	}

	return string(body), resp.StatusCode, nil
}

// isText accepts text/*, SVG and XML responses. Without a content type the
// body is sniffed.
func isText(contentType string, body []byte) bool {
	if !utf8.Valid(body) {
		return false
	}
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") ||
		strings.HasSuffix(mediaType, "+xml") ||
		strings.HasSuffix(mediaType, "/xml")
}

// Surface returns a copy of the last accepted render
func (f *Fetcher) Surface() Surface {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.surface
}

// Loading reports how many render requests are in flight
func (f *Fetcher) Loading() int {
	return int(f.inFlight.Load())
}
