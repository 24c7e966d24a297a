package metrics

import (
	"context"
	"time"
)

// RenderRecorder is implemented by every metrics backend that tracks renderer calls
type RenderRecorder interface {
	RecordRender(ctx context.Context, statusCode int, duration time.Duration, success bool)
}

// Fanout forwards render timings to several backends
type Fanout []RenderRecorder

func (f Fanout) RecordRender(ctx context.Context, statusCode int, duration time.Duration, success bool) {
	for _, r := range f {
		r.RecordRender(ctx, statusCode, duration, success)
	}
}
