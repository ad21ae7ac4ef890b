package ports

import (
	"context"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// ProgressNotifier receives pipeline status updates for a generation
// run. Implementations must not block the pipeline.
type ProgressNotifier interface {
	// Notify reports a progress event
	Notify(event entities.ProgressEvent)
}

// ProgressFunc adapts a plain function to the ProgressNotifier interface
type ProgressFunc func(event entities.ProgressEvent)

// Notify implements ProgressNotifier
func (f ProgressFunc) Notify(event entities.ProgressEvent) {
	if f != nil {
		f(event)
	}
}

// NopProgress discards all progress events
var NopProgress ProgressNotifier = ProgressFunc(func(entities.ProgressEvent) {})

type progressContextKey struct{}

type progressContextValue struct {
	jobID    string
	notifier ProgressNotifier
}

// ContextWithProgress attaches a progress notifier (scoped to a job) to
// the context so adapters deep in the pipeline can report status, e.g.
// the generation retry notice.
func ContextWithProgress(ctx context.Context, jobID string, notifier ProgressNotifier) context.Context {
	if notifier == nil {
		notifier = NopProgress
	}
	return context.WithValue(ctx, progressContextKey{}, progressContextValue{jobID: jobID, notifier: notifier})
}

// ProgressFromContext returns the job id and notifier attached to the
// context, or NopProgress when none is attached.
func ProgressFromContext(ctx context.Context) (string, ProgressNotifier) {
	if v, ok := ctx.Value(progressContextKey{}).(progressContextValue); ok {
		return v.jobID, v.notifier
	}
	return "", NopProgress
}
