// Package ctxutil carries request correlation ids through a context.
package ctxutil

import "context"

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
	// RunID is set once a request has started an analysis run.
	RunID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// SetRunID records runID on the request's trace data, if any.
func SetRunID(ctx context.Context, runID string) {
	if td := GetTraceData(ctx); td != nil {
		td.RunID = runID
	}
}

// LogFields returns the non-empty ids as logger key/value pairs.
func LogFields(ctx context.Context) []interface{} {
	td := GetTraceData(ctx)
	if td == nil {
		return nil
	}
	var kv []interface{}
	if td.TraceID != "" {
		kv = append(kv, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		kv = append(kv, "request_id", td.RequestID)
	}
	if td.RunID != "" {
		kv = append(kv, "run_id", td.RunID)
	}
	return kv
}
