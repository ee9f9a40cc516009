package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	procedureKey contextKey = "procedure"
)

// WithRunID annotates context with the identifier of the current invocation.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the invocation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithProcedure annotates context with the maintenance procedure name.
func WithProcedure(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, procedureKey, name)
}

// ProcedureFromContext returns the procedure name if present.
func ProcedureFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(procedureKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
