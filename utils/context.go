package utils

import "context"

type requestIDKey struct{}

// WithRequestID stores the request ID so code below the HTTP layer can log it
func WithRequestID(parent context.Context, requestID string) context.Context {
	return context.WithValue(parent, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID, or "" outside a request
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
