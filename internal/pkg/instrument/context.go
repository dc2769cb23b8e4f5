package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID stores a correlation ID in the context.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID returns the correlation ID stored in the context, if any.
func GetCorrelationID(ctx context.Context) string {
	id, ok := ctx.Value(correlationIDKey{}).(string)
	if !ok {
		return ""
	}
	return id
}
