package logger

import "context"

type queryIDKey struct{}

// WithQueryID returns a copy of ctx carrying the lookup id, so outbound
// requests made under it can be matched with the application log.
func WithQueryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, queryIDKey{}, id)
}

// QueryID returns the id stored by WithQueryID, or "" if there is none.
func QueryID(ctx context.Context) string {
	id, _ := ctx.Value(queryIDKey{}).(string)
	return id
}
