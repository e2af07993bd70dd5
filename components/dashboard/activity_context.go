package dashboard

import "context"

// ActivityContext identifies who performed a dashboard action. Transports set
// it once per request so commands do not thread actor ids through every input.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

// ContextWithActivity attaches the actor identity to ctx.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

// activityContextFrom reads the actor identity back, zero when absent.
func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	meta, _ := ctx.Value(activityContextKey{}).(ActivityContext)
	return meta
}
