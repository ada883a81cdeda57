package auth

import "context"

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, id)
}

// UserIDFromContext returns the resolved caller identity, or "" when
// the request carried none.
func UserIDFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeyUserID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
