package substrate

import "context"

// cacheModeKey is the context key backing the request-scoped cache-bypass
// flag (spec: "task-local boolean no-cache flag"). Go has no task-locals, so
// it rides the context, matching spec §9's guidance to carry it explicitly
// rather than reach for a thread-local.
type cacheModeKey struct{}

// WithNoCache returns a context carrying an explicit no-cache decision. A nil
// noCache value is never stored; callers always pass true or false.
func WithNoCache(ctx context.Context, noCache bool) context.Context {
	v := noCache
	return context.WithValue(ctx, cacheModeKey{}, &v)
}

// NoCache reports whether the context requests a fresh fetch, and whether the
// flag was set at all. This mirrors a `try_with` lookup that can distinguish
// "not set" from "set to false" (spec §9 open question).
func NoCache(ctx context.Context) (value bool, isSet bool) {
	v, ok := ctx.Value(cacheModeKey{}).(*bool)
	if !ok || v == nil {
		return false, false
	}
	return *v, true
}
