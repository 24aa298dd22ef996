package veneer

import "context"

// Scoped overrides bind a factory to a bounded unit of work through its
// context, so for example two parallel test cases can each route metrics to
// their own recording backend without touching global state. The binding is
// visible to everything the unit spawns with the derived context, invisible
// outside it, and consulted only at metric construction time: re-binding
// later never affects metrics that already exist.

type factoryContextKey struct{}

// ContextWithFactory returns a context carrying f as the scoped metrics
// factory. Passing nil returns ctx unchanged.
func ContextWithFactory(ctx context.Context, f Factory) context.Context {
	if f == nil {
		return ctx
	}
	return context.WithValue(ctx, factoryContextKey{}, complete(f))
}

// FactoryFromContext returns the scoped factory bound to ctx, if any.
func FactoryFromContext(ctx context.Context) (Factory, bool) {
	f, ok := factoryFromContext(ctx)
	if !ok {
		return nil, false
	}
	return f, true
}

func factoryFromContext(ctx context.Context) (fullFactory, bool) {
	f, ok := ctx.Value(factoryContextKey{}).(fullFactory)
	return f, ok
}

// ScopedFactory runs fn with f bound as the scoped factory of the derived
// context, and returns whatever fn returns. Metrics constructed inside fn
// with WithContext resolve f ahead of the global registry.
func ScopedFactory(ctx context.Context, f Factory, fn func(context.Context) error) error {
	return fn(ContextWithFactory(ctx, f))
}
