// Package cached wraps functions, methods and model-derived properties so
// that their results are kept in a shared cache store.
//
// Storage is always delegated to a Store. Three are provided: an in-process
// memory store, a ristretto store and a redis store. Values are encoded with
// a Codec before they reach the store, so a cached value is a copy and never
// aliases the caller's data.
//
//	sum := cached.NewFunction("billing.Sum", func(ctx context.Context, args SumArgs) (int, error) {
//	    return args.A + args.B, nil
//	}, cached.KeyParameters("A", "B"), cached.WithTimeout(time.Minute))
//
//	total, err := sum.Call(ctx, SumArgs{A: 1, B: 2})
package cached
