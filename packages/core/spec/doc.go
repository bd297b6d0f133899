// Package spec implements the fluent request specification builder.
//
// A Spec accumulates configuration calls (method, path and query params,
// headers, one body variant, auth, timeout) and resolves them against the
// process-wide defaults store into an immutable ResolvedRequest ready for
// a transport. Defaults are consulted only at Resolve time, so changing a
// default between building calls and Resolve takes effect.
//
// Named handlers registered in a Registry apply reusable configuration
// bundles to a live spec, optionally parameterized by caller data:
//
//	spec.RegisterHandler("as-admin", func(ctx *spec.HandlerContext) {
//		ctx.Spec.WithHeader("Authorization", "Bearer "+ctx.Data.(string))
//	})
//
//	req, err := spec.Get("/api/projects/{id}").
//		WithPathParam("id", "42").
//		Use("as-admin", token).
//		Resolve()
//
// A Spec is owned by the single goroutine that created it; it performs no
// locking. Configuration calls never fail mid-chain: the first error
// sticks and is returned by Resolve.
package spec
