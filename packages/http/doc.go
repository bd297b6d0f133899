// Package http executes resolved request descriptors.
//
// It is the transport collaborator of the spec builder: it accepts a
// spec.ResolvedRequest and performs the actual network call. The builder
// core never imports this package; composition happens in the caller.
package http
