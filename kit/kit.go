// Package kit holds the small transport plumbing shared by revq's
// surfaces: the Endpoint shape, middleware chaining, and MCP tool
// registration.
package kit

import "context"

// Endpoint is the transport-agnostic handler shape. HTTP handlers and
// MCP tools both decode into a typed request and call an Endpoint.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares left to right: the first argument is the
// outermost wrapper.
func Chain(mws ...Middleware) Middleware {
	return func(ep Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			ep = mws[i](ep)
		}
		return ep
	}
}
