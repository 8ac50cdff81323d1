// Package protocol defines the contracts between the dispatcher and the
// externally supplied action implementations.
package protocol

import "context"

// Handler is an executable action implementation. The dispatcher treats it
// as a black box: it receives the grounded arguments of one plan action and
// reports success or failure. Implementations that support cooperative
// cancellation must honour ctx.
type Handler interface {
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

func (f HandlerFunc) Execute(ctx context.Context, args map[string]any) (any, error) {
	return f(ctx, args)
}
