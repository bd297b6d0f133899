package spec

import "fmt"

// HandlerFunc is a reusable configuration fragment. It receives the live
// spec plus the caller-supplied data and may issue any configuration
// calls, including nested Use invocations.
type HandlerFunc func(ctx *HandlerContext)

// HandlerContext is passed to a handler on each invocation.
type HandlerContext struct {
	Spec *Spec
	Data any
}

// Registry maps handler names to callbacks. It is append-only: a name,
// once registered, cannot be replaced. Like the defaults store it is
// meant to be populated in a setup phase before parallel work begins and
// carries no locking.
type Registry struct {
	handlers map[string]HandlerFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]HandlerFunc),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide handler registry used by Use
// and FromHandler unless a spec overrides it.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register stores a callback under a non-empty name. Registering an
// existing name fails with DuplicateHandlerError so accidental collisions
// surface loudly.
func (r *Registry) Register(name string, fn HandlerFunc) error {
	if name == "" {
		return fmt.Errorf("handler name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("handler %s: callback must not be nil", name)
	}
	if _, exists := r.handlers[name]; exists {
		return &DuplicateHandlerError{Name: name}
	}
	r.handlers[name] = fn
	return nil
}

// Invoke runs a named handler against a live spec. The callback executes
// synchronously; everything it configures is visible to subsequent
// builder calls and to Resolve.
func (r *Registry) Invoke(name string, s *Spec, data any) error {
	fn, ok := r.handlers[name]
	if !ok {
		return &UnknownHandlerError{Name: name}
	}
	fn(&HandlerContext{Spec: s, Data: data})
	return nil
}

// Has reports whether a handler name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// RegisterHandler registers a callback in the process-wide registry.
func RegisterHandler(name string, fn HandlerFunc) error {
	return defaultRegistry.Register(name, fn)
}
