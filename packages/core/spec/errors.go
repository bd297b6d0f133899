package spec

// IncompleteSpecError reports a resolve attempt before both method and
// path were set.
type IncompleteSpecError struct {
	Missing string // "method", "path", or "method and path"
}

func (e *IncompleteSpecError) Error() string {
	return "incomplete spec: " + e.Missing + " not set"
}

// MissingBaseURLError reports a relative path with no base URL configured
// on the spec or in the defaults store.
type MissingBaseURLError struct {
	Path string
}

func (e *MissingBaseURLError) Error() string {
	return "no base url configured for relative path " + e.Path
}

// UnknownHandlerError reports a handler name absent from the registry.
type UnknownHandlerError struct {
	Name string
}

func (e *UnknownHandlerError) Error() string {
	return "unknown handler: " + e.Name
}

// DuplicateHandlerError reports a second registration under an existing
// handler name.
type DuplicateHandlerError struct {
	Name string
}

func (e *DuplicateHandlerError) Error() string {
	return "handler already registered: " + e.Name
}
