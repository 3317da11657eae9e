package restmux

import "errors"

// ErrSpecs marks declaration mistakes that make the document impossible to
// assemble. Generation aborts; nothing is retried or recovered.
var ErrSpecs = errors.New("invalid specs")

var (
	ErrUnknownConverter    = errors.New("unsupported type converter")
	ErrModelNotRegistered  = errors.New("model not registered")
	ErrUnsupportedTag      = errors.New("unsupported tag format")
	ErrUnsupportedSecurity = errors.New("unsupported security format")
)
