package restmux

import (
	"net/http"
	"strings"

	"github.com/restmux/restmux/reqparse"
)

// Doc is the declarative metadata attached to a resource or to one of its
// methods. The serializer merges class-level and method-level docs, with
// the method level winning on conflicts.
type Doc struct {
	Description string
	Docstring   string

	// Params are extra parameter declarations keyed by parameter name.
	// Keys inside each declaration follow the Swagger parameter object
	// (in, type, description, required, default, enum, items, ...).
	Params map[string]map[string]any

	// Parser contributes parameters derived from a request argument list.
	Parser *reqparse.Parser

	// Body documents the request payload.
	Body *Body

	// Model documents the response payload for DefaultCode (200 when
	// unset). Accepted shapes: *fields.Model, a registered model name, a
	// fields.Field, or ListOf wrapping any of those.
	Model       any
	DefaultCode int

	// Responses maps status codes ("404") to documented responses.
	Responses map[string]Response

	// Security is a requirement declaration: a scheme name, a
	// map[scheme][]scope, or a list of either. An explicit empty list
	// documents "no auth required".
	Security any

	Deprecated bool
	ID         string

	// Mask documents the optional fields-mask header; the value becomes
	// the documented default mask expression.
	Mask string
}

// MaskAny documents that a fields mask is accepted without suggesting a
// default expression.
const MaskAny = "*"

// Body documents a request payload model.
type Body struct {
	Model       any
	Description string
}

// Response documents a single response code.
type Response struct {
	Description string
	Model       any
	Headers     map[string]map[string]any
}

// ListOf marks a response model as an array of the wrapped model.
type ListOf struct {
	Of any
}

// Method bundles one HTTP verb's handler with its metadata. A nil handler
// documents an operation without serving it.
type Method struct {
	Doc     *Doc
	Handler http.HandlerFunc
	Hidden  bool
}

// Resource is a named bundle of HTTP method handlers sharing a URL.
type Resource struct {
	Name   string
	Doc    *Doc
	Hidden bool

	methods map[string]*Method
	order   []string
}

func NewResource(name string) *Resource {
	return &Resource{Name: name, methods: map[string]*Method{}}
}

// Handle attaches a method under its lowercased verb. Chaining friendly.
func (r *Resource) Handle(verb string, m *Method) *Resource {
	verb = strings.ToLower(verb)
	if _, ok := r.methods[verb]; !ok {
		r.order = append(r.order, verb)
	}
	r.methods[verb] = m
	return r
}

func (r *Resource) Get(m *Method) *Resource    { return r.Handle(http.MethodGet, m) }
func (r *Resource) Post(m *Method) *Resource   { return r.Handle(http.MethodPost, m) }
func (r *Resource) Put(m *Method) *Resource    { return r.Handle(http.MethodPut, m) }
func (r *Resource) Patch(m *Method) *Resource  { return r.Handle(http.MethodPatch, m) }
func (r *Resource) Delete(m *Method) *Resource { return r.Handle(http.MethodDelete, m) }

// Methods lists the attached verbs in registration order.
func (r *Resource) Methods() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Method returns the handler bundle for a lowercased verb, or nil.
func (r *Resource) Method(verb string) *Method {
	return r.methods[strings.ToLower(verb)]
}

// ErrorHandler documents the response produced when a named error escapes
// a handler. Operations whose docstring carries a matching :raises line
// reference the entry through #/responses/.
type ErrorHandler struct {
	Docstring string
	Params    map[string]map[string]any
	Responses map[string]Response
}
