package restmux

import "fmt"

// SchemaProvider is anything that can render itself as a Swagger schema.
// *fields.Model is the usual implementation.
type SchemaProvider interface {
	Schema() map[string]any
}

// SchemaMap adapts a hand-written schema fragment into the model registry.
type SchemaMap map[string]any

func (m SchemaMap) Schema() map[string]any { return map[string]any(m) }

// Contact and License feed the info block.
type Contact struct {
	Name  string
	Email string
	URL   string
}

type License struct {
	Name string
	URL  string
}

// Api is the top-level registry the document is derived from: global
// metadata, namespaces of resources, models, error handlers, security
// schemes and the URL converter table.
type Api struct {
	Title       string
	Version     string
	Description string
	TermsURL    string
	Contact     *Contact
	License     *License

	BasePath  string
	Subdomain string
	Config    Config

	// Tags declared up front. Accepted shapes per entry: a name string, a
	// [name, description] pair, or a map carrying at least "name".
	Tags []any

	// Authorizations holds the securityDefinitions table verbatim.
	Authorizations map[string]map[string]any

	// Security is the api-wide requirement, same shapes as Doc.Security.
	Security any

	mediatypes    []string
	converters    map[string]Converter
	namespaces    []*Namespace
	models        map[string]SchemaProvider
	errorHandlers map[string]*ErrorHandler
	errorOrder    []string
}

func NewApi(title, version string) *Api {
	return &Api{
		Title:      title,
		Version:    version,
		BasePath:   "/",
		Config:     DefaultConfig(),
		mediatypes: []string{"application/json"},
		converters: defaultConverters(),
		models:     map[string]SchemaProvider{},
	}
}

// Namespace declares a resource group. The path prefix defaults to /name.
func (a *Api) Namespace(name, description string) *Namespace {
	ns := &Namespace{
		Name:        name,
		Description: description,
		Path:        "/" + name,
		api:         a,
	}
	a.namespaces = append(a.namespaces, ns)
	return ns
}

// AddModel registers a named schema so resources can reference it. Models
// referenced during serialization but never registered abort generation.
func (a *Api) AddModel(name string, m SchemaProvider) {
	a.models[name] = m
}

// AddErrorHandler documents the response emitted when the named error
// escapes a handler.
func (a *Api) AddErrorHandler(name string, h *ErrorHandler) {
	if a.errorHandlers == nil {
		a.errorHandlers = map[string]*ErrorHandler{}
	}
	if _, ok := a.errorHandlers[name]; !ok {
		a.errorOrder = append(a.errorOrder, name)
	}
	a.errorHandlers[name] = h
}

// RegisterConverter accepts an extra URL placeholder type. Converters
// registered without an explicit mapping document as plain strings.
func (a *Api) RegisterConverter(name string, c Converter) {
	if c.Type == "" {
		c.Type = "string"
	}
	a.converters[name] = c
}

// Produces overrides the emitted media types (application/json by default).
func (a *Api) Produces(mediatypes ...string) {
	a.mediatypes = mediatypes
}

// DefaultID builds the operation id used when a method doc declares none.
func (a *Api) DefaultID(resource, method string) string {
	return fmt.Sprintf("%s_%s", method, camelToSnake(resource))
}

// Schema assembles the Swagger document. The document is rebuilt from the
// live registrations on every call.
func (a *Api) Schema() (map[string]any, error) {
	return NewSwagger(a).AsDict()
}
