package restmux

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/restmux/restmux/fields"
)

// Maps Go primitive kinds to Swagger ones.
var kindTypes = map[reflect.Kind]string{
	reflect.Int:     "integer",
	reflect.Int8:    "integer",
	reflect.Int16:   "integer",
	reflect.Int32:   "integer",
	reflect.Int64:   "integer",
	reflect.Uint:    "integer",
	reflect.Uint8:   "integer",
	reflect.Uint16:  "integer",
	reflect.Uint32:  "integer",
	reflect.Uint64:  "integer",
	reflect.Bool:    "boolean",
	reflect.String:  "string",
	reflect.Invalid: "void",
}

const defaultResponseDescription = "Success"

func defaultResponse() map[string]any {
	return map[string]any{"description": defaultResponseDescription}
}

// Swagger assembles the specification document for an Api. The instance is
// cheap; the model registry it carries is rebuilt on every AsDict pass as
// models are discovered while serializing parameters and responses.
type Swagger struct {
	api        *Api
	registered map[string]SchemaProvider
}

func NewSwagger(a *Api) *Swagger {
	return &Swagger{api: a, registered: map[string]SchemaProvider{}}
}

// AsDict outputs the full Swagger 2.0 specification as a serializable map.
// Declaration mistakes (unregistered models, unknown converters, conflicting
// parameter locations, malformed tags) abort with an error.
func (s *Swagger) AsDict() (map[string]any, error) {
	basepath := s.api.BasePath
	if len(basepath) > 1 && strings.HasSuffix(basepath, "/") {
		basepath = basepath[:len(basepath)-1]
	}

	infos := map[string]any{
		"title":   s.api.Title,
		"version": s.api.Version,
	}
	if s.api.Description != "" {
		infos["description"] = s.api.Description
	}
	if s.api.TermsURL != "" {
		infos["termsOfService"] = s.api.TermsURL
	}
	if c := s.api.Contact; c != nil && (c.Email != "" || c.URL != "") {
		infos["contact"] = notNone(map[string]any{
			"name":  orNil(c.Name),
			"email": orNil(c.Email),
			"url":   orNil(c.URL),
		})
	}
	if l := s.api.License; l != nil {
		license := map[string]any{"name": l.Name}
		if l.URL != "" {
			license["url"] = l.URL
		}
		infos["license"] = license
	}

	tags, err := s.extractTags()
	if err != nil {
		return nil, err
	}

	responses, err := s.registerErrors()
	if err != nil {
		return nil, err
	}

	paths := map[string]any{}
	for _, ns := range s.api.namespaces {
		for _, entry := range ns.resources {
			for _, url := range entry.urls {
				ops, err := s.serializeResource(ns, entry.resource, url)
				if err != nil {
					return nil, err
				}
				if ops != nil {
					paths[extractPath(url)] = ops
				}
			}
		}
	}

	security, err := s.securityRequirements(s.api.Security)
	if err != nil {
		return nil, err
	}

	var authorizations map[string]any
	if len(s.api.Authorizations) > 0 {
		authorizations = map[string]any{}
		for name, def := range s.api.Authorizations {
			authorizations[name] = def
		}
	}

	specs := map[string]any{
		"swagger":             "2.0",
		"basePath":            basepath,
		"paths":               paths,
		"info":                infos,
		"produces":            s.api.mediatypes,
		"consumes":            []string{"application/json"},
		"securityDefinitions": authorizations,
		"security":            emptySliceToNil(security),
		"tags":                tags,
		"definitions":         s.serializeDefinitions(),
		"responses":           responses,
		"host":                orNil(s.getHost()),
	}
	return notNone(specs), nil
}

func (s *Swagger) getHost() string {
	hostname := s.api.Config.ServerName
	if hostname != "" && s.api.Subdomain != "" {
		hostname = s.api.Subdomain + "." + hostname
	}
	return hostname
}

func (s *Swagger) extractTags() ([]any, error) {
	var tags []map[string]any
	byName := map[string]map[string]any{}
	for _, t := range s.api.Tags {
		tag, err := normalizeTag(t)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
		byName[tag["name"].(string)] = tag
	}
	for _, ns := range s.api.namespaces {
		if tag, ok := byName[ns.Name]; ok {
			if ns.Description != "" {
				tag["description"] = ns.Description
			}
			continue
		}
		tag := map[string]any{"name": ns.Name}
		if ns.Description != "" {
			tag["description"] = ns.Description
		}
		tags = append(tags, tag)
	}

	out := make([]any, len(tags))
	for i, t := range tags {
		out[i] = t
	}
	return out, nil
}

func normalizeTag(t any) (map[string]any, error) {
	switch v := t.(type) {
	case string:
		return map[string]any{"name": v}, nil
	case []string:
		if len(v) == 2 {
			return map[string]any{"name": v[0], "description": v[1]}, nil
		}
	case []any:
		if len(v) == 2 {
			name, ok := v[0].(string)
			if !ok {
				break
			}
			return map[string]any{"name": name, "description": v[1]}, nil
		}
	case map[string]any:
		if _, ok := v["name"].(string); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedTag, t)
}

// registerErrors turns the registered error handlers into the document's
// reusable responses table.
func (s *Swagger) registerErrors() (map[string]any, error) {
	if len(s.api.errorHandlers) == 0 {
		return nil, nil
	}
	responses := map[string]any{}
	for _, name := range s.api.errorOrder {
		h := s.api.errorHandlers[name]
		doc := parseDocstring(h.Docstring)
		response := map[string]any{"description": orNil(doc.Summary)}

		headers := map[string]any{}
		for n, p := range h.Params {
			if p["in"] == "header" {
				headers[n] = paramToHeader(copyMap(p))
			}
		}
		if len(headers) > 0 {
			response["headers"] = headers
		}

		if len(h.Responses) > 0 {
			code := sortedKeys(h.Responses)[0]
			if r := h.Responses[code]; r.Model != nil {
				schema, err := s.serializeSchema(r.Model)
				if err != nil {
					return nil, err
				}
				response["schema"] = schema
			}
		}
		responses[name] = notNone(response)
	}
	return responses, nil
}

// resourceDoc is the metadata for one resource at one URL, merged from the
// path, the class-level doc and each method's doc.
type resourceDoc struct {
	name    string
	doc     *Doc
	params  map[string]map[string]any
	methods map[string]*methodDoc
	order   []string
}

type methodDoc struct {
	doc       *Doc
	params    map[string]map[string]any
	docstring docstring
}

func (s *Swagger) extractResourceDoc(r *Resource, url string) (*resourceDoc, error) {
	classDoc := r.Doc
	if classDoc == nil {
		classDoc = &Doc{}
	}

	pathParams, err := extractPathParams(url, s.api.converters)
	if err != nil {
		return nil, err
	}
	params, err := s.mergeDocParams(pathParams, classDoc)
	if err != nil {
		return nil, err
	}

	doc := &resourceDoc{
		name:    r.Name,
		doc:     classDoc,
		params:  params,
		methods: map[string]*methodDoc{},
	}
	for _, verb := range r.order {
		m := r.methods[verb]
		if m == nil || m.Hidden {
			continue
		}
		md := m.Doc
		if md == nil {
			md = &Doc{}
		}
		mparams, err := s.mergeDocParams(map[string]map[string]any{}, md)
		if err != nil {
			return nil, err
		}
		doc.methods[verb] = &methodDoc{
			doc:       md,
			params:    mparams,
			docstring: parseDocstring(md.Docstring),
		}
		doc.order = append(doc.order, verb)
	}
	return doc, nil
}

// mergeDocParams folds a doc's parser, declared params and body model into
// an existing parameter table. Later sources override earlier ones per key.
func (s *Swagger) mergeDocParams(params map[string]map[string]any, d *Doc) (map[string]map[string]any, error) {
	if d.Params == nil && d.Parser == nil && d.Body == nil {
		return params, nil
	}

	if d.Parser != nil {
		fromParser, err := parserToParams(d.Parser)
		if err != nil {
			return nil, err
		}
		params = mergeParams(params, fromParser)
	}

	if d.Params != nil {
		params = mergeParams(params, d.Params)
	}

	if d.Body != nil {
		schema, err := s.serializeSchema(d.Body.Model)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"name":     "payload",
			"required": true,
			"in":       "body",
			"schema":   schema,
		}
		if d.Body.Description != "" {
			payload["description"] = d.Body.Description
		}
		params = mergeParams(params, map[string]map[string]any{"payload": payload})
	}

	return params, nil
}

func (s *Swagger) serializeResource(ns *Namespace, r *Resource, url string) (map[string]any, error) {
	if r.Hidden {
		return nil, nil
	}
	doc, err := s.extractResourceDoc(r, url)
	if err != nil {
		return nil, err
	}

	operations := map[string]any{}
	for _, verb := range doc.order {
		op, err := s.serializeOperation(doc, verb)
		if err != nil {
			return nil, err
		}
		op["tags"] = []string{ns.Name}
		operations[verb] = op
	}
	if len(operations) == 0 {
		return nil, nil
	}
	return operations, nil
}

func (s *Swagger) serializeOperation(doc *resourceDoc, method string) (map[string]any, error) {
	m := doc.methods[method]

	responses, err := s.responsesFor(doc, method)
	if err != nil {
		return nil, err
	}
	params, err := s.parametersFor(doc, method)
	if err != nil {
		return nil, err
	}
	security, err := s.securityFor(doc, method)
	if err != nil {
		return nil, err
	}

	operation := map[string]any{
		"responses":   responses,
		"summary":     orNil(m.docstring.Summary),
		"description": orNil(s.descriptionFor(doc, method)),
		"operationId": s.operationIDFor(doc, method),
		"parameters":  emptySliceToNil(params),
		"security":    security,
	}
	if doc.doc.Deprecated || m.doc.Deprecated {
		operation["deprecated"] = true
	}

	var hasForm, hasFile bool
	for _, p := range params {
		pm := p.(map[string]any)
		if pm["in"] == "formData" {
			hasForm = true
			if pm["type"] == "file" {
				hasFile = true
			}
		}
	}
	if hasForm {
		if hasFile {
			operation["consumes"] = []string{"multipart/form-data"}
		} else {
			operation["consumes"] = []string{"application/x-www-form-urlencoded", "multipart/form-data"}
		}
	}
	return notNone(operation), nil
}

// descriptionFor joins the class description, the method description and
// the docstring details.
func (s *Swagger) descriptionFor(doc *resourceDoc, method string) string {
	var parts []string
	if doc.doc.Description != "" {
		parts = append(parts, doc.doc.Description)
	}
	m := doc.methods[method]
	if m.doc.Description != "" {
		parts = append(parts, m.doc.Description)
	}
	if m.docstring.Details != "" {
		parts = append(parts, m.docstring.Details)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func (s *Swagger) operationIDFor(doc *resourceDoc, method string) string {
	if id := doc.methods[method].doc.ID; id != "" {
		return id
	}
	return s.api.DefaultID(doc.name, method)
}

func (s *Swagger) parametersFor(doc *resourceDoc, method string) ([]any, error) {
	m := doc.methods[method]
	merged := mergeParams(doc.params, m.params)

	var params []any
	for _, name := range sortedKeys(merged) {
		param := copyMap(merged[name])
		param["name"] = name
		_, hasType := param["type"]
		_, hasSchema := param["schema"]
		if !hasType && !hasSchema {
			param["type"] = "string"
		}
		if _, ok := param["in"]; !ok {
			param["in"] = "query"
		}
		if t, ok := param["type"].([]any); ok && len(t) > 0 {
			param["type"] = "array"
			param["items"] = map[string]any{"type": t[0]}
		}
		params = append(params, param)
	}

	// The class-level mask wins over the method-level one when both are set.
	mask := doc.doc.Mask
	if mask == "" {
		mask = m.doc.Mask
	}
	if mask != "" && s.api.Config.MaskSwagger {
		param := map[string]any{
			"name":        s.api.Config.MaskHeader,
			"in":          "header",
			"type":        "string",
			"format":      "mask",
			"description": "An optional fields mask",
		}
		if mask != MaskAny {
			param["default"] = mask
		}
		params = append(params, param)
	}

	return params, nil
}

func (s *Swagger) responsesFor(doc *resourceDoc, method string) (map[string]any, error) {
	m := doc.methods[method]
	responses := map[string]any{}

	for _, d := range []*Doc{doc.doc, m.doc} {
		for _, code := range sortedKeys(d.Responses) {
			r := d.Responses[code]
			description := r.Description
			if description == "" {
				description = defaultResponseDescription
			}
			entry, ok := responses[code].(map[string]any)
			if !ok {
				entry = map[string]any{}
				responses[code] = entry
			}
			entry["description"] = description
			if r.Model != nil {
				schema, err := s.serializeSchema(r.Model)
				if err != nil {
					return nil, err
				}
				entry["schema"] = schema
			}
		}
		if d.Model != nil {
			code := strconv.Itoa(d.DefaultCode)
			if d.DefaultCode == 0 {
				code = "200"
			}
			entry, ok := responses[code].(map[string]any)
			if !ok {
				entry = defaultResponse()
				responses[code] = entry
			}
			schema, err := s.serializeSchema(d.Model)
			if err != nil {
				return nil, err
			}
			entry["schema"] = schema
		}
	}

	for _, name := range sortedKeys(m.docstring.Raises) {
		h, ok := s.api.errorHandlers[name]
		if !ok || len(h.Responses) == 0 {
			continue
		}
		code := sortedKeys(h.Responses)[0]
		responses[code] = map[string]any{"$ref": "#/responses/" + name}
	}

	if len(responses) == 0 {
		responses["200"] = defaultResponse()
	}
	return responses, nil
}

func (s *Swagger) serializeDefinitions() map[string]any {
	if len(s.registered) == 0 {
		return nil
	}
	defs := make(map[string]any, len(s.registered))
	for name, m := range s.registered {
		defs[name] = m.Schema()
	}
	return defs
}

// serializeSchema resolves a model reference to a schema fragment,
// registering every model it leads to into the definitions table.
func (s *Swagger) serializeSchema(model any) (map[string]any, error) {
	switch v := model.(type) {
	case ListOf:
		items, err := s.serializeSchema(v.Of)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "array", "items": items}, nil
	case *ListOf:
		return s.serializeSchema(*v)
	case *fields.Model:
		if err := s.registerModel(v.Name); err != nil {
			return nil, err
		}
		return fields.Ref(v.Name), nil
	case string:
		if err := s.registerModel(v); err != nil {
			return nil, err
		}
		return fields.Ref(v), nil
	case fields.Field:
		return v.Schema(), nil
	case reflect.Kind:
		if t, ok := kindTypes[v]; ok {
			return map[string]any{"type": t}, nil
		}
	default:
		// A bare string names a model, so only non-string primitive
		// values resolve by their kind.
		if t, ok := kindTypes[reflect.ValueOf(model).Kind()]; ok {
			return map[string]any{"type": t}, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrModelNotRegistered, model)
}

func (s *Swagger) registerModel(name string) error {
	specs, ok := s.api.models[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrModelNotRegistered, name)
	}
	if _, done := s.registered[name]; done {
		return nil
	}
	s.registered[name] = specs

	m, ok := specs.(*fields.Model)
	if !ok {
		return nil
	}
	if m.Parent != nil {
		if err := s.registerModel(m.Parent.Name); err != nil {
			return err
		}
	}
	for _, f := range m.Fields {
		if err := s.registerField(f); err != nil {
			return err
		}
	}
	return nil
}

func (s *Swagger) registerField(f fields.Field) error {
	switch v := f.(type) {
	case *fields.Polymorph:
		for _, m := range v.Mapping {
			if err := s.registerModel(m.Name); err != nil {
				return err
			}
		}
	case *fields.Nested:
		if v.Model != nil {
			return s.registerModel(v.Model.Name)
		}
	case *fields.List:
		if v.Items != nil {
			return s.registerField(v.Items)
		}
	}
	return nil
}

func (s *Swagger) securityFor(doc *resourceDoc, method string) (any, error) {
	var security any
	if doc.doc.Security != nil {
		reqs, err := s.securityRequirements(doc.doc.Security)
		if err != nil {
			return nil, err
		}
		security = reqs
	}
	if msec := doc.methods[method].doc.Security; msec != nil {
		reqs, err := s.securityRequirements(msec)
		if err != nil {
			return nil, err
		}
		security = reqs
	}
	return security, nil
}

// securityRequirements normalizes a security declaration into the Swagger
// array-of-requirement-object form.
func (s *Swagger) securityRequirements(value any) ([]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, e := range v {
			r, err := securityRequirement(e)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	case []string:
		out := make([]any, 0, len(v))
		for _, e := range v {
			out = append(out, map[string]any{e: []string{}})
		}
		return out, nil
	default:
		r, err := securityRequirement(v)
		if err != nil {
			return nil, err
		}
		return []any{r}, nil
	}
}

func securityRequirement(value any) (map[string]any, error) {
	switch v := value.(type) {
	case string:
		return map[string]any{v: []string{}}, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for name, scopes := range v {
			switch sv := scopes.(type) {
			case []any:
				out[name] = sv
			case []string:
				out[name] = sv
			case nil:
				out[name] = []string{}
			default:
				out[name] = []any{sv}
			}
		}
		return out, nil
	case map[string][]string:
		out := make(map[string]any, len(v))
		for name, scopes := range v {
			out[name] = scopes
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedSecurity, value)
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func emptySliceToNil(v []any) any {
	if len(v) == 0 {
		return nil
	}
	return v
}
