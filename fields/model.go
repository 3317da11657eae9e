package fields

import "sort"

// Model is a named, reusable schema definition composed of typed fields.
// A model with a parent renders as allOf over the parent reference, which
// is how Swagger 2.0 spells inheritance.
type Model struct {
	Name   string
	Parent *Model
	Fields map[string]Field
}

func NewModel(name string, fs map[string]Field) *Model {
	return &Model{Name: name, Fields: fs}
}

// Inherit derives a child model carrying extra fields on top of m.
func (m *Model) Inherit(name string, fs map[string]Field) *Model {
	return &Model{Name: name, Parent: m, Fields: fs}
}

func (m *Model) Schema() map[string]any {
	props := make(map[string]any, len(m.Fields))
	var required []string
	for name, f := range m.Fields {
		props[name] = f.Schema()
		if isRequired(f) {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	own := map[string]any{"type": "object"}
	if len(props) > 0 {
		own["properties"] = props
	}
	if len(required) > 0 {
		own["required"] = required
	}

	if m.Parent != nil {
		return map[string]any{"allOf": []any{Ref(m.Parent.Name), own}}
	}
	return own
}

func isRequired(f Field) bool {
	r, ok := f.(interface{ required() bool })
	return ok && r.required()
}
