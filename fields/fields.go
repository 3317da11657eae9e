// Package fields holds the declarative model and field types that resources
// document their payloads with. Every field renders itself as a Swagger 2.0
// schema fragment; models collect named fields into reusable definitions.
package fields

// Field is anything that can describe itself as a schema fragment.
type Field interface {
	Schema() map[string]any
}

// Raw is the base field. It renders an unconstrained schema carrying only
// the decoration (description, default, ...) that was set.
type Raw struct {
	Description string
	Required    bool
	Default     any
	Example     any
}

func (f *Raw) Schema() map[string]any {
	return f.decorate(map[string]any{})
}

func (f *Raw) required() bool { return f.Required }

func (f *Raw) decorate(s map[string]any) map[string]any {
	if f.Description != "" {
		s["description"] = f.Description
	}
	if f.Default != nil {
		s["default"] = f.Default
	}
	if f.Example != nil {
		s["example"] = f.Example
	}
	return s
}

type String struct {
	Raw
	Enum      []any
	MinLength int
	MaxLength int
	Pattern   string
}

func (f *String) Schema() map[string]any {
	s := f.decorate(map[string]any{"type": "string"})
	if len(f.Enum) > 0 {
		s["enum"] = f.Enum
	}
	if f.MinLength > 0 {
		s["minLength"] = f.MinLength
	}
	if f.MaxLength > 0 {
		s["maxLength"] = f.MaxLength
	}
	if f.Pattern != "" {
		s["pattern"] = f.Pattern
	}
	return s
}

type Integer struct {
	Raw
	Min *int
	Max *int
}

func (f *Integer) Schema() map[string]any {
	s := f.decorate(map[string]any{"type": "integer"})
	if f.Min != nil {
		s["minimum"] = *f.Min
	}
	if f.Max != nil {
		s["maximum"] = *f.Max
	}
	return s
}

type Float struct {
	Raw
}

func (f *Float) Schema() map[string]any {
	return f.decorate(map[string]any{"type": "number"})
}

type Boolean struct {
	Raw
}

func (f *Boolean) Schema() map[string]any {
	return f.decorate(map[string]any{"type": "boolean"})
}

type DateTime struct {
	Raw
}

func (f *DateTime) Schema() map[string]any {
	return f.decorate(map[string]any{"type": "string", "format": "date-time"})
}

type Url struct {
	Raw
}

func (f *Url) Schema() map[string]any {
	return f.decorate(map[string]any{"type": "string", "format": "uri"})
}

type Uuid struct {
	Raw
}

func (f *Uuid) Schema() map[string]any {
	return f.decorate(map[string]any{"type": "string", "format": "uuid"})
}

// Nested references another model. The reference is emitted as a $ref so the
// serializer is responsible for making sure the target lands in definitions.
type Nested struct {
	Raw
	Model     *Model
	AllowNull bool
	AsList    bool
}

func (f *Nested) Schema() map[string]any {
	ref := Ref(f.Model.Name)
	if f.AsList {
		return f.decorate(map[string]any{"type": "array", "items": ref})
	}
	if f.AllowNull {
		return f.decorate(map[string]any{"allOf": []any{ref}})
	}
	// decorations next to $ref are ignored by most tooling, keep the ref bare
	if f.Description == "" && f.Default == nil && f.Example == nil {
		return ref
	}
	return f.decorate(map[string]any{"allOf": []any{ref}})
}

// List wraps a container field.
type List struct {
	Raw
	Items Field
}

func (f *List) Schema() map[string]any {
	var items map[string]any
	if f.Items != nil {
		items = f.Items.Schema()
	} else {
		items = map[string]any{}
	}
	return f.decorate(map[string]any{"type": "array", "items": items})
}

// Polymorph documents a field whose concrete schema depends on the runtime
// type of the value. The mapping keys are discriminator values.
type Polymorph struct {
	Raw
	Mapping map[string]*Model
}

func (f *Polymorph) Schema() map[string]any {
	return f.decorate(map[string]any{})
}

// Ref returns a reference into the definitions table.
func Ref(name string) map[string]any {
	return map[string]any{"$ref": "#/definitions/" + name}
}
