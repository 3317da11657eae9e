package fields

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fastjson"
)

// FromSample builds a model by inferring field types from a sample JSON
// payload. The sample root must be an object. Arrays infer their item type
// by merging every element; fields seen in only some elements come out
// optional.
func FromSample(name string, b []byte) (*Model, error) {
	v, err := fastjson.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("sample for model %s is %s, want object", name, v.Type())
	}
	o, err := v.Object()
	if err != nil {
		return nil, err
	}
	fs, err := fieldsFromFastJson(o)
	if err != nil {
		return nil, err
	}
	return &Model{Name: name, Fields: fs}, nil
}

func fieldsFromFastJson(o *fastjson.Object) (map[string]Field, error) {
	fs := make(map[string]Field)
	var visitErr error
	o.Visit(func(key []byte, v *fastjson.Value) {
		if visitErr != nil {
			return
		}
		f, err := fieldFromFastJson(v)
		if err != nil {
			visitErr = err
			return
		}
		fs[string(key)] = f
	})
	return fs, visitErr
}

func fieldFromFastJson(v *fastjson.Value) (Field, error) {
	switch v.Type() {
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return nil, err
		}
		fs, err := fieldsFromFastJson(o)
		if err != nil {
			return nil, err
		}
		return &sampleObject{props: fs}, nil
	case fastjson.TypeArray:
		a, err := v.Array()
		if err != nil {
			return nil, err
		}
		var item Field
		for _, e := range a {
			f, err := fieldFromFastJson(e)
			if err != nil {
				return nil, err
			}
			item = mergeSampleFields(item, f)
		}
		return &List{Items: item}, nil
	case fastjson.TypeString:
		sb, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return fieldFromSampleString(string(sb)), nil
	case fastjson.TypeNumber:
		if _, err := v.Int64(); err == nil {
			return &Integer{}, nil
		}
		return &Float{}, nil
	case fastjson.TypeTrue, fastjson.TypeFalse:
		return &Boolean{}, nil
	case fastjson.TypeNull:
		return &Raw{}, nil
	}
	panic("should be unreachable")
}

func fieldFromSampleString(s string) Field {
	// especially interested in inferring the "format" property
	if _, err := uuid.Parse(s); err == nil {
		return &Uuid{}
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return &DateTime{}
	}
	return &String{}
}

// sampleObject is an inline object schema produced only by inference; it
// never lands in the definitions table.
type sampleObject struct {
	Raw
	props map[string]Field
}

func (f *sampleObject) Schema() map[string]any {
	props := make(map[string]any, len(f.props))
	for k, v := range f.props {
		props[k] = v.Schema()
	}
	return map[string]any{"type": "object", "properties": props}
}

func mergeSampleFields(a, b Field) Field {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	ao, aIsObj := a.(*sampleObject)
	bo, bIsObj := b.(*sampleObject)
	if aIsObj && bIsObj {
		props := make(map[string]Field, len(ao.props))
		for k, v := range ao.props {
			if w, ok := bo.props[k]; ok {
				props[k] = mergeSampleFields(v, w)
			} else {
				props[k] = v
			}
		}
		for k, v := range bo.props {
			if _, ok := ao.props[k]; !ok {
				props[k] = v
			}
		}
		return &sampleObject{props: props}
	}

	aa, aIsArr := a.(*List)
	ba, bIsArr := b.(*List)
	if aIsArr && bIsArr {
		return &List{Items: mergeSampleFields(aa.Items, ba.Items)}
	}

	if _, ok := a.(*Raw); ok {
		return b
	}
	if _, ok := b.(*Raw); ok {
		return a
	}

	// conflicting value kinds collapse to an unconstrained field
	if sameSampleKind(a, b) {
		return a
	}
	return &Raw{}
}

func sameSampleKind(a, b Field) bool {
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}
