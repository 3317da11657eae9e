package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSampleFlat(t *testing.T) {
	m, err := FromSample("Widget", []byte(`{
		"id": 7,
		"title": "gizmo",
		"weight": 1.5,
		"active": true
	}`))
	assert.Nil(t, err)
	assert.Equal(t, "Widget", m.Name)

	assert.IsType(t, &Integer{}, m.Fields["id"])
	assert.IsType(t, &String{}, m.Fields["title"])
	assert.IsType(t, &Float{}, m.Fields["weight"])
	assert.IsType(t, &Boolean{}, m.Fields["active"])
}

func TestFromSampleFormats(t *testing.T) {
	m, err := FromSample("Event", []byte(`{
		"id": "b5f061a4-d257-4ccf-9a3c-0f2d6e2ecc8a",
		"at": "2023-10-01T12:30:00Z",
		"note": "hello"
	}`))
	assert.Nil(t, err)

	assert.IsType(t, &Uuid{}, m.Fields["id"])
	assert.IsType(t, &DateTime{}, m.Fields["at"])
	assert.IsType(t, &String{}, m.Fields["note"])
}

func TestFromSampleNestedObject(t *testing.T) {
	m, err := FromSample("Order", []byte(`{"customer": {"name": "x", "age": 3}}`))
	assert.Nil(t, err)

	s := m.Fields["customer"].Schema()
	assert.Equal(t, "object", s["type"])
	props := s["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string"}, props["name"])
	assert.Equal(t, map[string]any{"type": "integer"}, props["age"])
}

func TestFromSampleArrayMergesElements(t *testing.T) {
	m, err := FromSample("Batch", []byte(`{
		"items": [{"a": 1}, {"a": 2, "b": "x"}]
	}`))
	assert.Nil(t, err)

	list := m.Fields["items"].(*List)
	s := list.Items.Schema()
	props := s["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "integer"}, props["a"])
	assert.Equal(t, map[string]any{"type": "string"}, props["b"])
}

func TestFromSampleArrayConflictCollapses(t *testing.T) {
	m, err := FromSample("Mixed", []byte(`{"xs": [1, "two"]}`))
	assert.Nil(t, err)

	list := m.Fields["xs"].(*List)
	assert.IsType(t, &Raw{}, list.Items)
}

func TestFromSampleNullThenValue(t *testing.T) {
	m, err := FromSample("Sparse", []byte(`{"xs": [null, 3]}`))
	assert.Nil(t, err)

	list := m.Fields["xs"].(*List)
	assert.IsType(t, &Integer{}, list.Items)
}

func TestFromSampleRejectsNonObject(t *testing.T) {
	_, err := FromSample("Nope", []byte(`[1, 2, 3]`))
	assert.NotNil(t, err)

	_, err = FromSample("Nope", []byte(`{broken`))
	assert.NotNil(t, err)
}
