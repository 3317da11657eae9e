package reqparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddArgumentDefaultsLocation(t *testing.T) {
	p := NewParser().AddArgument(&Arg{Name: "q"})
	assert.Equal(t, LocationArgs, p.Args[0].Location)
}

func TestAddArgumentKeepsOrder(t *testing.T) {
	p := NewParser().
		AddArgument(&Arg{Name: "a"}).
		AddArgument(&Arg{Name: "b", Location: LocationHeaders}).
		AddArgument(&Arg{Name: "c"})

	names := make([]string, len(p.Args))
	for i, a := range p.Args {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, LocationHeaders, p.Args[1].Location)
}
