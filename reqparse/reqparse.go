// Package reqparse declares the request argument lists that operations
// accept. Parsers only describe arguments here; validation against live
// requests is up to the handlers.
package reqparse

import "github.com/restmux/restmux/fields"

// ArgType is the primitive type of a parsed argument.
type ArgType string

const (
	TypeString  ArgType = "string"
	TypeInteger ArgType = "integer"
	TypeFloat   ArgType = "number"
	TypeBoolean ArgType = "boolean"
	TypeFile    ArgType = "file"
)

// Locations an Arg can be read from. These mirror the places a request
// carries values, not the Swagger "in" vocabulary; the serializer maps
// between the two.
const (
	LocationArgs    = "args"
	LocationForm    = "form"
	LocationHeaders = "headers"
	LocationJson    = "json"
	LocationValues  = "values"
	LocationFiles   = "files"
	LocationCookie  = "cookie"
)

// Arg describes a single request argument.
type Arg struct {
	Name     string
	Location string
	Type     ArgType
	Model    *fields.Model
	Required bool
	Help     string
	Default  any
	Choices  []any
	Append   bool
}

// Parser holds an ordered argument list.
type Parser struct {
	Args []*Arg
}

func NewParser() *Parser {
	return &Parser{}
}

// AddArgument appends an argument and returns the parser for chaining.
func (p *Parser) AddArgument(a *Arg) *Parser {
	if a.Location == "" {
		a.Location = LocationArgs
	}
	p.Args = append(p.Args, a)
	return p
}
