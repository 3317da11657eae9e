package restmux

import (
	"fmt"

	"github.com/restmux/restmux/reqparse"
)

// Maps reqparse locations to Swagger ones. Cookie args have no Swagger 2.0
// home and are skipped.
var parserLocations = map[string]string{
	reqparse.LocationArgs:    "query",
	reqparse.LocationForm:    "formData",
	reqparse.LocationHeaders: "header",
	reqparse.LocationJson:    "body",
	reqparse.LocationValues:  "query",
	reqparse.LocationFiles:   "formData",
}

// parserToParams extracts Swagger parameters from a request parser.
func parserToParams(p *reqparse.Parser) (map[string]map[string]any, error) {
	params := map[string]map[string]any{}
	locations := map[string]bool{}
	for _, arg := range p.Args {
		if arg.Location == reqparse.LocationCookie {
			continue
		}
		in, ok := parserLocations[arg.Location]
		if !ok {
			in = "query"
		}
		param := map[string]any{"in": in}
		handleArgType(arg, param)
		if arg.Required {
			param["required"] = true
		}
		if arg.Help != "" {
			param["description"] = arg.Help
		}
		if arg.Default != nil {
			param["default"] = arg.Default
		}
		if arg.Append {
			param["items"] = map[string]any{"type": param["type"]}
			param["type"] = "array"
			param["collectionFormat"] = "multi"
		}
		if len(arg.Choices) > 0 {
			param["enum"] = arg.Choices
			param["collectionFormat"] = "multi"
		}
		params[arg.Name] = param
		locations[param["in"].(string)] = true
	}
	if locations["body"] && locations["formData"] {
		return nil, fmt.Errorf("%w: can't use formData and body at the same time", ErrSpecs)
	}
	return params, nil
}

func handleArgType(arg *reqparse.Arg, param map[string]any) {
	switch {
	case arg.Model != nil:
		param["type"] = arg.Model.Name
		param["in"] = "body"
	case arg.Type != "":
		param["type"] = string(arg.Type)
	case arg.Location == reqparse.LocationFiles:
		param["type"] = "file"
	default:
		param["type"] = "string"
	}
}

// paramToHeader strips the location from a parameter so it can be reused as
// a response header object.
func paramToHeader(param map[string]any) map[string]any {
	delete(param, "in")
	if _, ok := param["type"]; !ok {
		param["type"] = "string"
	}
	return param
}
