package restmux

import (
	"fmt"
	"regexp"
)

// URL rules use <converter:name> placeholders. A bare <name> defaults to
// the string converter.
var (
	reURL    = regexp.MustCompile(`<(?:[^:<>]+:)?([^<>]+)>`)
	reParams = regexp.MustCompile(`<((?:[^:<>]+:)?[^<>]+)>`)
)

// Converter describes how a URL placeholder type renders as a Swagger
// primitive.
type Converter struct {
	Type   string
	Format string
}

// Converters every Api starts with. int, float and string carry a Swagger
// primitive; everything else registered later documents as a string.
func defaultConverters() map[string]Converter {
	return map[string]Converter{
		"int":    {Type: "integer"},
		"float":  {Type: "number"},
		"string": {Type: "string"},
		"path":   {Type: "string"},
		"uuid":   {Type: "string", Format: "uuid"},
	}
}

// extractPath transforms a URL rule into a Swagger path template.
func extractPath(rule string) string {
	return reURL.ReplaceAllString(rule, "{$1}")
}

// extractPathParams extracts the rule's placeholders as Swagger path
// parameter objects. Unknown converters abort generation.
func extractPathParams(rule string, converters map[string]Converter) (map[string]map[string]any, error) {
	params := make(map[string]map[string]any)
	for _, m := range reParams.FindAllStringSubmatch(rule, -1) {
		descriptor, name := splitRuleVar(m[1])
		param := map[string]any{
			"name":     name,
			"in":       "path",
			"required": true,
		}
		if descriptor == "" {
			param["type"] = "string"
		} else if c, ok := converters[descriptor]; ok {
			param["type"] = c.Type
			if c.Format != "" {
				param["format"] = c.Format
			}
		} else {
			return nil, fmt.Errorf("%w: %s in rule %s", ErrUnknownConverter, descriptor, rule)
		}
		params[name] = param
	}
	return params, nil
}

// muxRule translates a URL rule into a gorilla/mux route template. Typed
// placeholders keep a matching pattern so the router rejects what the
// document says it will.
func muxRule(rule string) string {
	return reParams.ReplaceAllStringFunc(rule, func(m string) string {
		descriptor, name := splitRuleVar(m[1 : len(m)-1])
		switch descriptor {
		case "int":
			return "{" + name + ":[0-9]+}"
		case "path":
			return "{" + name + ":.+}"
		default:
			return "{" + name + "}"
		}
	})
}

func splitRuleVar(v string) (descriptor, name string) {
	for i := 0; i < len(v); i++ {
		if v[i] == ':' {
			return v[:i], v[i+1:]
		}
	}
	return "", v
}
