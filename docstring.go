package restmux

import (
	"regexp"
	"strings"
)

var reRaises = regexp.MustCompile(`(?m)^:raises\s+(\w+)\s*:\s*(.*)$`)

// docstring is the parsed form of a free-text method description. The first
// sentence becomes the operation summary, :raises annotations feed the
// error-response cross references, everything left over is the details.
type docstring struct {
	Raw     string
	Summary string
	Details string
	Raises  map[string]string
}

func parseDocstring(raw string) docstring {
	d := docstring{Raw: raw, Raises: map[string]string{}}
	if raw == "" {
		return d
	}

	trimmed := strings.Trim(raw, " \n")
	firstLine, _, _ := strings.Cut(trimmed, "\n")
	d.Summary, _, _ = strings.Cut(firstLine, ".")

	details := raw
	if d.Summary != "" {
		details = strings.Replace(details, d.Summary, "", 1)
	}
	details = strings.TrimLeft(details, ". \n")
	details = strings.Trim(details, " \n")

	for _, m := range reRaises.FindAllStringSubmatch(raw, -1) {
		d.Raises[m[1]] = m[2]
		details = strings.Replace(details, m[0], "", 1)
	}
	d.Details = strings.Trim(details, " \n")
	return d
}
