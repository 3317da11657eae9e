package restmux

import "github.com/restmux/restmux/fields"

// Namespace groups resources under a shared URL prefix. Namespaces become
// Swagger tags; every operation in a namespace is tagged with its name.
type Namespace struct {
	Name        string
	Description string
	Path        string

	api       *Api
	resources []resourceEntry
}

type resourceEntry struct {
	resource *Resource
	urls     []string
}

// Route attaches a resource to one or more URL rules. Rules are relative
// to the namespace path.
func (ns *Namespace) Route(r *Resource, urls ...string) *Resource {
	full := make([]string, len(urls))
	for i, u := range urls {
		full[i] = ns.Path + u
	}
	if len(full) == 0 {
		full = []string{ns.Path}
	}
	ns.resources = append(ns.resources, resourceEntry{resource: r, urls: full})
	return r
}

// Model registers a model with the owning api and returns it, so namespaces
// can declare their models inline.
func (ns *Namespace) Model(m *fields.Model) *fields.Model {
	ns.api.AddModel(m.Name, m)
	return m
}
