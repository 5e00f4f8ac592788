package modkit

import (
	"net/http"

	str "engagegov/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
}

// Build applies Option funcs and returns a plain struct; def names the module when no WithName is given
func Build(def string, opts ...Option) Built {
	c := buildCfg{name: def}
	for _, o := range opts {
		o(&c)
	}
	c.name = str.FirstNonBlank(c.name, def)
	return Built{
		Name:      c.name,
		Prefix:    str.Prefix(c.prefix),
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
	}
}
