package logdnasdk

import "strings"

const debugExclusion = "level:-debug"

// FilterOptions is the raw user input for tail and search.
type FilterOptions struct {
	Hosts        string // comma separated
	Apps         string // comma separated
	Levels       string // comma separated
	IncludeDebug bool
}

// Filter is the canonical form sent to the service.
type Filter struct {
	Query  string
	Hosts  string
	Apps   string
	Levels string
}

// BuildFilter canonicalises query syntax only. Values are not deduplicated,
// reordered or checked against any vocabulary; the service owns filtering.
func BuildFilter(rawQuery string, opts FilterOptions) Filter {
	query := rawQuery
	if !opts.IncludeDebug {
		query += " " + debugExclusion
	}

	return Filter{
		Query:  strings.TrimSpace(query),
		Hosts:  normalizeList(opts.Hosts),
		Apps:   normalizeList(opts.Apps),
		Levels: normalizeList(opts.Levels),
	}
}

// Params returns q followed by the list fields that are set.
func (f Filter) Params() Params {
	params := Params{{Key: "q", Value: f.Query}}
	if f.Hosts != "" {
		params = params.Add("hosts", f.Hosts)
	}
	if f.Apps != "" {
		params = params.Add("apps", f.Apps)
	}
	if f.Levels != "" {
		params = params.Add("levels", f.Levels)
	}
	return params
}

// Summary describes the filters as the user typed them.
func (o FilterOptions) Summary(rawQuery string) string {
	levels := o.Levels
	if levels == "" {
		levels = "-debug"
		if o.IncludeDebug {
			levels = "all"
		}
	}
	return "hosts: " + orDefault(o.Hosts, "all") +
		". apps: " + orDefault(o.Apps, "all") +
		". levels: " + levels +
		". query: " + orDefault(rawQuery, "none")
}

func normalizeList(list string) string {
	return strings.ReplaceAll(list, ", ", ",")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
