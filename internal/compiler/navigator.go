// Package compiler translates compact navigator strings into a workflow
// root identifier plus a key/value parameter set.
//
// Two dialects exist. The colon dialect is the general form:
//
//	root:key1=value1:key2=value2
//
// where a literal '=' inside a value is pre-escaped as '~' by the producer.
// The path dialect mirrors hash-fragment URLs:
//
//	#/root/seg1/seg2~key/value/key2/value2
//
// where the first two path segments concatenate into the root and the
// remaining segments become positional parameters "0", "1", ...
//
// Navigators embedded in identifiers (form ids and the like) use the
// escaped encoding: '#' as '_' and '=' as '.'.
package compiler

import (
	"sort"
	"strconv"
	"strings"
)

// Navigator is the parsed form of a navigator string.
type Navigator struct {
	// Root identifies the registered workflow.
	Root string

	// Params holds the decoded key/value parameters, including positional
	// path segments under "0", "1", ...
	Params map[string]string
}

// Unescape decodes the identifier-safe encoding: '_' -> '#', '.' -> '='.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, "_", "#")
	return strings.ReplaceAll(s, ".", "=")
}

// EscapeID encodes a navigator for use inside an identifier: '#' -> '_',
// '=' -> '.'.
func EscapeID(s string) string {
	s = strings.ReplaceAll(s, "#", "_")
	return strings.ReplaceAll(s, "=", ".")
}

// Parse decodes a navigator string. When escaped is true the identifier
// encoding is undone first, before dialect dispatch.
//
// Dialect selection: a string containing ':' is always colon dialect, so
// colon navigators may carry '/' inside their root (e.g. "#/root:a=1").
// Otherwise a '/' at index 1 selects the path dialect.
func Parse(raw string, escaped bool) Navigator {
	if escaped {
		raw = Unescape(raw)
	}

	if !strings.Contains(raw, ":") && len(raw) > 1 && raw[1] == '/' {
		return parsePath(raw)
	}
	return parseColon(raw)
}

func parseColon(raw string) Navigator {
	tokens := strings.Split(raw, ":")
	nav := Navigator{
		Root:   tokens[0],
		Params: make(map[string]string),
	}

	for _, tok := range tokens[1:] {
		// First '=' delimits key from value; later ones belong to the
		// value and arrive pre-escaped as '~'.
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			continue
		}
		nav.Params[key] = strings.ReplaceAll(value, "~", "=")
	}
	return nav
}

func parsePath(raw string) Navigator {
	pathPart, queryPart, _ := strings.Cut(raw, "~")

	nav := Navigator{
		Params: make(map[string]string),
	}

	segments := strings.Split(pathPart, "/")
	if len(segments) >= 2 {
		// The first two segments concatenate into the root: "#/page"
		// splits into ["#", "page"] and yields "#page".
		nav.Root = segments[0] + segments[1]
	} else {
		nav.Root = pathPart
	}

	for i, seg := range segments[2:] {
		nav.Params[strconv.Itoa(i)] = seg
	}

	if queryPart != "" {
		pairs := strings.Split(queryPart, "/")
		i := 0
		if pairs[0] == "" {
			i = 1
		}
		for ; i+1 < len(pairs); i += 2 {
			nav.Params[pairs[i]] = pairs[i+1]
		}
	}
	return nav
}

// Encode produces a colon-dialect navigator, escaping '=' inside values as
// '~'. Parsing the result yields root and params back unchanged.
func Encode(root string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(root)
	for _, key := range keys {
		b.WriteByte(':')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(strings.ReplaceAll(params[key], "=", "~"))
	}
	return b.String()
}
