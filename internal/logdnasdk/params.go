package logdnasdk

import "strings"

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an insertion-ordered list of query parameters. Unlike url.Values
// it never sorts, so the encoded form is byte-for-byte what gets signed.
type Params []Param

// Get returns the first value for key, or "".
func (p Params) Get(key string) string {
	for _, param := range p {
		if param.Key == key {
			return param.Value
		}
	}
	return ""
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	for _, param := range p {
		if param.Key == key {
			return true
		}
	}
	return false
}

// Add appends key=value and returns the extended list.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Without returns a copy of p with every key entry removed.
func (p Params) Without(key string) Params {
	out := make(Params, 0, len(p))
	for _, param := range p {
		if param.Key != key {
			out = append(out, param)
		}
	}
	return out
}

// Encode renders the list as a query string in insertion order.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(escape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(escape(param.Value))
	}
	return sb.String()
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes everything except the characters the service's
// signature verifier leaves alone: A-Z a-z 0-9 - _ . ! ~ * ' ( )
func escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
