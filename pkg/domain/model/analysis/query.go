package analysis

import (
	"net/url"
	"strings"
)

// Query is the caller input resolved once at entry into either a URLQuery or
// a TextQuery.
type Query interface {
	Input() string
	Kind() Kind
	isQuery()
}

// URLQuery is an input that parses as an absolute URL.
type URLQuery struct {
	Raw string
	URL *url.URL
}

func (x URLQuery) Input() string { return x.Raw }
func (x URLQuery) Kind() Kind    { return KindURLAnalysis }
func (URLQuery) isQuery()        {}

// TextQuery is any other input, typically a security question.
type TextQuery struct {
	Raw string
}

func (x TextQuery) Input() string { return x.Raw }
func (x TextQuery) Kind() Kind    { return KindGeneralQuery }
func (TextQuery) isQuery()        {}

// ParseQuery classifies input. An input is a URL when it contains no
// whitespace and parses with a scheme plus either a host or an opaque part,
// e.g. "https://example.com" or "mailto:someone@example.com".
func ParseQuery(input string) Query {
	raw := strings.TrimSpace(input)
	if raw == "" || strings.ContainsAny(raw, " \t\r\n") {
		return TextQuery{Raw: raw}
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return TextQuery{Raw: raw}
	}
	if u.Host == "" && u.Opaque == "" {
		return TextQuery{Raw: raw}
	}

	return URLQuery{Raw: raw, URL: u}
}

// IsURL reports whether q is a URLQuery.
func IsURL(q Query) bool {
	_, ok := q.(URLQuery)
	return ok
}
