package engine

import "net/url"

const stackSearchURL = "http://www.stackoverflow.com/search"

// StackEngine uses the Stack Overflow site search, scoped to a language tag
type StackEngine struct {
	Language string
}

// Search builds the Stack Overflow search URL for query
func (s *StackEngine) Search(query string) string {
	q := query + " [" + s.Language + "]"
	return stackSearchURL + "?" + url.Values{"q": {q}}.Encode()
}

// Name describes where the search looks
func (s *StackEngine) Name() string {
	return "Stack Overflow"
}
