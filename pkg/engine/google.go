package engine

import (
	"net/url"
	"strings"
)

const (
	googleSearchURL = "http://www.google.com/search"
	googleSiteScope = "site:stackoverflow.com"
	googlePathScope = "inurl:questions"
)

// GoogleEngine searches with Google, optionally limited to Stack Overflow questions
type GoogleEngine struct {
	Restricted bool
	Language   string
}

// Search builds the Google search URL for query
func (g *GoogleEngine) Search(query string) string {
	terms := []string{query, g.Language}
	if g.Restricted {
		terms = append(terms, googleSiteScope, googlePathScope)
	}
	return googleSearchURL + "?" + url.Values{"q": {strings.Join(terms, " ")}}.Encode()
}

// Name describes where the search looks
func (g *GoogleEngine) Name() string {
	if g.Restricted {
		return "Stack Overflow (using Google)"
	}
	return "the web (using Google)"
}
