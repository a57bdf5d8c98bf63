package services

import (
	"sort"
	"strings"
)

// NoSuggestionsMessage is returned as a one-element list for interests the
// catalog does not cover.
const NoSuggestionsMessage = "Sorry, no suggestions available for this interest."

type CareerCatalog interface {
	Suggest(interest string) []string
	Interests() []string
}

type careerCatalog struct {
	paths map[string][]string
}

// NewCareerCatalog builds the immutable interest -> career-path mapping once
// at startup. Lookups are case-insensitive.
func NewCareerCatalog() CareerCatalog {
	return &careerCatalog{
		paths: map[string][]string{
			"ai":         {"Machine Learning Engineer", "Data Scientist", "AI Researcher", "AI Product Manager"},
			"finance":    {"Investment Banker", "Financial Analyst", "Risk Manager", "Wealth Advisor"},
			"design":     {"UI/UX Designer", "Graphic Designer", "Product Designer", "Game Designer"},
			"healthcare": {"Doctor", "Nurse", "Medical Researcher", "Healthcare Administrator"},
			"law":        {"Corporate Lawyer", "Judge", "Legal Advisor", "Criminal Lawyer"},
			"dance":      {"Choreographer", "Dance Academy", "Influencer", "Background Dancer"},
		},
	}
}

// Suggest implements CareerCatalog.
func (c *careerCatalog) Suggest(interest string) []string {
	paths, ok := c.paths[strings.ToLower(strings.TrimSpace(interest))]
	if !ok {
		return []string{NoSuggestionsMessage}
	}

	// Copy so callers cannot mutate the catalog.
	out := make([]string, len(paths))
	copy(out, paths)

	return out
}

// Interests implements CareerCatalog. The slice comes back sorted so callers
// see a stable order.
func (c *careerCatalog) Interests() []string {
	interests := make([]string, 0, len(c.paths))
	for k := range c.paths {
		interests = append(interests, k)
	}
	sort.Strings(interests)

	return interests
}
