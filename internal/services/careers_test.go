package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCareerCatalogSuggest(t *testing.T) {
	catalog := NewCareerCatalog()

	assert.Equal(t,
		[]string{"Machine Learning Engineer", "Data Scientist", "AI Researcher", "AI Product Manager"},
		catalog.Suggest("ai"),
	)

	// Lookup is case-insensitive and trims whitespace.
	assert.Equal(t, catalog.Suggest("ai"), catalog.Suggest("  AI "))
}

func TestCareerCatalogUnknownInterest(t *testing.T) {
	catalog := NewCareerCatalog()

	assert.Equal(t, []string{NoSuggestionsMessage}, catalog.Suggest("astrology"))
}

func TestCareerCatalogSuggestReturnsCopy(t *testing.T) {
	catalog := NewCareerCatalog()

	first := catalog.Suggest("law")
	first[0] = "mutated"

	assert.Equal(t, "Corporate Lawyer", catalog.Suggest("law")[0])
}

func TestCareerCatalogInterests(t *testing.T) {
	catalog := NewCareerCatalog()

	interests := catalog.Interests()
	assert.Equal(t, []string{"ai", "dance", "design", "finance", "healthcare", "law"}, interests)

	// Order is stable across calls.
	assert.Equal(t, interests, catalog.Interests())
}
