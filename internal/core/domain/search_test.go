package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearchResult_DedupKey(t *testing.T) {
	a := SearchResult{Source: "Slack", Title: "deploy"}
	b := SearchResult{Source: "Slack", Title: "deploy", Content: "different body"}
	c := SearchResult{Source: "GitHub", Title: "deploy"}

	assert.Equal(t, a.DedupKey(), b.DedupKey())
	assert.NotEqual(t, a.DedupKey(), c.DedupKey())
}

func TestSearchResult_DedupKeyNoCollisionOnConcatenation(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collide.
	a := SearchResult{Title: "ab", Source: "c"}
	b := SearchResult{Title: "a", Source: "bc"}

	assert.NotEqual(t, a.DedupKey(), b.DedupKey())
}

func TestSearchOptions_EffectiveTimeout(t *testing.T) {
	assert.Equal(t, DefaultSearchTimeout, SearchOptions{}.EffectiveTimeout())
	assert.Equal(t, DefaultSearchTimeout, SearchOptions{Timeout: -time.Second}.EffectiveTimeout())
	assert.Equal(t, 5*time.Second, SearchOptions{Timeout: 5 * time.Second}.EffectiveTimeout())
}
