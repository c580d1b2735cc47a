package youtube

import (
	"fmt"
	"net/url"
	"strings"
)

// Difficulty phrases appended to the search query.
var difficultyPhrases = map[string]string{
	"beginner":     " for beginners explained simple",
	"intermediate": " interview questions",
	"advanced":     " advanced techniques",
}

// creatorBoost nudges relevance toward the creators we trust most.
const creatorBoost = " striver abdul bari"

// BuildQuery composes the search string for a topic and optional difficulty.
// Unknown difficulties add no phrase.
func BuildQuery(topic, difficulty string) string {
	query := fmt.Sprintf("%s tutorial programming", topic)
	query += difficultyPhrases[NormalizeDifficulty(difficulty)]
	return query + creatorBoost
}

// NormalizeDifficulty lower-cases and trims a difficulty level.
func NormalizeDifficulty(difficulty string) string {
	return strings.ToLower(strings.TrimSpace(difficulty))
}

// CacheKey is the composite recommendation cache key.
func CacheKey(topic string, maxResults int, difficulty string) string {
	return fmt.Sprintf("%s_%d_%s", topic, maxResults, difficulty)
}

// QualityFilter keeps videos from trusted channels or with telling titles.
type QualityFilter struct {
	trusted  map[string]bool
	keywords []string
}

// NewQualityFilter builds a filter from a category -> channel IDs allow-list
// and a set of title keywords.
func NewQualityFilter(trustedChannels map[string][]string, keywords []string) *QualityFilter {
	trusted := make(map[string]bool)
	for _, ids := range trustedChannels {
		for _, id := range ids {
			trusted[id] = true
		}
	}
	kws := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			kws = append(kws, kw)
		}
	}
	return &QualityFilter{trusted: trusted, keywords: kws}
}

// Accept reports whether v passes: trusted channel OR a keyword in the title.
func (f *QualityFilter) Accept(v Video) bool {
	if f.trusted[v.ChannelID] {
		return true
	}
	title := strings.ToLower(v.Title)
	for _, kw := range f.keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// Fallback returns the static recommendations used when live search is
// unavailable: two web-search links for fixed, well-known creators.
func Fallback(topic string) []Video {
	q := url.QueryEscape(topic)
	return []Video{
		{
			Title:       fmt.Sprintf("%s Tutorial - Take U Forward", topic),
			Creator:     "Take U Forward (Striver)",
			URL:         fmt.Sprintf("https://www.youtube.com/results?search_query=%s+striver", q),
			Description: fmt.Sprintf("Search YouTube for %s by Striver", topic),
			Topic:       topic,
		},
		{
			Title:       fmt.Sprintf("%s Explained - Abdul Bari", topic),
			Creator:     "Abdul Bari",
			URL:         fmt.Sprintf("https://www.youtube.com/results?search_query=%s+abdul+bari", q),
			Description: fmt.Sprintf("Search YouTube for %s by Abdul Bari", topic),
			Topic:       topic,
		},
	}
}
