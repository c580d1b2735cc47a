// Package catalog loads the curated study catalog: which YouTube channels
// are trusted per category, which title keywords signal a quality video,
// and the hand-picked resources for each topic.
//
// The catalog is plain YAML so it can be edited without a rebuild. A default
// copy is compiled into the binary with go:embed.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Channel is a trusted YouTube creator.
type Channel struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Resource is one curated learning resource.
type Resource struct {
	Title      string `yaml:"title" json:"title"`
	Creator    string `yaml:"creator" json:"creator"`
	URL        string `yaml:"url" json:"url"`
	Difficulty string `yaml:"difficulty" json:"difficulty,omitempty"`
}

// Topic groups curated resources under a study topic.
type Topic struct {
	Name      string     `yaml:"name" json:"name"`
	Category  string     `yaml:"category" json:"category"`
	Resources []Resource `yaml:"resources" json:"resources"`
}

// Catalog is the parsed curated catalog.
type Catalog struct {
	TrustedChannels map[string][]Channel `yaml:"trusted_channels"`
	QualityKeywords []string             `yaml:"quality_keywords"`
	Topics          []Topic              `yaml:"topics"`
}

// SearchResult is a resource matched by Search, tagged with its topic.
type SearchResult struct {
	Resource
	Topic string `json:"topic"`
	Score int    `json:"score"`
}

// TopicSummary is the listing entry returned by ListTopics.
type TopicSummary struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	ResourceCount int    `json:"resource_count"`
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded catalog. It panics only if the embedded
// file is broken, which the package tests guard against.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	for i, kw := range c.QualityKeywords {
		c.QualityKeywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)
	for _, t := range c.Topics {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("catalog topic with empty name")
		}
		key := strings.ToLower(t.Name)
		if seen[key] {
			return fmt.Errorf("duplicate catalog topic %q", t.Name)
		}
		seen[key] = true
	}
	for category, channels := range c.TrustedChannels {
		for _, ch := range channels {
			if ch.ID == "" {
				return fmt.Errorf("trusted channel without id in category %q", category)
			}
		}
	}
	return nil
}

// TrustedChannelIDs flattens the allow-list into category -> channel IDs.
func (c *Catalog) TrustedChannelIDs() map[string][]string {
	out := make(map[string][]string, len(c.TrustedChannels))
	for category, channels := range c.TrustedChannels {
		ids := make([]string, 0, len(channels))
		for _, ch := range channels {
			ids = append(ids, ch.ID)
		}
		out[category] = ids
	}
	return out
}

// ListTopics lists every curated topic in catalog order.
func (c *Catalog) ListTopics() []TopicSummary {
	out := make([]TopicSummary, 0, len(c.Topics))
	for _, t := range c.Topics {
		out = append(out, TopicSummary{
			Name:          t.Name,
			Category:      t.Category,
			ResourceCount: len(t.Resources),
		})
	}
	return out
}

// Search matches query tokens (case-insensitive) against topic names,
// resource titles and creators. Results are ranked by how many tokens
// matched, ties keep catalog order. maxResults <= 0 means no limit.
func (c *Catalog) Search(query string, maxResults int) []SearchResult {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []SearchResult{}
	}

	results := []SearchResult{}
	for _, t := range c.Topics {
		for _, r := range t.Resources {
			haystack := strings.ToLower(t.Name + " " + r.Title + " " + r.Creator)
			score := 0
			for _, tok := range tokens {
				if strings.Contains(haystack, tok) {
					score++
				}
			}
			if score > 0 {
				results = append(results, SearchResult{Resource: r, Topic: t.Name, Score: score})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
