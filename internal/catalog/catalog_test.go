package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogParses(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	ids := c.TrustedChannelIDs()
	assert.Contains(t, ids["dsa"], "UC-sxSmmDR_IVXwW_YFJr6jA")
	assert.Contains(t, ids["system_design"], "UCRPMAqdtSgd0Ipeef7iFsKw")
	assert.ElementsMatch(t,
		[]string{"tutorial", "explained", "complete", "course", "interview", "leetcode", "dsa", "algorithm"},
		c.QualityKeywords)
	assert.NotEmpty(t, c.ListTopics())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad yaml", yaml: "topics: [unterminated"},
		{name: "empty topic name", yaml: "topics:\n  - name: \"\"\n"},
		{name: "duplicate topic", yaml: "topics:\n  - name: Graphs\n  - name: graphs\n"},
		{name: "channel without id", yaml: "trusted_channels:\n  dsa:\n    - name: Nobody\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_NormalizesKeywords(t *testing.T) {
	c, err := Parse([]byte("quality_keywords: [\" Tutorial \", LEETCODE]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"tutorial", "leetcode"}, c.QualityKeywords)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
topics:
  - name: Heaps
    category: dsa
    resources:
      - title: Heaps Explained
        creator: Abdul Bari
        url: https://example.com/heaps
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.ListTopics(), 1)
	assert.Equal(t, TopicSummary{Name: "Heaps", Category: "dsa", ResourceCount: 1}, c.ListTopics()[0])

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	c, err := Parse([]byte(`
topics:
  - name: Graphs
    resources:
      - {title: Graph Series, creator: Striver, url: u1}
      - {title: Graph Theory Algorithms, creator: William Fiset, url: u2}
  - name: Dynamic Programming
    resources:
      - {title: DP Playlist, creator: Striver, url: u3}
`))
	require.NoError(t, err)

	t.Run("ranks by matched tokens", func(t *testing.T) {
		got := c.Search("graph fiset", 0)
		require.Len(t, got, 2)
		assert.Equal(t, "u2", got[0].URL)
		assert.Equal(t, 2, got[0].Score)
		assert.Equal(t, "Graphs", got[0].Topic)
	})

	t.Run("case insensitive creator match", func(t *testing.T) {
		got := c.Search("STRIVER", 0)
		assert.Len(t, got, 2)
	})

	t.Run("limit", func(t *testing.T) {
		assert.Len(t, c.Search("striver", 1), 1)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, c.Search("kubernetes", 5))
	})

	t.Run("blank query", func(t *testing.T) {
		assert.Empty(t, c.Search("   ", 5))
	})
}
