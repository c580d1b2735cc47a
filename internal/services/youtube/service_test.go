package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeYouTube is an httptest stand-in for the Data API v3 endpoints.
type fakeYouTube struct {
	srv       *httptest.Server
	searches  atomic.Int32
	channels  atomic.Int32
	lastQuery atomic.Value // string

	searchStatus int
	searchBody   string
	videosBody   string
	channelBody  string
}

func newFakeYouTube(t *testing.T) *fakeYouTube {
	t.Helper()
	f := &fakeYouTube{searchStatus: http.StatusOK}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			f.searches.Add(1)
			f.lastQuery.Store(r.URL.Query().Get("q"))
			w.WriteHeader(f.searchStatus)
			fmt.Fprint(w, f.searchBody)
		case strings.HasSuffix(r.URL.Path, "/videos"):
			fmt.Fprint(w, f.videosBody)
		case strings.HasSuffix(r.URL.Path, "/channels"):
			f.channels.Add(1)
			fmt.Fprint(w, f.channelBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeYouTube) service(t *testing.T) *Service {
	t.Helper()
	svc, err := New(context.Background(), Config{
		APIKey:          "test-key",
		SearchTimeout:   2 * time.Second,
		ChannelTimeout:  2 * time.Second,
		TrustedChannels: map[string][]string{"dsa": {"UC-trusted"}},
		QualityKeywords: []string{"tutorial", "explained"},
		ClientOptions:   []option.ClientOption{option.WithEndpoint(f.srv.URL + "/")},
	})
	require.NoError(t, err)
	return svc
}

func searchItem(id, channelID, title string) string {
	return fmt.Sprintf(`{
		"id": {"kind": "youtube#video", "videoId": %q},
		"snippet": {
			"title": %q,
			"channelId": %q,
			"channelTitle": "Channel %s",
			"description": "About %s",
			"publishedAt": "2024-01-01T00:00:00Z",
			"thumbnails": {"high": {"url": "https://i.ytimg.com/vi/%s/hqdefault.jpg"}}
		}
	}`, id, title, channelID, channelID, title, id)
}

func searchResponse(items ...string) string {
	return `{"items": [` + strings.Join(items, ",") + `]}`
}

func TestRecommend_WithoutKeyReturnsFallback(t *testing.T) {
	svc, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	videos := svc.Recommend(context.Background(), "Graphs", 3, "")
	require.Len(t, videos, 2)
	assert.Equal(t, "Take U Forward (Striver)", videos[0].Creator)
	assert.Equal(t, "Abdul Bari", videos[1].Creator)

	one := svc.Recommend(context.Background(), "Graphs", 1, "")
	assert.Len(t, one, 1)
}

func TestSearch_WithoutKeyIsCredentialMissing(t *testing.T) {
	svc, err := New(context.Background(), Config{})
	require.NoError(t, err)

	_, err = svc.Search(context.Background(), "Graphs", 3, "")
	assert.ErrorIs(t, err, ErrCredentialMissing)
}

func TestRecommend_FiltersAndTruncates(t *testing.T) {
	f := newFakeYouTube(t)
	f.searchBody = searchResponse(
		searchItem("aaaaaaaaaaa", "UC-trusted", "Day 1"),
		searchItem("bbbbbbbbbbb", "UC-other", "My travel vlog"),
		searchItem("ccccccccccc", "UC-other", "Graphs Tutorial"),
		searchItem("ddddddddddd", "UC-other", "BFS explained"),
	)
	svc := f.service(t)

	videos := svc.Recommend(context.Background(), "Graphs", 2, "beginner")
	require.Len(t, videos, 2)

	assert.Equal(t, "Day 1", videos[0].Title)
	assert.Equal(t, "Channel UC-trusted", videos[0].Creator)
	assert.Equal(t, "https://www.youtube.com/watch?v=aaaaaaaaaaa", videos[0].URL)
	assert.Equal(t, "https://i.ytimg.com/vi/aaaaaaaaaaa/hqdefault.jpg", videos[0].Thumbnail)
	assert.Equal(t, "About Day 1...", videos[0].Description)
	assert.Equal(t, "Graphs", videos[0].Topic)

	assert.Equal(t, "Graphs Tutorial", videos[1].Title)
}

func TestRecommend_CachedResultsAreIdentical(t *testing.T) {
	f := newFakeYouTube(t)
	f.searchBody = searchResponse(searchItem("aaaaaaaaaaa", "UC-trusted", "Arrays tutorial"))
	svc := f.service(t)

	first := svc.Recommend(context.Background(), "Arrays", 3, "")
	second := svc.Recommend(context.Background(), "Arrays", 3, "")

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, f.searches.Load(), "second call should be served from cache")

	svc.Recommend(context.Background(), "Arrays", 3, "advanced")
	assert.EqualValues(t, 2, f.searches.Load(), "different difficulty is a different key")
}

func TestSearch_DifficultyIsCaseInsensitive(t *testing.T) {
	f := newFakeYouTube(t)
	f.searchBody = searchResponse(searchItem("aaaaaaaaaaa", "UC-trusted", "Heaps tutorial"))
	svc := f.service(t)

	first, err := svc.Search(context.Background(), "Heaps", 3, " Beginner ")
	require.NoError(t, err)
	assert.Equal(t, "Heaps tutorial programming for beginners explained simple striver abdul bari", f.lastQuery.Load())

	second, err := svc.Search(context.Background(), "Heaps", 3, "beginner")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, f.searches.Load(), "mixed-case difficulty should share the cache entry")
}

func TestRecommend_NoQualityMatchesIsEmpty(t *testing.T) {
	f := newFakeYouTube(t)
	f.searchBody = searchResponse(searchItem("bbbbbbbbbbb", "UC-other", "My travel vlog"))
	svc := f.service(t)

	videos := svc.Recommend(context.Background(), "Trees", 3, "")
	assert.Empty(t, videos)
	assert.NotNil(t, videos)
}

func TestSearch_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			name:   "quota exceeded",
			status: http.StatusForbidden,
			body:   `{"error": {"code": 403, "message": "quota", "errors": [{"reason": "quotaExceeded", "message": "quota"}]}}`,
			want:   ErrRateLimited,
		},
		{
			name:   "too many requests",
			status: http.StatusTooManyRequests,
			body:   `{"error": {"code": 429, "message": "slow down"}}`,
			want:   ErrRateLimited,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error": {"code": 500, "message": "backend"}}`,
			want:   ErrTransport,
		},
		{
			name:   "garbled body",
			status: http.StatusOK,
			body:   `{"items": [`,
			want:   ErrMalformedResponse,
		},
		{
			name:   "item without video id",
			status: http.StatusOK,
			body:   `{"items": [{"id": {"kind": "youtube#video"}, "snippet": {"title": "x tutorial"}}]}`,
			want:   ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeYouTube(t)
			f.searchStatus = tt.status
			f.searchBody = tt.body
			svc := f.service(t)

			_, err := svc.Search(context.Background(), "Graphs", 3, "")
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)

			// Every failure degrades to the fallback list.
			videos := svc.Recommend(context.Background(), "Graphs", 3, "")
			assert.Len(t, videos, 2)
		})
	}
}

func TestLookupVideos(t *testing.T) {
	f := newFakeYouTube(t)
	f.videosBody = `{"items": [{
		"id": "aaaaaaaaaaa",
		"snippet": {"title": "Heaps", "channelTitle": "Abdul Bari", "description": "Heap sort"},
		"contentDetails": {"duration": "PT1H30M45S"},
		"statistics": {"viewCount": "1500", "likeCount": "42"}
	}, {
		"id": "bbbbbbbbbbb",
		"snippet": {"title": "Stacks"}
	}]}`
	svc := f.service(t)

	details, err := svc.LookupVideos(context.Background(), []string{"aaaaaaaaaaa", "bbbbbbbbbbb"})
	require.NoError(t, err)
	require.Len(t, details, 2)

	assert.Equal(t, "1h 30m", details[0].Duration)
	assert.EqualValues(t, 1500, details[0].ViewCount)
	assert.EqualValues(t, 42, details[0].LikeCount)
	assert.Equal(t, "https://www.youtube.com/watch?v=aaaaaaaaaaa", details[0].URL)

	assert.Equal(t, "0m", details[1].Duration)
	assert.Zero(t, details[1].ViewCount)
}

func TestVideoDetails_FailuresAreEmpty(t *testing.T) {
	svc, err := New(context.Background(), Config{})
	require.NoError(t, err)

	assert.Empty(t, svc.VideoDetails(context.Background(), []string{"aaaaaaaaaaa"}))
	assert.Empty(t, svc.VideoDetails(context.Background(), nil))
}

func TestChannelScore(t *testing.T) {
	f := newFakeYouTube(t)
	f.channelBody = `{"items": [{"id": "UC1", "statistics": {"subscriberCount": "100000", "viewCount": "100000", "videoCount": "10"}}]}`
	svc := f.service(t)

	assert.Equal(t, 1.0, svc.ChannelScore(context.Background(), "UC1"))
	assert.Equal(t, 1.0, svc.ChannelScore(context.Background(), "UC1"))
	assert.EqualValues(t, 1, f.channels.Load(), "score should be cached")
}

func TestChannelScore_Degrades(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		svc, err := New(context.Background(), Config{})
		require.NoError(t, err)
		assert.Equal(t, NeutralScore, svc.ChannelScore(context.Background(), "UC1"))
	})

	t.Run("unknown channel is not cached", func(t *testing.T) {
		f := newFakeYouTube(t)
		f.channelBody = `{"items": []}`
		svc := f.service(t)

		assert.Equal(t, NeutralScore, svc.ChannelScore(context.Background(), "UC-missing"))
		assert.Equal(t, NeutralScore, svc.ChannelScore(context.Background(), "UC-missing"))
		assert.EqualValues(t, 2, f.channels.Load())
	})

	t.Run("empty channel", func(t *testing.T) {
		f := newFakeYouTube(t)
		f.channelBody = `{"items": [{"id": "UC0", "statistics": {"subscriberCount": "5", "viewCount": "0", "videoCount": "0"}}]}`
		svc := f.service(t)
		assert.Equal(t, NeutralScore, svc.ChannelScore(context.Background(), "UC0"))
	})
}

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name                string
		subs, views, videos uint64
		want                float64
	}{
		{name: "capped at one", subs: 100000, views: 100000, videos: 10, want: 1.0},
		{name: "half from subscribers", subs: 100000, views: 0, videos: 10, want: 0.5},
		{name: "small channel", subs: 10000, views: 50000, videos: 10, want: 0.3},
		{name: "no videos", subs: 10, views: 10, videos: 0, want: NeutralScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, QualityScore(tt.subs, tt.views, tt.videos), 1e-9)
		})
	}
}

func TestOutboundLimiter(t *testing.T) {
	f := newFakeYouTube(t)
	f.searchBody = searchResponse()

	api, err := NewAPIClient(context.Background(), "test-key", 0.001, option.WithEndpoint(f.srv.URL+"/"))
	require.NoError(t, err)

	_, err = api.SearchVideos(context.Background(), "q", 2)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = api.SearchVideos(ctx, "q", 2)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestNewAPIClient_RequiresKey(t *testing.T) {
	_, err := NewAPIClient(context.Background(), "", 5)
	assert.ErrorIs(t, err, ErrCredentialMissing)
}

func TestNormalizeMaxResults(t *testing.T) {
	assert.Equal(t, DefaultMaxResults, normalizeMaxResults(0))
	assert.Equal(t, DefaultMaxResults, normalizeMaxResults(-4))
	assert.Equal(t, 7, normalizeMaxResults(7))
	assert.Equal(t, MaxResultsLimit, normalizeMaxResults(1000))
}

var _ API = (*apiClient)(nil)
