// Package youtube recommends study videos through the YouTube Data API v3.
//
// The recommendation path never fails from the caller's point of view:
// a missing API key, an upstream outage, quota exhaustion or a garbled
// response all degrade to a small static fallback list. Internally every
// failure is classified (see errors.go) so it can be logged precisely.
package youtube

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/Shimizu-Technology/exam-prep-api/internal/cache"
	"github.com/Shimizu-Technology/exam-prep-api/internal/textutil"
)

const (
	// DefaultMaxResults is used when the caller asks for zero or fewer results.
	DefaultMaxResults = 3

	// MaxResultsLimit caps max_results; search.list accepts at most 50 and we
	// request twice the desired count.
	MaxResultsLimit = 25

	// NeutralScore is the channel score used whenever statistics are unavailable.
	NeutralScore = 0.5

	descriptionLength = 200
)

// Video is one recommended video.
type Video struct {
	Title       string `json:"title"`
	Creator     string `json:"creator"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at,omitempty"`
	ChannelID   string `json:"channel_id,omitempty"`
	Topic       string `json:"topic"`
}

// VideoDetails holds per-video statistics from videos.list.
type VideoDetails struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Creator     string `json:"creator"`
	URL         string `json:"url"`
	Duration    string `json:"duration"`
	ViewCount   uint64 `json:"view_count"`
	LikeCount   uint64 `json:"like_count"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
}

// Config is everything the service needs, passed explicitly at construction.
type Config struct {
	APIKey            string
	SearchTimeout     time.Duration // search.list and videos.list
	ChannelTimeout    time.Duration // channels.list
	RequestsPerSecond float64

	TrustedChannels map[string][]string // category -> channel IDs
	QualityKeywords []string

	SearchCache  *cache.LRU[string, []Video]
	ChannelCache *cache.LRU[string, float64]

	// API replaces the real client (tests). When nil and APIKey is set,
	// a google.golang.org/api client is built with ClientOptions.
	API           API
	ClientOptions []option.ClientOption
}

// Service is the video recommendation service.
type Service struct {
	api            API
	searchTimeout  time.Duration
	channelTimeout time.Duration
	filter         *QualityFilter
	searchCache    *cache.LRU[string, []Video]
	channelCache   *cache.LRU[string, float64]
}

// New creates the service. Without an API key (and no injected API) the
// service runs in fallback-only mode.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 10 * time.Second
	}
	if cfg.ChannelTimeout <= 0 {
		cfg.ChannelTimeout = 5 * time.Second
	}
	if cfg.SearchCache == nil {
		cfg.SearchCache = cache.NewLRU[string, []Video](256, 6*time.Hour)
	}
	if cfg.ChannelCache == nil {
		cfg.ChannelCache = cache.NewLRU[string, float64](100, 24*time.Hour)
	}

	api := cfg.API
	if api == nil && cfg.APIKey != "" {
		var err error
		api, err = NewAPIClient(ctx, cfg.APIKey, cfg.RequestsPerSecond, cfg.ClientOptions...)
		if err != nil {
			return nil, err
		}
	}

	return &Service{
		api:            api,
		searchTimeout:  cfg.SearchTimeout,
		channelTimeout: cfg.ChannelTimeout,
		filter:         NewQualityFilter(cfg.TrustedChannels, cfg.QualityKeywords),
		searchCache:    cfg.SearchCache,
		channelCache:   cfg.ChannelCache,
	}, nil
}

// Configured reports whether live API calls are possible.
func (s *Service) Configured() bool {
	return s.api != nil
}

// Recommend returns up to maxResults quality-filtered videos for topic.
// It never fails: any error yields the fallback list.
func (s *Service) Recommend(ctx context.Context, topic string, maxResults int, difficulty string) []Video {
	maxResults = normalizeMaxResults(maxResults)

	videos, err := s.Search(ctx, topic, maxResults, difficulty)
	if err != nil {
		log.Printf("⚠️  YouTube search for %q failed (%s): %v, using fallback", topic, Kind(err), err)
		fallback := Fallback(topic)
		if len(fallback) > maxResults {
			fallback = fallback[:maxResults]
		}
		return fallback
	}
	return videos
}

// Search is Recommend without the fallback: it returns the classified error.
//
// Cache hits are returned unmodified. Only the filtered, truncated slice is
// cached, so a later request for the same key with the same max_results is
// served identically.
func (s *Service) Search(ctx context.Context, topic string, maxResults int, difficulty string) ([]Video, error) {
	maxResults = normalizeMaxResults(maxResults)
	difficulty = NormalizeDifficulty(difficulty)
	key := CacheKey(topic, maxResults, difficulty)

	if cached, ok := s.searchCache.Get(key); ok {
		log.Printf("  ✓ Using cached results for: %s", topic)
		return cached, nil
	}

	if s.api == nil {
		return nil, ErrCredentialMissing
	}

	ctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	// Ask for twice as many as needed; the quality filter drops some.
	items, err := s.api.SearchVideos(ctx, BuildQuery(topic, difficulty), int64(maxResults*2))
	if err != nil {
		return nil, classify(err)
	}

	videos, err := s.processSearchResults(items, topic)
	if err != nil {
		return nil, err
	}

	if len(videos) > maxResults {
		videos = videos[:maxResults]
	}
	s.searchCache.Put(key, videos)

	log.Printf("  ✓ Found %d videos for: %s", len(videos), topic)
	return videos, nil
}

// processSearchResults converts API items to videos and applies the quality filter.
// An item without a video ID makes the whole response malformed.
func (s *Service) processSearchResults(items []*yt.SearchResult, topic string) ([]Video, error) {
	videos := []Video{}
	for i, item := range items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			return nil, fmt.Errorf("%w: search item %d has no video id", ErrMalformedResponse, i)
		}

		v := Video{
			Title:   "Unknown",
			Creator: "Unknown",
			URL:     WatchURL(item.Id.VideoId),
			Topic:   topic,
		}
		if sn := item.Snippet; sn != nil {
			if sn.Title != "" {
				v.Title = sn.Title
			}
			if sn.ChannelTitle != "" {
				v.Creator = sn.ChannelTitle
			}
			v.Thumbnail = highThumbnail(sn.Thumbnails)
			v.Description = textutil.Truncate(sn.Description, descriptionLength) + "..."
			v.PublishedAt = sn.PublishedAt
			v.ChannelID = sn.ChannelId
		} else {
			v.Description = "..."
		}

		if s.filter.Accept(v) {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// LookupVideos fetches duration and statistics for the given video IDs,
// returning the classified error on failure.
func (s *Service) LookupVideos(ctx context.Context, ids []string) ([]VideoDetails, error) {
	if len(ids) == 0 {
		return []VideoDetails{}, nil
	}
	if s.api == nil {
		return nil, ErrCredentialMissing
	}

	ctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	items, err := s.api.ListVideos(ctx, ids)
	if err != nil {
		return nil, classify(err)
	}

	details := make([]VideoDetails, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		d := VideoDetails{
			ID:  item.Id,
			URL: WatchURL(item.Id),
		}
		if sn := item.Snippet; sn != nil {
			d.Title = sn.Title
			d.Creator = sn.ChannelTitle
			d.Thumbnail = highThumbnail(sn.Thumbnails)
			d.Description = textutil.Truncate(sn.Description, descriptionLength)
		}
		duration := "PT0S"
		if cd := item.ContentDetails; cd != nil && cd.Duration != "" {
			duration = cd.Duration
		}
		d.Duration = ParseDuration(duration)
		if st := item.Statistics; st != nil {
			d.ViewCount = st.ViewCount
			d.LikeCount = st.LikeCount
		}
		details = append(details, d)
	}
	return details, nil
}

// VideoDetails is LookupVideos that returns an empty list instead of an error.
func (s *Service) VideoDetails(ctx context.Context, ids []string) []VideoDetails {
	details, err := s.LookupVideos(ctx, ids)
	if err != nil {
		if Kind(err) != "credential_missing" {
			log.Printf("  ✗ Failed to get video details (%s): %v", Kind(err), err)
		}
		return []VideoDetails{}
	}
	return details
}

// ChannelScore rates a channel in [0, 1] from its statistics.
// Scores are cached per channel; failures return NeutralScore and are not cached.
func (s *Service) ChannelScore(ctx context.Context, channelID string) float64 {
	if s.api == nil {
		return NeutralScore
	}
	if score, ok := s.channelCache.Get(channelID); ok {
		return score
	}

	ctx, cancel := context.WithTimeout(ctx, s.channelTimeout)
	defer cancel()

	stats, err := s.api.ChannelStatistics(ctx, channelID)
	if err != nil {
		log.Printf("  ✗ Channel score for %s unavailable (%s): %v", channelID, Kind(classify(err)), err)
		return NeutralScore
	}
	if stats.VideoCount == 0 {
		// Views per video is undefined for an empty channel.
		return NeutralScore
	}

	score := QualityScore(stats.SubscriberCount, stats.ViewCount, stats.VideoCount)
	s.channelCache.Put(channelID, score)
	return score
}

// QualityScore is min(1, 0.5*subscribers/100000 + 0.5*(views/videos)/10000).
func QualityScore(subscribers, views, videos uint64) float64 {
	if videos == 0 {
		return NeutralScore
	}
	perVideo := float64(views) / float64(videos)
	score := (float64(subscribers)/100000)*0.5 + (perVideo/10000)*0.5
	return math.Min(1.0, score)
}

func normalizeMaxResults(n int) int {
	if n <= 0 {
		return DefaultMaxResults
	}
	if n > MaxResultsLimit {
		return MaxResultsLimit
	}
	return n
}

func highThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil || t.High == nil {
		return ""
	}
	return t.High.Url
}
