package youtube

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// API is the slice of the YouTube Data API the service needs.
//
// Go Pattern: The interface lives with its consumer. Tests substitute a fake,
// production uses the generated google.golang.org/api client below.
type API interface {
	SearchVideos(ctx context.Context, query string, maxResults int64) ([]*yt.SearchResult, error)
	ListVideos(ctx context.Context, ids []string) ([]*yt.Video, error)
	ChannelStatistics(ctx context.Context, channelID string) (*yt.ChannelStatistics, error)
}

// apiClient wraps the generated YouTube client with an outbound rate limiter.
type apiClient struct {
	svc     *yt.Service
	limiter *rate.Limiter
}

// NewAPIClient builds a YouTube Data API v3 client authenticated with apiKey.
// Extra options (e.g. option.WithEndpoint in tests) are appended.
func NewAPIClient(ctx context.Context, apiKey string, rps float64, opts ...option.ClientOption) (API, error) {
	if apiKey == "" {
		return nil, ErrCredentialMissing
	}
	if rps <= 0 {
		rps = 5
	}

	allOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}

	return &apiClient{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}, nil
}

// wait blocks for a limiter token. If the token cannot arrive before the
// context deadline the call is refused as rate limited.
func (c *apiClient) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: outbound limiter: %v", ErrRateLimited, err)
	}
	return nil
}

// SearchVideos runs search.list restricted to medium-length, HD, English videos.
func (c *apiClient) SearchVideos(ctx context.Context, query string, maxResults int64) ([]*yt.SearchResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Order("relevance").
		VideoDuration("medium"). // 4-20 minutes
		VideoDefinition("high").
		RelevanceLanguage("en").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(err)
	}
	return resp.Items, nil
}

// ListVideos runs videos.list for snippet, contentDetails and statistics.
func (c *apiClient) ListVideos(ctx context.Context, ids []string) ([]*yt.Video, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(err)
	}
	return resp.Items, nil
}

// ChannelStatistics runs channels.list for a single channel's statistics.
func (c *apiClient) ChannelStatistics(ctx context.Context, channelID string) (*yt.ChannelStatistics, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Channels.List([]string{"statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Statistics == nil {
		return nil, fmt.Errorf("%w: no statistics for channel %s", ErrMalformedResponse, channelID)
	}
	return resp.Items[0].Statistics, nil
}
