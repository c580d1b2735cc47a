// youtube.go exposes video recommendations and the curated catalog.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/youtube"
)

const (
	defaultSearchResults = 5
	maxVideoIDs          = 50 // videos.list accepts at most 50 IDs
)

// RecommendVideos returns quality-filtered videos for a topic. It never
// fails on upstream problems; the service degrades to fallback links.
// GET /api/youtube/recommend/:topic?max_results=3&difficulty=beginner
func (h *Handler) RecommendVideos(c *gin.Context) {
	topic := strings.TrimSpace(c.Param("topic"))
	if topic == "" {
		respondError(c, http.StatusBadRequest, "invalid_request", "topic is required")
		return
	}

	maxResults, ok := intQuery(c, "max_results", youtube.DefaultMaxResults)
	if !ok {
		return
	}
	difficulty := strings.ToLower(c.Query("difficulty"))

	videos := h.YouTube.Recommend(c.Request.Context(), topic, maxResults, difficulty)
	if len(videos) == 0 {
		c.JSON(http.StatusOK, models.RecommendResponse{
			Topic:   topic,
			Videos:  []youtube.Video{},
			Message: fmt.Sprintf("No curated videos found for %s. Try: Arrays, Trees, Graphs, Dynamic Programming", topic),
		})
		return
	}

	c.JSON(http.StatusOK, models.RecommendResponse{
		Topic:  topic,
		Videos: videos,
		Count:  len(videos),
	})
}

// ListTopics returns every topic in the curated catalog.
// GET /api/youtube/topics
func (h *Handler) ListTopics(c *gin.Context) {
	topics := h.Catalog.ListTopics()
	c.JSON(http.StatusOK, gin.H{
		"topics": topics,
		"count":  len(topics),
	})
}

// SearchCatalog searches curated resources.
// GET /api/youtube/search?query=graphs&max_results=5
func (h *Handler) SearchCatalog(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		respondError(c, http.StatusBadRequest, "invalid_request", "query is required")
		return
	}
	maxResults, ok := intQuery(c, "max_results", defaultSearchResults)
	if !ok {
		return
	}

	results := h.Catalog.Search(query, maxResults)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

// GetVideoDetails returns duration and statistics for videos.
// GET /api/youtube/videos?ids=<id or url>,<id or url>
func (h *Handler) GetVideoDetails(c *gin.Context) {
	var ids []string
	for _, raw := range strings.Split(c.Query("ids"), ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := youtube.ParseVideoID(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_video_id", err.Error())
			return
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		respondError(c, http.StatusBadRequest, "invalid_request", "ids is required (comma-separated video IDs or URLs)")
		return
	}
	if len(ids) > maxVideoIDs {
		respondError(c, http.StatusBadRequest, "invalid_request", fmt.Sprintf("at most %d ids per request", maxVideoIDs))
		return
	}

	videos := h.YouTube.VideoDetails(c.Request.Context(), ids)
	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"count":  len(videos),
	})
}

// GetChannelScore rates a channel in [0, 1]; 0.5 when statistics are unavailable.
// GET /api/youtube/channels/:id/score
func (h *Handler) GetChannelScore(c *gin.Context) {
	channelID := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"channel_id": channelID,
		"score":      h.YouTube.ChannelScore(c.Request.Context(), channelID),
	})
}

// intQuery reads an optional integer query parameter, writing a 400 on garbage.
func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", name+" must be an integer")
		return 0, false
	}
	return n, true
}
