// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Gin handlers receive a *gin.Context holding the request data,
// the response writer and values set by middleware. Related handlers hang
// off one Handler struct that carries shared dependencies.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/exam-prep-api/internal/catalog"
	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/pdf"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/youtube"
	"github.com/Shimizu-Technology/exam-prep-api/internal/storage/docstore"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Repository is the relational store the handlers need.
// *database.DB satisfies it; tests use an in-memory fake.
type Repository interface {
	HealthCheck(ctx context.Context) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	CreateStudyPlan(ctx context.Context, p *models.StudyPlan) error
	GetStudyPlan(ctx context.Context, id, userID string) (*models.StudyPlan, error)
	ListStudyPlans(ctx context.Context, userID string) ([]models.StudyPlan, error)
	DeleteStudyPlan(ctx context.Context, id, userID string) error
	ReplaceStudyTopics(ctx context.Context, planID string, topics []models.StudyTopic) ([]models.StudyTopic, error)
	CompleteStudyTopic(ctx context.Context, planID, topicID string) error

	CreatePlacementProfile(ctx context.Context, p *models.PlacementProfile) error
	GetPlacementProfile(ctx context.Context, id, userID string) (*models.PlacementProfile, error)
	ListPlacementProfiles(ctx context.Context, userID string) ([]models.PlacementProfile, error)
	UpdatePlacementStatus(ctx context.Context, id, userID string, status models.PlacementStatus) error
	UpsertPlacementPlan(ctx context.Context, plan *models.PlacementPlan) error
	GetPlacementPlan(ctx context.Context, profileID string) (*models.PlacementPlan, error)
}

// Extractor turns a staged PDF into text. *pdf.Pipeline satisfies it.
type Extractor interface {
	Process(ctx context.Context, path string) (*pdf.Result, error)
}

// VideoRecommender is the YouTube side. *youtube.Service satisfies it.
type VideoRecommender interface {
	Configured() bool
	Recommend(ctx context.Context, topic string, maxResults int, difficulty string) []youtube.Video
	VideoDetails(ctx context.Context, ids []string) []youtube.VideoDetails
	ChannelScore(ctx context.Context, channelID string) float64
}

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields; tests build a
// Handler from fakes.
type Handler struct {
	DB           Repository
	Pipeline     Extractor
	Documents    *docstore.Store
	YouTube      VideoRecommender
	Catalog      *catalog.Catalog
	JWTSecret    string
	OCRAvailable bool
}

// HealthCheck returns the API health status.
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	dbStatus := "healthy"
	if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	ytStatus := "fallback"
	if h.YouTube.Configured() {
		ytStatus = "live"
	}
	ocrStatus := "unavailable"
	if h.OCRAvailable {
		ocrStatus = "available"
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  Version,
		Database: dbStatus,
		YouTube:  ytStatus,
		OCR:      ocrStatus,
	})
}

// respondError writes the standard error body.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    status,
	})
}
