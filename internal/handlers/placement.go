// placement.go handles placement (interview preparation) profiles and plans.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/exam-prep-api/internal/database"
	"github.com/Shimizu-Technology/exam-prep-api/internal/middleware"
	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/planner"
)

// CreatePlacementProfile stores a new interview profile.
// POST /api/placement/profiles
func (h *Handler) CreatePlacementProfile(c *gin.Context) {
	var req models.CreatePlacementProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request",
			"company_name, role, interview_date, hours_per_day and round_structure are required")
		return
	}
	interviewDate, err := planner.ParseDate(req.InterviewDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_date", err.Error())
		return
	}
	rounds, err := json.Marshal(req.RoundStructure)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "round_structure could not be encoded")
		return
	}

	profile := &models.PlacementProfile{
		UserID:         middleware.GetUser(c).ID,
		CompanyName:    req.CompanyName,
		Role:           req.Role,
		InterviewDate:  interviewDate,
		HoursPerDay:    req.HoursPerDay,
		RoundStructure: rounds,
		Status:         models.PlacementActive,
	}
	if err := h.DB.CreatePlacementProfile(c.Request.Context(), profile); err != nil {
		log.Printf("❌ Failed to create placement profile: %v", err)
		respondError(c, http.StatusInternalServerError, "database_error", "Failed to create placement profile")
		return
	}

	log.Printf("🎯 Placement profile %s created for %s (%s)", profile.ID, profile.CompanyName, profile.Role)
	c.JSON(http.StatusCreated, profile)
}

// ListPlacementProfiles returns the user's profiles.
// GET /api/placement/profiles
func (h *Handler) ListPlacementProfiles(c *gin.Context) {
	profiles, err := h.DB.ListPlacementProfiles(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		log.Printf("❌ Failed to list placement profiles: %v", err)
		respondError(c, http.StatusInternalServerError, "database_error", "Failed to list placement profiles")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetPlacementProfile returns one profile with its days remaining.
// GET /api/placement/profiles/:id
func (h *Handler) GetPlacementProfile(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":        profile,
		"days_remaining": planner.DaysUntil(profile.InterviewDate, now()),
	})
}

// UpdatePlacementStatus sets a profile to active, completed or cancelled.
// PATCH /api/placement/profiles/:id/status
func (h *Handler) UpdatePlacementStatus(c *gin.Context) {
	var req models.UpdatePlacementStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "status must be one of: active, completed, cancelled")
		return
	}

	err := h.DB.UpdatePlacementStatus(c.Request.Context(), c.Param("id"), middleware.GetUser(c).ID, req.Status)
	if err != nil {
		h.placementError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
}

// SavePlacementPlan stores (or replaces) the preparation plan for a profile.
// PUT /api/placement/profiles/:id/plan
func (h *Handler) SavePlacementPlan(c *gin.Context) {
	var req models.SavePlacementPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request",
			"plan is required and completed_tasks may not exceed total_tasks")
		return
	}
	if !json.Valid(req.Plan) {
		respondError(c, http.StatusBadRequest, "invalid_request", "plan must be valid JSON")
		return
	}

	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}

	plan := &models.PlacementPlan{
		ProfileID:          profile.ID,
		PlanJSON:           req.Plan,
		TotalDays:          req.TotalDays,
		TotalHours:         req.TotalHours,
		TotalTasks:         req.TotalTasks,
		CompletedTasks:     req.CompletedTasks,
		TotalTopics:        req.TotalTopics,
		ProgressPercentage: planner.Progress(req.CompletedTasks, req.TotalTasks),
	}
	if plan.TotalDays == 0 {
		plan.TotalDays = planner.DaysUntil(profile.InterviewDate, now())
	}
	if err := h.DB.UpsertPlacementPlan(c.Request.Context(), plan); err != nil {
		log.Printf("❌ Failed to save placement plan for %s: %v", profile.ID, err)
		respondError(c, http.StatusInternalServerError, "database_error", "Failed to save placement plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetPlacementPlan returns the stored plan for a profile.
// GET /api/placement/profiles/:id/plan
func (h *Handler) GetPlacementPlan(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}
	plan, err := h.DB.GetPlacementPlan(c.Request.Context(), profile.ID)
	if err != nil {
		h.placementError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) loadProfile(c *gin.Context) (*models.PlacementProfile, bool) {
	profile, err := h.DB.GetPlacementProfile(c.Request.Context(), c.Param("id"), middleware.GetUser(c).ID)
	if err != nil {
		h.placementError(c, err)
		return nil, false
	}
	return profile, true
}

func (h *Handler) placementError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(c, http.StatusNotFound, "not_found", err.Error())
		return
	}
	log.Printf("❌ Placement query failed: %v", err)
	respondError(c, http.StatusInternalServerError, "database_error", "Placement query failed")
}
