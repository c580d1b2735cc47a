// study.go handles study plans.
//
// All routes are JWT-protected; a plan is only visible to its owner, and
// another user's plan is reported as not found.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/exam-prep-api/internal/database"
	"github.com/Shimizu-Technology/exam-prep-api/internal/middleware"
	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/planner"
)

// now is swapped in tests.
var now = time.Now

// CreateStudyPlan creates a plan and allocates hours across its topics.
// POST /api/study-plans
func (h *Handler) CreateStudyPlan(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.CreateStudyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "subject, exam_date and daily_hours (0-24) are required")
		return
	}
	examDate, err := planner.ParseDate(req.ExamDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_date", err.Error())
		return
	}

	plan := &models.StudyPlan{
		UserID:      user.ID,
		Subject:     req.Subject,
		ExamType:    req.ExamType,
		ExamDate:    examDate,
		DailyHours:  req.DailyHours,
		TargetGrade: req.TargetGrade,
		Topics:      planner.Allocate(req.Topics, req.DailyHours, examDate, now()),
	}
	if err := h.DB.CreateStudyPlan(c.Request.Context(), plan); err != nil {
		log.Printf("❌ Failed to create study plan: %v", err)
		respondError(c, http.StatusInternalServerError, "database_error", "Failed to create study plan")
		return
	}

	log.Printf("📚 Study plan %s created for %s (%d topics)", plan.ID, plan.Subject, len(plan.Topics))
	c.JSON(http.StatusCreated, plan)
}

// ListStudyPlans returns the user's plans.
// GET /api/study-plans
func (h *Handler) ListStudyPlans(c *gin.Context) {
	plans, err := h.DB.ListStudyPlans(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		log.Printf("❌ Failed to list study plans: %v", err)
		respondError(c, http.StatusInternalServerError, "database_error", "Failed to list study plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetStudyPlan returns one plan with its topics.
// GET /api/study-plans/:id
func (h *Handler) GetStudyPlan(c *gin.Context) {
	plan, ok := h.loadPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeleteStudyPlan removes a plan and its topics.
// DELETE /api/study-plans/:id
func (h *Handler) DeleteStudyPlan(c *gin.Context) {
	err := h.DB.DeleteStudyPlan(c.Request.Context(), c.Param("id"), middleware.GetUser(c).ID)
	if err != nil {
		h.planError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReplaceTopics replaces a plan's topics and re-allocates hours.
// PUT /api/study-plans/:id/topics
func (h *Handler) ReplaceTopics(c *gin.Context) {
	var req models.ReplaceTopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "topics must be a non-empty list of {name, weight}")
		return
	}

	plan, ok := h.loadPlan(c)
	if !ok {
		return
	}

	topics := planner.Allocate(req.Topics, plan.DailyHours, plan.ExamDate, now())
	topics, err := h.DB.ReplaceStudyTopics(c.Request.Context(), plan.ID, topics)
	if err != nil {
		log.Printf("❌ Failed to replace topics for plan %s: %v", plan.ID, err)
		respondError(c, http.StatusInternalServerError, "database_error", "Failed to save topics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan_id": plan.ID, "topics": topics})
}

// CompleteTopic marks a topic as studied.
// POST /api/study-plans/:id/topics/:topicId/complete
func (h *Handler) CompleteTopic(c *gin.Context) {
	plan, ok := h.loadPlan(c)
	if !ok {
		return
	}
	if err := h.DB.CompleteStudyTopic(c.Request.Context(), plan.ID, c.Param("topicId")); err != nil {
		h.planError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan_id": plan.ID, "topic_id": c.Param("topicId"), "completed": true})
}

// GetDashboard summarizes progress and days remaining for a plan.
// GET /api/study-plans/:id/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	plan, ok := h.loadPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, planner.Dashboard(*plan, now()))
}

// loadPlan fetches the :id plan for the current user, writing the error response itself.
func (h *Handler) loadPlan(c *gin.Context) (*models.StudyPlan, bool) {
	plan, err := h.DB.GetStudyPlan(c.Request.Context(), c.Param("id"), middleware.GetUser(c).ID)
	if err != nil {
		h.planError(c, err)
		return nil, false
	}
	return plan, true
}

func (h *Handler) planError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(c, http.StatusNotFound, "not_found", err.Error())
		return
	}
	log.Printf("❌ Study plan query failed: %v", err)
	respondError(c, http.StatusInternalServerError, "database_error", "Study plan query failed")
}
