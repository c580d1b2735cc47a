// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// The `db` tags work with sqlx for column mapping; request DTOs carry
// `binding` tags that Gin validates before a handler sees the data.
package models

import (
	"encoding/json"
	"time"

	"github.com/Shimizu-Technology/exam-prep-api/internal/services/youtube"
)

// User is an account that owns study plans and placement profiles.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // never serialized
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// StudyPlan is an exam preparation schedule.
type StudyPlan struct {
	ID          string       `json:"id" db:"id"`
	UserID      string       `json:"user_id" db:"user_id"`
	Subject     string       `json:"subject" db:"subject"`
	ExamType    string       `json:"exam_type" db:"exam_type"`
	ExamDate    time.Time    `json:"exam_date" db:"exam_date"`
	DailyHours  float64      `json:"daily_hours" db:"daily_hours"`
	TargetGrade string       `json:"target_grade,omitempty" db:"target_grade"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
	Topics      []StudyTopic `json:"topics,omitempty" db:"-"`
}

// StudyTopic is one topic inside a plan. Hours are allocated by weight.
type StudyTopic struct {
	ID             string  `json:"id" db:"id"`
	PlanID         string  `json:"plan_id" db:"plan_id"`
	Name           string  `json:"name" db:"name"`
	Weight         float64 `json:"weight" db:"weight"`
	AllocatedHours float64 `json:"allocated_hours" db:"allocated_hours"`
	OrderIndex     int     `json:"order_index" db:"order_index"`
	Completed      bool    `json:"completed" db:"completed"`
}

// PlacementStatus is the lifecycle state of a placement profile.
type PlacementStatus string

const (
	PlacementActive    PlacementStatus = "active"
	PlacementCompleted PlacementStatus = "completed"
	PlacementCancelled PlacementStatus = "cancelled"
)

// PlacementProfile describes an upcoming company interview.
type PlacementProfile struct {
	ID             string          `json:"id" db:"id"`
	UserID         string          `json:"user_id" db:"user_id"`
	CompanyName    string          `json:"company_name" db:"company_name"`
	Role           string          `json:"role" db:"role"`
	InterviewDate  time.Time       `json:"interview_date" db:"interview_date"`
	HoursPerDay    float64         `json:"hours_per_day" db:"hours_per_day"`
	RoundStructure json.RawMessage `json:"round_structure" db:"round_structure"` // JSONB
	Status         PlacementStatus `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// PlacementPlan is the stored preparation plan for a profile (one per profile).
type PlacementPlan struct {
	ID                 string          `json:"id" db:"id"`
	ProfileID          string          `json:"profile_id" db:"profile_id"`
	PlanJSON           json.RawMessage `json:"plan" db:"plan_json"` // JSONB
	TotalDays          int             `json:"total_days" db:"total_days"`
	TotalHours         float64         `json:"total_hours" db:"total_hours"`
	TotalTasks         int             `json:"total_tasks" db:"total_tasks"`
	CompletedTasks     int             `json:"completed_tasks" db:"completed_tasks"`
	TotalTopics        int             `json:"total_topics" db:"total_topics"`
	ProgressPercentage float64         `json:"progress_percentage" db:"progress_percentage"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

// --- Request/Response DTOs ---

// RegisterRequest is the JSON body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful register/login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TopicInput is a topic name with its relative weight (default 1).
type TopicInput struct {
	Name   string  `json:"name" binding:"required"`
	Weight float64 `json:"weight" binding:"gte=0"`
}

// CreateStudyPlanRequest is the JSON body for POST /api/study-plans.
// ExamDate is a calendar date, YYYY-MM-DD.
type CreateStudyPlanRequest struct {
	Subject     string       `json:"subject" binding:"required"`
	ExamType    string       `json:"exam_type"`
	ExamDate    string       `json:"exam_date" binding:"required"`
	DailyHours  float64      `json:"daily_hours" binding:"required,gt=0,lte=24"`
	TargetGrade string       `json:"target_grade"`
	Topics      []TopicInput `json:"topics" binding:"dive"`
}

// ReplaceTopicsRequest is the JSON body for PUT /api/study-plans/:id/topics.
type ReplaceTopicsRequest struct {
	Topics []TopicInput `json:"topics" binding:"required,min=1,dive"`
}

// StudyDashboard summarizes progress on a plan.
type StudyDashboard struct {
	Plan               StudyPlan `json:"plan"`
	TotalTopics        int       `json:"total_topics"`
	CompletedTopics    int       `json:"completed_topics"`
	TotalHours         float64   `json:"total_hours"`
	CompletedHours     float64   `json:"completed_hours"`
	ProgressPercentage float64   `json:"progress_percentage"`
	DaysRemaining      int       `json:"days_remaining"`
}

// InterviewRound is one entry of a placement profile's round structure.
type InterviewRound struct {
	RoundNumber int    `json:"round_number" binding:"required,gt=0"`
	Type        string `json:"type" binding:"required"`
	Duration    int    `json:"duration"` // minutes
}

// CreatePlacementProfileRequest is the JSON body for POST /api/placement/profiles.
type CreatePlacementProfileRequest struct {
	CompanyName    string           `json:"company_name" binding:"required"`
	Role           string           `json:"role" binding:"required"`
	InterviewDate  string           `json:"interview_date" binding:"required"`
	HoursPerDay    float64          `json:"hours_per_day" binding:"required,gt=0,lte=24"`
	RoundStructure []InterviewRound `json:"round_structure" binding:"required,min=1,dive"`
}

// UpdatePlacementStatusRequest is the JSON body for PATCH .../status.
type UpdatePlacementStatusRequest struct {
	Status PlacementStatus `json:"status" binding:"required,oneof=active completed cancelled"`
}

// SavePlacementPlanRequest is the JSON body for PUT .../plan.
type SavePlacementPlanRequest struct {
	Plan           json.RawMessage `json:"plan" binding:"required"`
	TotalDays      int             `json:"total_days" binding:"gte=0"`
	TotalHours     float64         `json:"total_hours" binding:"gte=0"`
	TotalTasks     int             `json:"total_tasks" binding:"gte=0"`
	CompletedTasks int             `json:"completed_tasks" binding:"gte=0,ltefield=TotalTasks"`
	TotalTopics    int             `json:"total_topics" binding:"gte=0"`
}

// UploadResponse is returned by POST /api/upload/pdf.
type UploadResponse struct {
	Status    string `json:"status"`
	JSONFile  string `json:"json_file"`
	Preview   string `json:"preview"`
	Method    string `json:"method"`
	PageCount int    `json:"page_count"`
	WordCount int    `json:"word_count"`
}

// PreviewResponse is returned by GET /api/upload/preview/:filename.
type PreviewResponse struct {
	Filename string `json:"filename"`
	Preview  string `json:"preview"`
}

// ExtractedFilesResponse lists stored extraction records.
type ExtractedFilesResponse struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// RecommendResponse is returned by GET /api/youtube/recommend/:topic.
// Count is set when videos were found, Message when none were.
type RecommendResponse struct {
	Topic   string          `json:"topic"`
	Videos  []youtube.Video `json:"videos"`
	Count   int             `json:"count,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	YouTube  string `json:"youtube"` // "live" or "fallback"
	OCR      string `json:"ocr"`     // "available" or "unavailable"
}
