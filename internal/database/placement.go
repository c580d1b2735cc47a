// placement.go handles placement (interview) profiles and their plans.
package database

import (
	"context"
	"fmt"

	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
)

// CreatePlacementProfile inserts a new profile with status "active".
func (db *DB) CreatePlacementProfile(ctx context.Context, p *models.PlacementProfile) error {
	if p.Status == "" {
		p.Status = models.PlacementActive
	}
	query := `
		INSERT INTO placement_profiles (user_id, company_name, role, interview_date, hours_per_day, round_structure, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	if err := db.QueryRowContext(ctx, query,
		p.UserID, p.CompanyName, p.Role, p.InterviewDate, p.HoursPerDay, []byte(p.RoundStructure), p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create placement profile: %w", err)
	}
	return nil
}

// GetPlacementProfile returns a profile owned by userID.
func (db *DB) GetPlacementProfile(ctx context.Context, id, userID string) (*models.PlacementProfile, error) {
	var p models.PlacementProfile
	err := db.GetContext(ctx, &p,
		`SELECT * FROM placement_profiles WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, notFound(err, "placement profile")
	}
	return &p, nil
}

// ListPlacementProfiles returns a user's profiles, soonest interview first.
func (db *DB) ListPlacementProfiles(ctx context.Context, userID string) ([]models.PlacementProfile, error) {
	profiles := []models.PlacementProfile{}
	err := db.SelectContext(ctx, &profiles,
		`SELECT * FROM placement_profiles WHERE user_id = $1 ORDER BY interview_date ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list placement profiles: %w", err)
	}
	return profiles, nil
}

// UpdatePlacementStatus sets a profile's status.
func (db *DB) UpdatePlacementStatus(ctx context.Context, id, userID string, status models.PlacementStatus) error {
	result, err := db.ExecContext(ctx,
		`UPDATE placement_profiles SET status = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID, status)
	if err != nil {
		return fmt.Errorf("failed to update placement status: %w", err)
	}
	return requireRow(result, "placement profile")
}

// UpsertPlacementPlan stores the plan for a profile, replacing any previous one.
func (db *DB) UpsertPlacementPlan(ctx context.Context, plan *models.PlacementPlan) error {
	query := `
		INSERT INTO placement_plans (profile_id, plan_json, total_days, total_hours, total_tasks, completed_tasks, total_topics, progress_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (profile_id) DO UPDATE SET
			plan_json = EXCLUDED.plan_json,
			total_days = EXCLUDED.total_days,
			total_hours = EXCLUDED.total_hours,
			total_tasks = EXCLUDED.total_tasks,
			completed_tasks = EXCLUDED.completed_tasks,
			total_topics = EXCLUDED.total_topics,
			progress_percentage = EXCLUDED.progress_percentage
		RETURNING id, created_at`

	if err := db.QueryRowContext(ctx, query,
		plan.ProfileID, []byte(plan.PlanJSON), plan.TotalDays, plan.TotalHours,
		plan.TotalTasks, plan.CompletedTasks, plan.TotalTopics, plan.ProgressPercentage,
	).Scan(&plan.ID, &plan.CreatedAt); err != nil {
		return fmt.Errorf("failed to save placement plan: %w", err)
	}
	return nil
}

// GetPlacementPlan returns the plan for a profile.
func (db *DB) GetPlacementPlan(ctx context.Context, profileID string) (*models.PlacementPlan, error) {
	var plan models.PlacementPlan
	err := db.GetContext(ctx, &plan,
		`SELECT * FROM placement_plans WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, notFound(err, "placement plan")
	}
	return &plan, nil
}
