// study.go handles study plans and their topics.
package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
)

// CreateStudyPlan inserts a plan and its topics in one transaction.
// The generated IDs and timestamps are written back into p.
func (db *DB) CreateStudyPlan(ctx context.Context, p *models.StudyPlan) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	query := `
		INSERT INTO study_plans (user_id, subject, exam_type, exam_date, daily_hours, target_grade)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	if err := tx.QueryRowContext(ctx, query,
		p.UserID, p.Subject, p.ExamType, p.ExamDate, p.DailyHours, p.TargetGrade,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create study plan: %w", err)
	}

	if err := insertTopics(ctx, tx, p.ID, p.Topics); err != nil {
		return err
	}
	return tx.Commit()
}

// GetStudyPlan returns a plan owned by userID, with its topics.
func (db *DB) GetStudyPlan(ctx context.Context, id, userID string) (*models.StudyPlan, error) {
	var p models.StudyPlan
	err := db.GetContext(ctx, &p,
		`SELECT id, user_id, subject, exam_type, exam_date, daily_hours, target_grade, created_at, updated_at
		 FROM study_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, notFound(err, "study plan")
	}

	topics, err := db.ListStudyTopics(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Topics = topics
	return &p, nil
}

// ListStudyPlans returns a user's plans, soonest exam first. Topics are not loaded.
func (db *DB) ListStudyPlans(ctx context.Context, userID string) ([]models.StudyPlan, error) {
	plans := []models.StudyPlan{}
	err := db.SelectContext(ctx, &plans,
		`SELECT id, user_id, subject, exam_type, exam_date, daily_hours, target_grade, created_at, updated_at
		 FROM study_plans WHERE user_id = $1 ORDER BY exam_date ASC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list study plans: %w", err)
	}
	return plans, nil
}

// DeleteStudyPlan removes a plan; topics cascade.
func (db *DB) DeleteStudyPlan(ctx context.Context, id, userID string) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM study_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete study plan: %w", err)
	}
	return requireRow(result, "study plan")
}

// ListStudyTopics returns a plan's topics in order.
func (db *DB) ListStudyTopics(ctx context.Context, planID string) ([]models.StudyTopic, error) {
	topics := []models.StudyTopic{}
	err := db.SelectContext(ctx, &topics,
		`SELECT * FROM study_topics WHERE plan_id = $1 ORDER BY order_index ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list study topics: %w", err)
	}
	return topics, nil
}

// ReplaceStudyTopics swaps a plan's topics for a new set and bumps updated_at.
func (db *DB) ReplaceStudyTopics(ctx context.Context, planID string, topics []models.StudyTopic) ([]models.StudyTopic, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM study_topics WHERE plan_id = $1`, planID); err != nil {
		return nil, fmt.Errorf("failed to clear study topics: %w", err)
	}
	if err := insertTopics(ctx, tx, planID, topics); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE study_plans SET updated_at = NOW() WHERE id = $1`, planID); err != nil {
		return nil, fmt.Errorf("failed to touch study plan: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit topics: %w", err)
	}
	return topics, nil
}

// CompleteStudyTopic marks one topic of a plan as done.
func (db *DB) CompleteStudyTopic(ctx context.Context, planID, topicID string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE study_topics SET completed = true WHERE id = $1 AND plan_id = $2`, topicID, planID)
	if err != nil {
		return fmt.Errorf("failed to complete topic: %w", err)
	}
	return requireRow(result, "study topic")
}

// insertTopics writes topics for planID, filling in their IDs.
func insertTopics(ctx context.Context, tx *sqlx.Tx, planID string, topics []models.StudyTopic) error {
	query := `
		INSERT INTO study_topics (plan_id, name, weight, allocated_hours, order_index, completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range topics {
		t := &topics[i]
		t.PlanID = planID
		if err := tx.QueryRowContext(ctx, query,
			planID, t.Name, t.Weight, t.AllocatedHours, t.OrderIndex, t.Completed,
		).Scan(&t.ID); err != nil {
			return fmt.Errorf("failed to insert topic %q: %w", t.Name, err)
		}
	}
	return nil
}
