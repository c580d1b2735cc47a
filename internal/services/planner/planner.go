// Package planner holds the pure scheduling arithmetic behind study plans
// and placement plans: date handling, hour allocation and progress.
package planner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
)

// DateLayout is the calendar-date format accepted for exam and interview dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DaysUntil counts whole calendar days from now to target, never negative.
func DaysUntil(target, now time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Allocate spreads the hours available before the exam across topics in
// proportion to their weights. A missing or zero weight counts as 1.
// At least one day of study is always assumed.
func Allocate(topics []models.TopicInput, dailyHours float64, examDate, now time.Time) []models.StudyTopic {
	days := DaysUntil(examDate, now)
	if days < 1 {
		days = 1
	}
	total := dailyHours * float64(days)

	var sum float64
	for _, t := range topics {
		sum += weightOf(t)
	}

	out := make([]models.StudyTopic, 0, len(topics))
	for i, t := range topics {
		out = append(out, models.StudyTopic{
			Name:           strings.TrimSpace(t.Name),
			Weight:         weightOf(t),
			AllocatedHours: round2(total * weightOf(t) / sum),
			OrderIndex:     i,
		})
	}
	return out
}

// Dashboard summarizes a plan's progress as of now.
func Dashboard(plan models.StudyPlan, now time.Time) models.StudyDashboard {
	d := models.StudyDashboard{
		Plan:          plan,
		TotalTopics:   len(plan.Topics),
		DaysRemaining: DaysUntil(plan.ExamDate, now),
	}
	for _, t := range plan.Topics {
		d.TotalHours += t.AllocatedHours
		if t.Completed {
			d.CompletedTopics++
			d.CompletedHours += t.AllocatedHours
		}
	}
	d.TotalHours = round2(d.TotalHours)
	d.CompletedHours = round2(d.CompletedHours)
	d.ProgressPercentage = Progress(d.CompletedTopics, d.TotalTopics)
	return d
}

// Progress is completed/total as a percentage with two decimals; 0 when total is 0.
func Progress(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(completed) / float64(total) * 100)
}

func weightOf(t models.TopicInput) float64 {
	if t.Weight <= 0 {
		return 1
	}
	return t.Weight
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
