package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shimizu-Technology/exam-prep-api/internal/database"
	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/pdf"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/youtube"
)

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	mu         sync.Mutex
	users      map[string]*models.User
	plans      map[string]*models.StudyPlan
	profiles   map[string]*models.PlacementProfile
	placements map[string]*models.PlacementPlan // by profile ID
	healthErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:      map[string]*models.User{},
		plans:      map[string]*models.StudyPlan{},
		profiles:   map[string]*models.PlacementProfile{},
		placements: map[string]*models.PlacementPlan{},
	}
}

func missing(what string) error {
	return fmt.Errorf("%s: %w", what, database.ErrNotFound)
}

func (f *fakeRepo) HealthCheck(ctx context.Context) error { return f.healthErr }

func (f *fakeRepo) CreateUser(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, missing("user")
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, missing("user")
}

func (f *fakeRepo) CreateStudyPlan(ctx context.Context, p *models.StudyPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	for i := range p.Topics {
		p.Topics[i].ID = uuid.NewString()
		p.Topics[i].PlanID = p.ID
	}
	cp := *p
	cp.Topics = append([]models.StudyTopic(nil), p.Topics...)
	f.plans[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetStudyPlan(ctx context.Context, id, userID string) (*models.StudyPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[id]
	if !ok || p.UserID != userID {
		return nil, missing("study plan")
	}
	cp := *p
	cp.Topics = append([]models.StudyTopic(nil), p.Topics...)
	return &cp, nil
}

func (f *fakeRepo) ListStudyPlans(ctx context.Context, userID string) ([]models.StudyPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.StudyPlan{}
	for _, p := range f.plans {
		if p.UserID == userID {
			cp := *p
			cp.Topics = nil
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteStudyPlan(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[id]
	if !ok || p.UserID != userID {
		return missing("study plan")
	}
	delete(f.plans, id)
	return nil
}

func (f *fakeRepo) ReplaceStudyTopics(ctx context.Context, planID string, topics []models.StudyTopic) ([]models.StudyTopic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range topics {
		topics[i].ID = uuid.NewString()
		topics[i].PlanID = planID
	}
	f.plans[planID].Topics = append([]models.StudyTopic(nil), topics...)
	return topics, nil
}

func (f *fakeRepo) CompleteStudyTopic(ctx context.Context, planID, topicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.plans[planID].Topics {
		if t.ID == topicID {
			f.plans[planID].Topics[i].Completed = true
			return nil
		}
	}
	return missing("study topic")
}

func (f *fakeRepo) CreatePlacementProfile(ctx context.Context, p *models.PlacementProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetPlacementProfile(ctx context.Context, id, userID string) (*models.PlacementProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok || p.UserID != userID {
		return nil, missing("placement profile")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) ListPlacementProfiles(ctx context.Context, userID string) ([]models.PlacementProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.PlacementProfile{}
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdatePlacementStatus(ctx context.Context, id, userID string, status models.PlacementStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok || p.UserID != userID {
		return missing("placement profile")
	}
	p.Status = status
	return nil
}

func (f *fakeRepo) UpsertPlacementPlan(ctx context.Context, plan *models.PlacementPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.placements[plan.ProfileID]; ok {
		plan.ID, plan.CreatedAt = existing.ID, existing.CreatedAt
	} else {
		plan.ID, plan.CreatedAt = uuid.NewString(), time.Now()
	}
	cp := *plan
	f.placements[plan.ProfileID] = &cp
	return nil
}

func (f *fakeRepo) GetPlacementPlan(ctx context.Context, profileID string) (*models.PlacementPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.placements[profileID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, missing("placement plan")
}

// fakeExtractor returns a canned pipeline result.
type fakeExtractor struct {
	result *pdf.Result
	err    error
	paths  []string
}

func (f *fakeExtractor) Process(ctx context.Context, path string) (*pdf.Result, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeRecommender records the arguments it was called with.
type fakeRecommender struct {
	configured bool
	videos     []youtube.Video
	details    []youtube.VideoDetails
	score      float64

	gotMax        int
	gotDifficulty string
	gotIDs        []string
}

func (f *fakeRecommender) Configured() bool { return f.configured }

func (f *fakeRecommender) Recommend(ctx context.Context, topic string, maxResults int, difficulty string) []youtube.Video {
	f.gotMax, f.gotDifficulty = maxResults, difficulty
	return f.videos
}

func (f *fakeRecommender) VideoDetails(ctx context.Context, ids []string) []youtube.VideoDetails {
	f.gotIDs = ids
	return f.details
}

func (f *fakeRecommender) ChannelScore(ctx context.Context, channelID string) float64 {
	return f.score
}
