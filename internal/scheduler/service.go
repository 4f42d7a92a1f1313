package scheduler

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/studyloop/backend/internal/models"
)

// Mastery blends raw accuracy with decay-adjusted retention.
const (
	accuracyWeight  = 0.7
	retentionWeight = 0.3
)

// Topic picker tuning.
const (
	pickerPoolSize      = 3
	velocityWindow      = 5
	velocityMinAttempts = 3
	historyDumpLimit    = 50
)

// TopicRegistry is the slice of the registry the scheduler needs.
type TopicRegistry interface {
	AllTopicIDs() ([]string, error)
	ListTopics() ([]models.Topic, error)
}

type progressKey struct {
	learnerID int64
	topicID   string
}

// Service owns all mutations of learner progress and answers every
// scheduling question: what to review next, at what difficulty, and in what
// order. Each public method reads the clock once and threads that single
// timestamp through every decay and urgency computation it performs.
type Service struct {
	store  ProgressStore
	topics TopicRegistry
	now    func() time.Time

	// Serializes read-modify-write per (learner, topic). Different keys
	// proceed in parallel.
	mu    sync.Mutex
	locks map[progressKey]*sync.Mutex
}

func NewService(store ProgressStore, topics TopicRegistry) *Service {
	return &Service{
		store:  store,
		topics: topics,
		now:    time.Now,
		locks:  make(map[progressKey]*sync.Mutex),
	}
}

func (s *Service) lockKey(learnerID int64, topicID string) func() {
	key := progressKey{learnerID, topicID}
	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// ── Lifecycle ───────────────────────────────────────────

// InitProgress seeds a zeroed progress row for every registered topic.
func (s *Service) InitProgress(learnerID int64) error {
	topicIDs, err := s.topics.AllTopicIDs()
	if err != nil {
		return fmt.Errorf("list topic ids: %w", err)
	}
	if len(topicIDs) == 0 {
		return ErrEmptyRegistry
	}
	if err := s.store.SeedProgress(learnerID, topicIDs); err != nil {
		return fmt.Errorf("seed progress: %w", err)
	}
	return nil
}

// ClearProgress removes all state and attempt history for the learner.
func (s *Service) ClearProgress(learnerID int64) error {
	return s.store.DeleteProgress(learnerID)
}

// ── State Updater ───────────────────────────────────────

// NewProgress returns a zeroed progress row for a pair seen for the
// first time.
func NewProgress(learnerID int64, topicID string) *models.TopicProgress {
	return &models.TopicProgress{
		LearnerID:      learnerID,
		TopicID:        topicID,
		EasinessFactor: InitialEasiness,
	}
}

// RecordAnswer applies one answer event: counters and streaks, retention at
// answer time, mastery recompute, the SM-2 easiness and interval updates,
// and the review timestamps. The new state and one history record are
// persisted atomically; on any failure the previous state stays untouched.
func (s *Service) RecordAnswer(ctx context.Context, learnerID int64, topicID string, correct bool) (*models.TopicProgress, error) {
	unlock := s.lockKey(learnerID, topicID)
	defer unlock()

	now := s.now()

	p, err := s.store.GetProgress(learnerID, topicID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if p == nil {
		p = NewProgress(learnerID, topicID)
	}

	prevMastery := p.Mastery
	prevLastReviewed := p.LastReviewed

	p.Attempts++
	quality := QualityWrong
	if correct {
		p.Correct++
		p.StreakCorrect++
		p.StreakWrong = 0
		quality = QualityCorrect
	} else {
		p.StreakWrong++
		p.StreakCorrect = 0
	}

	// Retention is measured against the state before this answer.
	retention, err := ComputeRetention(prevLastReviewed, prevMastery, now)
	if err != nil {
		return nil, fmt.Errorf("compute retention: %w", err)
	}

	accuracy := float64(p.Correct) / float64(p.Attempts)
	p.Mastery = accuracy*accuracyWeight + retention*retentionWeight

	p.EasinessFactor = UpdateEasiness(p.EasinessFactor, quality)

	interval, reviewCount, err := ComputeInterval(p.EasinessFactor, p.ReviewCount, quality)
	if err != nil {
		return nil, fmt.Errorf("compute interval: %w", err)
	}
	p.IntervalDays = interval
	p.ReviewCount = reviewCount

	p.LastReviewed = &now
	next := now.AddDate(0, 0, interval)
	p.NextReview = &next
	p.UpdatedAt = now

	attempt := &models.AttemptRecord{
		LearnerID:     learnerID,
		TopicID:       topicID,
		Correct:       correct,
		MasteryAtTime: p.Mastery,
		Retention:     retention,
		Timestamp:     now,
	}

	if err := s.store.SaveAttempt(ctx, p, attempt); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	return p, nil
}

// ── Difficulty ──────────────────────────────────────────

// NextDifficulty returns the tier to serve for a topic. A learner who has
// never touched the topic gets easy.
func (s *Service) NextDifficulty(learnerID int64, topicID string) (models.Difficulty, error) {
	p, err := s.store.GetProgress(learnerID, topicID)
	if err != nil {
		return "", fmt.Errorf("load progress: %w", err)
	}
	return TargetDifficulty(p), nil
}

// ── Priority & Picking ──────────────────────────────────

// ReviewPriorities ranks every tracked topic for the learner, highest
// priority first. Recomputed on every call.
func (s *Service) ReviewPriorities(learnerID int64) ([]models.TopicPriority, error) {
	progress, err := s.store.ListProgress(learnerID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return RankTopics(progress, s.now())
}

// RecommendedStudyOrder is the priority ranking with scores stripped.
func (s *Service) RecommendedStudyOrder(learnerID int64) ([]string, error) {
	ranked, err := s.ReviewPriorities(learnerID)
	if err != nil {
		return nil, err
	}
	order := make([]string, len(ranked))
	for i, tp := range ranked {
		order[i] = tp.TopicID
	}
	return order, nil
}

// PickNextTopic chooses the topic to test next. Overdue topics win outright,
// with a uniform random pick among them; otherwise one of the top-ranked
// topics is picked at random to keep sessions varied.
func (s *Service) PickNextTopic(learnerID int64) (string, error) {
	progress, err := s.store.ListProgress(learnerID)
	if err != nil {
		return "", fmt.Errorf("list progress: %w", err)
	}
	if len(progress) == 0 {
		return "", ErrNoProgress
	}

	now := s.now()

	due, err := s.store.TopicsDue(learnerID, now)
	if err != nil {
		return "", fmt.Errorf("topics due: %w", err)
	}
	if len(due) > 0 {
		return due[rand.Intn(len(due))], nil
	}

	ranked, err := RankTopics(progress, now)
	if err != nil {
		return "", err
	}
	if len(ranked) > 0 {
		pool := ranked
		if len(pool) > pickerPoolSize {
			pool = pool[:pickerPoolSize]
		}
		return pool[rand.Intn(len(pool))].TopicID, nil
	}

	// No ranking available: any known topic will do.
	return progress[rand.Intn(len(progress))].TopicID, nil
}

// TopicsNeedingReview lists topics whose scheduled review has passed.
func (s *Service) TopicsNeedingReview(learnerID int64) ([]string, error) {
	return s.store.TopicsDue(learnerID, s.now())
}

// LearningVelocity is the fraction correct among the most recent attempts
// for a topic. Below three records there is not enough signal and it
// reports zero.
func (s *Service) LearningVelocity(learnerID int64, topicID string) (float64, error) {
	attempts, err := s.store.RecentAttempts(learnerID, topicID, velocityWindow)
	if err != nil {
		return 0, fmt.Errorf("recent attempts: %w", err)
	}
	if len(attempts) < velocityMinAttempts {
		return 0.0, nil
	}

	correct := 0
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(attempts)), nil
}

// ── Read Models ─────────────────────────────────────────

// TopicStats returns one topic's progress, or (nil, nil) when the pair has
// never been tracked.
func (s *Service) TopicStats(learnerID int64, topicID string) (*models.TopicProgress, error) {
	return s.store.GetProgress(learnerID, topicID)
}

// Snapshot returns every progress row with its recent attempt history.
func (s *Service) Snapshot(learnerID int64) ([]models.TopicProgressDetail, error) {
	progress, err := s.store.ListProgress(learnerID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	details := make([]models.TopicProgressDetail, 0, len(progress))
	for _, p := range progress {
		history, err := s.store.RecentAttempts(learnerID, p.TopicID, historyDumpLimit)
		if err != nil {
			return nil, fmt.Errorf("history for %s: %w", p.TopicID, err)
		}
		if history == nil {
			history = []models.AttemptRecord{}
		}
		details = append(details, models.TopicProgressDetail{TopicProgress: p, History: history})
	}
	return details, nil
}

// ProgressReport aggregates attempts and buckets topics by mastery band.
func (s *Service) ProgressReport(learnerID int64) (*models.ProgressReport, error) {
	progress, err := s.store.ListProgress(learnerID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	report := &models.ProgressReport{TopicsTracked: len(progress)}
	for _, p := range progress {
		report.TotalAttempts += p.Attempts
		report.TotalCorrect += p.Correct

		switch {
		case p.Mastery > 0.8:
			report.TopicsMastered++
		case p.Mastery >= 0.4:
			report.TopicsInProgress++
		default:
			report.TopicsStruggling++
		}
	}
	if report.TotalAttempts > 0 {
		report.OverallAccuracy = float64(report.TotalCorrect) / float64(report.TotalAttempts)
	}
	return report, nil
}

// Projection points for the forgetting-curve chart, in days from now.
var curveDays = []int{0, 1, 2, 3, 5, 7, 14, 30}
var curveLabels = []string{"Now", "1d", "2d", "3d", "5d", "7d", "14d", "30d"}

// ForgettingCurve projects per-topic retention over the next month for
// every topic the learner has actually reviewed.
func (s *Service) ForgettingCurve(learnerID int64) (*models.ForgettingCurve, error) {
	progress, err := s.store.ListProgress(learnerID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	topics, err := s.topics.ListTopics()
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	names := make(map[string]string, len(topics))
	for _, t := range topics {
		names[t.ID] = t.Name
	}

	curve := &models.ForgettingCurve{
		Topics:     []models.TopicCurve{},
		TimeLabels: curveLabels,
	}
	for _, p := range progress {
		if p.Attempts == 0 || p.LastReviewed == nil {
			continue
		}

		points := make([]float64, 0, len(curveDays))
		for _, days := range curveDays {
			retention := ProjectRetention(p.Mastery, float64(days)*24.0) * 100
			points = append(points, math.Round(retention*10)/10)
		}

		curve.Topics = append(curve.Topics, models.TopicCurve{
			TopicID:   p.TopicID,
			Name:      names[p.TopicID],
			Retention: points,
		})
	}
	return curve, nil
}
