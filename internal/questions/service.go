package questions

import (
	"context"
	"fmt"
	"log"

	"github.com/studyloop/backend/internal/gamification"
	"github.com/studyloop/backend/internal/generator"
	"github.com/studyloop/backend/internal/models"
	"github.com/studyloop/backend/internal/registry"
	"github.com/studyloop/backend/internal/scheduler"
)

// Service drives the practice loop: pick the topic most in need of review,
// generate a question at the right difficulty, grade the answer, and feed
// the outcome back into scheduling and gamification.
type Service struct {
	store     *Store
	topics    *registry.Store
	scheduler *scheduler.Service
	generator *generator.Generator
	gamify    *gamification.Service
}

func NewService(store *Store, topics *registry.Store, sched *scheduler.Service, gen *generator.Generator, gamify *gamification.Service) *Service {
	return &Service{
		store:     store,
		topics:    topics,
		scheduler: sched,
		generator: gen,
		gamify:    gamify,
	}
}

// NextQuestion picks the learner's next topic and generates a fresh question
// for it at the difficulty the scheduler recommends.
func (s *Service) NextQuestion(ctx context.Context, learnerID int64) (*models.NextQuestionResponse, error) {
	topicID, err := s.scheduler.PickNextTopic(learnerID)
	if err != nil {
		return nil, err
	}

	topic, err := s.topics.GetTopic(topicID)
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("picked topic %s is not registered", topicID)
	}

	difficulty, err := s.scheduler.NextDifficulty(learnerID, topicID)
	if err != nil {
		return nil, fmt.Errorf("next difficulty: %w", err)
	}

	generated, resp, err := s.generator.GenerateQuestion(ctx, *topic, difficulty)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		log.Printf("Generated question for topic %s (%s): %d prompt tokens, %d output tokens",
			topicID, difficulty, resp.PromptTokens, resp.OutputTokens)
	}

	question := &models.Question{
		LearnerID:       learnerID,
		TopicID:         topicID,
		Difficulty:      difficulty,
		Question:        generated.Question,
		CorrectAnswerID: generated.CorrectAnswerID,
		Explanation:     generated.Explanation,
		Model:           s.generator.ModelName(),
	}
	for _, c := range generated.Choices {
		question.Choices = append(question.Choices, models.Choice{ID: c.ID, Text: c.Text})
	}

	if err := s.store.SaveQuestion(question); err != nil {
		return nil, err
	}

	return &models.NextQuestionResponse{Question: question, TopicName: topic.Name}, nil
}

// SubmitAnswer grades the learner's choice, records the attempt with the
// scheduler, and awards XP. Returns (nil, nil) when the question does not
// exist for this learner.
func (s *Service) SubmitAnswer(ctx context.Context, learnerID int64, questionID, answerID string) (*models.SubmitAnswerResponse, error) {
	question, err := s.store.GetQuestion(learnerID, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, nil
	}
	if question.Answered {
		return nil, fmt.Errorf("question %s already answered", questionID)
	}

	correct := answerID == question.CorrectAnswerID

	progress, err := s.scheduler.RecordAnswer(ctx, learnerID, question.TopicID, correct)
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	if err := s.store.MarkAnswered(questionID); err != nil {
		log.Printf("WARN: failed to mark question %s answered: %v", questionID, err)
	}

	xp, streak, err := s.gamify.RecordAnswerOutcome(learnerID, correct, question.Difficulty, progress.Mastery)
	if err != nil {
		// Gamification is best-effort; the scheduling update already committed.
		log.Printf("WARN: gamification update failed for learner %d: %v", learnerID, err)
	}

	return &models.SubmitAnswerResponse{
		Correct:         correct,
		CorrectAnswerID: question.CorrectAnswerID,
		Explanation:     question.Explanation,
		Progress:        progress,
		NextDifficulty:  scheduler.TargetDifficulty(progress),
		XPAwarded:       xp,
		CurrentStreak:   streak,
	}, nil
}
