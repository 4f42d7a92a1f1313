package registry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studyloop/backend/internal/models"
)

// Store is the topic registry. Loading a new topic set replaces the old one
// and wipes all learner progress that referenced it, in one transaction.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) LoadTopicSet(ctx context.Context, topics []models.TopicInput) error {
	if len(topics) == 0 {
		return fmt.Errorf("topic set is empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// A new topic set invalidates every learner's scheduling state.
	if _, err := tx.Exec(`DELETE FROM learner_progress`); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM attempt_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM topics`); err != nil {
		return fmt.Errorf("clear topics: %w", err)
	}

	for _, t := range topics {
		if t.ID == "" || t.Name == "" {
			return fmt.Errorf("topic requires both topic_id and name")
		}
		if _, err := tx.Exec(
			`INSERT INTO topics (topic_id, name) VALUES ($1, $2)`,
			t.ID, t.Name,
		); err != nil {
			return fmt.Errorf("insert topic %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) ClearTopics(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM learner_progress`); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM attempt_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM topics`); err != nil {
		return fmt.Errorf("clear topics: %w", err)
	}
	return tx.Commit()
}

func (s *Store) ListTopics() ([]models.Topic, error) {
	rows, err := s.db.Query(`SELECT topic_id, name, created_at FROM topics ORDER BY topic_id`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// GetTopic returns (nil, nil) when the topic is not registered.
func (s *Store) GetTopic(topicID string) (*models.Topic, error) {
	var t models.Topic
	err := s.db.QueryRow(
		`SELECT topic_id, name, created_at FROM topics WHERE topic_id = $1`,
		topicID,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return &t, nil
}

func (s *Store) AllTopicIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT topic_id FROM topics ORDER BY topic_id`)
	if err != nil {
		return nil, fmt.Errorf("all topic ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan topic id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
