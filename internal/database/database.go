package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "studyloop")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Connected to database:", dbname)
	return db, nil
}

func Migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS topics (
		topic_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS learner_progress (
		learner_id BIGINT NOT NULL,
		topic_id TEXT NOT NULL REFERENCES topics(topic_id) ON DELETE CASCADE,
		attempts INTEGER NOT NULL DEFAULT 0,
		correct INTEGER NOT NULL DEFAULT 0,
		mastery DOUBLE PRECISION NOT NULL DEFAULT 0,
		streak_correct INTEGER NOT NULL DEFAULT 0,
		streak_wrong INTEGER NOT NULL DEFAULT 0,
		last_reviewed TIMESTAMPTZ,
		next_review TIMESTAMPTZ,
		easiness_factor DOUBLE PRECISION NOT NULL DEFAULT 2.5,
		interval_days INTEGER NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (learner_id, topic_id)
	);

	CREATE TABLE IF NOT EXISTS attempt_history (
		id BIGSERIAL PRIMARY KEY,
		learner_id BIGINT NOT NULL,
		topic_id TEXT NOT NULL,
		correct BOOLEAN NOT NULL,
		mastery_at_time DOUBLE PRECISION NOT NULL,
		retention DOUBLE PRECISION NOT NULL,
		attempted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS questions (
		question_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		learner_id BIGINT NOT NULL,
		topic_id TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		question TEXT NOT NULL,
		choices JSONB NOT NULL,
		correct_answer_id TEXT NOT NULL,
		explanation TEXT NOT NULL,
		model TEXT NOT NULL,
		answered BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS learner_gamification (
		learner_id BIGINT PRIMARY KEY,
		total_xp BIGINT NOT NULL DEFAULT 0,
		current_streak INTEGER NOT NULL DEFAULT 0,
		longest_streak INTEGER NOT NULL DEFAULT 0,
		last_active_date TIMESTAMPTZ,
		questions_answered_total INTEGER NOT NULL DEFAULT 0,
		questions_correct_total INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS xp_events (
		id BIGSERIAL PRIMARY KEY,
		learner_id BIGINT NOT NULL,
		amount INTEGER NOT NULL,
		reason TEXT NOT NULL,
		awarded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_progress_learner ON learner_progress(learner_id);
	CREATE INDEX IF NOT EXISTS idx_progress_next_review ON learner_progress(learner_id, next_review);
	CREATE INDEX IF NOT EXISTS idx_history_learner_topic ON attempt_history(learner_id, topic_id, attempted_at DESC);
	CREATE INDEX IF NOT EXISTS idx_questions_learner ON questions(learner_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_xp_events_learner ON xp_events(learner_id, awarded_at DESC);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.Println("Database migrations applied")
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
