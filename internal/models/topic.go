package models

import "time"

// Topic is one entry in the topic registry. Topic IDs are stable,
// dot-separated identifiers like "calc.limits".
type Topic struct {
	ID        string    `json:"topic_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type LoadTopicsRequest struct {
	Topics []TopicInput `json:"topics"`
}

type TopicInput struct {
	ID   string `json:"topic_id"`
	Name string `json:"name"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
