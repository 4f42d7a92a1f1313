package scheduler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/studyloop/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func learnerIDFromPath(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (h *Handler) InitProgress(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	if err := h.service.InitProgress(learnerID); err != nil {
		if errors.Is(err, ErrEmptyRegistry) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No topics registered; load a topic set first"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to initialize progress"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "initialized"})
}

func (h *Handler) ClearProgress(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	if err := h.service.ClearProgress(learnerID); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to clear progress"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	details, err := h.service.Snapshot(learnerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load progress"})
		return
	}
	if details == nil {
		details = []models.TopicProgressDetail{}
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) GetTopicStats(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}
	topicID := mux.Vars(r)["topicID"]

	p, err := h.service.TopicStats(learnerID, topicID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No progress for this topic"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	var req models.RecordAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.TopicID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topic_id is required"})
		return
	}

	progress, err := h.service.RecordAnswer(r.Context(), learnerID, req.TopicID, req.Correct)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record answer"})
		return
	}

	writeJSON(w, http.StatusOK, models.RecordAnswerResponse{
		Progress:       progress,
		NextDifficulty: TargetDifficulty(progress),
	})
}

func (h *Handler) GetDifficulty(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}
	topicID := mux.Vars(r)["topicID"]

	difficulty, err := h.service.NextDifficulty(learnerID, topicID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to compute difficulty"})
		return
	}
	writeJSON(w, http.StatusOK, models.DifficultyResponse{TopicID: topicID, Difficulty: difficulty})
}

func (h *Handler) PickNextTopic(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	topicID, err := h.service.PickNextTopic(learnerID)
	if err != nil {
		if errors.Is(err, ErrNoProgress) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No progress tracked; initialize it first"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to pick next topic"})
		return
	}
	writeJSON(w, http.StatusOK, models.NextTopicResponse{TopicID: topicID})
}

func (h *Handler) GetStudyOrder(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	order, err := h.service.RecommendedStudyOrder(learnerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to compute study order"})
		return
	}
	if order == nil {
		order = []string{}
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) GetPriorities(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	ranked, err := h.service.ReviewPriorities(learnerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to rank topics"})
		return
	}
	if ranked == nil {
		ranked = []models.TopicPriority{}
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (h *Handler) GetDueTopics(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	due, err := h.service.TopicsNeedingReview(learnerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list due topics"})
		return
	}
	if due == nil {
		due = []string{}
	}
	writeJSON(w, http.StatusOK, due)
}

func (h *Handler) GetVelocity(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}
	topicID := mux.Vars(r)["topicID"]

	velocity, err := h.service.LearningVelocity(learnerID, topicID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to compute velocity"})
		return
	}
	writeJSON(w, http.StatusOK, models.VelocityResponse{TopicID: topicID, Velocity: velocity})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	report, err := h.service.ProgressReport(learnerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build report"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) GetForgettingCurve(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDFromPath(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return
	}

	curve, err := h.service.ForgettingCurve(learnerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build forgetting curve"})
		return
	}
	writeJSON(w, http.StatusOK, curve)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
