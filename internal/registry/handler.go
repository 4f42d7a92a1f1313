package registry

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/studyloop/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.store.ListTopics()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list topics"})
		return
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	writeJSON(w, http.StatusOK, topics)
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID := mux.Vars(r)["topicID"]

	topic, err := h.store.GetTopic(topicID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load topic"})
		return
	}
	if topic == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Topic not found"})
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (h *Handler) LoadTopicSet(w http.ResponseWriter, r *http.Request) {
	var req models.LoadTopicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if len(req.Topics) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topics must not be empty"})
		return
	}

	if err := h.store.LoadTopicSet(r.Context(), req.Topics); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load topic set: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"loaded": len(req.Topics)})
}

func (h *Handler) ClearTopics(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearTopics(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to clear topics"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
