package questions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/studyloop/backend/internal/models"
	"github.com/studyloop/backend/internal/scheduler"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := learnerIDFromPath(w, r)
	if !ok {
		return
	}

	resp, err := h.service.NextQuestion(r.Context(), learnerID)
	if err != nil {
		if errors.Is(err, scheduler.ErrNoProgress) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No progress initialized for learner"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate question: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := learnerIDFromPath(w, r)
	if !ok {
		return
	}
	questionID := mux.Vars(r)["questionID"]

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.AnswerID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "answer_id is required"})
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), learnerID, questionID, req.AnswerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit answer: " + err.Error()})
		return
	}
	if resp == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func learnerIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	learnerID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid learner ID"})
		return 0, false
	}
	return learnerID, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
