package handlers

//go:generate mockgen -destination=./replier_mock_test.go -package=handlers -source=chat.go Replier

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"jerkwad-backend/internal/middleware"
	"jerkwad-backend/internal/models"
	"jerkwad-backend/internal/services"
)

const (
	msgInvalidBody    = "Invalid request body"
	msgMissingKey     = "GEMINI_API_KEY is not set in environment variables."
	msgProcessFailure = "Failed to process request."
)

// Replier produces the model's answer to message given the prior history.
type Replier interface {
	Reply(ctx context.Context, message string, history []models.ChatTurn) (string, error)
}

type ChatHandler struct {
	replier Replier
}

func NewChatHandler(replier Replier) *ChatHandler {
	return &ChatHandler{replier: replier}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	reply, status, errMsg := Answer(r.Context(), h.replier, req, middleware.GetRequestID(r.Context()))
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

// Answer runs one chat request through replier. On failure it logs the cause
// and returns a status and client-safe message instead.
func Answer(ctx context.Context, replier Replier, req models.ChatRequest, requestID string) (string, int, string) {
	reply, err := replier.Reply(ctx, req.Message, req.History)
	if err == nil {
		return reply, http.StatusOK, ""
	}

	if errors.Is(err, services.ErrMissingCredential) {
		log.Printf("✗ [%s] chat rejected: %v", requestID, err)
		return "", http.StatusInternalServerError, msgMissingKey
	}

	if status := services.UpstreamStatus(err); status != 0 {
		log.Printf("✗ [%s] Error calling Gemini API (status %d): %v", requestID, status, err)
	} else {
		log.Printf("✗ [%s] Error calling Gemini API: %v", requestID, err)
	}
	return "", http.StatusInternalServerError, msgProcessFailure
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
