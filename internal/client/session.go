package client

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"

	"jerkwad-backend/internal/models"
)

// FallbackReply is shown in place of any failed reply.
const FallbackReply = "Error: Something went wrong. Even I can't fix stupid sometimes. (Check your API key)"

var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrRequestInFlight = errors.New("a request is already in flight")
)

// API delivers one chat turn to the endpoint. history must not include message.
type API interface {
	Send(ctx context.Context, message string, history []models.ChatTurn) (string, error)
}

// Session holds one user's conversation in memory. It allows a single request
// in flight; submissions made meanwhile are rejected, not queued.
type Session struct {
	api API

	mu           sync.Mutex
	conversation []models.ChatTurn
	loading      bool
}

func NewSession(api API) *Session {
	return &Session{api: api}
}

// Submit appends the user's turn, asks the endpoint for a reply and appends
// the model's turn. Rejected input returns an error and changes nothing. A
// failed reply is not an error: the fallback turn is appended instead.
func (s *Session) Submit(ctx context.Context, input string) (models.ChatTurn, error) {
	s.mu.Lock()
	if strings.TrimSpace(input) == "" {
		s.mu.Unlock()
		return models.ChatTurn{}, ErrEmptyInput
	}
	if s.loading {
		s.mu.Unlock()
		return models.ChatTurn{}, ErrRequestInFlight
	}

	history := slices.Clone(s.conversation)
	s.conversation = append(s.conversation, models.NewTurn(models.RoleUser, input))
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	text, err := s.api.Send(ctx, input, history)
	if err != nil {
		log.Printf("Error: %v", err)
		text = FallbackReply
	}

	reply := models.NewTurn(models.RoleModel, text)
	s.mu.Lock()
	s.conversation = append(s.conversation, reply)
	s.mu.Unlock()

	return reply, nil
}

// Loading reports whether a request is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Conversation returns a copy of the turns so far.
func (s *Session) Conversation() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.conversation)
}
