package services

import (
	"context"
	"errors"

	"jerkwad-backend/internal/models"
)

// ChatService answers one chat turn. It keeps no state between calls.
type ChatService struct {
	config     GenerationConfig
	credential string
	generator  Generator
}

// NewChatService wires the fixed generation config into the service. A nil
// generator is allowed when no credential is configured.
func NewChatService(config GenerationConfig, credential string, generator Generator) *ChatService {
	return &ChatService{
		config:     config,
		credential: credential,
		generator:  generator,
	}
}

// Reply sends history plus message to the model exactly once and returns the
// complete reply text.
func (s *ChatService) Reply(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	if s.credential == "" || s.generator == nil {
		return "", ErrMissingCredential
	}

	req := GenerationRequest{
		Config:   s.config,
		Contents: buildContents(history, message),
	}

	text, err := s.generator.Generate(ctx, req)
	if err != nil {
		var upErr *UpstreamError
		if !errors.As(err, &upErr) {
			err = &UpstreamError{Mode: "unknown", Err: err}
		}
		return "", err
	}
	return text, nil
}
