package services

import (
	"context"
	"fmt"
	"iter"
	"log"
	"strings"

	legacy "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"jerkwad-backend/internal/models"
)

const (
	ModeStream   = "stream"
	ModeBuffered = "buffered"
)

// Generator turns one request into the model's complete reply text.
// Partial output never escapes an implementation.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// NewGenerator picks the response strategy for mode.
func NewGenerator(ctx context.Context, apiKey, mode string) (Generator, error) {
	switch mode {
	case ModeStream, "":
		g, err := NewStreamGenerator(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ModeBuffered:
		g, err := NewBufferedGenerator(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown Gemini response mode %q", mode)
	}
}

// ──── Streaming strategy (google.golang.org/genai) ────

type streamModelsClient interface {
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

var newStreamClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// StreamGenerator drains a streamed completion and concatenates the chunks in
// arrival order.
type StreamGenerator struct {
	models streamModelsClient
}

func NewStreamGenerator(ctx context.Context, apiKey string) (*StreamGenerator, error) {
	client, err := newStreamClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &StreamGenerator{models: client.Models}, nil
}

func (g *StreamGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if len(req.Contents) == 0 {
		return "", &UpstreamError{Mode: ModeStream, Err: fmt.Errorf("no contents to send")}
	}

	stream := g.models.GenerateContentStream(ctx, req.Config.Model, toGenaiContents(req.Contents), streamConfig(req.Config))

	var fullText strings.Builder
	chunks := 0
	for resp, err := range stream {
		if err != nil {
			return "", &UpstreamError{Mode: ModeStream, Err: err}
		}
		chunks++
		fullText.WriteString(extractText(resp))
	}

	if fullText.Len() == 0 {
		log.Printf("WARNING: Gemini stream ended with empty text after %d chunks", chunks)
	}
	return fullText.String(), nil
}

func streamConfig(cfg GenerationConfig) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: cfg.Persona}},
		},
		Temperature: genai.Ptr(cfg.Temperature),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(cfg.ThinkingBudget),
		},
	}
}

func toGenaiContents(turns []models.ChatTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			parts = append(parts, &genai.Part{Text: p.Text})
		}
		contents = append(contents, &genai.Content{Role: turn.Role, Parts: parts})
	}
	return contents
}

// extractText returns the visible text of the first candidate, skipping
// thought parts.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}
	return text.String()
}

// ──── Buffered strategy (github.com/google/generative-ai-go) ────

type chatSender interface {
	SendMessage(ctx context.Context, parts ...legacy.Part) (*legacy.GenerateContentResponse, error)
}

// BufferedGenerator awaits a single completion through a chat session seeded
// with the prior history.
type BufferedGenerator struct {
	client    *legacy.Client
	startChat func(cfg GenerationConfig, history []*legacy.Content) chatSender
}

func NewBufferedGenerator(ctx context.Context, apiKey string) (*BufferedGenerator, error) {
	client, err := legacy.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &BufferedGenerator{client: client}
	g.startChat = func(cfg GenerationConfig, history []*legacy.Content) chatSender {
		return newChatSession(client.GenerativeModel(cfg.Model), cfg, history)
	}
	return g, nil
}

func (g *BufferedGenerator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *BufferedGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if len(req.Contents) == 0 {
		return "", &UpstreamError{Mode: ModeBuffered, Err: fmt.Errorf("no contents to send")}
	}

	contents := toLegacyContents(req.Contents)
	last := contents[len(contents)-1]

	cs := g.startChat(req.Config, contents[:len(contents)-1])
	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", &UpstreamError{Mode: ModeBuffered, Err: err}
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != legacy.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}
	return extractLegacyText(resp), nil
}

func newChatSession(model *legacy.GenerativeModel, cfg GenerationConfig, history []*legacy.Content) *legacy.ChatSession {
	model.SetTemperature(cfg.Temperature)
	model.SystemInstruction = &legacy.Content{
		Parts: []legacy.Part{legacy.Text(cfg.Persona)},
	}

	cs := model.StartChat()
	cs.History = history
	return cs
}

func toLegacyContents(turns []models.ChatTurn) []*legacy.Content {
	contents := make([]*legacy.Content, 0, len(turns))
	for _, turn := range turns {
		parts := make([]legacy.Part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			parts = append(parts, legacy.Text(p.Text))
		}
		contents = append(contents, &legacy.Content{Role: turn.Role, Parts: parts})
	}
	return contents
}

func extractLegacyText(resp *legacy.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(legacy.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}
