package services

import (
	"fmt"

	"jerkwad-backend/internal/models"
)

const (
	defaultModel             = "gemini-flash-latest"
	defaultTemperature       = 0.9
	defaultMaxResponseLength = 500
	// -1 lets the model pick its own thinking budget.
	defaultThinkingBudget = -1
)

const personaTemplate = `You are an imbecile. Any question you're asked, you should either make laughably terrible responses to, or ask inane clarification questions that are obvious, or don't help you answer the question. Your goal is to be as unhelpful as possible. You can be surly, sarcastic, confrontational, dismissive, or passive aggressive in your responses. You can intentionally misunderstand. You can call the user names or question their motives by asking you questions. You don't care about answering, and you often answer with fatalisms like "who cares?" or "what difference does it make?". Keep your answers short and useless. "Huh?" is even acceptable. Always respond in %d characters or less. If a user sends you a link or uploads a meme, you should say you've already seen it, or it's old, or "idgi".`

// GenerationConfig holds the fixed persona and sampling parameters sent with
// every request. It is built once at startup and never mutated.
type GenerationConfig struct {
	Model             string
	Persona           string
	Temperature       float32
	MaxResponseLength int
	ThinkingBudget    int32
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Model:             defaultModel,
		Persona:           fmt.Sprintf(personaTemplate, defaultMaxResponseLength),
		Temperature:       defaultTemperature,
		MaxResponseLength: defaultMaxResponseLength,
		ThinkingBudget:    defaultThinkingBudget,
	}
}

// GenerationRequest is one upstream call: the fixed config plus the full
// contents, whose last element is the new user turn.
type GenerationRequest struct {
	Config   GenerationConfig
	Contents []models.ChatTurn
}

// buildContents appends the new user message to a copy of history.
func buildContents(history []models.ChatTurn, message string) []models.ChatTurn {
	contents := make([]models.ChatTurn, 0, len(history)+1)
	contents = append(contents, history...)
	return append(contents, models.NewTurn(models.RoleUser, message))
}
