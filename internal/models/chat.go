package models

import "strings"

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatPart is one text fragment of a turn.
type ChatPart struct {
	Text string `json:"text"`
}

// ChatTurn represents a single message in a conversation.
type ChatTurn struct {
	Role  string     `json:"role"` // "user" or "model"
	Parts []ChatPart `json:"parts"`
}

// NewTurn builds a single-part turn.
func NewTurn(role, text string) ChatTurn {
	return ChatTurn{Role: role, Parts: []ChatPart{{Text: text}}}
}

// Text joins the text of every part.
func (t ChatTurn) Text() string {
	if len(t.Parts) == 1 {
		return t.Parts[0].Text
	}
	var b strings.Builder
	for _, p := range t.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// ChatRequest is the payload sent to the chat endpoint. History excludes Message.
type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is returned with a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
