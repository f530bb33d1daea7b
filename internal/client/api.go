package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"jerkwad-backend/internal/models"
)

// EndpointError is a non-success answer from the chat endpoint.
type EndpointError struct {
	Status  int
	Message string
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("chat endpoint returned %d: %s", e.Status, e.Message)
}

// HTTPAPI posts chat turns as JSON to the HTTP endpoint.
type HTTPAPI struct {
	endpoint string
	client   *http.Client
}

func NewHTTPAPI(endpoint string, client *http.Client) *HTTPAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAPI{endpoint: endpoint, client: client}
}

func (a *HTTPAPI) Send(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	if history == nil {
		history = []models.ChatTurn{}
	}

	body, err := json.Marshal(models.ChatRequest{Message: message, History: history})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send chat request: %w", err)
	}
	defer resp.Body.Close()

	var data struct {
		Response *string `json:"response"`
		Error    string  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode chat response (status %d): %w", resp.StatusCode, err)
	}

	if data.Error != "" || resp.StatusCode != http.StatusOK {
		return "", &EndpointError{Status: resp.StatusCode, Message: data.Error}
	}
	if data.Response == nil {
		return "", fmt.Errorf("chat response has no text")
	}
	return *data.Response, nil
}
