package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jerkwad-backend/internal/models"
)

func TestHTTPAPI_Send(t *testing.T) {
	var got models.ChatRequest
	var rawHistory json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		var raw map[string]json.RawMessage
		json.NewDecoder(r.Body).Decode(&raw)
		rawHistory = raw["history"]
		json.Unmarshal(raw["message"], &got.Message)
		json.Unmarshal(raw["history"], &got.History)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ChatResponse{Response: "huh?"})
	}))
	defer srv.Close()

	api := NewHTTPAPI(srv.URL, srv.Client())
	reply, err := api.Send(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if reply != "huh?" {
		t.Fatalf("Expected 'huh?', got %q", reply)
	}
	if got.Message != "hi" {
		t.Fatalf("Expected message 'hi', got %q", got.Message)
	}
	if string(rawHistory) != "[]" {
		t.Fatalf("Expected empty history array, got %s", rawHistory)
	}
}

func TestHTTPAPI_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"error body", http.StatusInternalServerError, `{"error":"Failed to process request."}`, true},
		{"status without error field", http.StatusBadGateway, `{}`, true},
		{"not json", http.StatusOK, `<html>oops</html>`, true},
		{"missing response field", http.StatusOK, `{}`, true},
		{"empty reply is still a reply", http.StatusOK, `{"response":""}`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewHTTPAPI(srv.URL, srv.Client()).Send(context.Background(), "hi", nil)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestHTTPAPI_EndpointErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"GEMINI_API_KEY is not set in environment variables."}`))
	}))
	defer srv.Close()

	_, err := NewHTTPAPI(srv.URL, srv.Client()).Send(context.Background(), "hi", nil)
	var epErr *EndpointError
	if !errors.As(err, &epErr) {
		t.Fatalf("Expected EndpointError, got %v", err)
	}
	if epErr.Status != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", epErr.Status)
	}
}

func TestHTTPAPI_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewHTTPAPI(url, nil).Send(context.Background(), "hi", nil); err == nil {
		t.Fatal("Expected transport error")
	}
}
