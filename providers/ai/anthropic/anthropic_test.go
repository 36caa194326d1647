package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"schoolfinder/providers/ai"
)

func TestSendMessageWithoutAPIKey(t *testing.T) {
	p := New().WithAPIKey("")

	if _, err := p.SendMessage(context.Background(), ai.ChatRequest{}); err == nil {
		t.Error("SendMessage() without API key should fail before any call")
	}
}

func TestSendMessageWithValidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key header = %q, want test-key", got)
		}
		if got := r.Header.Get("anthropic-version"); got != apiVersion {
			t.Errorf("anthropic-version header = %q, want %q", got, apiVersion)
		}

		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.MaxTokens <= 0 {
			t.Errorf("max_tokens = %d, must always be positive", req.MaxTokens)
		}
		if req.System != "system" {
			t.Errorf("system = %q, want top-level system field", req.System)
		}

		response := messagesResponse{
			ID:    "msg-1",
			Type:  "message",
			Model: "claude-test",
			Content: []contentBlock{
				{Type: "text", Text: `[{"name":"A"}]`},
			},
			StopReason: "end_turn",
			Usage:      &usage{InputTokens: 15, OutputTokens: 8},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			t.Fatalf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	p := New().WithAPIKey("test-key").WithBaseURL(server.URL)

	resp, err := p.SendMessage(context.Background(), ai.ChatRequest{
		SystemPrompt: "system",
		Messages:     []ai.Message{{Role: ai.RoleUser, Content: "find schools"}},
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if resp.Content != `[{"name":"A"}]` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.FinishReason != "end_turn" {
		t.Errorf("FinishReason = %q, want end_turn", resp.FinishReason)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 23 {
		t.Errorf("Usage = %+v, want total 23", resp.Usage)
	}
}

func TestRequestFromGenericDefaults(t *testing.T) {
	req := requestFromGeneric(ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello"}},
	})

	if req.Model != defaultModel {
		t.Errorf("model = %q, want %q", req.Model, defaultModel)
	}
	if req.MaxTokens != defaultMaxTokens {
		t.Errorf("max_tokens = %d, want %d", req.MaxTokens, defaultMaxTokens)
	}
}

func TestRequestFromGenericSystemMessageLifted(t *testing.T) {
	req := requestFromGeneric(ai.ChatRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: "be terse"},
			{Role: ai.RoleUser, Content: "hello"},
		},
	})

	if req.System != "be terse" {
		t.Errorf("system = %q, want lifted system message", req.System)
	}
	if len(req.Messages) != 1 {
		t.Errorf("messages = %+v, system message should not remain inline", req.Messages)
	}
}
