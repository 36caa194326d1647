package finder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"schoolfinder/core/normalize"
	"schoolfinder/providers/ai"
)

// stubProvider returns a canned response or error and records the last
// request it saw.
type stubProvider struct {
	response *ai.ChatResponse
	err      error
	lastReq  ai.ChatRequest
}

func (s *stubProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	s.lastReq = request
	return s.response, s.err
}

func (s *stubProvider) IsStopMessage(*ai.ChatResponse) bool { return true }
func (s *stubProvider) WithAPIKey(string) ai.Provider { return s }
func (s *stubProvider) WithBaseURL(string) ai.Provider { return s }
func (s *stubProvider) WithHttpClient(*http.Client) ai.Provider { return s }

func TestNewRequiresProvider(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should return an error")
	}
}

func TestFindNearbyRejectsEmptyAddress(t *testing.T) {
	f, err := New(&stubProvider{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, address := range []string{"", "   ", "\n\t"} {
		if _, err := f.FindNearby(context.Background(), address); err == nil {
			t.Errorf("FindNearby(%q) should reject blank address", address)
		}
	}
}

func TestFindNearbyHappyPath(t *testing.T) {
	stub := &stubProvider{
		response: &ai.ChatResponse{
			Content: `[{"name":"A","address":"1 Main","type":"Elementary School","studentCount":120}]`,
		},
	}

	f, err := New(stub, WithModel("test-model"), WithTargetCount(7))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	records, err := f.FindNearby(context.Background(), "500 Center St")
	if err != nil {
		t.Fatalf("FindNearby() error = %v, want nil", err)
	}
	if len(records) != 1 || records[0].Name != "A" {
		t.Errorf("FindNearby() = %+v, want one record named A", records)
	}

	if stub.lastReq.Model != "test-model" {
		t.Errorf("request model = %q, want test-model", stub.lastReq.Model)
	}
	if stub.lastReq.SystemPrompt == "" {
		t.Error("request carries no system prompt")
	}
	if stub.lastReq.ResponseFormat == nil || stub.lastReq.ResponseFormat.OutputSchema == nil {
		t.Error("request carries no output schema")
	}
	if len(stub.lastReq.Messages) != 1 {
		t.Fatalf("request has %d messages, want 1", len(stub.lastReq.Messages))
	}
	prompt := stub.lastReq.Messages[0].Content
	if !strings.Contains(prompt, "500 Center St") {
		t.Errorf("prompt does not mention the address: %q", prompt)
	}
	if !strings.Contains(prompt, "at least 7") {
		t.Errorf("prompt does not carry the target count: %q", prompt)
	}
}

func TestFindNearbyProviderError(t *testing.T) {
	stub := &stubProvider{err: fmt.Errorf("connection refused")}

	f, err := New(stub)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := f.FindNearby(context.Background(), "1 Main St"); err == nil {
		t.Error("FindNearby() should propagate provider errors")
	}
}

func TestFindNearbyEmptyResponse(t *testing.T) {
	stub := &stubProvider{response: &ai.ChatResponse{Content: ""}}

	f, err := New(stub)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = f.FindNearby(context.Background(), "1 Main St")

	var nerr *normalize.Error
	if !errors.As(err, &nerr) || nerr.Kind != normalize.KindEmptyResponse {
		t.Errorf("FindNearby() error = %v, want empty response kind", err)
	}
}

func TestFindNearbyStrictNormalizer(t *testing.T) {
	stub := &stubProvider{
		response: &ai.ChatResponse{
			Content: `[{"address":"1 Main","type":"High School","studentCount":10}]`,
		},
	}

	f, err := New(stub, WithNormalizer(normalize.New(normalize.WithMode(normalize.ModeStrict))))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = f.FindNearby(context.Background(), "1 Main St")

	var nerr *normalize.Error
	if !errors.As(err, &nerr) || nerr.Kind != normalize.KindInvalidEntry {
		t.Errorf("FindNearby() error = %v, want invalid entry kind", err)
	}
}
