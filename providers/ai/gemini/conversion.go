package gemini

import (
	"strings"

	"schoolfinder/internal/utils"
	"schoolfinder/providers/ai"
)

// requestToGemini converts an ai.ChatRequest to a Gemini
// generateContentRequest.
// Role mapping: user -> user, assistant -> model; the system prompt becomes
// the systemInstruction block.
func requestToGemini(request ai.ChatRequest) generateContentRequest {
	req := generateContentRequest{}

	if request.SystemPrompt != "" {
		req.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: request.SystemPrompt}},
		}
	}

	for _, msg := range request.Messages {
		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, content{
			Role:  role,
			Parts: []part{{Text: msg.Content}},
		})
	}

	req.GenerationConfig = buildGenerationConfig(request.GenerationConfig, request.ResponseFormat)

	return req
}

// buildGenerationConfig merges the generic generation parameters with the
// response format. Gemini's responseSchema dialect is an OpenAPI subset
// rather than standard JSON schema, so schemas are not forwarded; asking for
// application/json plus the shape enumerated in the prompt is sufficient.
func buildGenerationConfig(gc *ai.GenerationConfig, rf *ai.ResponseFormat) *generationConfig {
	cfg := &generationConfig{}
	set := false

	if gc != nil {
		if gc.MaxTokens > 0 {
			cfg.MaxOutputTokens = utils.Ptr(gc.MaxTokens)
			set = true
		}
		if gc.Temperature > 0 {
			cfg.Temperature = utils.Ptr(float64(gc.Temperature))
			set = true
		}
		if gc.TopP > 0 {
			cfg.TopP = utils.Ptr(float64(gc.TopP))
			set = true
		}
	}

	if rf != nil && (rf.OutputSchema != nil || strings.HasPrefix(rf.Type, "json")) {
		cfg.ResponseMimeType = "application/json"
		set = true
	}

	if !set {
		return nil
	}
	return cfg
}

// responseToGeneric converts a Gemini response to an ai.ChatResponse,
// concatenating the text parts of the first candidate.
func responseToGeneric(resp generateContentResponse) *ai.ChatResponse {
	out := &ai.ChatResponse{
		Id:     resp.ResponseID,
		Model:  resp.ModelVersion,
		Object: "generate_content_response",
	}

	if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		var sb strings.Builder
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		out.Content = sb.String()
		out.FinishReason = strings.ToLower(cand.FinishReason)
	}

	if resp.UsageMetadata != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	return out
}
