package openai

import (
	"schoolfinder/providers/ai"
)

// requestFromGeneric converts an ai.ChatRequest to the chat completions wire
// format. The system prompt is prepended as the first message.
func requestFromGeneric(request ai.ChatRequest, model string) chatCompletionsRequest {
	req := chatCompletionsRequest{Model: model}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: request.SystemPrompt})
	}
	for _, msg := range request.Messages {
		req.Messages = append(req.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	if gc := request.GenerationConfig; gc != nil {
		req.MaxTokens = gc.MaxTokens
		req.Temperature = gc.Temperature
		req.TopP = gc.TopP
	}

	if rf := request.ResponseFormat; rf != nil {
		switch {
		case rf.OutputSchema != nil:
			req.ResponseFormat = &responseFormat{
				Type: "json_schema",
				JSONSchema: &jsonSchemaSpec{
					Name:   "response",
					Strict: rf.Strict,
					Schema: rf.OutputSchema,
				},
			}
		case rf.Type != "":
			req.ResponseFormat = &responseFormat{Type: rf.Type}
		}
	}

	return req
}

// responseToGeneric converts the chat completions response to an
// ai.ChatResponse, reading the first choice.
func responseToGeneric(resp chatCompletionsResponse) *ai.ChatResponse {
	out := &ai.ChatResponse{
		Id:      resp.ID,
		Model:   resp.Model,
		Object:  resp.Object,
		Created: resp.Created,
	}

	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
		out.Refusal = resp.Choices[0].Message.Refusal
		out.FinishReason = resp.Choices[0].FinishReason
	}

	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return out
}
