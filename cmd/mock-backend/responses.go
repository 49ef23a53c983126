package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type responsesRequest struct {
	Model    string `json:"model"`
	Input    []any  `json:"input"`
	Tools    []any  `json:"tools,omitempty"`
	Thinking *struct {
		Type string `json:"type"`
	} `json:"thinking,omitempty"`
	Stream bool `json:"stream"`
}

func handleResponses(w http.ResponseWriter, r *http.Request) {
	var req responsesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidParameter", "invalid request body")
		return
	}
	if len(req.Input) == 0 {
		writeError(w, http.StatusBadRequest, "MissingParameter", "input is required")
		return
	}

	thinking := req.Thinking != nil && req.Thinking.Type == "enabled"
	s := classify(lastInputUserText(req.Input), hasFunctionTool(req.Tools), thinking)
	model := modelOrDefault(req.Model)

	if req.Stream {
		streamResponses(w, model, s)
		return
	}

	newSSEWriter(w).WriteJSON(responseObject(model, s, "completed", outputItems(s)))
}

func outputItems(s scenario) []any {
	var items []any
	if s.reasoning != "" {
		items = append(items, reasoningItem(s.reasoning))
	}
	if len(s.text) > 0 {
		items = append(items, messageItem(strings.Join(s.text, "")))
	}
	if s.tool != nil {
		items = append(items, functionCallItem(s.tool, s.tool.arguments))
	}
	return items
}

func reasoningItem(text string) map[string]any {
	return map[string]any{
		"id": "rs_mock", "type": "reasoning",
		"summary": []any{map[string]any{"type": "summary_text", "text": text}},
	}
}

func messageItem(text string) map[string]any {
	return map[string]any{
		"id": "msg_mock", "type": "message", "role": "assistant", "status": "completed",
		"content": []any{map[string]any{"type": "output_text", "text": text}},
	}
}

func functionCallItem(c *cannedCall, arguments string) map[string]any {
	return map[string]any{
		"id": "fc_mock", "type": "function_call", "call_id": "call_mock_1",
		"name": c.name, "arguments": arguments, "status": "completed",
	}
}

func responseObject(model string, s scenario, status string, output []any) map[string]any {
	reasoningTokens := 0
	if s.reasoning != "" {
		reasoningTokens = 6
	}
	out := len(s.text) + reasoningTokens
	return map[string]any{
		"id":         "resp_mock",
		"object":     "response",
		"created_at": time.Now().Unix(),
		"status":     status,
		"model":      model,
		"output":     output,
		"usage": map[string]any{
			"input_tokens":          10,
			"output_tokens":         out,
			"total_tokens":          10 + out,
			"input_tokens_details":  map[string]any{"cached_tokens": 0},
			"output_tokens_details": map[string]any{"reasoning_tokens": reasoningTokens},
		},
	}
}

func streamResponses(w http.ResponseWriter, model string, s scenario) {
	sw := newSSEWriter(w)
	emit := func(typ string, fields map[string]any) {
		fields["type"] = typ
		sw.WriteEvent(typ, fields)
	}

	emit("response.created", map[string]any{"response": responseObject(model, scenario{}, "in_progress", []any{})})
	emit("response.in_progress", map[string]any{"response": map[string]any{"id": "resp_mock"}})

	idx := 0
	if s.reasoning != "" {
		emit("response.output_item.added", map[string]any{"output_index": idx, "item": map[string]any{"id": "rs_mock", "type": "reasoning", "summary": []any{}}})
		emit("response.reasoning_summary_part.added", map[string]any{"item_id": "rs_mock", "summary_index": 0})
		for _, word := range strings.SplitAfter(s.reasoning, " ") {
			emit("response.reasoning_summary_text.delta", map[string]any{"item_id": "rs_mock", "summary_index": 0, "delta": word})
		}
		emit("response.reasoning_summary_text.done", map[string]any{"item_id": "rs_mock", "summary_index": 0, "text": s.reasoning})
		emit("response.output_item.done", map[string]any{"output_index": idx, "item": reasoningItem(s.reasoning)})
		idx++
	}
	if len(s.text) > 0 {
		emit("response.output_item.added", map[string]any{"output_index": idx, "item": map[string]any{"id": "msg_mock", "type": "message", "role": "assistant", "content": []any{}}})
		emit("response.content_part.added", map[string]any{"item_id": "msg_mock", "output_index": idx, "content_index": 0})
		for _, token := range s.text {
			emit("response.output_text.delta", map[string]any{"item_id": "msg_mock", "output_index": idx, "content_index": 0, "delta": token})
		}
		text := strings.Join(s.text, "")
		emit("response.output_text.done", map[string]any{"item_id": "msg_mock", "output_index": idx, "content_index": 0, "text": text})
		emit("response.output_item.done", map[string]any{"output_index": idx, "item": messageItem(text)})
		idx++
	}
	if s.tool != nil {
		emit("response.output_item.added", map[string]any{"output_index": idx, "item": functionCallItem(s.tool, "")})
		half := len(s.tool.arguments) / 2
		for _, piece := range []string{s.tool.arguments[:half], s.tool.arguments[half:]} {
			emit("response.function_call_arguments.delta", map[string]any{"item_id": "fc_mock", "output_index": idx, "delta": piece})
		}
		emit("response.function_call_arguments.done", map[string]any{"item_id": "fc_mock", "output_index": idx, "arguments": s.tool.arguments})
		emit("response.output_item.done", map[string]any{"output_index": idx, "item": functionCallItem(s.tool, s.tool.arguments)})
	}

	emit("response.completed", map[string]any{"response": responseObject(model, s, "completed", outputItems(s))})
}

func hasFunctionTool(tools []any) bool {
	for _, t := range tools {
		if m, ok := t.(map[string]any); ok && m["type"] == "function" {
			return true
		}
	}
	return false
}

func lastInputUserText(input []any) string {
	for i := len(input) - 1; i >= 0; i-- {
		m, ok := input[i].(map[string]any)
		if !ok || m["role"] != "user" {
			continue
		}
		parts, _ := m["content"].([]any)
		for _, part := range parts {
			if p, ok := part.(map[string]any); ok && p["type"] == "input_text" {
				if text, ok := p["text"].(string); ok {
					return text
				}
			}
		}
		return ""
	}
	return ""
}
