package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Tools    []any         `json:"tools,omitempty"`
	Thinking *struct {
		Type string `json:"type"`
	} `json:"thinking,omitempty"`
	Stream bool `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

func handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidParameter", "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "MissingParameter", "messages is required")
		return
	}

	thinking := req.Thinking != nil && req.Thinking.Type == "enabled"
	s := classify(lastChatUserText(req.Messages), len(req.Tools) > 0, thinking)
	model := modelOrDefault(req.Model)

	if req.Stream {
		streamChat(w, model, s)
		return
	}

	msg := map[string]any{"role": "assistant", "content": strings.Join(s.text, "")}
	finish := "stop"
	if s.reasoning != "" {
		msg["reasoning_content"] = s.reasoning
	}
	if s.tool != nil {
		msg["content"] = ""
		msg["tool_calls"] = []any{map[string]any{
			"id":       "call_mock_1",
			"type":     "function",
			"function": map[string]any{"name": s.tool.name, "arguments": s.tool.arguments},
		}}
		finish = "tool_calls"
	}

	newSSEWriter(w).WriteJSON(map[string]any{
		"id":      "chatcmpl-mock",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   model,
		"choices": []any{map[string]any{"index": 0, "message": msg, "finish_reason": finish}},
		"usage":   chatUsage(len(s.text), s.reasoning != ""),
	})
}

func streamChat(w http.ResponseWriter, model string, s scenario) {
	sw := newSSEWriter(w)
	created := time.Now().Unix()
	chunk := func(delta map[string]any, finish any) map[string]any {
		return map[string]any{
			"id":      "chatcmpl-mock-stream",
			"object":  "chat.completion.chunk",
			"created": created,
			"model":   model,
			"choices": []any{map[string]any{"index": 0, "delta": delta, "finish_reason": finish}},
		}
	}

	sw.WriteEvent("", chunk(map[string]any{"role": "assistant"}, nil))
	if s.reasoning != "" {
		for _, word := range strings.SplitAfter(s.reasoning, " ") {
			sw.WriteEvent("", chunk(map[string]any{"reasoning_content": word}, nil))
		}
	}
	for _, token := range s.text {
		sw.WriteEvent("", chunk(map[string]any{"content": token}, nil))
	}
	finish := "stop"
	if s.tool != nil {
		// Name and id first, then the arguments in two pieces.
		half := len(s.tool.arguments) / 2
		sw.WriteEvent("", chunk(map[string]any{"tool_calls": []any{map[string]any{
			"index": 0, "id": "call_mock_1", "type": "function",
			"function": map[string]any{"name": s.tool.name, "arguments": ""},
		}}}, nil))
		for _, piece := range []string{s.tool.arguments[:half], s.tool.arguments[half:]} {
			sw.WriteEvent("", chunk(map[string]any{"tool_calls": []any{map[string]any{
				"index": 0, "function": map[string]any{"arguments": piece},
			}}}, nil))
		}
		finish = "tool_calls"
	}
	sw.WriteEvent("", chunk(map[string]any{}, finish))

	final := chunk(nil, nil)
	final["choices"] = []any{}
	final["usage"] = chatUsage(len(s.text), s.reasoning != "")
	sw.WriteEvent("", final)

	sw.Done()
}

func chatUsage(textTokens int, reasoning bool) map[string]any {
	reasoningTokens := 0
	if reasoning {
		reasoningTokens = 6
	}
	completion := textTokens + reasoningTokens
	return map[string]any{
		"prompt_tokens":             10,
		"completion_tokens":         completion,
		"total_tokens":              10 + completion,
		"prompt_tokens_details":     map[string]any{"cached_tokens": 0},
		"completion_tokens_details": map[string]any{"reasoning_tokens": reasoningTokens},
	}
}

func lastChatUserText(msgs []chatMessage) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != "user" {
			continue
		}
		switch v := msgs[i].Content.(type) {
		case string:
			return v
		case []any:
			for _, part := range v {
				if m, ok := part.(map[string]any); ok && m["type"] == "text" {
					if text, ok := m["text"].(string); ok {
						return text
					}
				}
			}
		}
		return ""
	}
	return ""
}
