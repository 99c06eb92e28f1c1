package ai

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// DecodeOutput parses a model reply into a JSON object. Markdown fences are
// stripped and, failing that, the first '{' .. last '}' span is tried.
func DecodeOutput(text string) entities.RawGeneratedOutput {
	out := entities.RawGeneratedOutput{Text: text}

	s := extractJSON(text)
	if s == "" {
		out.DecodeErr = io.ErrUnexpectedEOF
		return out
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(s), &fields); err == nil && fields != nil {
		out.Fields = fields
		return out
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		out.DecodeErr = fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
		return out
	}
	sub := s[start : end+1]
	if err := json.Unmarshal([]byte(sub), &fields); err != nil {
		out.DecodeErr = fmt.Errorf("unmarshal extracted JSON (len=%d): %w", len(sub), err)
		return out
	}
	if fields == nil {
		out.DecodeErr = fmt.Errorf("model output is not a JSON object")
		return out
	}
	out.Fields = fields
	return out
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
