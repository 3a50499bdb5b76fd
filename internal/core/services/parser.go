package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/pageforge/internal/core/domain"
)

// ParsePage extracts the page document from raw backend output. Extraction
// is purely syntactic: strip code fences if present, otherwise locate the
// outermost balanced {...} span, then unmarshal. No semantic validation
// happens here - the schema validator owns that.
//
// Failures wrap domain.ErrParse.
func ParsePage(rawText string) (*domain.PageDocument, error) {
	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrParse)
	}

	candidate := stripCodeFence(trimmed)
	payload, ok := findJSONObject(candidate)
	if !ok {
		// The fence content may have been prose around the object; fall
		// back to scanning the whole response.
		payload, ok = findJSONObject(trimmed)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found in response", domain.ErrParse)
	}

	var doc domain.PageDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return &doc, nil
}

// stripCodeFence removes a surrounding ```json or ``` fence, if any.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	content := strings.TrimPrefix(text, "```")
	// Drop a language tag on the opening fence line.
	if idx := strings.Index(content, "\n"); idx != -1 && !strings.HasPrefix(strings.TrimSpace(content[:idx]), "{") {
		content = content[idx+1:]
	}
	if end := strings.LastIndex(content, "```"); end != -1 {
		content = content[:end]
	}
	return strings.TrimSpace(content)
}

// findJSONObject locates the outermost balanced {...} span via greedy brace
// matching, ignoring braces inside JSON strings and escape sequences.
func findJSONObject(input string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				return input[start : i+1], true
			}
		}
	}
	return "", false
}
