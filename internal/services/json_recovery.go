package services

import (
	"encoding/json"
	"strings"
)

// RecoverJSON pulls a JSON object out of a free-form LLM reply. It tries,
// in order: the whole text, the span from the first '{' to the last '}',
// and then the balanced {...} block opening at each '{' in document order.
// The first candidate that decodes to an object wins.
func RecoverJSON(raw string) (map[string]any, error) {
	content := strings.TrimSpace(raw)

	if obj, ok := decodeObject(content); ok {
		return obj, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		if obj, ok := decodeObject(content[start : end+1]); ok {
			return obj, nil
		}
	}

	for _, block := range balancedBlocks(content) {
		if obj, ok := decodeObject(block); ok {
			return obj, nil
		}
	}

	return nil, ErrNoValidJSON
}

func decodeObject(s string) (map[string]any, bool) {
	if s == "" {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// balancedBlocks returns the brace-balanced span opening at each '{' in
// s, in order of the opening brace. An opening brace that is never closed
// yields nothing and does not hide later blocks. Braces inside JSON string
// literals do not count.
func balancedBlocks(s string) []string {
	var blocks []string
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		if end := matchingBrace(s, i); end != -1 {
			blocks = append(blocks, s[i:end+1])
		}
	}
	return blocks
}

// matchingBrace returns the index of the '}' closing the '{' at open, or -1.
func matchingBrace(s string, open int) int {
	var (
		depth    int
		inString bool
		escaped  bool
	)

	for i := open; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
