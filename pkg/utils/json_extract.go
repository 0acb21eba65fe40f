package utils

import (
	"strings"
)

// ExtractJSONObject pulls the first top-level JSON object out of raw model
// output. Models routinely wrap the payload in markdown fences or a line of
// prose, so the scanner strips fences first and then brace-matches from the
// first '{', respecting string literals and escapes. Returns "" when no
// complete object is present.
func ExtractJSONObject(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}
	end := findMatchingBrace(response, start)
	if end == -1 {
		return ""
	}
	return response[start : end+1]
}

func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
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
