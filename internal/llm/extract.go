package llm

import "strings"

// extractJSON attempts to extract JSON from a string that may contain markdown formatting.
func extractJSON(s string) string {
	for _, fence := range []string{"```json", "```"} {
		if body, ok := fencedBlock(s, fence); ok {
			return body
		}
	}

	// Raw JSON: first { or [ up to its matching bracket.
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		depth := 0
		for j := i; j < len(s); j++ {
			switch s[j] {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return s[i : j+1]
				}
			}
		}
	}

	return s
}

func fencedBlock(s, fence string) (string, bool) {
	idx := strings.Index(s, fence)
	if idx == -1 {
		return "", false
	}
	rest := strings.TrimLeft(s[idx+len(fence):], "\r\n")
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimRight(rest[:end], "\r\n"), true
}
