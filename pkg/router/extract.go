package router

import "strings"

// ExtractJSONBlock pulls the most likely JSON document out of a free-text
// model response: a fenced code block first, then the first brace-balanced
// object span, then the trimmed raw text.
func ExtractJSONBlock(text string) string {
	if block, ok := extractFencedBlock(text); ok {
		return block
	}
	if span, ok := extractBraceSpan(text); ok {
		return span
	}
	return strings.TrimSpace(text)
}

func extractFencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}
	rest := text[start+3:]
	// tolerate a language tag such as ```json
	if newline := strings.Index(rest, "\n"); newline != -1 {
		firstLine := strings.TrimSpace(rest[:newline])
		if firstLine != "" && !strings.HasPrefix(firstLine, "{") {
			rest = rest[newline+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	block := strings.TrimSpace(rest[:end])
	if block == "" {
		return "", false
	}
	return block, true
}

func extractBraceSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}

	return "", false
}
