// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// CleanLabelReply normalizes a single-label reply from a selection prompt:
// it strips quoting, markdown emphasis, and list numbering artifacts so the
// reply can be compared against canonical labels.
func CleanLabelReply(text string) string {
	text = strings.TrimSpace(text)
	// Selection prompts ask for exactly one label; keep only the first line.
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		text = text[:idx]
	}
	text = strings.Trim(text, "\"'`")
	text = strings.Trim(text, "*_")
	text = strings.TrimPrefix(text, "- ")
	if dot := strings.Index(text, ". "); dot > 0 && dot <= 3 {
		numeric := true
		for _, r := range text[:dot] {
			if r < '0' || r > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			text = text[dot+2:]
		}
	}
	return strings.TrimSpace(text)
}
