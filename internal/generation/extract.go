package generation

import "strings"

// extractText pulls the reply text out of whichever response shape the
// service used: top-level text first, then content blocks joined with
// newlines, then the legacy generations list.
func extractText(parsed chatResponse) (string, bool) {
	if trimmed := strings.TrimSpace(parsed.Text); trimmed != "" {
		return trimmed, true
	}

	if parsed.Message != nil {
		parts := make([]string, 0, len(parsed.Message.Content))
		for _, block := range parsed.Message.Content {
			if block.Text != "" {
				parts = append(parts, block.Text)
			}
		}
		if len(parts) > 0 {
			joined := strings.TrimSpace(strings.Join(parts, "\n"))
			if joined != "" {
				return joined, true
			}
		}
	}

	if len(parsed.Generations) > 0 {
		if trimmed := strings.TrimSpace(parsed.Generations[0].Text); trimmed != "" {
			return trimmed, true
		}
	}

	return "", false
}
