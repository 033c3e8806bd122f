// Package assist provides optional AI help for the guidance workflow:
// breaking a quest down into checkpoint suggestions and proposing a triage
// target for a captured inbox item. Suggestions are hints only; nothing in
// the core workflow depends on them and failures never block an operation.
package assist

import (
	"context"
	"strings"
)

// Provider generates suggestions. Implementations must be safe for
// concurrent use.
type Provider interface {
	// BreakdownQuest suggests up to maxSteps checkpoint titles for a quest.
	BreakdownQuest(ctx context.Context, title, description string, maxSteps int) ([]string, error)
	// ClassifyCapture suggests a triage kind (quest, note, item,
	// source_document) for free-text capture content.
	ClassifyCapture(ctx context.Context, content string) (string, error)
}

// parseSteps extracts step titles from an LLM response: one step per line,
// with list numbering and bullets stripped.
func parseSteps(raw string, max int) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		// "1." / "1)" prefixes
		if i := strings.IndexAny(line, ".)"); i > 0 && i <= 3 && isDigits(line[:i]) {
			line = strings.TrimSpace(line[i+1:])
		}
		if line == "" {
			continue
		}
		out = append(out, line)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeKind maps a free-form model answer onto the closed triage kind
// set, defaulting to note for anything unrecognized.
func normalizeKind(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Trim(s, `"'.`)
	switch {
	case strings.Contains(s, "quest") || strings.Contains(s, "task"):
		return "quest"
	case strings.Contains(s, "source") || strings.Contains(s, "document") || strings.Contains(s, "reference"):
		return "source_document"
	case strings.Contains(s, "item") || strings.Contains(s, "inventory"):
		return "item"
	default:
		return "note"
	}
}
