package summarize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("```(?:json)?\\s*|\\s*```")

func stripFences(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
}

// parseInsight validates the model's semi-structured output. Well-formed
// fields are coerced to strings with placeholder defaults; a payload that is
// not JSON at all degrades to the raw text as summary. It never fails.
func parseInsight(text string) MeetingInsight {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(stripFences(text)), &parsed); err != nil {
		return MeetingInsight{
			Summary:      text,
			ActionItems:  []ActionItem{},
			KeyDecisions: []string{},
		}
	}

	insight := MeetingInsight{
		Summary:      coerceString(parsed["summary"], "Summary not available"),
		ActionItems:  []ActionItem{},
		KeyDecisions: []string{},
	}

	if items, ok := parsed["actionItems"].([]interface{}); ok {
		for _, raw := range items {
			entry, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			insight.ActionItems = append(insight.ActionItems, ActionItem{
				Item:     coerceString(entry["item"], "No description"),
				Assignee: coerceString(entry["assignee"], "Not specified"),
				Priority: coerceString(entry["priority"], "Medium"),
				DueDate:  coerceString(entry["dueDate"], "Not specified"),
			})
		}
	}

	if decisions, ok := parsed["keyDecisions"].([]interface{}); ok {
		for _, raw := range decisions {
			if d, ok := raw.(string); ok {
				insight.KeyDecisions = append(insight.KeyDecisions, d)
			}
		}
	}

	return insight
}

func coerceString(v interface{}, def string) string {
	switch t := v.(type) {
	case nil:
		return def
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
