package summarize

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are an AI meeting assistant. Analyze the following meeting content and provide a comprehensive summary with actionable insights.

%s

Please provide:

1. **SUMMARY**: A detailed, well-structured summary that:
   - Captures key discussion points and decisions
   - Incorporates context from pre-meeting notes (if provided)
   - Highlights important outcomes and agreements
   - Uses clear, professional language
   - Is organized with bullet points or sections where appropriate

2. **ACTION ITEMS**: Extract specific, actionable tasks with:
   - Clear task description
   - Assigned person (if mentioned, otherwise "Not specified")
   - Priority level (High/Medium/Low based on context)
   - Due date (if mentioned, otherwise "Not specified")

3. **KEY DECISIONS**: Important decisions made during the meeting

Format your response as valid JSON:
{
    "summary": "Your detailed summary here...",
    "actionItems": [
        {
            "item": "Task description",
            "assignee": "Person name or 'Not specified'",
            "priority": "High/Medium/Low",
            "dueDate": "Date or 'Not specified'"
        }
    ],
    "keyDecisions": [
        "Decision 1",
        "Decision 2"
    ]
}

Focus on being comprehensive yet concise. If pre-meeting notes were provided, ensure they are integrated naturally into the summary.`

// buildPrompt assembles the context block (notes first, transcript after) and
// wraps it in the analysis instructions.
func buildPrompt(transcript, preMeetingNotes string) string {
	var contextParts []string

	if notes := strings.TrimSpace(preMeetingNotes); notes != "" {
		contextParts = append(contextParts, "Pre-meeting context and notes:\n"+notes)
	}
	contextParts = append(contextParts, "Meeting transcript/content:\n"+transcript)

	return fmt.Sprintf(promptTemplate, strings.Join(contextParts, "\n\n"))
}
