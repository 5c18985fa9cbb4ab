package summarize

import "context"

// ActionItem is one actionable task extracted from a meeting. Fields are
// always populated, falling back to placeholders when the model omits them.
type ActionItem struct {
	Item     string `json:"item"`
	Assignee string `json:"assignee"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate"`
}

// MeetingInsight is the digest produced for one transcript. ActionItems and
// KeyDecisions are never nil, even when parsing degraded.
type MeetingInsight struct {
	Summary      string       `json:"summary"`
	ActionItems  []ActionItem `json:"actionItems"`
	KeyDecisions []string     `json:"keyDecisions"`
}

// Summarizer turns a transcript (plus optional pre-meeting notes) into a
// MeetingInsight via the generative-language backend.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, preMeetingNotes string) (MeetingInsight, error)

	// Configured reports whether the summarizer holds credentials. It
	// performs no network call.
	Configured() bool
}
