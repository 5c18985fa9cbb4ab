// Package report renders a finished digest to local files: a machine-readable
// json document, a markdown digest, and a styled docx for sharing.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trungnghia224/meeting-digest/internal/logger"
	"github.com/trungnghia224/meeting-digest/internal/pipeline"
)

type Writer struct {
	outputDir string
	logger    logger.Logger
}

func New(outputDir string, log logger.Logger) *Writer {
	return &Writer{outputDir: outputDir, logger: log}
}

// Write persists the digest under the given base name. The json document is
// the primary artifact; markdown and docx are companions whose failure only
// logs a warning.
func (w *Writer) Write(ctx context.Context, name string, d *pipeline.Digest) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	jsonPath := filepath.Join(w.outputDir, name+".json")
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode digest: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("write digest json: %w", err)
	}

	mdPath := filepath.Join(w.outputDir, name+".md")
	if err := os.WriteFile(mdPath, []byte(renderMarkdown(name, d)), 0644); err != nil {
		w.logger.Warn(ctx, "Failed to write markdown digest %s: %v", mdPath, err)
	}

	docxPath := filepath.Join(w.outputDir, name+".docx")
	if err := renderDocx(name, d, docxPath); err != nil {
		w.logger.Warn(ctx, "Failed to write docx digest %s: %v", docxPath, err)
	}

	w.logger.Info(ctx, "Digest written: %s", jsonPath)
	return nil
}

func renderMarkdown(title string, d *pipeline.Digest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "_%s_\n\n", d.ProcessedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Summary\n\n")
	b.WriteString(strings.TrimSpace(d.Insight.Summary))
	b.WriteString("\n\n")

	b.WriteString("## Action Items\n\n")
	if len(d.Insight.ActionItems) == 0 {
		b.WriteString("None recorded.\n\n")
	} else {
		for _, item := range d.Insight.ActionItems {
			fmt.Fprintf(&b, "- **%s** (assignee: %s, priority: %s, due: %s)\n",
				item.Item, item.Assignee, item.Priority, item.DueDate)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Key Decisions\n\n")
	if len(d.Insight.KeyDecisions) == 0 {
		b.WriteString("None recorded.\n\n")
	} else {
		for i, decision := range d.Insight.KeyDecisions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, decision)
		}
		b.WriteString("\n")
	}

	if d.Transcript != "" {
		fmt.Fprintf(&b, "## Transcript (%s)\n\n%s\n\n", d.SourceLanguage, d.Transcript)
	}
	if d.Translation != "" && d.Translation != d.Transcript {
		fmt.Fprintf(&b, "## Translation (%s)\n\n%s\n", d.TargetLanguage, d.Translation)
	}

	return b.String()
}
