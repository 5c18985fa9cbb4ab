package report

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/trungnghia224/meeting-digest/internal/pipeline"
)

const (
	fontName    = "Times New Roman"
	fontSize    = 13
	headingSize = 15
	titleSize   = 16
)

// renderDocx writes the digest as a styled document.
func renderDocx(title string, d *pipeline.Digest, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	addStyledRun(doc.AddParagraph(""), d.ProcessedAt.Format("2006-01-02 15:04"), false, fontSize)

	addStyledRun(doc.AddParagraph(""), "Summary", true, headingSize)
	addStyledRun(doc.AddParagraph(""), d.Insight.Summary, false, fontSize)

	addStyledRun(doc.AddParagraph(""), "Action Items", true, headingSize)
	if len(d.Insight.ActionItems) == 0 {
		addStyledRun(doc.AddParagraph(""), "None recorded.", false, fontSize)
	}
	for _, item := range d.Insight.ActionItems {
		p := doc.AddParagraph("")
		addStyledRun(p, "• "+item.Item, true, fontSize)
		detail := fmt.Sprintf(" (assignee: %s, priority: %s, due: %s)", item.Assignee, item.Priority, item.DueDate)
		p.AddText(detail).Font(fontName).Size(fontSize).Color("000000")
	}

	addStyledRun(doc.AddParagraph(""), "Key Decisions", true, headingSize)
	if len(d.Insight.KeyDecisions) == 0 {
		addStyledRun(doc.AddParagraph(""), "None recorded.", false, fontSize)
	}
	for i, decision := range d.Insight.KeyDecisions {
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("%d. %s", i+1, decision), false, fontSize)
	}

	if d.Transcript != "" {
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Transcript (%s)", d.SourceLanguage), true, headingSize)
		addStyledRun(doc.AddParagraph(""), d.Transcript, false, fontSize)
	}
	if d.Translation != "" && d.Translation != d.Transcript {
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Translation (%s)", d.TargetLanguage), true, headingSize)
		addStyledRun(doc.AddParagraph(""), d.Translation, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
