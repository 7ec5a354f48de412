package transcript

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/voitext/internal/transcriber"
	"github.com/nguyentantai21042004/voitext/internal/workspace"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// manifestToDocx writes one paragraph per segment: a bold time range
// followed by its caption. Placeholder captions are greyed out.
func manifestToDocx(title string, m *workspace.Manifest, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for _, s := range m.Segments {
		p := doc.AddParagraph("")
		label := fmt.Sprintf("%d. [%s - %s] ", s.Index, timestamp(s.StartMs), timestamp(s.EndMs))
		addStyledRun(p, label, true, fontSize)

		color := "000000"
		if s.Text == transcriber.Placeholder {
			color = "808080"
		}
		p.AddText(s.Text).Font(fontName).Size(fontSize).Color(color)
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
