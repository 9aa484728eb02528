package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/skim-cli/internal/skim"
)

// Markdown writes one GitHub table per section, then any warnings.
type Markdown struct{}

func (Markdown) Ext() string { return "md" }

func (Markdown) Render(w io.Writer, r *skim.Report) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# skim: %s\n", r.Name))
	for _, sec := range r.Sections() {
		b.WriteString(fmt.Sprintf("\n## %s\n\n", sec.Title))
		writeRow(&b, sec.Columns)
		sep := make([]string, len(sec.Columns))
		for i := range sep {
			sep[i] = "---"
		}
		writeRow(&b, sep)
		for _, row := range sec.Rows {
			writeRow(&b, row)
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(safeCell(w))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(safeCell(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func safeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "\\|")
}
