package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/KaramelBytes/skim-cli/internal/skim"
)

// Terminal draws every section as a bordered table inside a rounded panel.
type Terminal struct {
	HeaderStyle lipgloss.Style
}

var (
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Italic(true)
	borderStyle  = lipgloss.NewStyle().Faint(true)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func (*Terminal) Ext() string { return "txt" }

func (t *Terminal) Render(w io.Writer, r *skim.Report) error {
	blocks := []string{titleStyle.Render("skim: " + r.Name)}
	for _, sec := range r.Sections() {
		blocks = append(blocks, "", sectionStyle.Render(sec.Title), t.grid(sec))
	}
	width := lipgloss.Width(lipgloss.JoinVertical(lipgloss.Left, blocks...))
	blocks = append(blocks, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, "End"))
	_, err := fmt.Fprintln(w, panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...)))
	return err
}

func (t *Terminal) grid(sec skim.Section) string {
	header := t.HeaderStyle.Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cellStyle
		}).
		Headers(sec.Columns...).
		Rows(sec.Rows...)
	return tbl.String()
}
