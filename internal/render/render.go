package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/skim-cli/internal/skim"
)

// ErrUnknownFormat is returned by New for formats it does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// DefaultHeaderStyle styles table headers when no style is configured.
const DefaultHeaderStyle = "bold cyan"

// Renderer writes a report in one output format.
type Renderer interface {
	Render(w io.Writer, r *skim.Report) error
	// Ext is the file extension used when a report is written to disk.
	Ext() string
}

// Formats lists the accepted format names.
var Formats = []string{"table", "markdown", "json", "yaml"}

// New returns the renderer for format. headerStyle only affects the table
// format; an empty style means DefaultHeaderStyle.
func New(format, headerStyle string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table", "terminal":
		if headerStyle == "" {
			headerStyle = DefaultHeaderStyle
		}
		st, err := ParseStyle(headerStyle)
		if err != nil {
			return nil, err
		}
		return &Terminal{HeaderStyle: st}, nil
	case "markdown", "md":
		return Markdown{}, nil
	case "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	}
	return nil, fmt.Errorf("%w: %q (use %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}
