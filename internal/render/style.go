package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI 0-15 in their conventional order.
var namedColors = map[string]string{
	"black": "0", "red": "1", "green": "2", "yellow": "3",
	"blue": "4", "magenta": "5", "cyan": "6", "white": "7",
	"bright_black": "8", "bright_red": "9", "bright_green": "10", "bright_yellow": "11",
	"bright_blue": "12", "bright_magenta": "13", "bright_cyan": "14", "bright_white": "15",
	"grey": "8", "gray": "8",
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseStyle turns a space-separated style string such as "bold cyan" or
// "italic #ff8800 on blue" into a lipgloss style. Attributes are bold, italic,
// underline, faint (dim), strike and reverse. A color is a name, an ANSI
// number 0-255 or a hex code; a color after "on" sets the background.
func ParseStyle(spec string) (lipgloss.Style, error) {
	st := lipgloss.NewStyle()
	fields := strings.Fields(strings.ToLower(spec))
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		switch tok {
		case "bold":
			st = st.Bold(true)
		case "italic":
			st = st.Italic(true)
		case "underline":
			st = st.Underline(true)
		case "faint", "dim":
			st = st.Faint(true)
		case "strike":
			st = st.Strikethrough(true)
		case "reverse":
			st = st.Reverse(true)
		case "on":
			if i+1 >= len(fields) {
				return st, fmt.Errorf("invalid style %q: %q needs a color", spec, tok)
			}
			i++
			c, err := parseColor(fields[i])
			if err != nil {
				return st, fmt.Errorf("invalid style %q: %w", spec, err)
			}
			st = st.Background(c)
		default:
			c, err := parseColor(tok)
			if err != nil {
				return st, fmt.Errorf("invalid style %q: %w", spec, err)
			}
			st = st.Foreground(c)
		}
	}
	return st, nil
}

func parseColor(tok string) (lipgloss.Color, error) {
	tok = strings.ReplaceAll(tok, "-", "_")
	if c, ok := namedColors[tok]; ok {
		return lipgloss.Color(c), nil
	}
	if hexColor.MatchString(tok) {
		return lipgloss.Color(tok), nil
	}
	if n, err := strconv.Atoi(tok); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(tok), nil
	}
	return "", fmt.Errorf("unknown color %q", tok)
}
