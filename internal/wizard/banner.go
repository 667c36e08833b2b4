package wizard

import (
	"strings"

	"github.com/common-nighthawk/go-figure"
)

// HeaderStyleNone and HeaderStyleSingleLine are the two non-figlet header
// styles; any other value names a figlet font, falling back to the single
// line divider when the font is unknown.
const (
	HeaderStyleNone       = "none"
	HeaderStyleSingleLine = "single line"
	HeaderStyleStandard   = "standard"
)

// SectionHeading renders the banner comment placed above a section.
func SectionHeading(title, style string) string {
	switch style {
	case HeaderStyleNone:
		return ""
	case HeaderStyleSingleLine:
		return singleLineHeading(title)
	default:
		art, ok := figletArt(title, style)
		if !ok {
			return singleLineHeading(title)
		}
		return addBorderToASCIIArt(art)
	}
}

func singleLineHeading(title string) string {
	return "#==================== " + title + " ====================#"
}

// figletArt renders title in the given font. go-figure panics on unknown
// font names, so the failure is recovered into a fallback signal.
func figletArt(title, font string) (art string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			art, ok = "", false
		}
	}()
	rendered := figure.NewFigure(title, font, true).String()
	if strings.TrimSpace(rendered) == "" {
		return "", false
	}
	return rendered, true
}

// addBorderToASCIIArt wraps ascii art in a # border so the banner survives
// as a YAML comment block.
func addBorderToASCIIArt(art string) string {
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}
	border := strings.Repeat("#", width+4)

	out := make([]string, 0, len(lines)+2)
	out = append(out, border)
	for _, line := range lines {
		out = append(out, "# "+line+strings.Repeat(" ", width-len(line))+" #")
	}
	out = append(out, border)
	return strings.Join(out, "\n")
}
