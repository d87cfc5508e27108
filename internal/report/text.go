package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const bannerWidth = 60

var styleColors = map[Style]*color.Color{
	StyleHeading:    color.New(color.Bold),
	StyleWarning:    color.New(color.FgYellow),
	StyleSuggestion: color.New(color.FgCyan),
	StyleGood:       color.New(color.FgGreen),
}

// Generate writes the sections as banner-delimited plain text.
func (r *TextReporter) Generate(data Data) error {
	var sb strings.Builder
	banner := strings.Repeat("=", bannerWidth)

	for _, section := range BuildSections(data) {
		sb.WriteString(banner + "\n")
		sb.WriteString(r.paint(StyleHeading, section.Title) + "\n")
		sb.WriteString(banner + "\n")
		for _, line := range section.Lines {
			sb.WriteString(r.paint(line.Style, line.Text) + "\n")
		}
		sb.WriteString("\n")
	}

	if _, err := fmt.Fprint(r.Writer, sb.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

func (r *TextReporter) paint(style Style, text string) string {
	if r.NoColor || text == "" {
		return text
	}
	c, ok := styleColors[style]
	if !ok {
		return text
	}
	return c.Sprint(text)
}
