package report

import (
	"fmt"
	"strings"
	"time"

	"scout/internal/profile"
	"scout/internal/search"
)

// Input is everything a finished run contributes to its report.
type Input struct {
	RunID       string
	Topic       string
	Role        string
	Profile     profile.Profile
	Sources     []search.Source
	Text        string
	NumTurns    int
	CostUSD     float64
	GeneratedAt time.Time
}

// Render formats the run output as a Markdown document. The layout
// follows the resolved output format: summary stays tight, detailed
// carries the full run metadata and sources, executive leads with the
// findings and keeps the mechanics in a footer.
func Render(in Input) string {
	var b strings.Builder

	switch in.Profile.Format {
	case profile.FormatSummary:
		fmt.Fprintf(&b, "# %s\n\n", in.Topic)
		b.WriteString(strings.TrimSpace(in.Text))
		b.WriteString("\n")
	case profile.FormatExecutive:
		fmt.Fprintf(&b, "# %s\n\n", in.Topic)
		b.WriteString("## Executive summary\n\n")
		b.WriteString(strings.TrimSpace(in.Text))
		b.WriteString("\n\n---\n\n")
		writeFooter(&b, in)
	default: // detailed
		fmt.Fprintf(&b, "# %s\n\n", in.Topic)
		writeMeta(&b, in)
		if len(in.Sources) > 0 {
			b.WriteString("## Seed sources\n\n")
			for _, s := range in.Sources {
				fmt.Fprintf(&b, "- [%s](%s)\n", s.Title, s.URL)
			}
			b.WriteString("\n")
		}
		b.WriteString("## Findings\n\n")
		b.WriteString(strings.TrimSpace(in.Text))
		b.WriteString("\n\n---\n\n")
		writeFooter(&b, in)
	}

	return b.String()
}

func writeMeta(b *strings.Builder, in Input) {
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(b, "| Role | %s |\n", in.Role)
	fmt.Fprintf(b, "| Depth | %s |\n", in.Profile.Depth)
	fmt.Fprintf(b, "| Model | %s |\n", in.Profile.Model)
	fmt.Fprintf(b, "| Turn budget | %d |\n", in.Profile.MaxTurns)
	fmt.Fprintf(b, "| Generated | %s |\n\n", in.GeneratedAt.UTC().Format(time.RFC3339))
}

func writeFooter(b *strings.Builder, in Input) {
	fmt.Fprintf(b, "Run %s · %s · %s · %d turn(s)",
		in.RunID, in.Role, in.Profile.Model, in.NumTurns)
	if in.CostUSD > 0 {
		fmt.Fprintf(b, " · $%.4f", in.CostUSD)
	}
	b.WriteString("\n")
}
