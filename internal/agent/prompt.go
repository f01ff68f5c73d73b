package agent

import (
	"fmt"
	"strings"

	"scout/internal/profile"
	"scout/internal/search"
)

var depthGuidance = map[profile.Depth]string{
	profile.DepthQuick:         "Give a fast first pass: the headline facts and the two or three sources that matter most.",
	profile.DepthStandard:      "Do a solid pass: cover the main angles and verify the load-bearing claims.",
	profile.DepthComprehensive: "Be exhaustive: chase secondary sources, look for disconfirming evidence, and note open questions.",
}

var formatGuidance = map[profile.Format]string{
	profile.FormatSummary:   "Answer in a few tight paragraphs. No headings.",
	profile.FormatDetailed:  "Answer in Markdown sections with inline source links.",
	profile.FormatExecutive: "Answer as an executive summary: lead with the takeaways in bullets, then one short supporting section.",
}

// buildPrompt assembles the user prompt handed to the vendor loop.
// Seed sources, when present, give the loop concrete starting URLs so
// its first search turns are not spent rediscovering them.
func buildPrompt(topic string, prof profile.Profile, sources []search.Source) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Research task: %s\n\n", topic)
	b.WriteString(depthGuidance[prof.Depth])
	b.WriteString("\n")
	b.WriteString(formatGuidance[prof.Format])
	b.WriteString("\n")

	if len(sources) > 0 {
		b.WriteString("\nCandidate starting sources (verify before relying on them):\n")
		for _, s := range sources {
			fmt.Fprintf(&b, "- %s — %s", s.Title, s.URL)
			if s.Description != "" {
				fmt.Fprintf(&b, " (%s)", s.Description)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
