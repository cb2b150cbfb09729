package quality

import (
	"fmt"
	"strings"
)

// Render formats a report as the plain-text document the quality-report
// tool writes to disk.
func Render(r *Report) string {
	var b strings.Builder
	b.WriteString("DATASET QUALITY REPORT\n")
	b.WriteString("======================\n\n")
	fmt.Fprintf(&b, "Rows analyzed: %d\n", r.Rows)
	fmt.Fprintf(&b, "Overall score: %.1f/100 (%s)\n\n", r.Overall, r.Rating)

	section(&b, "Completeness", r.Completeness)
	section(&b, "Consistency", r.Consistency)
	section(&b, "Temporal coverage", r.Temporal)
	section(&b, "Content quality", r.Content)
	section(&b, "Distribution balance", r.Balance)
	section(&b, "Crisis keyword relevance", r.KeywordRelevance)

	return b.String()
}

func section(b *strings.Builder, title string, s *SubScore) {
	if s == nil {
		return
	}
	fmt.Fprintf(b, "%s: %.1f\n", title, s.Score)
	for _, issue := range s.Issues {
		fmt.Fprintf(b, "  - %s\n", issue)
	}
	b.WriteString("\n")
}
