package scoring

import (
	"fmt"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// Reasoning renders a one-sentence explanation of why the complexity score
// dropped. Clauses are appended in a fixed order and joined with commas; when
// nothing matches a generic fallback sentence is returned.
func Reasoning(report domain.ComplexityReport) string {
	percentage := report.Reduction.Percentage
	jargonReduction := report.Reduction.JargonReduction
	wordCountChange := report.Reduction.WordCountChange

	var reasons []string

	if jargonReduction > 0 {
		plural := ""
		if jargonReduction > 1 {
			plural = "s"
		}
		reasons = append(reasons, fmt.Sprintf("removed %d technical term%s", jargonReduction, plural))
	}

	switch {
	case wordCountChange < -20:
		reasons = append(reasons, fmt.Sprintf("condensed content by %d words", -wordCountChange))
	case wordCountChange > 20:
		reasons = append(reasons, fmt.Sprintf("expanded with %d additional clarifying words", wordCountChange))
	}

	if report.Original.ComplexityScore > 70 {
		reasons = append(reasons, "simplified complex sentence structures")
	}

	if percentage > 50 {
		reasons = append(reasons, "converted technical language to plain English")
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("Complexity reduced by %d%% through general simplification and improved readability.", percentage)
	}
	return fmt.Sprintf("Complexity reduced by %d%% by %s.", percentage, strings.Join(reasons, ", "))
}
