// Package scoring computes the heuristic complexity metrics behind every
// brief. It is pure: no I/O, no state, deterministic for a given input.
package scoring

import (
	"math"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// DefaultVocabulary is the fixed jargon list used by the scorer. Each term is
// matched once as a substring of the lowercased text, regardless of how many
// times it repeats.
var DefaultVocabulary = []string{
	"api", "database", "kubernetes", "docker", "microservice", "deployment",
	"architecture", "authentication", "encryption", "scalability", "optimization",
	"infrastructure", "pipeline", "container", "orchestration", "synergy",
	"leverage", "paradigm", "ecosystem", "framework", "middleware",
}

const (
	originalBaseOffset   = 50
	simplifiedBaseOffset = 20
)

// Scorer holds the vocabulary; the zero value is not usable, construct with New.
type Scorer struct {
	vocabulary []string
}

func New(vocabulary []string) *Scorer {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	terms := make([]string, len(vocabulary))
	for i, term := range vocabulary {
		terms[i] = strings.ToLower(term)
	}
	return &Scorer{vocabulary: terms}
}

// WordCount counts whitespace-delimited tokens. Empty or whitespace-only
// text counts as zero words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// JargonCount counts vocabulary terms present in the lowercased text.
func (s *Scorer) JargonCount(text string) int {
	lowered := strings.ToLower(text)
	count := 0
	for _, term := range s.vocabulary {
		if strings.Contains(lowered, term) {
			count++
		}
	}
	return count
}

// Analyze builds the full complexity report for an original/simplified pair.
func (s *Scorer) Analyze(originalText, simplifiedText string) domain.ComplexityReport {
	originalWords := WordCount(originalText)
	simplifiedWords := WordCount(simplifiedText)

	originalJargon := s.JargonCount(originalText)
	simplifiedJargon := s.JargonCount(simplifiedText)

	originalScore := complexityScore(originalJargon, originalWords, originalBaseOffset)
	simplifiedScore := complexityScore(simplifiedJargon, simplifiedWords, simplifiedBaseOffset)

	return domain.ComplexityReport{
		Original: domain.TextMetrics{
			WordCount:       originalWords,
			JargonCount:     originalJargon,
			ComplexityScore: originalScore,
		},
		Simplified: domain.TextMetrics{
			WordCount:       simplifiedWords,
			JargonCount:     simplifiedJargon,
			ComplexityScore: simplifiedScore,
		},
		Reduction: domain.Reduction{
			Percentage:      reductionPercentage(originalScore, simplifiedScore),
			WordCountChange: simplifiedWords - originalWords,
			JargonReduction: originalJargon - simplifiedJargon,
		},
	}
}

// complexityScore maps jargon density to a 0-100 index. The base offset
// models the floor: even fully plain text never scores below it.
func complexityScore(jargonCount, wordCount, baseOffset int) int {
	ratio := 0.0
	if wordCount > 0 {
		ratio = float64(jargonCount) / float64(wordCount)
	}
	score := ratio*1000 + float64(baseOffset)
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// reductionPercentage reports 0 when the original score is 0 so degenerate
// input never produces NaN or Inf.
func reductionPercentage(originalScore, simplifiedScore int) int {
	if originalScore == 0 {
		return 0
	}
	return int(math.Round(float64(originalScore-simplifiedScore) / float64(originalScore) * 100))
}
