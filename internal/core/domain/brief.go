package domain

import "time"

// Audience selects the tone and detail level of a simplification.
type Audience string

const (
	AudienceExecutive Audience = "Executive"
	AudienceManager   Audience = "Manager"
	AudienceClient    Audience = "Client"
	AudienceIntern    Audience = "Intern"
)

// NormalizeAudience maps unknown labels to the Manager default.
func NormalizeAudience(label string) Audience {
	switch Audience(label) {
	case AudienceExecutive, AudienceManager, AudienceClient, AudienceIntern:
		return Audience(label)
	default:
		return AudienceManager
	}
}

// TextMetrics describes one side (original or simplified) of a complexity report.
type TextMetrics struct {
	WordCount       int `json:"wordCount"`
	JargonCount     int `json:"jargonCount"`
	ComplexityScore int `json:"complexityScore"`
}

// Reduction summarizes the delta between the original and simplified metrics.
// Percentage may be negative when the simplified text is more jargon-dense
// per word than the original.
type Reduction struct {
	Percentage      int `json:"percentage"`
	WordCountChange int `json:"wordCountChange"`
	JargonReduction int `json:"jargonReduction"`
}

// ComplexityReport is recomputed on every request and never persisted as-is.
type ComplexityReport struct {
	Original   TextMetrics `json:"original"`
	Simplified TextMetrics `json:"simplified"`
	Reduction  Reduction   `json:"reduction"`
}

// JargonEntry is one glossary row produced by the jargon extractor.
type JargonEntry struct {
	Term     string `json:"term"`
	Short    string `json:"short"`
	Detailed string `json:"detailed"`
}

// TokenUsage mirrors the upstream chat-completions usage block.
type TokenUsage struct {
	PromptTokens     int     `json:"promptTokens"`
	CompletionTokens int     `json:"completionTokens"`
	TotalTokens      int     `json:"totalTokens"`
	Cost             float64 `json:"cost,omitempty"`
}

// Simplification is the result of one upstream simplify call.
type Simplification struct {
	Text      string
	Model     string
	Usage     TokenUsage
	Citations []string
}

// Brief is a persisted simplification result backing the dashboard.
type Brief struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	OriginalText   string    `json:"originalText"`
	SimplifiedText string    `json:"simplifiedText"`
	Audience       Audience  `json:"audience"`
	Reasoning      string    `json:"reasoning,omitempty"`
	SourceFilename string    `json:"sourceFilename,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
