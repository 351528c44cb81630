package perplexity

import (
	"fmt"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// PromptSet is the immutable audience-to-system-prompt table, resolved once
// at process start. Unknown audiences fall back to Manager.
type PromptSet struct {
	prompts map[domain.Audience]string
}

func DefaultPrompts() *PromptSet {
	return &PromptSet{prompts: map[domain.Audience]string{
		domain.AudienceExecutive: `You are simplifying technical content for C-level executives.
CRITICAL RULES:
- Maximum 2-3 short sentences (15-25 words each)
- Focus ONLY on: business impact, ROI, strategic value
- NO technical jargon - use business language only
- Start with the bottom line (what it means for the business)
- Format: One focused paragraph, no bullet points`,

		domain.AudienceManager: `You are simplifying technical content for project managers and team leads.
CRITICAL RULES:
- Maximum 3-4 concise sentences (20-30 words each)
- Focus on: timeline, resources needed, risks, team impact
- Minimal technical terms - explain any you must use
- Include one practical next step
- Format: One clear paragraph`,

		domain.AudienceClient: `You are simplifying technical content for non-technical clients.
CRITICAL RULES:
- Maximum 2-3 very simple sentences (12-20 words each)
- Focus ONLY on: what they get, when they get it, why it matters to them
- ZERO technical jargon - use everyday language
- Emphasize benefits and deliverables
- Format: One friendly paragraph`,

		domain.AudienceIntern: `You are simplifying technical content for interns or beginners.
CRITICAL RULES:
- Maximum 4-5 simple sentences (15-25 words each)
- Explain technical terms in plain language
- Use analogies when helpful
- Focus on learning and understanding
- Format: One educational paragraph`,
	}}
}

// PromptsWithOverrides replaces individual audience prompts with operator
// supplied text; labels outside the fixed audience set are ignored.
func PromptsWithOverrides(overrides map[string]string) *PromptSet {
	set := DefaultPrompts()
	for label, prompt := range overrides {
		audience := domain.Audience(label)
		if _, ok := set.prompts[audience]; ok && prompt != "" {
			set.prompts[audience] = prompt
		}
	}
	return set
}

func (p *PromptSet) System(audience domain.Audience) string {
	if prompt, ok := p.prompts[audience]; ok {
		return prompt
	}
	return p.prompts[domain.AudienceManager]
}

func buildIdentificationPrompt(text string, audience domain.Audience) string {
	return fmt.Sprintf(`Analyze this text and identify all technical jargons, acronyms, and complex terms that need explanation for a %s audience. Return ONLY a JSON array of the jargon terms found, nothing else. Format: ["term1", "term2", "term3"]

Text: %s`, audience, text)
}

func buildExplanationSystemPrompt(audience domain.Audience) string {
	return fmt.Sprintf("You are explaining technical terms to a %s audience. Be clear, concise, and practical.", audience)
}

func buildExplanationPrompt(term, text string) string {
	return fmt.Sprintf(`Explain the term %q in the context of: %s

Provide TWO versions:
1. SHORT (1 sentence, 15-20 words): Brief, simple explanation
2. DETAILED (10-15 lines): Comprehensive explanation with context, examples, and why it matters

Format your response EXACTLY as:
SHORT: [one sentence explanation]
DETAILED: [10-15 lines of detailed explanation]`, term, text)
}
