package perplexity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// ParseTermArray pulls the first-bracket-to-last-bracket slice out of a free
// text answer and decodes it as a JSON string array. Anything unparseable
// means zero terms; model chatter around the array is tolerated.
func ParseTermArray(raw string) []string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return []string{}
	}

	var terms []string
	if err := json.Unmarshal([]byte(raw[start:end+1]), &terms); err != nil {
		return []string{}
	}

	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term != "" {
			cleaned = append(cleaned, term)
		}
	}
	return cleaned
}

// ParseExplanation extracts the SHORT: and DETAILED: sections. A missing tag
// degrades to templated text referencing the term; this parser never fails.
func ParseExplanation(term, raw string) domain.JargonEntry {
	entry := domain.JargonEntry{
		Term:     term,
		Short:    fmt.Sprintf("%s is a technical concept used in this context.", term),
		Detailed: strings.TrimSpace(raw),
	}
	if entry.Detailed == "" {
		entry.Detailed = FallbackEntry(term).Detailed
	}

	// SHORT is a one-liner; anything past the first line break is noise.
	if short, ok := sectionAfterTag(raw, "SHORT:", "DETAILED:"); ok {
		if nl := strings.IndexByte(short, '\n'); nl >= 0 {
			short = strings.TrimSpace(short[:nl])
		}
		if short != "" {
			entry.Short = short
		}
	}
	if detailed, ok := sectionAfterTag(raw, "DETAILED:", ""); ok {
		entry.Detailed = detailed
	}
	return entry
}

// FallbackEntry is the deterministic glossary row used when the explanation
// call itself fails.
func FallbackEntry(term string) domain.JargonEntry {
	return domain.JargonEntry{
		Term:     term,
		Short:    fmt.Sprintf("%s is a technical term used in this context.", term),
		Detailed: fmt.Sprintf("%s is a technical term that requires further explanation. Please refer to technical documentation for more details.", term),
	}
}

func sectionAfterTag(raw, tag, stopTag string) (string, bool) {
	idx := strings.Index(raw, tag)
	if idx < 0 {
		return "", false
	}
	section := raw[idx+len(tag):]
	if stopTag != "" {
		if stop := strings.Index(section, stopTag); stop >= 0 {
			section = section[:stop]
		}
	}
	section = strings.TrimSpace(section)
	if section == "" {
		return "", false
	}
	return section, true
}
