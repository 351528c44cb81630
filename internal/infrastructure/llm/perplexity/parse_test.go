package perplexity

import (
	"reflect"
	"testing"
)

func TestParseTermArrayWithSurroundingChatter(t *testing.T) {
	got := ParseTermArray(`Here you go: ["API", "Kubernetes"]`)
	want := []string{"API", "Kubernetes"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTermArray = %v, want %v", got, want)
	}
}

func TestParseTermArrayNoBracketsIsZeroTerms(t *testing.T) {
	got := ParseTermArray("I could not find any jargon in that text.")
	if len(got) != 0 {
		t.Fatalf("expected zero terms, got %v", got)
	}
}

func TestParseTermArrayMalformedJSONIsZeroTerms(t *testing.T) {
	got := ParseTermArray(`["API", "Kubernetes`)
	if len(got) != 0 {
		t.Fatalf("expected zero terms for malformed payload, got %v", got)
	}
}

func TestParseTermArrayDropsBlankEntries(t *testing.T) {
	got := ParseTermArray(`["API", "  ", ""]`)
	if !reflect.DeepEqual(got, []string{"API"}) {
		t.Fatalf("expected blank entries dropped, got %v", got)
	}
}

func TestParseExplanationBothTags(t *testing.T) {
	raw := "SHORT: An interface programs use to talk to each other.\nDETAILED: A longer story.\nWith two lines."
	entry := ParseExplanation("API", raw)
	if entry.Short != "An interface programs use to talk to each other." {
		t.Fatalf("short = %q", entry.Short)
	}
	if entry.Detailed != "A longer story.\nWith two lines." {
		t.Fatalf("detailed = %q", entry.Detailed)
	}
	if entry.Term != "API" {
		t.Fatalf("term = %q", entry.Term)
	}
}

func TestParseExplanationShortStopsAtFirstLine(t *testing.T) {
	raw := "SHORT: One sentence.\nA stray second line before the tag.\nDETAILED: The long form."
	entry := ParseExplanation("API", raw)
	if entry.Short != "One sentence." {
		t.Fatalf("short = %q", entry.Short)
	}
	if entry.Detailed != "The long form." {
		t.Fatalf("detailed = %q", entry.Detailed)
	}
}

func TestParseExplanationMissingShortTag(t *testing.T) {
	entry := ParseExplanation("API", "Just some prose with no tags at all.")
	if entry.Short != "API is a technical concept used in this context." {
		t.Fatalf("expected templated short, got %q", entry.Short)
	}
	if entry.Detailed != "Just some prose with no tags at all." {
		t.Fatalf("expected full prose as detailed, got %q", entry.Detailed)
	}
}

func TestParseExplanationEmptyResponse(t *testing.T) {
	entry := ParseExplanation("API", "   ")
	fallback := FallbackEntry("API")
	if entry.Detailed != fallback.Detailed {
		t.Fatalf("expected fallback detail, got %q", entry.Detailed)
	}
}

func TestFallbackEntryMentionsTerm(t *testing.T) {
	entry := FallbackEntry("Kubernetes")
	if entry.Term != "Kubernetes" {
		t.Fatalf("term = %q", entry.Term)
	}
	for _, text := range []string{entry.Short, entry.Detailed} {
		if len(text) == 0 {
			t.Fatalf("fallback text must not be empty")
		}
	}
}
