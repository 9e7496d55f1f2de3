package prompt

import (
	"strings"
	"testing"

	"github.com/shopmate-fulfillment/server/internal/catalog"
)

func TestTranslateQuotesTextAndNamesLanguage(t *testing.T) {
	t.Parallel()

	p := Translate("Hello there", "French")
	if !strings.Contains(p, "into French") {
		t.Fatalf("prompt %q missing target language", p)
	}
	if !strings.Contains(p, `"Hello there"`) {
		t.Fatalf("prompt %q missing quoted source text", p)
	}
	if !strings.Contains(p, "Only give the translation") {
		t.Fatalf("prompt %q missing the translation-only instruction", p)
	}
}

func TestOrderStatusCarriesOrderFacts(t *testing.T) {
	t.Parallel()

	p := OrderStatus("42", 3, 129.99)
	for _, want := range []string{"#42", "3 items", "$129.99", "Roman Urdu"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt %q missing %q", p, want)
		}
	}
}

func TestReviewSummaryCarriesProductFacts(t *testing.T) {
	t.Parallel()

	p := ReviewSummary(catalog.Product{
		Title:       "iPhone 9",
		Category:    "smartphones",
		Price:       549,
		Rating:      4.69,
		Description: "An apple mobile.",
	})
	for _, want := range []string{`"iPhone 9"`, "smartphones", "$549", "4.69 out of 5", "An apple mobile."} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt %q missing %q", p, want)
		}
	}
}

func TestGeneralKnowledgeIncludesKnowledgeBase(t *testing.T) {
	t.Parallel()

	p := GeneralKnowledge("when will it arrive?")
	for _, want := range []string{"Return Policy", "3-5 business days", `"when will it arrive?"`} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt %q missing %q", p, want)
		}
	}
}

func TestInventorySummaryListsExamples(t *testing.T) {
	t.Parallel()

	p := InventorySummary(194, []string{"iPhone 9", "Samsung Universe 9"})
	if !strings.Contains(p, "Total: 194") {
		t.Fatalf("prompt %q missing total", p)
	}
	for _, want := range []string{"- iPhone 9\n", "- Samsung Universe 9\n"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt %q missing example line %q", p, want)
		}
	}
}
