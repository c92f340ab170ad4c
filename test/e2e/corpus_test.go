package e2e

import (
	"strings"
	"testing"
)

func TestBuildCorpus(t *testing.T) {
	corpus := BuildCorpus()
	if len(corpus) < 3 {
		t.Fatalf("corpus has %d documents", len(corpus))
	}
	seen := map[string]bool{}
	for _, doc := range corpus {
		if doc.ID == "" || doc.Content == "" {
			t.Errorf("incomplete document %+v", doc)
		}
		if seen[doc.ID] {
			t.Errorf("duplicate id %s", doc.ID)
		}
		seen[doc.ID] = true
		if len(strings.Fields(doc.Content)) < 50 {
			t.Errorf("document %s too short to summarize meaningfully", doc.ID)
		}
	}
}

func TestGenerated(t *testing.T) {
	text := generated(20)
	if !strings.Contains(text, "Step 20.") {
		t.Error("generated text missing final step")
	}
	if !strings.Contains(text, "\n\n") {
		t.Error("generated text has no paragraph breaks")
	}
}
