package trigram

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimilarityIdentical(t *testing.T) {
	if got := Similarity("ramesh", "ramesh"); !almostEqual(got, 1) {
		t.Fatalf("identical strings: got %f, want 1", got)
	}
	if got := Similarity("Ramesh", "ramesh"); !almostEqual(got, 1) {
		t.Fatalf("case should not matter: got %f", got)
	}
}

func TestSimilarityDisjoint(t *testing.T) {
	if got := Similarity("xyz", "pqr"); !almostEqual(got, 0) {
		t.Fatalf("disjoint strings: got %f, want 0", got)
	}
	if got := Similarity("", "anything"); got != 0 {
		t.Fatalf("empty input: got %f, want 0", got)
	}
}

// Values below are what pg_trgm's similarity() returns for the same pairs,
// which is what keeps the in-memory repository aligned with the SQL path.
func TestSimilarityKnownValues(t *testing.T) {
	// "anna" -> {"  a", " an", "ann", "nna", "na "}, "ana" -> {"  a", " an", "ana", "na "},
	// 3 shared of 6 distinct.
	if got := Similarity("anna", "ana"); !almostEqual(got, 0.5) {
		t.Fatalf("anna/ana: got %f, want 0.5", got)
	}

	// "banana" shares only {"ana", "na "} with "ana": 2 of 8.
	if got := Similarity("banana", "ana"); !almostEqual(got, 0.25) {
		t.Fatalf("banana/ana: got %f, want 0.25", got)
	}
}

// The default fuzzy-search threshold sits at 0.3; these pairs pin down which
// side of it common near-matches fall on.
func TestSimilarityAroundDefaultThreshold(t *testing.T) {
	if got := Similarity("anna", "ana"); got <= 0.3 {
		t.Fatalf("anna/ana should clear the 0.3 threshold, got %f", got)
	}
	if got := Similarity("banana", "ana"); got > 0.3 {
		t.Fatalf("banana/ana should fall below the 0.3 threshold, got %f", got)
	}
}

func TestExtractPadsWords(t *testing.T) {
	set := Extract("an")
	for _, want := range []string{"  a", " an", "an "} {
		if _, ok := set[want]; !ok {
			t.Fatalf("missing trigram %q", want)
		}
	}
	if len(set) != 3 {
		t.Fatalf("expected 3 trigrams, got %d", len(set))
	}
}
