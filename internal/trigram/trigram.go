package trigram

import (
	"strings"
	"unicode"
)

// Similarity computes trigram set similarity between two strings on a 0-1
// scale, matching the behavior of PostgreSQL's pg_trgm similarity(): input is
// lowercased, split into words, and each word is padded with two leading and
// one trailing space before trigram extraction. The score is the Jaccard
// ratio of the two trigram sets. The in-memory identity repository uses this
// so fuzzy search behaves the same with or without a database.
func Similarity(a, b string) float64 {
	ta := Extract(a)
	tb := Extract(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}

	union := len(ta) + len(tb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// Extract returns the set of trigrams for s using pg_trgm word padding.
func Extract(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range words(s) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			set[string(runes[i:i+3])] = struct{}{}
		}
	}
	return set
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
