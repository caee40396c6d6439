package training

import (
	"strings"
	"unicode"
)

const (
	// IdentityBoost multiplies the similarity of identity-flavored candidates
	// for identity-flavored queries.
	IdentityBoost = 1.5

	// answerWeight discounts overlap found only in a Q&A answer
	answerWeight = 0.8
)

var identityQueryCues = []string{
	"agency", "company", "about you", "about your", "your name", "who are you",
	"who is this", "what do you do", "services", "your business", "your team",
	"tell me about", "founded", "brokerage",
}

var identityCandidateCues = []string{
	"about", "agency", "company", "business", "team", "founded", "mission",
	"services", "brokerage", "who we are",
}

// SignificantWords returns the set of case-folded words longer than two
// characters.
func SignificantWords(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len([]rune(w)) > 2 {
			set[w] = struct{}{}
		}
	}
	return set
}

// Similarity is the word overlap of query and candidate divided by the size of
// the smaller significant-word set. It is symmetric and always in [0, 1].
func Similarity(query, candidate string) float64 {
	return overlap(SignificantWords(query), SignificantWords(candidate))
}

func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	shared := 0
	for w := range small {
		if _, ok := large[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}

// IsIdentityQuery reports whether the query asks about the business itself
func IsIdentityQuery(query string) bool {
	return containsAny(strings.ToLower(query), identityQueryCues)
}

// IsIdentityCandidate reports whether a training item describes the business
func IsIdentityCandidate(category, content string) bool {
	return containsAny(strings.ToLower(category), identityCandidateCues) ||
		containsAny(strings.ToLower(content), identityCandidateCues)
}

// Boost applies the identity boost, capped at 1.0
func Boost(similarity float64) float64 {
	boosted := similarity * IdentityBoost
	if boosted > 1 {
		return 1
	}
	return boosted
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
