package lead

import (
	"regexp"
	"strings"
)

var (
	emailRE = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// Optional country code, then 3-3-4 digits with space, dot or dash separators.
	phoneRE = regexp.MustCompile(`(?:\+\d{1,3}[\s.\-]?)?(?:\(\d{3}\)|\b\d{3})[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)

	// The phrase is case-insensitive, the captured name is not.
	nameRE = regexp.MustCompile(`(?i:\bmy name is|\bi am|\bi'm)\s+([A-Z][A-Za-z'\-]+(?:\s+[A-Z][A-Za-z'\-]+){0,2})`)

	// An amount needs a currency sign, a magnitude suffix, a thousands
	// separator or at least four digits, so counts like "3 bedrooms" never match.
	budgetAmount = `(?:\$\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:million|thousand|k|m)\b)?` +
		`|\d[\d,]*(?:\.\d+)?\s?(?:million|thousand|k|m)\b` +
		`|\d{1,3}(?:,\d{3})+(?:\.\d+)?` +
		`|\d{4,}(?:\.\d+)?)`

	budgetRE = regexp.MustCompile(`(?i)(?:budget|afford|looking to spend|price range)\D{0,40}?(` +
		budgetAmount + `(?:\s?(?:-|to|and)\s?` + budgetAmount + `)?)`)

	propertyNounRE = regexp.MustCompile(`(?i)\b(?:house|houses|home|homes|property|properties)\b`)

	intentCues = []struct {
		intent string
		re     *regexp.Regexp
	}{
		{IntentBuying, regexp.MustCompile(`(?i)\b(?:buy|buying|purchase|purchasing)\b`)},
		{IntentSelling, regexp.MustCompile(`(?i)\b(?:sell|selling)\b`)},
		{IntentRenting, regexp.MustCompile(`(?i)\b(?:rent|renting|rental|lease|leasing)\b`)},
	}
)

// Capitalized words that follow "I'm" without being a name
var nameStopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "also": {}, "just": {}, "not": {}, "so": {}, "very": {},
	"here": {}, "looking": {}, "interested": {}, "trying": {}, "ready": {}, "planning": {},
	"thinking": {}, "searching": {}, "moving": {}, "relocating": {}, "wondering": {}, "hoping": {},
	"buying": {}, "selling": {}, "renting": {}, "currently": {}, "new": {}, "happy": {}, "glad": {},
	"good": {}, "fine": {}, "sorry": {}, "in": {}, "on": {}, "from": {}, "with": {}, "at": {},
	"calling": {}, "writing": {}, "back": {}, "still": {}, "really": {}, "okay": {}, "ok": {},
}

type EmailStrategy struct{}

func (EmailStrategy) Field() Field { return FieldEmail }

func (EmailStrategy) Find(message string) (string, bool) {
	m := emailRE.FindString(message)
	return m, m != ""
}

type PhoneStrategy struct{}

func (PhoneStrategy) Field() Field { return FieldPhone }

func (PhoneStrategy) Find(message string) (string, bool) {
	m := strings.TrimSpace(phoneRE.FindString(message))
	return m, m != ""
}

// NameStrategy only recognizes explicit self-introductions
type NameStrategy struct{}

func (NameStrategy) Field() Field { return FieldName }

func (NameStrategy) Find(message string) (string, bool) {
	for _, match := range nameRE.FindAllStringSubmatch(message, -1) {
		if name := trimNameStopWords(match[1]); name != "" {
			return name, true
		}
	}
	return "", false
}

// trimNameStopWords cuts the candidate at the first word that is not part of a
// name. A candidate that starts with such a word is rejected entirely.
func trimNameStopWords(candidate string) string {
	words := strings.Fields(candidate)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := nameStopWords[strings.ToLower(w)]; stop {
			break
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// BudgetStrategy requires a budget cue before the amount
type BudgetStrategy struct{}

func (BudgetStrategy) Field() Field { return FieldBudget }

func (BudgetStrategy) Find(message string) (string, bool) {
	m := budgetRE.FindStringSubmatch(message)
	if len(m) < 2 {
		return "", false
	}
	budget := strings.TrimRight(strings.TrimSpace(m[1]), ",.")
	return budget, budget != ""
}

// IntentStrategy classifies buying, selling or renting. It needs a property noun
// and a verb cue; when several cues appear the earliest one wins.
type IntentStrategy struct{}

func (IntentStrategy) Field() Field { return FieldPropertyInterest }

func (IntentStrategy) Find(message string) (string, bool) {
	if !propertyNounRE.MatchString(message) {
		return "", false
	}

	intent, earliest := "", -1
	for _, cue := range intentCues {
		loc := cue.re.FindStringIndex(message)
		if loc == nil {
			continue
		}
		if earliest == -1 || loc[0] < earliest {
			intent, earliest = cue.intent, loc[0]
		}
	}
	return intent, intent != ""
}
