package lead

import "strings"

// Extractor pulls lead signal out of a single visitor message.
// Implementations must be pure: same input, same output, no I/O.
type Extractor interface {
	Extract(message string) VisitorInfo
}

// Strategy recognizes one field of lead signal
type Strategy interface {
	Field() Field
	Find(message string) (string, bool)
}

// PatternExtractor runs a list of strategies over a message. The first
// strategy that finds a value for a field wins.
type PatternExtractor struct {
	strategies []Strategy
}

// Ensure PatternExtractor implements Extractor
var _ Extractor = (*PatternExtractor)(nil)

// NewPatternExtractor creates an extractor from explicit strategies
func NewPatternExtractor(strategies ...Strategy) *PatternExtractor {
	return &PatternExtractor{strategies: strategies}
}

// NewDefaultExtractor creates the extractor with the built-in heuristics
func NewDefaultExtractor() *PatternExtractor {
	return NewPatternExtractor(
		EmailStrategy{},
		PhoneStrategy{},
		NameStrategy{},
		BudgetStrategy{},
		IntentStrategy{},
	)
}

func (e *PatternExtractor) Extract(message string) VisitorInfo {
	var info VisitorInfo
	if strings.TrimSpace(message) == "" {
		return info
	}

	normalized := normalizeText(message)
	for _, s := range e.strategies {
		if info.Get(s.Field()) != "" {
			continue
		}
		if value, ok := s.Find(normalized); ok {
			info.set(s.Field(), value)
		}
	}
	return info
}

var textNormalizer = strings.NewReplacer(
	"’", "'", // right single quote
	"‘", "'", // left single quote
	"′", "'", // prime
)

func normalizeText(text string) string {
	return textNormalizer.Replace(text)
}
