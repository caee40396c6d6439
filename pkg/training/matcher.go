package training

import (
	"context"
	"sort"

	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/pkg/identity"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMatchThreshold = 0.3
	DefaultMaxQA          = 5
	DefaultMaxFiles       = 3
	DefaultMaxProperties  = 5
	DefaultFallbackItems  = 3
)

// Source reads an account's training data. Implementations must tolerate
// concurrent calls.
type Source interface {
	QAPairs(ctx context.Context, accountID uuid.UUID) ([]QAPair, error)
	FileContents(ctx context.Context, accountID uuid.UUID) ([]FileContent, error)
	Properties(ctx context.Context, accountID uuid.UUID) ([]Property, error)
}

type Config struct {
	MatchThreshold float64
	MaxQA          int
	MaxFiles       int
	MaxProperties  int
	FallbackItems  int
}

func DefaultConfig() Config {
	return Config{
		MatchThreshold: DefaultMatchThreshold,
		MaxQA:          DefaultMaxQA,
		MaxFiles:       DefaultMaxFiles,
		MaxProperties:  DefaultMaxProperties,
		FallbackItems:  DefaultFallbackItems,
	}
}

// Matcher searches an account's Q&A pairs, document text and property records
type Matcher struct {
	source Source
	cfg    Config
	logger logger.ILogger
}

func NewMatcher(source Source, cfg Config, log logger.ILogger) *Matcher {
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = DefaultMatchThreshold
	}
	if cfg.MaxQA <= 0 {
		cfg.MaxQA = DefaultMaxQA
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = DefaultMaxFiles
	}
	if cfg.MaxProperties <= 0 {
		cfg.MaxProperties = DefaultMaxProperties
	}
	if cfg.FallbackItems <= 0 {
		cfg.FallbackItems = DefaultFallbackItems
	}
	return &Matcher{source: source, cfg: cfg, logger: log}
}

// Match runs the requested sub-searches concurrently. Anonymous accounts get an
// empty result without any lookup. A failing sub-search is logged and leaves
// its section empty.
func (m *Matcher) Match(ctx context.Context, account identity.Account, query string, opts Options) Result {
	result := emptyResult()

	accountID, ok := account.ID()
	if !ok {
		return result
	}

	identityQuery := IsIdentityQuery(query)

	g, gctx := errgroup.WithContext(ctx)
	if opts.IncludeQA {
		g.Go(func() error {
			pairs, err := m.source.QAPairs(gctx, accountID)
			if err != nil {
				m.logFailure("qa", accountID, err)
				return nil
			}
			result.QAMatches = m.rankQA(query, identityQuery, pairs)
			return nil
		})
	}
	if opts.IncludeFiles {
		g.Go(func() error {
			files, err := m.source.FileContents(gctx, accountID)
			if err != nil {
				m.logFailure("files", accountID, err)
				return nil
			}
			result.FileMatches = m.rankFiles(query, identityQuery, files)
			return nil
		})
	}
	if opts.IncludeProperties {
		g.Go(func() error {
			properties, err := m.source.Properties(gctx, accountID)
			if err != nil {
				m.logFailure("properties", accountID, err)
				return nil
			}
			result.PropertyMatches = m.rankProperties(query, properties)
			return nil
		})
	}
	_ = g.Wait()

	m.logger.Debug("MATCHER", "Training match completed", map[string]interface{}{
		"account_id": accountID.String(),
		"qa":         len(result.QAMatches),
		"files":      len(result.FileMatches),
		"properties": len(result.PropertyMatches),
		"identity":   identityQuery,
	})
	return result
}

func (m *Matcher) logFailure(section string, accountID uuid.UUID, err error) {
	m.logger.Error("MATCHER", "Training lookup failed", map[string]interface{}{
		"section":    section,
		"account_id": accountID.String(),
		"error":      err.Error(),
	})
}

func (m *Matcher) rankQA(query string, identityQuery bool, pairs []QAPair) []QAMatch {
	scored := make([]QAMatch, 0, len(pairs))
	for _, p := range pairs {
		sim := Similarity(query, p.Question)
		if a := answerWeight * Similarity(query, p.Answer); a > sim {
			sim = a
		}
		if identityQuery && IsIdentityCandidate(p.Category, p.Question+" "+p.Answer) {
			sim = Boost(sim)
		}
		scored = append(scored, QAMatch{
			ID:         p.ID,
			Question:   p.Question,
			Answer:     p.Answer,
			Category:   p.Category,
			Similarity: sim,
			Priority:   p.Priority,
		})
	}

	matches := make([]QAMatch, 0, len(scored))
	for _, s := range scored {
		if s.Similarity >= m.cfg.MatchThreshold {
			matches = append(matches, s)
		}
	}
	if len(matches) > 0 {
		sort.SliceStable(matches, func(i, j int) bool {
			return rankedBefore(matches[i].Similarity, matches[i].Priority, matches[j].Similarity, matches[j].Priority)
		})
		return truncate(matches, m.cfg.MaxQA)
	}

	if !identityQuery {
		return []QAMatch{}
	}

	// Identity question with nothing above the threshold: highest priority wins.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Priority != scored[j].Priority {
			return scored[i].Priority > scored[j].Priority
		}
		return scored[i].Similarity > scored[j].Similarity
	})
	fallback := truncate(scored, m.cfg.FallbackItems)
	for i := range fallback {
		fallback[i].LowConfidence = true
	}
	return fallback
}

func (m *Matcher) rankFiles(query string, identityQuery bool, files []FileContent) []FileMatch {
	scored := make([]FileMatch, 0, len(files))
	for _, f := range files {
		sim := Similarity(query, f.Text)
		if identityQuery && IsIdentityCandidate(f.Category, f.SourceLabel) {
			sim = Boost(sim)
		}
		scored = append(scored, FileMatch{
			ID:          f.ID,
			Text:        f.Text,
			SourceLabel: f.SourceLabel,
			Category:    f.Category,
			Similarity:  sim,
			Priority:    f.Priority,
		})
	}

	matches := make([]FileMatch, 0, len(scored))
	for _, s := range scored {
		if s.Similarity >= m.cfg.MatchThreshold {
			matches = append(matches, s)
		}
	}
	if len(matches) > 0 {
		sort.SliceStable(matches, func(i, j int) bool {
			return rankedBefore(matches[i].Similarity, matches[i].Priority, matches[j].Similarity, matches[j].Priority)
		})
		return truncate(matches, m.cfg.MaxFiles)
	}

	if !identityQuery {
		return []FileMatch{}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Priority != scored[j].Priority {
			return scored[i].Priority > scored[j].Priority
		}
		return scored[i].Similarity > scored[j].Similarity
	})
	fallback := truncate(scored, m.cfg.FallbackItems)
	for i := range fallback {
		fallback[i].LowConfidence = true
	}
	return fallback
}

func (m *Matcher) rankProperties(query string, properties []Property) []PropertyMatch {
	pq := ParsePropertyQuery(query)

	matches := make([]PropertyMatch, 0)
	for _, p := range properties {
		score := pq.Score(p)
		if score < m.cfg.MatchThreshold {
			continue
		}
		matches = append(matches, PropertyMatch{Property: p, Similarity: score, Priority: p.Priority})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return rankedBefore(matches[i].Similarity, matches[i].Priority, matches[j].Similarity, matches[j].Priority)
	})
	return truncate(matches, m.cfg.MaxProperties)
}

// rankedBefore orders by similarity, then priority, both descending
func rankedBefore(simA float64, prioA int, simB float64, prioB int) bool {
	if simA != simB {
		return simA > simB
	}
	return prioA > prioB
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
