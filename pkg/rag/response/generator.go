package response

import (
	"context"
	"fmt"
	"strings"
	"time"

	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/identity"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/llm"
	"realestate-chatbot-be/pkg/rag/format"
	"realestate-chatbot-be/pkg/rag/history"
	"realestate-chatbot-be/pkg/rag/prompt"
	"realestate-chatbot-be/pkg/training"

	"github.com/google/uuid"
)

const (
	DefaultDirectAnswerThreshold = 0.6
	DefaultPriorityBand          = 0.05
	DefaultMaxRecommendations    = 3
)

// Matcher finds training data relevant to a visitor message
type Matcher interface {
	Match(ctx context.Context, account identity.Account, query string, opts training.Options) training.Result
}

// ConversationLog stores answered turns. Appends for one conversation must
// keep arrival order.
type ConversationLog interface {
	AppendTurn(ctx context.Context, turn Turn) error
}

// Turn is one answered exchange of an authenticated account's conversation
type Turn struct {
	AccountID      uuid.UUID
	ConversationID string
	VisitorID      string
	UserMessage    string
	BotResponse    string
	Source         chat.Source
	LeadInfo       lead.VisitorInfo
	CreatedAt      time.Time
}

type Request struct {
	Message        string
	Account        identity.Account
	VisitorInfo    lead.VisitorInfo
	ConversationID string
	PriorTurns     []chat.Message
}

type Result struct {
	Response                string
	Source                  chat.Source
	ConversationID          string
	LeadInfo                lead.VisitorInfo
	PropertyRecommendations []chat.PropertyRecommendation
}

type Config struct {
	AssistantName         string
	DirectAnswerThreshold float64
	PriorityBand          float64
	MaxRecommendations    int
	Temperature           float64
	MaxTokens             int
}

// Generator decides between a stored answer and a grounded model reply
type Generator struct {
	extractor lead.Extractor
	matcher   Matcher
	provider  llm.LLMProvider
	history   *history.Loader
	links     *format.LinkRewriter
	convLog   ConversationLog
	logger    logger.ILogger
	cfg       Config
	newID     func() string
}

// NewGenerator creates a new response generator
func NewGenerator(
	extractor lead.Extractor,
	matcher Matcher,
	provider llm.LLMProvider,
	historyLoader *history.Loader,
	links *format.LinkRewriter,
	convLog ConversationLog,
	log logger.ILogger,
	cfg Config,
) *Generator {
	if cfg.DirectAnswerThreshold <= 0 {
		cfg.DirectAnswerThreshold = DefaultDirectAnswerThreshold
	}
	if cfg.PriorityBand <= 0 {
		cfg.PriorityBand = DefaultPriorityBand
	}
	if cfg.MaxRecommendations <= 0 {
		cfg.MaxRecommendations = DefaultMaxRecommendations
	}
	return &Generator{
		extractor: extractor,
		matcher:   matcher,
		provider:  provider,
		history:   historyLoader,
		links:     links,
		convLog:   convLog,
		logger:    log,
		cfg:       cfg,
		newID:     uuid.NewString,
	}
}

// Respond resolves one visitor message. It never fails: every error ends in
// the fixed apology with source "error".
func (g *Generator) Respond(ctx context.Context, req Request) (res Result) {
	res.ConversationID = strings.TrimSpace(req.ConversationID)
	if res.ConversationID == "" {
		res.ConversationID = g.newID()
	}
	res.LeadInfo = g.extractor.Extract(req.Message)

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("RESPONDER", "Response generation panicked", map[string]interface{}{
				"conversation_id": res.ConversationID,
				"error":           fmt.Sprint(r),
			})
			res.Response = ApologyMessage
			res.Source = chat.SourceError
			res.PropertyRecommendations = nil
		}
	}()

	var matches training.Result
	_, authenticated := req.Account.ID()
	if authenticated {
		matches = g.matcher.Match(ctx, req.Account, req.Message, training.AllSources())
		res.PropertyRecommendations = g.recommendations(matches.PropertyMatches)

		if qa, ok := g.directAnswer(matches.QAMatches); ok {
			res.Response = qa.Answer
			res.Source = chat.SourceTraining
			g.logger.Info("RESPONDER", "Answered from training data", map[string]interface{}{
				"conversation_id": res.ConversationID,
				"similarity":      qa.Similarity,
				"priority":        qa.Priority,
			})
			g.persist(ctx, req, res)
			return res
		}
	}

	var builder *prompt.ContextualBuilder
	if authenticated {
		builder = prompt.NewContextualBuilder(g.cfg.AssistantName, matches)
	} else {
		builder = prompt.NewDemoBuilder(g.cfg.AssistantName)
	}

	messages := []llm.Message{{Role: llm.RoleSystem, Content: builder.Build()}}
	messages = append(messages, g.history.LoadConversationHistory(req.PriorTurns)...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	var opts []llm.Option
	if g.cfg.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(g.cfg.Temperature))
	}
	if g.cfg.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(g.cfg.MaxTokens))
	}

	reply, err := g.provider.Chat(ctx, messages, opts...)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = llm.ErrEmptyCompletion
	}
	if err != nil {
		g.logger.Error("RESPONDER", "LLM generation failed", map[string]interface{}{
			"conversation_id": res.ConversationID,
			"account":         req.Account.String(),
			"error":           err.Error(),
		})
		res.Response = ApologyMessage
		res.Source = chat.SourceError
		res.PropertyRecommendations = nil
		return res
	}

	res.Response = g.links.Rewrite(strings.TrimSpace(reply))
	res.Source = chat.SourceAI
	g.persist(ctx, req, res)
	return res
}

// directAnswer picks the qualifying Q&A match. Matches within the priority
// band of the top similarity are re-ranked by priority.
func (g *Generator) directAnswer(matches []training.QAMatch) (training.QAMatch, bool) {
	qualifies := func(m training.QAMatch) bool {
		return !m.LowConfidence && m.Similarity >= g.cfg.DirectAnswerThreshold
	}

	top, found := 0.0, false
	for _, m := range matches {
		if qualifies(m) && (!found || m.Similarity > top) {
			top, found = m.Similarity, true
		}
	}
	if !found {
		return training.QAMatch{}, false
	}

	var best training.QAMatch
	picked := false
	for _, m := range matches {
		if !qualifies(m) || m.Similarity < top-g.cfg.PriorityBand {
			continue
		}
		if !picked || m.Priority > best.Priority ||
			(m.Priority == best.Priority && m.Similarity > best.Similarity) {
			best, picked = m, true
		}
	}
	return best, true
}

func (g *Generator) recommendations(matches []training.PropertyMatch) []chat.PropertyRecommendation {
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > g.cfg.MaxRecommendations {
		matches = matches[:g.cfg.MaxRecommendations]
	}

	recs := make([]chat.PropertyRecommendation, 0, len(matches))
	for _, m := range matches {
		p := m.Property
		recs = append(recs, chat.PropertyRecommendation{
			ID:        p.ID.String(),
			Title:     p.Title,
			Price:     p.Price,
			Location:  p.Location,
			Bedrooms:  p.Bedrooms,
			Bathrooms: p.Bathrooms,
			HasPool:   p.HasPool,
			Features:  p.Features,
			Highlight: highlight(p),
			URL:       g.links.Relative(p.URL),
		})
	}
	return recs
}

func highlight(p training.Property) string {
	if p.Description != "" {
		first, _, _ := strings.Cut(p.Description, ".")
		return strings.TrimSpace(first)
	}
	if len(p.Features) > 0 {
		return strings.Join(p.Features, ", ")
	}
	return ""
}

// persist appends a successful turn for authenticated accounts. A failed write
// is logged and the answer is still returned.
func (g *Generator) persist(ctx context.Context, req Request, res Result) {
	accountID, ok := req.Account.ID()
	if !ok || g.convLog == nil {
		return
	}

	info := lead.Merge(req.VisitorInfo, res.LeadInfo)
	turn := Turn{
		AccountID:      accountID,
		ConversationID: res.ConversationID,
		VisitorID:      info.VisitorID,
		UserMessage:    req.Message,
		BotResponse:    res.Response,
		Source:         res.Source,
		LeadInfo:       info,
		CreatedAt:      time.Now().UTC(),
	}
	if err := g.convLog.AppendTurn(ctx, turn); err != nil {
		g.logger.Error("RESPONDER", "Failed to append conversation turn", map[string]interface{}{
			"conversation_id": res.ConversationID,
			"account_id":      accountID.String(),
			"error":           err.Error(),
		})
	}
}
