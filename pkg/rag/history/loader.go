package history

import (
	"strings"

	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/llm"
)

const (
	DefaultMaxTurns   = 10
	DefaultTokenLimit = 2000
)

// Loader turns client-supplied prior turns into model history
type Loader struct {
	maxTurns   int
	tokenLimit int
}

// NewLoader creates a new history loader. Non-positive limits fall back to
// the defaults.
func NewLoader(maxTurns, tokenLimit int) *Loader {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if tokenLimit <= 0 {
		tokenLimit = DefaultTokenLimit
	}
	return &Loader{maxTurns: maxTurns, tokenLimit: tokenLimit}
}

// LoadConversationHistory returns prior turns oldest to newest: the opening
// welcome message is skipped, bot turns become assistant turns, and the oldest
// turns are dropped until both the turn and token limits hold.
func (l *Loader) LoadConversationHistory(turns []chat.Message) []llm.Message {
	if len(turns) > 0 && isBot(turns[0].Role) {
		turns = turns[1:]
	}

	messages := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		parsed, ok := chat.ParseRole(string(t.Role))
		if !ok {
			continue
		}
		role := llm.RoleUser
		if parsed == chat.RoleBot {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: content})
	}

	return TruncateHistory(messages, l.tokenLimit, l.maxTurns)
}

func isBot(role chat.Role) bool {
	parsed, ok := chat.ParseRole(string(role))
	return ok && parsed == chat.RoleBot
}

// TruncateHistory applies the message limit first, then removes the oldest
// messages until the estimated token total fits.
func TruncateHistory(history []llm.Message, tokenLimit, messageLimit int) []llm.Message {
	if len(history) == 0 {
		return history
	}

	if len(history) > messageLimit {
		history = history[len(history)-messageLimit:]
	}

	totalTokens := 0
	for _, msg := range history {
		totalTokens += EstimateTokens(msg.Content)
	}

	for totalTokens > tokenLimit && len(history) > 0 {
		totalTokens -= EstimateTokens(history[0].Content)
		history = history[1:]
	}
	return history
}

// EstimateTokens is a Unicode-aware heuristic: about four ASCII characters or
// one non-ASCII character per token.
func EstimateTokens(text string) int {
	weight := 0
	for _, r := range text {
		if r <= 127 {
			weight++
		} else {
			weight += 4
		}
	}
	return (weight + 3) / 4
}
