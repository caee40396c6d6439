package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Role identifies who authored a message in a visitor conversation
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ParseRole normalizes a wire role. The legacy "assistant" tag behaves exactly like
// "bot", so it is folded into RoleBot.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user":
		return RoleUser, true
	case "bot", "assistant", "model":
		return RoleBot, true
	default:
		return "", false
	}
}

var ErrUnknownRole = errors.New("unknown message role")

// UnmarshalJSON accepts every wire spelling ParseRole knows and rejects the rest
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	role, ok := ParseRole(raw)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
	*r = role
	return nil
}

// Source tags where a bot response came from
type Source string

const (
	SourceTraining Source = "training"
	SourceAI       Source = "ai"
	SourceError    Source = "error"
)

// Message is a single turn in the visible conversation
type Message struct {
	Role       Role                     `json:"role"`
	Content    string                   `json:"content"`
	Properties []PropertyRecommendation `json:"properties,omitempty"`
}

// PropertyRecommendation is a listing attached to a bot turn
type PropertyRecommendation struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Location  string   `json:"location"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	HasPool   bool     `json:"hasPool"`
	Features  []string `json:"features,omitempty"`
	Highlight string   `json:"highlight,omitempty"`
	URL       string   `json:"url"`
}
