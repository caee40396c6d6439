package prompt

import (
	"fmt"
	"strings"

	"realestate-chatbot-be/pkg/training"
)

// DemoProductContext grounds answers for anonymous visitors of the public demo
const DemoProductContext = `EstateBot is an AI chatbot for real-estate agencies. It answers visitor questions from the agency's own FAQs, documents and property listings, captures leads (name, email, phone, budget, buying/selling/renting intent) and hands them to the agency's CRM.

Pricing:
- Starter plan: $29/month. One chatbot, up to 500 conversations per month, FAQ training.
- Pro plan: $79/month. Everything in Starter plus document and website training, property recommendations and lead export.
- Enterprise plan: $199/month. Everything in Pro plus multiple sites, custom branding, priority support and API access.

Every plan starts with a 14-day free trial. No credit card is needed to try the demo.`

const (
	maxFileExcerpt = 1200
)

// ContextualBuilder builds the system prompt for a chat turn
type ContextualBuilder struct {
	assistantName string
	matches       training.Result
	demo          bool
}

// NewContextualBuilder creates a builder grounded on training matches
func NewContextualBuilder(assistantName string, matches training.Result) *ContextualBuilder {
	return &ContextualBuilder{assistantName: assistantName, matches: matches}
}

// NewDemoBuilder creates a builder grounded on the fixed demo product context
func NewDemoBuilder(assistantName string) *ContextualBuilder {
	return &ContextualBuilder{assistantName: assistantName, demo: true}
}

func (b *ContextualBuilder) Build() string {
	var prompt strings.Builder

	b.writeTask(&prompt)
	b.writeKnowledgeBase(&prompt)
	b.writeGuidelines(&prompt)

	return prompt.String()
}

func (b *ContextualBuilder) writeTask(prompt *strings.Builder) {
	name := b.assistantName
	if name == "" {
		name = "the assistant"
	}

	prompt.WriteString("<task>\n")
	if b.demo {
		fmt.Fprintf(prompt, "You are %s, the product assistant on the EstateBot website.\n", name)
		prompt.WriteString("Help visitors understand what EstateBot does and which plan suits them.\n")
	} else {
		fmt.Fprintf(prompt, "You are %s, a friendly assistant for a real-estate agency.\n", name)
		prompt.WriteString("Help visitors find properties, answer questions about the agency and collect their contact details when they are interested.\n")
	}
	prompt.WriteString("</task>\n\n")
}

func (b *ContextualBuilder) writeKnowledgeBase(prompt *strings.Builder) {
	prompt.WriteString("<knowledge_base>\n")
	defer prompt.WriteString("</knowledge_base>\n\n")

	if b.demo {
		prompt.WriteString(DemoProductContext)
		prompt.WriteString("\n")
		return
	}

	if b.matches.IsEmpty() {
		prompt.WriteString("No agency information matched this question.\n")
		return
	}

	if len(b.matches.QAMatches) > 0 {
		prompt.WriteString("## Frequently asked questions\n")
		for _, m := range b.matches.QAMatches {
			fmt.Fprintf(prompt, "Q: %s\nA: %s\n\n", m.Question, m.Answer)
		}
	}

	if len(b.matches.FileMatches) > 0 {
		prompt.WriteString("## Documents\n")
		for _, m := range b.matches.FileMatches {
			label := m.SourceLabel
			if label == "" {
				label = "document"
			}
			fmt.Fprintf(prompt, "[%s]\n%s\n\n", label, excerpt(m.Text, maxFileExcerpt))
		}
	}

	if len(b.matches.PropertyMatches) > 0 {
		prompt.WriteString("## Property listings\n")
		for _, m := range b.matches.PropertyMatches {
			prompt.WriteString(describeProperty(m.Property))
			prompt.WriteString("\n")
		}
	}
}

func (b *ContextualBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Answer only from the knowledge base above. If it does not contain the answer, say so and offer to connect the visitor with an agent.\n")
	prompt.WriteString("2. Never invent prices, addresses or availability.\n")
	prompt.WriteString("3. When mentioning a listing, link it with its URL as a markdown link.\n")
	prompt.WriteString("4. Keep answers short and conversational, at most a few sentences.\n")
	prompt.WriteString("5. If the visitor shows interest, politely ask for their name and email or phone so an agent can follow up.\n")
	prompt.WriteString("</guidelines>\n")
}

func describeProperty(p training.Property) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- %s", p.Title)
	if p.Location != "" {
		fmt.Fprintf(&sb, " in %s", p.Location)
	}
	if p.Price > 0 {
		fmt.Fprintf(&sb, ", $%s", formatPrice(p.Price))
	}
	if p.Bedrooms != nil {
		fmt.Fprintf(&sb, ", %d bed", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		fmt.Fprintf(&sb, ", %d bath", *p.Bathrooms)
	}
	if p.HasPool {
		sb.WriteString(", pool")
	}
	if len(p.Features) > 0 {
		fmt.Fprintf(&sb, ", features: %s", strings.Join(p.Features, ", "))
	}
	if p.URL != "" {
		fmt.Fprintf(&sb, " (%s)", p.URL)
	}
	return sb.String()
}

// formatPrice renders whole dollars with thousands separators
func formatPrice(price float64) string {
	digits := fmt.Sprintf("%.0f", price)
	var out strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func excerpt(text string, limit int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
