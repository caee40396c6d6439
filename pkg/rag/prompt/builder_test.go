package prompt

import (
	"strings"
	"testing"

	"realestate-chatbot-be/pkg/training"

	"github.com/stretchr/testify/assert"
)

func TestDemoBuilder(t *testing.T) {
	p := NewDemoBuilder("Ava").Build()

	assert.Contains(t, p, "You are Ava")
	assert.Contains(t, p, "$79/month")
	assert.Contains(t, p, "<knowledge_base>")
	assert.Contains(t, p, "</guidelines>")
}

func TestContextualBuilder(t *testing.T) {
	beds := 3
	matches := training.Result{
		QAMatches: []training.QAMatch{{Question: "office hours", Answer: "9-5 CET"}},
		FileMatches: []training.FileMatch{
			{Text: strings.Repeat("x", maxFileExcerpt+10), SourceLabel: "brochure.pdf"},
		},
		PropertyMatches: []training.PropertyMatch{{Property: training.Property{
			Title: "Lake house", Location: "Austin", Price: 1250000, Bedrooms: &beds, HasPool: true,
			URL: "/properties/lake-house",
		}}},
	}

	p := NewContextualBuilder("", matches).Build()

	assert.Contains(t, p, "You are the assistant")
	assert.Contains(t, p, "Q: office hours\nA: 9-5 CET")
	assert.Contains(t, p, "[brochure.pdf]")
	assert.Contains(t, p, strings.Repeat("x", maxFileExcerpt)+"...")
	assert.Contains(t, p, "- Lake house in Austin, $1,250,000, 3 bed, pool (/properties/lake-house)")
	assert.NotContains(t, p, "EstateBot")
}

func TestContextualBuilderNoMatches(t *testing.T) {
	p := NewContextualBuilder("Ava", training.Result{}).Build()
	assert.Contains(t, p, "No agency information matched")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "950", formatPrice(950))
	assert.Equal(t, "1,000", formatPrice(1000))
	assert.Equal(t, "450,000", formatPrice(450000))
	assert.Equal(t, "12,500,000", formatPrice(12500000))
}
