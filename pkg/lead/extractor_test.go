package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultExtractor(t *testing.T) {
	ex := NewDefaultExtractor()

	tests := []struct {
		name    string
		message string
		want    VisitorInfo
	}{
		{
			name:    "name and budget",
			message: "Hi, I'm John Smith, my budget is $500,000",
			want:    VisitorInfo{Name: "John Smith", Budget: "$500,000"},
		},
		{
			name:    "email only",
			message: "you can reach me at jane.doe@example.com",
			want:    VisitorInfo{Email: "jane.doe@example.com"},
		},
		{
			name:    "dashed phone",
			message: "call me on 555-123-4567 after 5",
			want:    VisitorInfo{Phone: "555-123-4567"},
		},
		{
			name:    "phone with country code and parens",
			message: "my number is +1 (555) 987 6543",
			want:    VisitorInfo{Phone: "+1 (555) 987 6543"},
		},
		{
			name:    "my name is",
			message: "My name is Maria Lopez and I want to buy a house",
			want:    VisitorInfo{Name: "Maria Lopez", PropertyInterest: IntentBuying},
		},
		{
			name:    "curly apostrophe",
			message: "I’m Alex",
			want:    VisitorInfo{Name: "Alex"},
		},
		{
			name:    "not a name",
			message: "I'm Looking for a home to rent",
			want:    VisitorInfo{PropertyInterest: IntentRenting},
		},
		{
			name:    "lowercase name is not captured",
			message: "i'm john",
			want:    VisitorInfo{},
		},
		{
			name:    "budget in millions",
			message: "We can afford around $1.2 million",
			want:    VisitorInfo{Budget: "$1.2 million"},
		},
		{
			name:    "budget range",
			message: "our price range is $400k to $450k.",
			want:    VisitorInfo{Budget: "$400k to $450k"},
		},
		{
			name:    "budget without currency sign",
			message: "my budget is 450000",
			want:    VisitorInfo{Budget: "450000"},
		},
		{
			name:    "budget with suffix only",
			message: "we can afford 500k",
			want:    VisitorInfo{Budget: "500k"},
		},
		{
			name:    "bedroom count is not a budget",
			message: "What is the price range for 3 bedroom homes?",
			want:    VisitorInfo{},
		},
		{
			name:    "home count is not a budget",
			message: "Can I afford 2 homes?",
			want:    VisitorInfo{},
		},
		{
			name:    "small bare number is not a budget",
			message: "my budget is about 3 or 4 hundred",
			want:    VisitorInfo{},
		},
		{
			name:    "amount without budget cue",
			message: "the house down the street sold for $300,000",
			want:    VisitorInfo{},
		},
		{
			name:    "selling",
			message: "I need to sell my property before summer",
			want:    VisitorInfo{PropertyInterest: IntentSelling},
		},
		{
			name:    "earliest intent cue wins",
			message: "We want to buy homes and rent them out",
			want:    VisitorInfo{PropertyInterest: IntentBuying},
		},
		{
			name:    "verb without property noun",
			message: "where can I buy groceries?",
			want:    VisitorInfo{},
		},
		{
			name:    "empty",
			message: "   ",
			want:    VisitorInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.Extract(tt.message))
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	ex := NewDefaultExtractor()
	msg := "I'm Sam Lee, email sam@lee.io, phone 555.222.3333, budget $350,000 to buy a home"

	first := ex.Extract(msg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ex.Extract(msg))
	}
	assert.Equal(t, "Sam Lee", first.Name)
	assert.Equal(t, "sam@lee.io", first.Email)
	assert.Equal(t, "555.222.3333", first.Phone)
	assert.Equal(t, "$350,000", first.Budget)
	assert.Equal(t, IntentBuying, first.PropertyInterest)
}

type fixedStrategy struct {
	field Field
	value string
}

func (s fixedStrategy) Field() Field { return s.field }

func (s fixedStrategy) Find(string) (string, bool) { return s.value, s.value != "" }

func TestPatternExtractorFirstStrategyWins(t *testing.T) {
	ex := NewPatternExtractor(
		fixedStrategy{field: FieldName, value: "First"},
		fixedStrategy{field: FieldName, value: "Second"},
	)
	assert.Equal(t, "First", ex.Extract("anything").Name)
}

func TestMerge(t *testing.T) {
	existing := VisitorInfo{Name: "John", Email: "john@example.com", VisitorID: "v1"}

	t.Run("empty update keeps everything", func(t *testing.T) {
		assert.Equal(t, existing, Merge(existing, VisitorInfo{}))
	})

	t.Run("non-empty fields overwrite", func(t *testing.T) {
		got := Merge(existing, VisitorInfo{Email: "new@example.com", Budget: "$1m"})
		assert.Equal(t, VisitorInfo{
			Name:      "John",
			Email:     "new@example.com",
			Budget:    "$1m",
			VisitorID: "v1",
		}, got)
	})

	t.Run("merge is monotonic", func(t *testing.T) {
		acc := VisitorInfo{}
		for _, u := range []VisitorInfo{{Name: "A"}, {Phone: "555-000-1111"}, {}, {Name: "B"}} {
			acc = Merge(acc, u)
		}
		assert.Equal(t, "B", acc.Name)
		assert.Equal(t, "555-000-1111", acc.Phone)
	})
}

func TestIsEmptyIgnoresVisitorID(t *testing.T) {
	assert.True(t, VisitorInfo{VisitorID: "v1"}.IsEmpty())
	assert.False(t, VisitorInfo{Budget: "$1"}.IsEmpty())
}
