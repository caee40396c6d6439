package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite(t *testing.T) {
	r := NewLinkRewriter("https://www.acme-realty.com/", "/properties")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "markdown link to own host becomes relative",
			in:   "See [Lake house](https://acme-realty.com/properties/lake-house).",
			want: "See [Lake house](/properties/lake-house).",
		},
		{
			name: "bare own-host url becomes a property link",
			in:   "Details: https://www.acme-realty.com/properties/lake-house",
			want: "Details: [View property](/properties/lake-house)",
		},
		{
			name: "bare property path",
			in:   "Check /properties/downtown-condo for photos",
			want: "Check [View property](/properties/downtown-condo) for photos",
		},
		{
			name: "own host root",
			in:   "Visit https://acme-realty.com today",
			want: "Visit / today",
		},
		{
			name: "external links untouched",
			in:   "Rates at [bank](https://bank.example.com/rates) and https://zillow.com/properties/x",
			want: "Rates at [bank](https://bank.example.com/rates) and https://zillow.com/properties/x",
		},
		{
			name: "lookalike host untouched",
			in:   "see https://acme-realty.com.evil.io/x",
			want: "see https://acme-realty.com.evil.io/x",
		},
		{
			name: "host prefix of a longer name untouched",
			in:   "try https://acme-realty.company/listings",
			want: "try https://acme-realty.company/listings",
		},
		{
			name: "own host before punctuation",
			in:   "Browse https://acme-realty.com, then call us.",
			want: "Browse /, then call us.",
		},
		{
			name: "own host with query",
			in:   "Search https://acme-realty.com?city=austin now",
			want: "Search /?city=austin now",
		},
		{
			name: "no links",
			in:   "We are open 9-5.",
			want: "We are open 9-5.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Rewrite(tt.in))
		})
	}
}

func TestRewriteWithoutHost(t *testing.T) {
	r := NewLinkRewriter("", "")
	assert.Equal(t, "https://acme-realty.com/about", r.Rewrite("https://acme-realty.com/about"))
	assert.Equal(t, "[View property](/properties/a1)", r.Rewrite("/properties/a1"))
}

func TestRelative(t *testing.T) {
	r := NewLinkRewriter("acme-realty.com", "")
	assert.Equal(t, "/properties/a1", r.Relative("https://acme-realty.com/properties/a1"))
	assert.Equal(t, "/properties/a1", r.Relative("/properties/a1"))
	assert.Equal(t, "https://other.com/x", r.Relative("https://other.com/x"))
	assert.Equal(t, "https://acme-realty.com.evil.io/x", r.Relative("https://acme-realty.com.evil.io/x"))
	assert.Equal(t, "/properties/a1", r.Relative("https://acme-realty.com:443/properties/a1"))
	assert.Equal(t, "[home](/)", r.Relative("[home](https://acme-realty.com)"))
}
