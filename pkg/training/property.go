package training

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bedroomsRE = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*-?\s*(?:bed|beds|bedroom|bedrooms|br)\b`)
	maxPriceRE = regexp.MustCompile(`(?i)(?:under|below|less than|up to|max(?:imum)?|no more than)\s*\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(million|thousand|k|m)?\b`)
	poolRE     = regexp.MustCompile(`(?i)\bpool\b`)
)

// PropertyQuery holds the structural filters recognized in a visitor query
type PropertyQuery struct {
	MinBedrooms int
	MaxPrice    float64
	WantsPool   bool
	words       map[string]struct{}
}

// ParsePropertyQuery extracts bedroom, price and pool filters plus the query's
// keywords used for location and feature containment.
func ParsePropertyQuery(query string) PropertyQuery {
	pq := PropertyQuery{words: SignificantWords(query)}

	if m := bedroomsRE.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			pq.MinBedrooms = n
		}
	}
	if m := maxPriceRE.FindStringSubmatch(query); m != nil {
		pq.MaxPrice = parseAmount(m[1], m[2])
	}
	pq.WantsPool = poolRE.MatchString(query)
	return pq
}

func parseAmount(number, unit string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(unit) {
	case "k", "thousand":
		v *= 1_000
	case "m", "million":
		v *= 1_000_000
	}
	return v
}

// Score returns the share of applicable signals the property satisfies. A
// property violating an explicit numeric or pool filter scores zero.
func (pq PropertyQuery) Score(p Property) float64 {
	signals, hits := 2, 0

	if pq.MinBedrooms > 0 {
		if p.Bedrooms == nil || *p.Bedrooms < pq.MinBedrooms {
			return 0
		}
		signals++
		hits++
	}
	if pq.MaxPrice > 0 {
		if p.Price <= 0 || p.Price > pq.MaxPrice {
			return 0
		}
		signals++
		hits++
	}
	if pq.WantsPool {
		if !p.HasPool {
			return 0
		}
		signals++
		hits++
	}

	if pq.mentions(p.Location, false) {
		hits++
	}
	if pq.matchesFeature(p) {
		hits++
	}
	return float64(hits) / float64(signals)
}

func (pq PropertyQuery) matchesFeature(p Property) bool {
	for _, f := range p.Features {
		if pq.mentions(f, true) {
			return true
		}
	}
	return pq.mentions(p.Title, false)
}

// mentions reports whether the query contains the text's words. With all set
// every significant word must be present, otherwise any one is enough.
func (pq PropertyQuery) mentions(text string, all bool) bool {
	words := SignificantWords(text)
	if len(words) == 0 {
		return false
	}
	for w := range words {
		_, ok := pq.words[w]
		if all && !ok {
			return false
		}
		if !all && ok {
			return true
		}
	}
	return all
}
