package training

import "github.com/google/uuid"

// QAPair is a curated question/answer entry
type QAPair struct {
	ID       uuid.UUID
	Question string
	Answer   string
	Category string
	Priority int
}

// FileContent is text extracted from an uploaded document or a crawled page
type FileContent struct {
	ID          uuid.UUID
	Text        string
	SourceLabel string
	Category    string
	Priority    int
}

// Property is a structured listing record
type Property struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Bedrooms    *int      `json:"bedrooms,omitempty"`
	Bathrooms   *int      `json:"bathrooms,omitempty"`
	HasPool     bool      `json:"hasPool"`
	Features    []string  `json:"features,omitempty"`
	URL         string    `json:"url,omitempty"`
	Priority    int       `json:"priority"`
}

// Options selects which sub-searches run
type Options struct {
	IncludeQA         bool
	IncludeFiles      bool
	IncludeProperties bool
}

// AllSources enables every sub-search
func AllSources() Options {
	return Options{IncludeQA: true, IncludeFiles: true, IncludeProperties: true}
}

type QAMatch struct {
	ID            uuid.UUID `json:"id"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Category      string    `json:"category,omitempty"`
	Similarity    float64   `json:"similarity"`
	Priority      int       `json:"priority"`
	LowConfidence bool      `json:"low_confidence,omitempty"`
}

type FileMatch struct {
	ID            uuid.UUID `json:"id"`
	Text          string    `json:"text"`
	SourceLabel   string    `json:"source,omitempty"`
	Category      string    `json:"category,omitempty"`
	Similarity    float64   `json:"similarity"`
	Priority      int       `json:"priority"`
	LowConfidence bool      `json:"low_confidence,omitempty"`
}

type PropertyMatch struct {
	Property   Property `json:"property"`
	Similarity float64  `json:"similarity"`
	Priority   int      `json:"priority"`
}

// Result holds the ranked matches of every sub-search. A section that was not
// requested, or whose lookup failed, is empty.
type Result struct {
	QAMatches       []QAMatch       `json:"qa_matches"`
	FileMatches     []FileMatch     `json:"file_content"`
	PropertyMatches []PropertyMatch `json:"property_listings"`
}

// IsEmpty reports whether no section produced a match
func (r Result) IsEmpty() bool {
	return len(r.QAMatches) == 0 && len(r.FileMatches) == 0 && len(r.PropertyMatches) == 0
}

func emptyResult() Result {
	return Result{
		QAMatches:       []QAMatch{},
		FileMatches:     []FileMatch{},
		PropertyMatches: []PropertyMatch{},
	}
}
