// Package domain holds the classification wire types and capability ports
package domain

// UndeterminedLanguage is the ISO 639-3 code returned when no language can be named
const UndeterminedLanguage = "und"

// Guess is one language hypothesis.
// Probability is the detector's confidence for this language alone; Proportion
// is that confidence normalized over the returned candidate set.
type Guess struct {
	Language    string  `json:"language"`
	Probability float64 `json:"probability"`
	IsReliable  bool    `json:"is_reliable"`
	Proportion  float64 `json:"proportion"`
}

// Undetermined is the constant guess for text the service declines to classify
func Undetermined() Guess {
	return Guess{Language: UndeterminedLanguage}
}

// Response is both the cache value and the wire body of POST /classify.
// CLD3 is a single Guess when topN is 1 and a []Guess ordered by descending
// proportion when topN is greater; input_len counts runes of the text that was
// actually classified (post normalize/truncate).
type Response struct {
	InputLen int `json:"input_len"`
	CLD3     any `json:"cld3"`
}

// ClassifyInput is the POST /classify request body
type ClassifyInput struct {
	Text string `json:"text" validate:"required,min=1"`
	TopN int    `json:"topN" validate:"omitempty,min=1,max=10"`
}
