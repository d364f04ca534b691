package entities

import "strings"

// Lexical is a seed-vocabulary classifier: a fixed mapping from
// representative words and phrases to labels, trained by listing
// rather than fitting. A statistical model can replace it behind the
// Classifier interface.
type Lexical struct {
	words   map[string]Label
	phrases map[string]Label
}

// defaultSeeds is the built-in vocabulary. Single words classify
// tokens directly; entries with spaces are matched as phrases against
// the full text.
var defaultSeeds = map[Label][]string{
	LabelDate: {
		"deadline", "due date", "submittal", "milestone",
		"schedule", "completion", "calendar",
	},
	LabelMoney: {
		"budget", "cost", "fee", "compensation", "funding",
		"estimate", "allowance", "not-to-exceed",
	},
	LabelOrg: {
		"company", "corporation", "firm", "contractor", "consultant",
		"agency", "department", "district", "authority", "city",
		"county", "university", "inc", "llc",
	},
}

// NewLexical builds the classifier from the default seed vocabulary.
func NewLexical() *Lexical {
	return NewLexicalFromSeeds(defaultSeeds)
}

// NewLexicalFromSeeds builds a classifier from an explicit seed map,
// e.g. one loaded from a YAML file.
func NewLexicalFromSeeds(seeds map[Label][]string) *Lexical {
	l := &Lexical{
		words:   make(map[string]Label),
		phrases: make(map[string]Label),
	}
	for label, terms := range seeds {
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if strings.Contains(term, " ") {
				l.phrases[term] = label
			} else {
				l.words[term] = label
			}
		}
	}
	return l
}

// Classify labels one lowercased token, reporting false for tokens
// outside the seed vocabulary.
func (l *Lexical) Classify(token string) (Label, bool) {
	label, ok := l.words[token]
	return label, ok
}

// Phrases returns the multi-word seed phrases.
func (l *Lexical) Phrases() map[string]Label {
	return l.phrases
}
