// Package entities labels spans of solicitation text with coarse
// semantic categories. The classifier behind the Extractor is
// pluggable; the seed-lexicon implementation in lexical.go is the
// default.
package entities

import (
	"regexp"
	"sort"

	"github.com/cognicore/propdoc/pkg/propdoc/ingest"
)

// Label is a coarse entity category.
type Label string

const (
	LabelDate  Label = "DATE"
	LabelMoney Label = "MONEY"
	LabelOrg   Label = "ORG"
)

// Entity is a labeled span. Start/End are byte offsets into the
// normalized text and satisfy 0 <= Start < End <= len(text).
type Entity struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Classifier labels a single lowercased token. The second return is
// false when the token carries no confident label; such tokens are
// dropped, not emitted.
type Classifier interface {
	Classify(token string) (Label, bool)
}

// PhraseClassifier is an optional extension for classifiers whose seed
// vocabulary includes multi-word phrases ("due date", "statement of
// qualifications"). Phrases are lowercased.
type PhraseClassifier interface {
	Phrases() map[string]Label
}

var (
	dateLitRe  = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})\b`)
	moneyLitRe = regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?`)
)

// Extractor combines a token classifier with literal date/money span
// detection over the normalized text.
type Extractor struct {
	classifier Classifier
	phrases    []phrasePattern
}

// phrasePattern matches one multi-word seed phrase case-insensitively
// against the original text. Lowercasing a copy of the text first would
// shift byte offsets for runes whose case pair differs in width (İ, Ⱥ).
type phrasePattern struct {
	re    *regexp.Regexp
	label Label
}

// NewExtractor builds an extractor around the given classifier,
// compiling a matcher per seed phrase when the classifier exposes any.
func NewExtractor(c Classifier) *Extractor {
	e := &Extractor{classifier: c}
	if pc, ok := c.(PhraseClassifier); ok {
		for phrase, label := range pc.Phrases() {
			e.phrases = append(e.phrases, phrasePattern{
				re:    regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase)),
				label: label,
			})
		}
	}
	return e
}

// Extract returns all entities found in one document, in document
// order. Single-token matches take their span from the token itself;
// multi-word seed phrases fall back to the first occurrence of the
// phrase in the text, which is imprecise for repeated phrases.
func (e *Extractor) Extract(normalizedText string, tokens []ingest.Token) []Entity {
	var ents []Entity

	for _, span := range dateLitRe.FindAllStringIndex(normalizedText, -1) {
		ents = append(ents, Entity{
			Text:  normalizedText[span[0]:span[1]],
			Label: LabelDate,
			Start: span[0],
			End:   span[1],
		})
	}
	for _, span := range moneyLitRe.FindAllStringIndex(normalizedText, -1) {
		ents = append(ents, Entity{
			Text:  normalizedText[span[0]:span[1]],
			Label: LabelMoney,
			Start: span[0],
			End:   span[1],
		})
	}

	for _, tok := range tokens {
		label, ok := e.classifier.Classify(tok.Text)
		if !ok {
			continue
		}
		ents = append(ents, Entity{
			Text:  normalizedText[tok.Start:tok.End],
			Label: label,
			Start: tok.Start,
			End:   tok.End,
		})
	}

	for _, p := range e.phrases {
		span := p.re.FindStringIndex(normalizedText)
		if span == nil {
			continue
		}
		ents = append(ents, Entity{
			Text:  normalizedText[span[0]:span[1]],
			Label: p.label,
			Start: span[0],
			End:   span[1],
		})
	}

	return dedupe(ents)
}

// dedupe sorts entities into document order and removes exact
// duplicate spans, keeping output deterministic.
func dedupe(ents []Entity) []Entity {
	sort.Slice(ents, func(i, j int) bool {
		if ents[i].Start != ents[j].Start {
			return ents[i].Start < ents[j].Start
		}
		if ents[i].End != ents[j].End {
			return ents[i].End < ents[j].End
		}
		return ents[i].Label < ents[j].Label
	})

	out := make([]Entity, 0, len(ents))
	for _, e := range ents {
		if n := len(out); n > 0 && e == out[n-1] {
			continue
		}
		out = append(out, e)
	}
	return out
}
