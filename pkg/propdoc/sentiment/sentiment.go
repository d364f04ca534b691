// Package sentiment scores document polarity with a fixed affect
// lexicon: each known word carries an integer valence, the document
// score is the valence sum normalized by token count. Sign is
// polarity, magnitude is strength.
package sentiment

import (
	"strconv"
	"strings"

	"github.com/cognicore/propdoc/pkg/propdoc/ingest"
)

// Lexicon maps lowercased words to valence in [-5, 5].
type Lexicon map[string]float64

// defaultLexicon is a small AFINN-style table tuned to procurement
// prose; a fuller table can be loaded from YAML and passed to
// NewScorer.
var defaultLexicon = Lexicon{
	"award": 3, "awarded": 3, "approve": 2, "approved": 2,
	"best": 3, "benefit": 2, "competitive": 2, "efficient": 2,
	"encourage": 2, "excellent": 3, "improve": 2, "improvement": 2,
	"innovative": 2, "opportunity": 2, "preferred": 2, "qualified": 2,
	"quality": 2, "responsive": 2, "success": 2, "successful": 3,
	"superior": 3, "support": 2, "timely": 2, "welcome": 2,

	"breach": -2, "claim": -1, "damage": -3, "damages": -3,
	"default": -2, "defect": -3, "defective": -3, "delay": -2,
	"delinquent": -3, "deny": -2, "dispute": -2, "failure": -2,
	"fraud": -4, "hazard": -3, "hazardous": -3, "liability": -2,
	"liquidated": -1, "noncompliance": -2, "penalty": -2,
	"reject": -2, "rejected": -2, "terminate": -2, "termination": -2,
	"violation": -3,
}

// Scorer computes the normalized polarity sum.
type Scorer struct {
	lexicon Lexicon
}

// NewScorer builds a scorer; a nil lexicon selects the default table.
func NewScorer(lex Lexicon) *Scorer {
	if lex == nil {
		lex = defaultLexicon
	}
	return &Scorer{lexicon: lex}
}

// Score sums the valence of every known token and divides by total
// token count. Empty input yields 0.
func (s *Scorer) Score(tokens []ingest.Token) float64 {
	if len(tokens) == 0 {
		return 0
	}
	sum := 0.0
	for _, tok := range tokens {
		sum += s.lexicon[tok.Text]
	}
	return sum / float64(len(tokens))
}

// ParseLexicon reads "word<tab>score" lines, AFINN file format.
// Malformed lines are skipped.
func ParseLexicon(raw string) Lexicon {
	lex := make(Lexicon)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, score, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
		if err != nil {
			continue
		}
		lex[strings.ToLower(strings.TrimSpace(word))] = v
	}
	return lex
}
