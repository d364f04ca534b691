// Package rank scores term importance within a single document using
// TF-IDF. A Ranker holds no per-call state: every Rank call computes
// its counts from scratch, so results never depend on what was ranked
// before and concurrent calls cannot bleed into each other.
package rank

import (
	"math"
	"sort"
	"unicode"

	"github.com/cognicore/propdoc/pkg/propdoc/ingest"
	"github.com/cognicore/propdoc/pkg/propdoc/stoplist"
)

// DefaultTopN is how many keywords Rank returns.
const DefaultTopN = 10

// Keyword is a ranked term.
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Ranker computes TF-IDF over one document at a time. The optional
// corpus supplies reference document frequencies; without one the
// document is its own corpus and scoring reduces to term frequency.
type Ranker struct {
	stops  *stoplist.Manager
	corpus *Corpus
	topN   int
}

// NewRanker builds a ranker. corpus may be nil.
func NewRanker(stops *stoplist.Manager, corpus *Corpus) *Ranker {
	if stops == nil {
		stops = stoplist.Default()
	}
	return &Ranker{stops: stops, corpus: corpus, topN: DefaultTopN}
}

// Rank returns the top terms by TF-IDF, descending. Ties break by
// first occurrence in the document, which keeps the ordering stable
// across runs and processes.
func (r *Ranker) Rank(tokens []ingest.Token) []Keyword {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	total := 0

	for i, tok := range tokens {
		term := tok.Text
		if len(term) <= 1 || r.stops.IsStop(term) || isNumericOnly(term) {
			continue
		}
		if _, ok := counts[term]; !ok {
			firstSeen[term] = i
		}
		counts[term]++
		total++
	}
	if total == 0 {
		return nil
	}

	// Smoothed IDF over the reference snapshot plus this document.
	// With no snapshot it is exactly 1 and ranking is plain TF.
	docs := float64(r.corpus.Docs() + 1)
	keywords := make([]Keyword, 0, len(counts))
	for term, n := range counts {
		tf := float64(n) / float64(total)
		idf := math.Log((1+docs)/float64(2+r.corpus.DF(term))) + 1
		keywords = append(keywords, Keyword{Term: term, Score: tf * idf})
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Score != keywords[j].Score {
			return keywords[i].Score > keywords[j].Score
		}
		return firstSeen[keywords[i].Term] < firstSeen[keywords[j].Term]
	})

	if len(keywords) > r.topN {
		keywords = keywords[:r.topN]
	}
	return keywords
}

// isNumericOnly reports whether the token is digits and hyphens only.
// Mixed identifiers like "pn-2024-07" are kept.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
