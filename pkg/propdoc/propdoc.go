// Package propdoc analyzes solicitation (RFP/RFQ) text into
// checklist-ready proposal metadata: administrative fields, labeled
// entities, ranked keywords, a sentiment score, and derived
// requirements.
package propdoc

import (
	"log/slog"

	"github.com/cognicore/propdoc/pkg/propdoc/entities"
	"github.com/cognicore/propdoc/pkg/propdoc/fields"
	"github.com/cognicore/propdoc/pkg/propdoc/ingest"
	"github.com/cognicore/propdoc/pkg/propdoc/rank"
	"github.com/cognicore/propdoc/pkg/propdoc/sentiment"
	"github.com/cognicore/propdoc/pkg/propdoc/stoplist"
	"github.com/cognicore/propdoc/pkg/propdoc/synth"
)

// AnalysisResult is the terminal aggregate of one analysis call.
// Ownership transfers to the caller; the pipeline keeps nothing.
type AnalysisResult struct {
	Fields       fields.FieldSet    `json:"fields"`
	Entities     []entities.Entity  `json:"entities"`
	Keywords     []string           `json:"keywords"`
	Sentiment    float64            `json:"sentiment"`
	Requirements synth.Requirements `json:"requirements"`
}

// Analyzer is the document analysis pipeline facade. It is immutable
// after construction and safe for concurrent use: every Analyze call
// works on its own Document and its own counts.
type Analyzer struct {
	classifier entities.Classifier
	stops      *stoplist.Manager
	corpus     *rank.Corpus
	scorer     *sentiment.Scorer
	synthd     *synth.Synthesizer
}

// Options configures an Analyzer. Zero values select the built-in
// seed classifier, stoplist, and affect lexicon, with no reference
// corpus.
type Options struct {
	Classifier entities.Classifier
	Stoplist   *stoplist.Manager
	Corpus     *rank.Corpus
	Sentiment  sentiment.Lexicon
	Logger     *slog.Logger
}

// New creates an Analyzer with the given dependencies.
func New(opts Options) *Analyzer {
	cls := opts.Classifier
	if cls == nil {
		cls = entities.NewLexical()
	}
	stops := opts.Stoplist
	if stops == nil {
		stops = stoplist.Default()
	}
	return &Analyzer{
		classifier: cls,
		stops:      stops,
		corpus:     opts.Corpus,
		scorer:     sentiment.NewScorer(opts.Sentiment),
		synthd:     synth.New(opts.Logger),
	}
}

// Analyze runs the full pipeline over one document's raw text. Empty
// or pathological input degrades to an all-null, all-empty result;
// it never fails.
func (a *Analyzer) Analyze(raw string) AnalysisResult {
	doc := ingest.NewDocument(raw)
	tokens := ingest.Tokenize(doc.NormalizedText)

	fs := fields.Extract(doc.LineText)
	ents := entities.NewExtractor(a.classifier).Extract(doc.NormalizedText, tokens)
	// A fresh ranker per call: keyword scores are scoped to this
	// document plus the frozen reference corpus, never to prior calls.
	keywords := rank.NewRanker(a.stops, a.corpus).Rank(tokens)
	score := a.scorer.Score(tokens)
	reqs := a.synthd.Synthesize(ents, keywords)

	return assemble(fs, ents, keywords, score, reqs)
}

// AnalyzeFields runs only normalization and field extraction, the
// shape the upload and link flows return. When no labeled field is
// present the simple heading/bullet fallback applies.
func (a *Analyzer) AnalyzeFields(raw string) (fields.FieldSet, *fields.SimpleFields) {
	doc := ingest.NewDocument(raw)
	fs := fields.Extract(doc.LineText)
	if !fs.Empty() {
		return fs, nil
	}
	sf := fields.ExtractSimple(doc.LineText)
	return fs, &sf
}

// assemble is pure aggregation; upstream failures would propagate
// unchanged, but no stage here has a failure mode of its own.
func assemble(fs fields.FieldSet, ents []entities.Entity, keywords []rank.Keyword, score float64, reqs synth.Requirements) AnalysisResult {
	terms := make([]string, len(keywords))
	for i, kw := range keywords {
		terms[i] = kw.Term
	}
	return AnalysisResult{
		Fields:       fs,
		Entities:     ents,
		Keywords:     terms,
		Sentiment:    score,
		Requirements: reqs,
	}
}
