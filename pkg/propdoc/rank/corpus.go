package rank

// Corpus is an immutable document-frequency snapshot built from prior
// documents. A Ranker consults it for IDF; it never changes once
// built, so concurrent analyses can share one safely.
type Corpus struct {
	docs int
	df   map[string]int
}

// CorpusBuilder accumulates documents into a snapshot. Build once,
// offline; the result is frozen.
type CorpusBuilder struct {
	docs int
	df   map[string]int
}

// NewCorpusBuilder creates an empty builder.
func NewCorpusBuilder() *CorpusBuilder {
	return &CorpusBuilder{df: make(map[string]int)}
}

// Add counts one document's tokens. Each distinct term counts once per
// document.
func (b *CorpusBuilder) Add(tokens []string) {
	b.docs++
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		b.df[tok]++
	}
}

// Build freezes the accumulated counts into a Corpus. The builder can
// keep accumulating; later Build calls see the later state.
func (b *CorpusBuilder) Build() *Corpus {
	df := make(map[string]int, len(b.df))
	for term, n := range b.df {
		df[term] = n
	}
	return &Corpus{docs: b.docs, df: df}
}

// Docs returns the number of documents in the snapshot.
func (c *Corpus) Docs() int {
	if c == nil {
		return 0
	}
	return c.docs
}

// DF returns how many snapshot documents contain term.
func (c *Corpus) DF(term string) int {
	if c == nil {
		return 0
	}
	return c.df[term]
}
