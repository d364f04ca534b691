package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cognicore/propdoc/pkg/propdoc"
	"github.com/cognicore/propdoc/pkg/propdoc/config"
	"github.com/cognicore/propdoc/pkg/propdoc/ingest"
	"github.com/cognicore/propdoc/pkg/propdoc/rank"
)

func main() {
	var (
		input       = flag.String("input", "", "Path to a text file (default: stdin)")
		fieldsOnly  = flag.Bool("fields-only", false, "Extract checklist fields only")
		corpusDir   = flag.String("corpus", "", "Optional: directory of prior documents for reference IDF")
		stoplistCfg = flag.String("stoplist", "", "Optional: stoplist YAML")
		seedsCfg    = flag.String("seeds", "", "Optional: entity seed YAML")
		affectCfg   = flag.String("affect", "", "Optional: sentiment lexicon YAML")
	)
	flag.Parse()

	text, err := readInput(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	loader := &config.Loader{
		StoplistPath: *stoplistCfg,
		SeedsPath:    *seedsCfg,
		AffectPath:   *affectCfg,
	}
	comp, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var corpus *rank.Corpus
	if *corpusDir != "" {
		corpus, err = buildCorpus(*corpusDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "build corpus: %v\n", err)
			os.Exit(1)
		}
	}

	analyzer := propdoc.New(propdoc.Options{
		Classifier: comp.Classifier,
		Stoplist:   comp.Stoplist,
		Corpus:     corpus,
		Sentiment:  comp.Sentiment,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *fieldsOnly {
		fs, simple := analyzer.AnalyzeFields(text)
		out := map[string]any{"fields": fs}
		if simple != nil {
			out["simple"] = simple
		}
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := enc.Encode(analyzer.Analyze(text)); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// buildCorpus tokenizes every regular file in dir into a frozen
// document-frequency snapshot.
func buildCorpus(dir string) (*rank.Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	b := rank.NewCorpusBuilder()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		tokens := ingest.Tokenize(ingest.Normalize(string(data)))
		terms := make([]string, len(tokens))
		for i, tok := range tokens {
			terms[i] = tok.Text
		}
		b.Add(terms)
	}
	return b.Build(), nil
}
