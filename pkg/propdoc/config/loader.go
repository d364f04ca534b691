package config

import (
	"fmt"

	"github.com/cognicore/propdoc/pkg/propdoc/entities"
	"github.com/cognicore/propdoc/pkg/propdoc/sentiment"
	"github.com/cognicore/propdoc/pkg/propdoc/stoplist"
)

// Loader loads the optional configuration files and constructs
// pipeline components. Empty paths select built-in defaults.
type Loader struct {
	StoplistPath string
	SeedsPath    string
	AffectPath   string
}

// Components holds the loaded pipeline dependencies.
type Components struct {
	Stoplist   *stoplist.Manager
	Classifier entities.Classifier
	Sentiment  sentiment.Lexicon
}

// Load reads the configured files and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.NewManager(sl.Terms)
	} else {
		comp.Stoplist = stoplist.Default()
	}

	if l.SeedsPath != "" {
		seeds, err := LoadSeeds(l.SeedsPath)
		if err != nil {
			return nil, fmt.Errorf("load entity seeds: %w", err)
		}
		comp.Classifier = entities.NewLexicalFromSeeds(seeds.Map())
	} else {
		comp.Classifier = entities.NewLexical()
	}

	if l.AffectPath != "" {
		affect, err := LoadAffect(l.AffectPath)
		if err != nil {
			return nil, fmt.Errorf("load affect lexicon: %w", err)
		}
		comp.Sentiment = affect.Lexicon()
	}

	return comp, nil
}
