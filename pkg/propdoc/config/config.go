package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/propdoc/pkg/propdoc/entities"
	"github.com/cognicore/propdoc/pkg/propdoc/internalerr"
	"github.com/cognicore/propdoc/pkg/propdoc/sentiment"
)

// Stoplist is the stopword list configuration.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}
	return &sl, nil
}

// Seeds is the entity seed vocabulary configuration: label → terms.
// Terms containing spaces are treated as phrases.
type Seeds struct {
	Date  []string `yaml:"date"`
	Money []string `yaml:"money"`
	Org   []string `yaml:"org"`
}

// LoadSeeds loads the classifier seed vocabulary from a YAML file.
func LoadSeeds(path string) (*Seeds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Seeds
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if len(s.Date) == 0 && len(s.Money) == 0 && len(s.Org) == 0 {
		return nil, fmt.Errorf("%w: seed file %s has no entries", internalerr.ErrInvalidConfig, path)
	}
	return &s, nil
}

// Map converts the seed config into classifier form.
func (s *Seeds) Map() map[entities.Label][]string {
	return map[entities.Label][]string{
		entities.LabelDate:  s.Date,
		entities.LabelMoney: s.Money,
		entities.LabelOrg:   s.Org,
	}
}

// Affect is the sentiment lexicon configuration.
type Affect struct {
	Words map[string]float64 `yaml:"words"`
}

// LoadAffect loads a sentiment lexicon from a YAML file.
func LoadAffect(path string) (*Affect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a Affect
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Lexicon converts the affect config into scorer form.
func (a *Affect) Lexicon() sentiment.Lexicon {
	lex := make(sentiment.Lexicon, len(a.Words))
	for w, v := range a.Words {
		lex[w] = v
	}
	return lex
}

// Server holds the invocation-surface settings.
type Server struct {
	Addr       string   `yaml:"addr"`
	DBPath     string   `yaml:"db_path"`
	AuthTokens []string `yaml:"auth_tokens"`
	FetchRPS   float64  `yaml:"fetch_rps"`
	MaxBody    int64    `yaml:"max_body_bytes"`
}

// LoadServer loads server settings from a YAML file.
func LoadServer(path string) (*Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	srv := &Server{Addr: ":8080", DBPath: "propdoc.db", FetchRPS: 1, MaxBody: 1 << 20}
	if err := yaml.Unmarshal(data, srv); err != nil {
		return nil, err
	}
	return srv, nil
}
