// Package synth derives checklist-ready requirement structures from
// classified entities and ranked keywords.
package synth

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/propdoc/pkg/propdoc/entities"
	"github.com/cognicore/propdoc/pkg/propdoc/rank"
)

// Timeline orders the document's DATE entities. Start and End are nil
// until at least one, respectively two, dates parse.
type Timeline struct {
	Start      *string  `json:"start"`
	End        *string  `json:"end"`
	Milestones []string `json:"milestones"`
}

// Budget is the largest MONEY amount found, with its original text.
type Budget struct {
	Amount float64 `json:"amount"`
	Text   string  `json:"text"`
}

// Requirements is the derived summary attached to every analysis.
type Requirements struct {
	Timeline     Timeline          `json:"timeline"`
	Budget       Budget            `json:"budget"`
	Stakeholders []entities.Entity `json:"stakeholders"`
	KeyPhrases   []string          `json:"keyPhrases"`
}

// Synthesizer combines entities and keywords. The logger records DATE
// entities whose text does not parse as a calendar date; nil disables
// that logging.
type Synthesizer struct {
	logger *slog.Logger
}

// New creates a synthesizer.
func New(logger *slog.Logger) *Synthesizer {
	return &Synthesizer{logger: logger}
}

var dateLayouts = []string{"1/2/2006", "1/2/06"}

// Synthesize builds the Requirements. Fewer than two parseable dates
// or zero MONEY entities are normal outcomes, never errors.
func (s *Synthesizer) Synthesize(ents []entities.Entity, keywords []rank.Keyword) Requirements {
	return Requirements{
		Timeline:     s.timeline(ents),
		Budget:       budget(ents),
		Stakeholders: stakeholders(ents),
		KeyPhrases:   keyPhrases(keywords),
	}
}

type parsedDate struct {
	text string
	when time.Time
}

func (s *Synthesizer) timeline(ents []entities.Entity) Timeline {
	var dates []parsedDate
	for _, e := range ents {
		if e.Label != entities.LabelDate {
			continue
		}
		when, ok := parseDate(e.Text)
		if !ok {
			if s.logger != nil {
				s.logger.Debug("unparseable date entity", "text", e.Text)
			}
			continue
		}
		dates = append(dates, parsedDate{text: e.Text, when: when})
	}

	tl := Timeline{Milestones: []string{}}
	if len(dates) == 0 {
		return tl
	}

	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].when.Before(dates[j].when)
	})

	tl.Start = &dates[0].text
	if len(dates) < 2 {
		return tl
	}
	tl.End = &dates[len(dates)-1].text

	first, last := dates[0].when, dates[len(dates)-1].when
	for _, d := range dates[1 : len(dates)-1] {
		if d.when.After(first) && d.when.Before(last) {
			tl.Milestones = append(tl.Milestones, d.text)
		}
	}
	return tl
}

func parseDate(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if when, err := time.Parse(layout, text); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}

func budget(ents []entities.Entity) Budget {
	best := Budget{Amount: 0, Text: ""}
	for _, e := range ents {
		if e.Label != entities.LabelMoney {
			continue
		}
		amount, ok := parseAmount(e.Text)
		if !ok {
			continue
		}
		// Strictly greater keeps the first occurrence on ties.
		if amount > best.Amount || best.Text == "" {
			best = Budget{Amount: amount, Text: e.Text}
		}
	}
	return best
}

// parseAmount strips everything but digits and the decimal point.
func parseAmount(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func stakeholders(ents []entities.Entity) []entities.Entity {
	var orgs []entities.Entity
	for _, e := range ents {
		if e.Label == entities.LabelOrg {
			orgs = append(orgs, e)
		}
	}
	return orgs
}

func keyPhrases(keywords []rank.Keyword) []string {
	phrases := make([]string, len(keywords))
	for i, kw := range keywords {
		phrases[i] = kw.Term
	}
	return phrases
}
