package synth

import (
	"testing"

	"github.com/cognicore/propdoc/pkg/propdoc/entities"
	"github.com/cognicore/propdoc/pkg/propdoc/rank"
)

func dateEntities(texts ...string) []entities.Entity {
	ents := make([]entities.Entity, len(texts))
	for i, t := range texts {
		ents[i] = entities.Entity{Text: t, Label: entities.LabelDate, Start: i * 12, End: i*12 + len(t)}
	}
	return ents
}

func moneyEntities(texts ...string) []entities.Entity {
	ents := make([]entities.Entity, len(texts))
	for i, t := range texts {
		ents[i] = entities.Entity{Text: t, Label: entities.LabelMoney, Start: i * 12, End: i*12 + len(t)}
	}
	return ents
}

func TestTimelineOrdering(t *testing.T) {
	s := New(nil)
	req := s.Synthesize(dateEntities("03/01/2025", "01/10/2025", "02/15/2025"), nil)

	tl := req.Timeline
	if tl.Start == nil || *tl.Start != "01/10/2025" {
		t.Errorf("start = %v", tl.Start)
	}
	if tl.End == nil || *tl.End != "03/01/2025" {
		t.Errorf("end = %v", tl.End)
	}
	if len(tl.Milestones) != 1 || tl.Milestones[0] != "02/15/2025" {
		t.Errorf("milestones = %v", tl.Milestones)
	}
}

func TestTimelineSingleDate(t *testing.T) {
	s := New(nil)
	tl := s.Synthesize(dateEntities("03/01/2025"), nil).Timeline

	if tl.Start == nil || *tl.Start != "03/01/2025" {
		t.Errorf("start = %v", tl.Start)
	}
	if tl.End != nil {
		t.Errorf("end = %v, want nil", *tl.End)
	}
	if len(tl.Milestones) != 0 {
		t.Errorf("milestones = %v", tl.Milestones)
	}
}

func TestTimelineUnparseableExcluded(t *testing.T) {
	s := New(nil)
	ents := dateEntities("deadline", "02/15/2025", "schedule", "01/10/2025")
	tl := s.Synthesize(ents, nil).Timeline

	if tl.Start == nil || *tl.Start != "01/10/2025" {
		t.Errorf("start = %v", tl.Start)
	}
	if tl.End == nil || *tl.End != "02/15/2025" {
		t.Errorf("end = %v", tl.End)
	}
}

func TestBudgetMaxAmount(t *testing.T) {
	s := New(nil)
	b := s.Synthesize(moneyEntities("$10,000", "$45,500.50", "$2,000"), nil).Budget

	if b.Amount != 45500.50 {
		t.Errorf("amount = %f, want 45500.50", b.Amount)
	}
	if b.Text != "$45,500.50" {
		t.Errorf("text = %q", b.Text)
	}
}

func TestBudgetTieFirstWins(t *testing.T) {
	s := New(nil)
	b := s.Synthesize(moneyEntities("$5,000.00", "$5,000"), nil).Budget

	if b.Text != "$5,000.00" {
		t.Errorf("tie should keep first occurrence, got %q", b.Text)
	}
}

func TestBudgetWordEntitiesIgnored(t *testing.T) {
	s := New(nil)
	b := s.Synthesize(moneyEntities("budget", "cost", "$1,200"), nil).Budget

	if b.Amount != 1200 || b.Text != "$1,200" {
		t.Errorf("budget = %+v", b)
	}
}

func TestNoEntities(t *testing.T) {
	s := New(nil)
	req := s.Synthesize(nil, nil)

	if req.Budget.Amount != 0 || req.Budget.Text != "" {
		t.Errorf("budget = %+v", req.Budget)
	}
	if req.Timeline.Start != nil || req.Timeline.End != nil {
		t.Errorf("timeline = %+v", req.Timeline)
	}
	if len(req.Timeline.Milestones) != 0 {
		t.Errorf("milestones = %v", req.Timeline.Milestones)
	}
	if len(req.Stakeholders) != 0 {
		t.Errorf("stakeholders = %v", req.Stakeholders)
	}
}

func TestStakeholdersOriginalOrder(t *testing.T) {
	s := New(nil)
	ents := []entities.Entity{
		{Text: "city", Label: entities.LabelOrg, Start: 0, End: 4},
		{Text: "03/01/2025", Label: entities.LabelDate, Start: 5, End: 15},
		{Text: "contractor", Label: entities.LabelOrg, Start: 16, End: 26},
	}
	got := s.Synthesize(ents, nil).Stakeholders

	if len(got) != 2 || got[0].Text != "city" || got[1].Text != "contractor" {
		t.Errorf("stakeholders = %v", got)
	}
}

func TestKeyPhrasesRankedOrder(t *testing.T) {
	s := New(nil)
	keywords := []rank.Keyword{
		{Term: "bridge", Score: 0.5},
		{Term: "repair", Score: 0.3},
		{Term: "inspection", Score: 0.1},
	}
	got := s.Synthesize(nil, keywords).KeyPhrases

	want := []string{"bridge", "repair", "inspection"}
	if len(got) != len(want) {
		t.Fatalf("keyPhrases = %v", got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("keyPhrase %d = %q, want %q", i, got[i], w)
		}
	}
}
