// Package fields pulls discrete checklist fields out of solicitation
// text with a table of pattern rules. Absence of a field is a normal
// outcome, never an error.
package fields

import "strings"

// FieldSet holds the nine checklist fields. Each is nil when its
// trigger phrase never appears in the document.
type FieldSet struct {
	DueDate             *string `json:"dueDate"`
	DueTime             *string `json:"dueTime"`
	SolicitationNumber  *string `json:"solicitationNumber"`
	ProjectNumber       *string `json:"projectNumber"`
	ProjectName         *string `json:"projectName"`
	ProjectDescription  *string `json:"projectDescription"`
	ProjectSchedule     *string `json:"projectSchedule"`
	SOQRequirements     *string `json:"soqRequirements"`
	ContentRequirements *string `json:"contentRequirements"`
}

// Empty reports whether no labeled field was detected at all.
func (f FieldSet) Empty() bool {
	return f.DueDate == nil &&
		f.DueTime == nil &&
		f.SolicitationNumber == nil &&
		f.ProjectNumber == nil &&
		f.ProjectName == nil &&
		f.ProjectDescription == nil &&
		f.ProjectSchedule == nil &&
		f.SOQRequirements == nil &&
		f.ContentRequirements == nil
}

// Extract evaluates every rule against line-preserving text and fills
// in the first capture of each, leaving unmatched fields nil.
func Extract(lineText string) FieldSet {
	var fs FieldSet
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(lineText)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if v == "" {
			continue
		}
		r.assign(&fs, v)
	}
	return fs
}
