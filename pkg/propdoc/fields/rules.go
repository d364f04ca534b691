package fields

import "regexp"

// rule binds one checklist field to its trigger pattern. Group 1 of
// every pattern is the captured value. Patterns run against line-
// preserving text, so rest-of-line captures stop at the newline and
// the filler classes exclude it.
type rule struct {
	field   string
	pattern *regexp.Regexp
	assign  func(*FieldSet, string)
}

const (
	dateToken = `(\d{1,2}/\d{1,2}/(?:\d{4}|\d{2}))`
	timeToken = `(\d{1,2}:\d{2}(?: ?[AaPp]\.?[Mm]\.?)?)`
	// An identifier token starts with an alphanumeric and must carry at
	// least one digit, so prose words after a bare trigger ("RFP for
	// roadway repair") and stray leading hyphens never match.
	idToken    = `(\d[A-Za-z0-9-]*|[A-Za-z0-9][A-Za-z0-9-]*\d[A-Za-z0-9-]*)`
	restOfLine = `([^\n]+)`
	// Filler between a trigger and a numeric value, confined to the line.
	toDigits = `[^0-9\n]{0,40}`
)

var rules = []rule{
	{
		field:   "dueDate",
		pattern: regexp.MustCompile(`(?i)\b(?:due date|submission deadline|proposal due)\b` + toDigits + dateToken),
		assign:  func(f *FieldSet, v string) { f.DueDate = &v },
	},
	{
		field:   "dueTime",
		pattern: regexp.MustCompile(`(?i)\b(?:due time|submission time)\b` + toDigits + timeToken),
		assign:  func(f *FieldSet, v string) { f.DueTime = &v },
	},
	{
		field:   "solicitationNumber",
		pattern: regexp.MustCompile(`(?i)\b(?:solicitation|rfp|rfq)\b(?: (?:number|no\.?|#))?[-:# ]*` + idToken),
		assign:  func(f *FieldSet, v string) { f.SolicitationNumber = &v },
	},
	{
		field:   "projectNumber",
		pattern: regexp.MustCompile(`(?i)\b(?:project|job)\b(?: (?:number|no\.?|#))?[-:# ]*` + idToken),
		assign:  func(f *FieldSet, v string) { f.ProjectNumber = &v },
	},
	{
		field:   "projectName",
		pattern: regexp.MustCompile(`(?i)\b(?:project|job)\b(?: (?:name|title))? ?: ?` + restOfLine),
		assign:  func(f *FieldSet, v string) { f.ProjectName = &v },
	},
	{
		field:   "projectDescription",
		pattern: regexp.MustCompile(`(?i)\b(?:project|job)\b (?:description|scope)(?: of work)? ?:? ?` + restOfLine),
		assign:  func(f *FieldSet, v string) { f.ProjectDescription = &v },
	},
	{
		field:   "projectSchedule",
		pattern: regexp.MustCompile(`(?i)\b(?:project|job)\b (?:schedule|timeline) ?:? ?` + restOfLine),
		assign:  func(f *FieldSet, v string) { f.ProjectSchedule = &v },
	},
	{
		field:   "soqRequirements",
		pattern: regexp.MustCompile(`(?i)\b(?:soq|statement of qualifications)\b(?: requirements)? ?:? ?` + restOfLine),
		assign:  func(f *FieldSet, v string) { f.SOQRequirements = &v },
	},
	{
		field:   "contentRequirements",
		pattern: regexp.MustCompile(`(?i)\b(?:content|submission) requirements\b ?:? ?` + restOfLine),
		assign:  func(f *FieldSet, v string) { f.ContentRequirements = &v },
	},
}
