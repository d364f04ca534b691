package ingest

import (
	"regexp"
	"strings"
)

// Document holds one solicitation's text for a single analysis call.
// NormalizedText is fixed after construction; every downstream offset
// (tokens, entity spans) points into it. LineText preserves line and
// paragraph boundaries for the field rules, whose captures run to
// end-of-line.
type Document struct {
	RawText        string
	NormalizedText string
	LineText       string
}

// NewDocument normalizes raw once and returns the document for this call.
func NewDocument(raw string) Document {
	return Document{
		RawText:        raw,
		NormalizedText: Normalize(raw),
		LineText:       NormalizeLines(raw),
	}
}

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hspaceRe     = regexp.MustCompile(`[ \t]+`)
	edgeSpaceRe  = regexp.MustCompile(`(?m)^ +| +$`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// Normalize strips markup and collapses whitespace.
// Tags become a single space so that adjacent words stay separated.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := tagRe.ReplaceAllString(raw, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeLines cleans like Normalize but keeps line structure:
// horizontal whitespace collapses to one space, runs of blank lines
// collapse to a single blank line. Also idempotent.
func NormalizeLines(raw string) string {
	s := tagRe.ReplaceAllString(raw, " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = hspaceRe.ReplaceAllString(s, " ")
	s = edgeSpaceRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.Trim(s, "\n ")
}
